package mockapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
)

const maxUploadMemory = 32 << 20

type questionsRequest struct {
	Mode         string `json:"mode"`
	MainTopic    string `json:"mainTopic"`
	SubTopic     string `json:"subTopic"`
	Specific     string `json:"specific"`
	Difficulty   string `json:"difficulty"`
	Company      string `json:"company"`
	Role         string `json:"role"`
	QuestionType string `json:"questionType"`
	Count        int    `json:"count"`
}

func (q questionsRequest) keys() []string {
	if q.Mode == "company" {
		return []string{q.QuestionType, q.Role, q.Company}
	}
	return []string{q.Specific, q.SubTopic, q.MainTopic}
}

func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	var req questionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	questions := s.catalog.QuestionsFor(req.keys()...)
	count := req.Count
	if count <= 0 {
		count = s.catalog.GetQuestionCount()
	}
	if count < len(questions) {
		questions = questions[:count]
	}
	writeJSON(w, http.StatusOK, map[string]any{"questions": questions})
}

type review struct {
	Question    string  `json:"question"`
	Answer      string  `json:"answer"`
	Feedback    string  `json:"feedback"`
	IdealAnswer string  `json:"idealAnswer"`
	Rating      float64 `json:"rating"`
}

// handleSubmit проверяет форму и возвращает по одному отзыву на вопрос.
// Транскрипции нет, поэтому отзыв строится по длине записи.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	var questions []string
	if err := json.Unmarshal([]byte(r.FormValue("questions")), &questions); err != nil || len(questions) == 0 {
		writeError(w, http.StatusBadRequest, "questions must be a non-empty JSON array")
		return
	}

	answers := r.MultipartForm.File["answers"]
	if len(answers) != len(questions) {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("expected %d answers, got %d", len(questions), len(answers)))
		return
	}

	reviews := make([]review, len(questions))
	var total float64
	for i, fh := range answers {
		if want := fmt.Sprintf("answer_%d", i); strings.TrimSuffix(fh.Filename, filepath.Ext(fh.Filename)) != want {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("answer %d has unexpected name %q", i, fh.Filename))
			return
		}
		if fh.Size == 0 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("answer %d is empty", i))
			return
		}
		rating := ratingFor(fh.Size)
		total += rating
		reviews[i] = review{
			Question:    questions[i],
			Answer:      fmt.Sprintf("[%s, %d bytes]", fh.Filename, fh.Size),
			Feedback:    feedbackFor(rating),
			IdealAnswer: "Structure the answer as situation, action and result, and close with what you learned.",
			Rating:      rating,
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"reviews":       reviews,
		"questionCount": len(questions),
		"rating":        total / float64(len(reviews)),
	})
}

// ratingFor оценка от 1 до 10, растущая с длиной ответа
func ratingFor(size int64) float64 {
	// 16 кГц моно 16 бит: 32000 байт в секунду
	seconds := float64(size) / 32000
	switch {
	case seconds < 5:
		return 3
	case seconds < 20:
		return 6
	case seconds < 90:
		return 8
	default:
		return 7
	}
}

func feedbackFor(rating float64) string {
	switch {
	case rating < 5:
		return "The answer is very short. Expand on your reasoning and give a concrete example."
	case rating < 8:
		return "A reasonable answer. Add specific details about your own contribution."
	default:
		return "Clear and well paced answer with enough detail."
	}
}

func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("resume")
	if err != nil {
		writeError(w, http.StatusBadRequest, "resume file is required")
		return
	}
	file.Close()

	owner := "anonymous"
	if u, ok := s.authorized(r); ok {
		owner = u.ID
	}
	s.mu.Lock()
	s.resumes[owner] = header.Filename
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Resume uploaded successfully",
		"url":     "/uploads/" + header.Filename,
	})
}

// Resume имя последнего резюме пользователя
func (s *Server) Resume(userID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	name, ok := s.resumes[userID]
	return name, ok
}
