package storage

import (
	"time"

	"interview-practice/internal/selection"
	"interview-practice/internal/session"
)

// InterviewResult представляет сохраненный результат интервью
type InterviewResult struct {
	InterviewID   string            `json:"interview_id"`
	Timestamp     string            `json:"timestamp"`
	UserID        string            `json:"user_id,omitempty"`
	Request       selection.Request `json:"request"`
	Questions     []string          `json:"questions"`
	Reviews       []session.Review  `json:"reviews"`
	QuestionCount int               `json:"question_count"`
	Rating        *float64          `json:"rating,omitempty"`
}

// NewInterviewResult собирает запись истории из результата сессии
func NewInterviewResult(id, userID string, req selection.Request, questions []string, result *session.Result) *InterviewResult {
	r := &InterviewResult{
		InterviewID: id,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		UserID:      userID,
		Request:     req,
		Questions:   questions,
	}
	if result != nil {
		r.Reviews = result.Reviews
		r.QuestionCount = result.QuestionCount
		r.Rating = result.Rating
	}
	return r
}

// Time время сохранения, нулевое если поле повреждено
func (r *InterviewResult) Time() time.Time {
	t, _ := time.Parse(time.RFC3339, r.Timestamp)
	return t
}

// Result обратное преобразование для экрана результатов
func (r *InterviewResult) Result() *session.Result {
	return &session.Result{Reviews: r.Reviews, QuestionCount: r.QuestionCount, Rating: r.Rating}
}
