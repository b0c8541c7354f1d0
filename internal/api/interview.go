package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"

	"interview-practice/internal/selection"
	"interview-practice/internal/session"
)

// questionsEnvelope список вопросов приходит массивом или в поле questions/data
type questionsEnvelope struct {
	Questions []string `json:"questions"`
	Data      []string `json:"data"`
}

// GenerateQuestions запрашивает вопросы для выбранного интервью
func (c *Client) GenerateQuestions(ctx context.Context, req selection.Request) ([]string, error) {
	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodPost, "/interview/questions", req, &raw); err != nil {
		return nil, err
	}

	var questions []string
	if err := json.Unmarshal(raw, &questions); err != nil {
		var env questionsEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, fmt.Errorf("error unmarshaling questions: %w", err)
		}
		questions = env.Questions
		if len(questions) == 0 {
			questions = env.Data
		}
	}

	out := questions[:0]
	for _, q := range questions {
		if q = strings.TrimSpace(q); q != "" {
			out = append(out, q)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("server returned no questions")
	}
	return out, nil
}

type resultBody struct {
	Reviews       []session.Review `json:"reviews"`
	QuestionCount *int             `json:"questionCount"`
	Rating        *float64         `json:"rating"`
}

// submitEnvelope поддерживает обе формы ответа: reviews и data.reviews
type submitEnvelope struct {
	resultBody
	Data *resultBody `json:"data"`
}

func (e submitEnvelope) result() (*session.Result, error) {
	body := e.resultBody
	if body.Reviews == nil && e.Data != nil {
		body = *e.Data
	}
	if body.Reviews == nil {
		return nil, fmt.Errorf("%w: reviews are missing", session.ErrMalformedResponse)
	}
	if len(body.Reviews) == 0 {
		return nil, fmt.Errorf("%w: reviews are empty", session.ErrMalformedResponse)
	}

	result := &session.Result{Reviews: body.Reviews, Rating: body.Rating, QuestionCount: len(body.Reviews)}
	if body.QuestionCount != nil {
		result.QuestionCount = *body.QuestionCount
	}
	return result, nil
}

// Submit отправляет вопросы и ответы одним multipart запросом.
// Реализует session.Submitter.
func (c *Client) Submit(ctx context.Context, questions []string, recordings []session.Recording) (*session.Result, error) {
	body, contentType, err := c.buildSubmission(questions, recordings)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/interview/submit", body)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	data, err := c.do(c.upload, req)
	if err != nil {
		return nil, err
	}

	var env submitEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", session.ErrMalformedResponse, err)
	}
	result, err := env.result()
	if err != nil {
		return nil, err
	}
	// каждый вопрос должен получить разбор
	if len(result.Reviews) != len(questions) {
		return nil, fmt.Errorf("%w: %d reviews for %d questions", session.ErrMalformedResponse, len(result.Reviews), len(questions))
	}
	return result, nil
}

func (c *Client) buildSubmission(questions []string, recordings []session.Recording) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	encoded, err := json.Marshal(questions)
	if err != nil {
		return nil, "", fmt.Errorf("error marshaling questions: %w", err)
	}
	if err := w.WriteField("questions", string(encoded)); err != nil {
		return nil, "", err
	}

	for i, r := range recordings {
		ext := strings.TrimPrefix(filepath.Ext(r.Path), ".")
		name := fmt.Sprintf("answer_%d.%s", i, ext)
		if err := c.attachFile(w, "answers", name, r.Path); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

func (c *Client) attachFile(w *multipart.Writer, field, filename, path string) error {
	f, err := c.fs.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, field, filename))
	h.Set("Content-Type", contentTypeFor(filename))
	part, err := w.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("copy %s: %w", path, err)
	}
	return nil
}

func contentTypeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		return "audio/wav"
	case ".m4a":
		return "audio/m4a"
	case ".webm":
		return "audio/webm"
	case ".mp3":
		return "audio/mpeg"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
