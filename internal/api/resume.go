package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
)

// ResumeUpload ответ сервера на загрузку резюме
type ResumeUpload struct {
	Message string `json:"message"`
	URL     string `json:"url,omitempty"`
}

// UploadResume отправляет изображение или PDF резюме в поле resume
func (c *Client) UploadResume(ctx context.Context, path string) (*ResumeUpload, error) {
	switch contentTypeFor(path) {
	case "image/png", "image/jpeg", "application/pdf":
	default:
		return nil, fmt.Errorf("unsupported resume format %q", filepath.Ext(path))
	}

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	if err := c.attachFile(w, "resume", filepath.Base(path), path); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/resume/upload", buf)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	data, err := c.do(c.upload, req)
	if err != nil {
		return nil, err
	}
	var out ResumeUpload
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("error unmarshaling response: %w", err)
	}
	return &out, nil
}
