package session

import (
	"errors"
	"fmt"
)

var (
	ErrPermissionDenied   = errors.New("microphone permission denied")
	ErrEmptyCapture       = errors.New("recording is empty")
	ErrSubmission         = errors.New("submission failed")
	ErrMalformedResponse  = errors.New("malformed submission response")
	ErrNotRecording       = errors.New("no recording in progress")
	ErrJumpWhileRecording = errors.New("cannot change question while recording")
	ErrNotAnswered        = errors.New("question not reached yet")
	ErrInvalidTransition  = errors.New("invalid session transition")
	ErrNoQuestions        = errors.New("question list is empty")
	ErrInvalidRecording   = errors.New("recording is not fit for upload")
)

// PermissionError отказ в доступе к микрофону
type PermissionError struct {
	Err error
}

func (e *PermissionError) Error() string {
	if e.Err == nil {
		return ErrPermissionDenied.Error()
	}
	return fmt.Sprintf("%s: %v", ErrPermissionDenied, e.Err)
}

func (e *PermissionError) Is(target error) bool { return target == ErrPermissionDenied }

func (e *PermissionError) Unwrap() error { return e.Err }

// CaptureError запись вопроса не удалась, индекс не продвигается
type CaptureError struct {
	Index int
	Path  string
	Size  int64
	Err   error
}

func (e *CaptureError) Error() string {
	if errors.Is(e.Err, ErrEmptyCapture) {
		return fmt.Sprintf("recording #%d is empty (%d bytes), please retry", e.Index+1, e.Size)
	}
	return fmt.Sprintf("recording #%d failed: %v", e.Index+1, e.Err)
}

func (e *CaptureError) Unwrap() error { return e.Err }

// ValidationError запись с индексом Index непригодна к отправке.
// Empty означает, что файл пропал или не содержит звука.
type ValidationError struct {
	Index  int
	Size   int64
	Reason string
	Empty  bool
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("recording #%d is invalid (%d bytes): %s", e.Index+1, e.Size, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidRecording || (e.Empty && target == ErrEmptyCapture)
}

// SubmissionError ошибка сети или сервера при отправке
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return e.Err.Error()
}

func (e *SubmissionError) Is(target error) bool { return target == ErrSubmission }

func (e *SubmissionError) Unwrap() error { return e.Err }
