package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"interview-practice/internal/metrics"

	"github.com/google/uuid"
)

const defaultUploadTimeout = 120 * time.Second

// Config зависимости и параметры новой сессии
type Config struct {
	Questions     []string
	Dir           string // каталог для файлов записей
	Extension     string // расширение файлов записей без точки
	Prompter      Prompter
	Recorder      Recorder
	Inspector     Inspector
	Submitter     Submitter
	Router        Router
	Metrics       *metrics.Metrics
	UploadTimeout time.Duration
}

// Session машина состояний одного прохода по списку вопросов.
// Переходы выполняются строго по одному: op удерживается на всё время
// перехода, включая ввод-вывод. mu защищает поля для чтения снимков.
type Session struct {
	op sync.Mutex
	mu sync.Mutex

	id            string
	questions     []string
	dir           string
	ext           string
	uploadTimeout time.Duration

	prompter  Prompter
	recorder  Recorder
	inspector Inspector
	submitter Submitter
	router    Router
	metrics   *metrics.Metrics

	state      State
	current    int
	view       int
	takes      int
	recordings map[int]Recording
	capture    Capture
	result     *Result
	lastErr    error
}

// New создает сессию в состоянии Idle на первом вопросе
func New(cfg Config) (*Session, error) {
	if len(cfg.Questions) == 0 {
		return nil, ErrNoQuestions
	}
	if cfg.Recorder == nil || cfg.Inspector == nil || cfg.Submitter == nil {
		return nil, fmt.Errorf("recorder, inspector and submitter are required")
	}
	if cfg.Prompter == nil {
		cfg.Prompter = silentPrompter{}
	}
	if cfg.Extension == "" {
		cfg.Extension = "wav"
	}
	if cfg.UploadTimeout <= 0 {
		cfg.UploadTimeout = defaultUploadTimeout
	}

	questions := make([]string, len(cfg.Questions))
	copy(questions, cfg.Questions)

	return &Session{
		id:            uuid.New().String(),
		questions:     questions,
		dir:           cfg.Dir,
		ext:           cfg.Extension,
		uploadTimeout: cfg.UploadTimeout,
		prompter:      cfg.Prompter,
		recorder:      cfg.Recorder,
		inspector:     cfg.Inspector,
		submitter:     cfg.Submitter,
		router:        cfg.Router,
		metrics:       cfg.Metrics,
		state:         StateIdle,
		recordings:    make(map[int]Recording),
	}, nil
}

// ID идентификатор сессии
func (s *Session) ID() string {
	return s.id
}

// Begin входит в Idle на первом вопросе и озвучивает его
func (s *Session) Begin(ctx context.Context) error {
	s.op.Lock()
	defer s.op.Unlock()

	if s.State() != StateIdle {
		return fmt.Errorf("%w: begin from %s", ErrInvalidTransition, s.State())
	}
	s.metrics.IncrementSessionsStarted()
	log.Printf("session %s: %d questions", s.id, len(s.questions))
	return s.enterIdle(ctx, 0)
}

// Start начинает запись ответа на текущий вопрос.
// Повторный Start во время записи ничего не делает.
func (s *Session) Start(ctx context.Context) error {
	s.op.Lock()
	defer s.op.Unlock()

	switch st := s.State(); st {
	case StateRecording:
		return nil
	case StateIdle:
	default:
		return fmt.Errorf("%w: start from %s", ErrInvalidTransition, st)
	}

	if err := s.recorder.RequestPermission(ctx); err != nil {
		s.metrics.IncrementPermissionDenials()
		return s.fail(&PermissionError{Err: err})
	}

	s.prompter.Stop()
	if err := s.recorder.SetMode(ctx, ModeRecord); err != nil {
		return s.fail(fmt.Errorf("enable recording mode: %w", err))
	}

	s.mu.Lock()
	s.takes++
	path := filepath.Join(s.dir, fmt.Sprintf("answer_%d_take%d.%s", s.current, s.takes, s.ext))
	s.mu.Unlock()

	capture, err := s.recorder.Begin(ctx, path)
	if err != nil {
		s.restorePlayback(ctx)
		return s.fail(fmt.Errorf("start recording: %w", err))
	}

	s.mu.Lock()
	s.capture = capture
	s.state = StateRecording
	s.view = s.current
	s.lastErr = nil
	s.mu.Unlock()

	log.Printf("session %s: recording question %d to %s", s.id, s.current, path)
	return nil
}

// Stop завершает запись, проверяет файл и переходит к следующему вопросу
// или к отправке. Пустая запись не продвигает индекс.
func (s *Session) Stop(ctx context.Context) error {
	s.op.Lock()
	defer s.op.Unlock()

	s.mu.Lock()
	if s.state != StateRecording || s.capture == nil {
		s.mu.Unlock()
		return ErrNotRecording
	}
	capture := s.capture
	index := s.current
	s.capture = nil
	s.state = StateIdle
	s.mu.Unlock()

	stopErr := capture.Stop()
	s.restorePlayback(ctx)

	if stopErr != nil {
		return s.fail(&CaptureError{Index: index, Path: capture.Path(), Err: stopErr})
	}

	info, err := s.inspector.Inspect(capture.Path())
	if err != nil {
		return s.fail(&CaptureError{Index: index, Path: capture.Path(), Err: fmt.Errorf("inspect recording: %w", err)})
	}
	if !info.HasAudio() {
		s.metrics.IncrementEmptyCaptures()
		log.Printf("session %s: question %d produced %d bytes", s.id, index, info.Size)
		return s.fail(&CaptureError{Index: index, Path: capture.Path(), Size: info.Size, Err: ErrEmptyCapture})
	}

	s.metrics.IncrementRecordingsCaptured()

	s.mu.Lock()
	s.recordings[index] = Recording{
		Index:    index,
		Path:     capture.Path(),
		Size:     info.Size,
		Duration: info.Duration,
	}
	s.lastErr = nil
	last := index+1 >= len(s.questions)
	if last {
		s.current = len(s.questions)
		s.state = StateSubmitting
	}
	s.mu.Unlock()

	if last {
		log.Printf("session %s: all %d answers recorded", s.id, len(s.questions))
		return nil
	}
	return s.enterIdle(ctx, index+1)
}

// Submit проверяет все записи и отправляет их. Повторный вызов после
// ошибки отправляет те же файлы без перезаписи.
func (s *Session) Submit(ctx context.Context) (*Result, error) {
	s.op.Lock()
	defer s.op.Unlock()

	switch st := s.State(); st {
	case StateSubmitting, StateFailed:
	default:
		return nil, fmt.Errorf("%w: submit from %s", ErrInvalidTransition, st)
	}

	recordings, err := s.validate()
	if err != nil {
		s.mu.Lock()
		s.state = StateSubmitting
		s.lastErr = err
		s.mu.Unlock()
		return nil, err
	}

	s.mu.Lock()
	s.state = StateSubmitting
	s.lastErr = nil
	s.mu.Unlock()

	uploadCtx, cancel := context.WithTimeout(ctx, s.uploadTimeout)
	defer cancel()

	log.Printf("session %s: submitting %d answers", s.id, len(recordings))
	result, err := s.submitter.Submit(uploadCtx, s.questions, recordings)
	if err != nil {
		s.metrics.IncrementSubmission(false)
		subErr := &SubmissionError{Err: err}
		s.mu.Lock()
		s.state = StateFailed
		s.lastErr = subErr
		s.mu.Unlock()
		log.Printf("session %s: upload failed: %v", s.id, err)
		return nil, subErr
	}

	s.metrics.IncrementSubmission(true)
	s.metrics.IncrementSessionsCompleted()

	s.mu.Lock()
	s.state = StateComplete
	s.result = result
	s.mu.Unlock()

	if s.router != nil {
		s.router.ShowResults(s.id, result)
	}
	return result, nil
}

// Jump показывает и заново озвучивает вопрос index. Разрешены уже
// отвеченные вопросы и текущий. Записи и текущий индекс не меняются.
func (s *Session) Jump(index int) error {
	s.op.Lock()
	defer s.op.Unlock()

	s.mu.Lock()
	if s.state == StateRecording {
		s.mu.Unlock()
		return ErrJumpWhileRecording
	}
	if s.state == StateAbandoned {
		s.mu.Unlock()
		return fmt.Errorf("%w: jump from %s", ErrInvalidTransition, s.state)
	}
	if index < 0 || index >= len(s.questions) {
		s.mu.Unlock()
		return fmt.Errorf("question index %d out of range", index)
	}
	_, answered := s.recordings[index]
	if index > s.current && !answered {
		s.mu.Unlock()
		return ErrNotAnswered
	}
	s.view = index
	text := s.questions[index]
	s.mu.Unlock()

	s.prompter.Speak(text)
	return nil
}

// Abandon прерывает сессию. Незавершенная запись останавливается и
// удаляется, звук возвращается в режим воспроизведения.
func (s *Session) Abandon(ctx context.Context) error {
	s.op.Lock()
	defer s.op.Unlock()

	s.mu.Lock()
	if s.state == StateAbandoned {
		s.mu.Unlock()
		return nil
	}
	capture := s.capture
	s.capture = nil
	s.state = StateAbandoned
	s.mu.Unlock()

	s.metrics.IncrementSessionsAbandoned()
	if capture == nil {
		return nil
	}

	// отмена ctx (сигнал завершения) не должна оставить устройство в режиме записи
	ctx = context.WithoutCancel(ctx)
	log.Printf("session %s: discarding capture %s", s.id, capture.Path())
	var errs []error
	if err := capture.Discard(); err != nil {
		errs = append(errs, fmt.Errorf("discard recording: %w", err))
	}
	if err := s.recorder.SetMode(ctx, ModePlayback); err != nil {
		errs = append(errs, fmt.Errorf("restore playback mode: %w", err))
	}
	return errors.Join(errs...)
}

// State текущее состояние
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot копия состояния для отображения
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	recordings := make(map[int]Recording, len(s.recordings))
	for i, r := range s.recordings {
		recordings[i] = r
	}
	questions := make([]string, len(s.questions))
	copy(questions, s.questions)

	return Snapshot{
		ID:              s.id,
		State:           s.state,
		Questions:       questions,
		CurrentIndex:    s.current,
		ViewIndex:       s.view,
		Recordings:      recordings,
		RecordingActive: s.capture != nil,
		Result:          s.result,
		Err:             s.lastErr,
	}
}

// Recordings записи в порядке индексов
func (s *Session) Recordings() []Recording {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Recording, 0, len(s.recordings))
	for i := 0; i < len(s.questions); i++ {
		if r, ok := s.recordings[i]; ok {
			out = append(out, r)
		}
	}
	return out
}

// enterIdle делает вопрос index текущим и озвучивает его
func (s *Session) enterIdle(ctx context.Context, index int) error {
	s.mu.Lock()
	s.state = StateIdle
	s.current = index
	s.view = index
	text := s.questions[index]
	s.mu.Unlock()

	if err := s.recorder.SetMode(ctx, ModePlayback); err != nil {
		log.Printf("session %s: playback mode: %v", s.id, err)
	}
	s.prompter.Speak(text)
	return nil
}

// validate перечитывает размеры файлов перед отправкой
func (s *Session) validate() ([]Recording, error) {
	s.mu.Lock()
	recordings := make([]Recording, len(s.questions))
	missing := -1
	for i := range s.questions {
		r, ok := s.recordings[i]
		if !ok {
			missing = i
			break
		}
		recordings[i] = r
	}
	s.mu.Unlock()

	if missing >= 0 {
		return nil, &ValidationError{Index: missing, Reason: "not recorded"}
	}

	for i, r := range recordings {
		info, err := s.inspector.Inspect(r.Path)
		if err != nil {
			return nil, &ValidationError{Index: i, Size: r.Size, Reason: err.Error()}
		}
		if !info.Exists {
			return nil, &ValidationError{Index: i, Reason: "file is missing", Empty: true}
		}
		if info.Size <= 0 {
			return nil, &ValidationError{Index: i, Size: info.Size, Reason: "file is empty", Empty: true}
		}
		if info.NoAudio {
			return nil, &ValidationError{Index: i, Size: info.Size, Reason: "file has no audio data", Empty: true}
		}
		recordings[i].Size = info.Size
	}
	return recordings, nil
}

func (s *Session) restorePlayback(ctx context.Context) {
	if err := s.recorder.SetMode(context.WithoutCancel(ctx), ModePlayback); err != nil {
		log.Printf("session %s: restore playback mode: %v", s.id, err)
	}
}

// fail запоминает последнюю ошибку для отображения и возвращает её
func (s *Session) fail(err error) error {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
	return err
}

type silentPrompter struct{}

func (silentPrompter) Speak(string) {}

func (silentPrompter) Stop() {}
