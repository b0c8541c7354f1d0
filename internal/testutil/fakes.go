// Package testutil фейковые устройства и сеть для тестов сессии.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"interview-practice/internal/audio"
	"interview-practice/internal/session"

	"github.com/spf13/afero"
)

// Prompter запоминает озвученные вопросы и остановки речи
type Prompter struct {
	mu     sync.Mutex
	spoken []string
	stops  int
}

func (p *Prompter) Speak(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.spoken = append(p.spoken, text)
}

func (p *Prompter) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stops++
}

// Stops сколько раз речь обрывали
func (p *Prompter) Stops() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stops
}

func (p *Prompter) Spoken() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.spoken...)
}

// Особые значения Recorder.Takes
const (
	// Missing файл после записи отсутствует
	Missing = -1
	// HeaderOnly WAV с заголовком и без сэмплов
	HeaderOnly = -2
)

// Recorder пишет в afero WAV файлы заданной длины.
// Takes[n] число сэмплов n-й записи: 0 дает пустой файл, Missing удаляет его,
// HeaderOnly оставляет один заголовок.
// Записи сверх Takes получают DefaultSamples.
type Recorder struct {
	FS             afero.Fs
	Deny           error
	BeginErr       error
	Takes          []int
	DefaultSamples int

	mu        sync.Mutex
	modes     []session.AudioMode
	begun     int
	open      int
	discarded []string
}

func NewRecorder(fs afero.Fs, takes ...int) *Recorder {
	return &Recorder{FS: fs, Takes: takes, DefaultSamples: 1600}
}

func (r *Recorder) RequestPermission(ctx context.Context) error {
	return r.Deny
}

func (r *Recorder) SetMode(ctx context.Context, mode session.AudioMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modes = append(r.modes, mode)
	return nil
}

func (r *Recorder) Begin(ctx context.Context, path string) (session.Capture, error) {
	if r.BeginErr != nil {
		return nil, r.BeginErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.open > 0 {
		return nil, errors.New("capture already open")
	}
	if len(r.modes) == 0 || r.modes[len(r.modes)-1] != session.ModeRecord {
		return nil, errors.New("audio is not in record mode")
	}
	if err := afero.WriteFile(r.FS, path, nil, 0o644); err != nil {
		return nil, err
	}

	samples := r.DefaultSamples
	if r.begun < len(r.Takes) {
		samples = r.Takes[r.begun]
	}
	r.begun++
	r.open++
	return &Capture{owner: r, path: path, samples: samples}, nil
}

// Mode последний выставленный режим
func (r *Recorder) Mode() session.AudioMode {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.modes) == 0 {
		return session.ModePlayback
	}
	return r.modes[len(r.modes)-1]
}

func (r *Recorder) Modes() []session.AudioMode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]session.AudioMode(nil), r.modes...)
}

// Begun сколько захватов было открыто
func (r *Recorder) Begun() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.begun
}

// Open сколько захватов открыто сейчас
func (r *Recorder) Open() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.open
}

func (r *Recorder) Discarded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.discarded...)
}

// Capture фейковый захват
type Capture struct {
	owner   *Recorder
	path    string
	samples int
	closed  bool
}

func (c *Capture) Path() string { return c.path }

func (c *Capture) Stop() error {
	r := c.owner
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	r.open--

	switch {
	case c.samples == Missing:
		return r.FS.Remove(c.path)
	case c.samples == HeaderOnly:
		w, err := audio.CreateWAV(r.FS, c.path, audio.DefaultFormat)
		if err != nil {
			return err
		}
		return w.Close()
	case c.samples <= 0:
		return nil
	}

	w, err := audio.CreateWAV(r.FS, c.path, audio.DefaultFormat)
	if err != nil {
		return err
	}
	if err := w.Write(make([]int16, c.samples)); err != nil {
		return err
	}
	return w.Close()
}

func (c *Capture) Discard() error {
	if err := c.Stop(); err != nil {
		return err
	}
	r := c.owner
	r.mu.Lock()
	r.discarded = append(r.discarded, c.path)
	r.mu.Unlock()
	if err := r.FS.Remove(c.path); err != nil && !errors.Is(err, afero.ErrFileNotFound) {
		return err
	}
	return nil
}

// Submission одна попытка отправки
type Submission struct {
	Questions  []string
	Recordings []session.Recording
}

// Submitter отвечает ошибкой первые FailTimes вызовов, затем Result
type Submitter struct {
	Result    *session.Result
	Err       error
	FailTimes int

	mu    sync.Mutex
	calls []Submission
}

func (s *Submitter) Submit(ctx context.Context, questions []string, recordings []session.Recording) (*session.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, Submission{
		Questions:  append([]string(nil), questions...),
		Recordings: append([]session.Recording(nil), recordings...),
	})
	if len(s.calls) <= s.FailTimes {
		if s.Err != nil {
			return nil, s.Err
		}
		return nil, fmt.Errorf("server returned 500")
	}
	if s.Result != nil {
		return s.Result, nil
	}
	reviews := make([]session.Review, len(questions))
	for i, q := range questions {
		reviews[i] = session.Review{Question: q, Answer: fmt.Sprintf("answer %d", i+1), Feedback: "ok"}
	}
	return &session.Result{Reviews: reviews, QuestionCount: len(questions)}, nil
}

func (s *Submitter) Calls() []Submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Submission(nil), s.calls...)
}

// Router запоминает переданные результаты
type Router struct {
	mu    sync.Mutex
	shown []*session.Result
}

func (r *Router) ShowResults(id string, result *session.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shown = append(r.shown, result)
}

func (r *Router) Shown() []*session.Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*session.Result(nil), r.shown...)
}
