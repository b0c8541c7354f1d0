package session

import (
	"context"
	"encoding/json"
	"strings"
	"time"
)

// State представляет состояние сессии интервью
type State string

const (
	StateIdle       State = "idle"
	StateRecording  State = "recording"
	StateSubmitting State = "submitting"
	StateComplete   State = "complete"
	StateFailed     State = "failed"
	StateAbandoned  State = "abandoned"
)

// AudioMode режим маршрутизации звука устройства
type AudioMode int

const (
	// ModePlayback только воспроизведение, микрофон закрыт
	ModePlayback AudioMode = iota
	// ModeRecord запись без вывода на громкоговоритель
	ModeRecord
)

func (m AudioMode) String() string {
	switch m {
	case ModePlayback:
		return "playback"
	case ModeRecord:
		return "record"
	default:
		return "unknown"
	}
}

// Recording записанный ответ на один вопрос
type Recording struct {
	Index    int           `json:"index"`
	Path     string        `json:"path"`
	Size     int64         `json:"size"`
	Duration time.Duration `json:"duration"`
}

// Valid сообщает, пригодна ли запись к отправке
func (r Recording) Valid() bool {
	return r.Path != "" && r.Size > 0
}

// FileInfo результат проверки файла записи на диске
type FileInfo struct {
	Exists   bool
	Size     int64
	Duration time.Duration
	// NoAudio файл есть, но звуковых данных в нем нет (только заголовок)
	NoAudio bool
}

// HasAudio запись пригодна: файл существует и содержит звук
func (f FileInfo) HasAudio() bool {
	return f.Exists && f.Size > 0 && !f.NoAudio
}

// Review отзыв сервера по одному вопросу
type Review struct {
	Question    string   `json:"question"`
	Answer      string   `json:"answer"`
	Feedback    string   `json:"feedback,omitempty"`
	Analysis    string   `json:"analysis,omitempty"`
	IdealAnswer string   `json:"idealAnswer,omitempty"`
	Suggestions Text     `json:"suggestions,omitempty"`
	Audio       string   `json:"audio,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
}

// Comment возвращает основной текст отзыва
func (r Review) Comment() string {
	if r.Feedback != "" {
		return r.Feedback
	}
	return r.Analysis
}

// Improvement возвращает рекомендуемый ответ или советы
func (r Review) Improvement() string {
	if r.IdealAnswer != "" {
		return r.IdealAnswer
	}
	return string(r.Suggestions)
}

// Text строка, которая в JSON может прийти строкой или массивом строк
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Text(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*t = Text(strings.Join(list, "\n"))
	return nil
}

// Result структурированный ответ сервера после отправки интервью
type Result struct {
	Reviews       []Review `json:"reviews"`
	QuestionCount int      `json:"questionCount"`
	Rating        *float64 `json:"rating,omitempty"`
}

// Snapshot копия состояния сессии для отображения
type Snapshot struct {
	ID              string
	State           State
	Questions       []string
	CurrentIndex    int
	ViewIndex       int
	Recordings      map[int]Recording
	RecordingActive bool
	Result          *Result
	Err             error
}

// QuestionCount количество вопросов в сессии
func (s Snapshot) QuestionCount() int {
	return len(s.Questions)
}

// Answered сообщает, есть ли запись для вопроса
func (s Snapshot) Answered(index int) bool {
	_, ok := s.Recordings[index]
	return ok
}

// Prompter озвучивает вопрос. Вызов не блокирует запись.
type Prompter interface {
	Speak(text string)
	// Stop обрывает текущую речь до включения микрофона
	Stop()
}

// Capture открытый захват микрофона в файл
type Capture interface {
	Path() string
	// Stop останавливает запись и освобождает файл
	Stop() error
	// Discard останавливает запись и удаляет файл
	Discard() error
}

// Recorder устройство записи звука
type Recorder interface {
	RequestPermission(ctx context.Context) error
	SetMode(ctx context.Context, mode AudioMode) error
	Begin(ctx context.Context, path string) (Capture, error)
}

// Inspector читает метаданные файла записи
type Inspector interface {
	Inspect(path string) (FileInfo, error)
}

// Submitter отправляет ответы на сервер
type Submitter interface {
	Submit(ctx context.Context, questions []string, recordings []Recording) (*Result, error)
}

// Router получает результат после успешной отправки
type Router interface {
	ShowResults(id string, result *Result)
}
