// Package tui экран интервью и результатов на bubbletea.
package tui

import (
	"context"
	"errors"
	"time"

	"interview-practice/internal/audio"
	"interview-practice/internal/session"

	tea "github.com/charmbracelet/bubbletea"
)

// Screen текущий экран
type Screen int

const (
	ScreenInterview Screen = iota
	ScreenResults
)

const levelInterval = 100 * time.Millisecond

// Options параметры экрана
type Options struct {
	Title string
	// Meter уровень микрофона, nil отключает индикатор
	Meter *audio.Meter
	// Context базовый контекст для операций устройства и сети
	Context context.Context
}

// Alert блокирующее уведомление до следующего нажатия клавиши
type Alert struct {
	Title   string
	Message string
}

// Model корневая модель экрана интервью
type Model struct {
	sess  *session.Session
	meter *audio.Meter
	ctx   context.Context
	title string

	screen Screen
	snap   session.Snapshot
	busy   bool
	level  float64

	// отправка
	uploading bool
	cancel    context.CancelFunc

	// список вопросов
	showList   bool
	listCursor int
	subtitles  bool

	alert *Alert

	// результаты
	result         *session.Result
	selectedReview int

	width     int
	height    int
	abandoned bool
}

func New(sess *session.Session, opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	return Model{
		sess:      sess,
		meter:     opts.Meter,
		ctx:       ctx,
		title:     opts.Title,
		snap:      sess.Snapshot(),
		subtitles: true,
		busy:      true,
	}
}

func (m Model) Init() tea.Cmd {
	return beginCmd(m.ctx, m.sess)
}

// Result результат после успешной отправки
func (m Model) Result() *session.Result {
	return m.result
}

// Abandoned пользователь вышел, не дождавшись результатов
func (m Model) Abandoned() bool {
	return m.abandoned
}

func (m Model) Screen() Screen {
	return m.screen
}

func (m Model) Alert() *Alert {
	return m.alert
}

func beginCmd(ctx context.Context, s *session.Session) tea.Cmd {
	return func() tea.Msg {
		return BeganMsg{Err: s.Begin(ctx)}
	}
}

func startCmd(ctx context.Context, s *session.Session) tea.Cmd {
	return func() tea.Msg {
		return StartedMsg{Err: s.Start(ctx)}
	}
}

func stopCmd(ctx context.Context, s *session.Session) tea.Cmd {
	return func() tea.Msg {
		return StoppedMsg{Err: s.Stop(ctx)}
	}
}

func jumpCmd(s *session.Session, index int) tea.Cmd {
	return func() tea.Msg {
		return JumpedMsg{Index: index, Err: s.Jump(index)}
	}
}

func submitCmd(ctx context.Context, s *session.Session) tea.Cmd {
	return func() tea.Msg {
		result, err := s.Submit(ctx)
		return SubmittedMsg{Result: result, Err: err}
	}
}

func abandonCmd(ctx context.Context, s *session.Session) tea.Cmd {
	return func() tea.Msg {
		return AbandonedMsg{Err: s.Abandon(ctx)}
	}
}

func levelTickCmd() tea.Cmd {
	return tea.Tick(levelInterval, func(time.Time) tea.Msg {
		return LevelTickMsg{}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case BeganMsg:
		m.busy = false
		m.refresh()
		m.setError(msg.Err)
		return m, nil

	case StartedMsg:
		m.busy = false
		m.refresh()
		m.setError(msg.Err)
		if msg.Err == nil && m.meter != nil {
			return m, levelTickCmd()
		}
		return m, nil

	case StoppedMsg:
		m.busy = false
		m.level = 0
		m.refresh()
		m.setError(msg.Err)
		if m.snap.State == session.StateSubmitting && msg.Err == nil {
			return m.beginUpload()
		}
		return m, nil

	case JumpedMsg:
		m.busy = false
		m.refresh()
		m.setError(msg.Err)
		return m, nil

	case SubmittedMsg:
		m.busy = false
		m.uploading = false
		if m.cancel != nil {
			m.cancel()
			m.cancel = nil
		}
		m.refresh()
		if msg.Err != nil {
			m.setError(msg.Err)
			return m, nil
		}
		m.result = msg.Result
		m.screen = ScreenResults
		m.alert = nil
		return m, nil

	case AbandonedMsg:
		m.abandoned = true
		m.refresh()
		return m, tea.Quit

	case LevelTickMsg:
		if m.meter == nil || m.snap.State != session.StateRecording {
			m.level = 0
			return m, nil
		}
		m.level = m.meter.Level()
		return m, levelTickCmd()
	}

	return m, nil
}

func (m Model) beginUpload() (tea.Model, tea.Cmd) {
	ctx, cancel := context.WithCancel(m.ctx)
	m.cancel = cancel
	m.uploading = true
	m.busy = true
	m.alert = nil
	return m, submitCmd(ctx, m.sess)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// любое нажатие закрывает уведомление
	if m.alert != nil && key != KeyCtrlC {
		m.alert = nil
		if key != KeyRetry && key != KeyQuit {
			return m, nil
		}
	}

	if m.screen == ScreenResults {
		return m.handleResultsKey(key)
	}

	switch key {
	case KeyQuit, KeyQuitUpper, KeyCtrlC:
		if m.cancel != nil {
			m.cancel()
		}
		return m, abandonCmd(m.ctx, m.sess)

	case KeySpace:
		if m.busy {
			return m, nil
		}
		switch m.snap.State {
		case session.StateIdle:
			m.busy = true
			return m, startCmd(m.ctx, m.sess)
		case session.StateRecording:
			m.busy = true
			return m, stopCmd(m.ctx, m.sess)
		}
		return m, nil

	case KeyTab:
		m.showList = !m.showList
		m.listCursor = m.snap.ViewIndex
		return m, nil

	case KeyJ, KeyDown:
		if m.showList && m.listCursor < m.snap.QuestionCount()-1 {
			m.listCursor++
		}
		return m, nil

	case KeyK, KeyUp:
		if m.showList && m.listCursor > 0 {
			m.listCursor--
		}
		return m, nil

	case KeyEnter:
		if !m.showList || m.busy {
			return m, nil
		}
		m.busy = true
		return m, jumpCmd(m.sess, m.listCursor)

	case KeySubtitles:
		m.subtitles = !m.subtitles
		return m, nil

	case KeyRetry:
		if m.busy {
			return m, nil
		}
		if m.snap.State == session.StateFailed || m.snap.State == session.StateSubmitting {
			return m.beginUpload()
		}
		return m, nil

	case KeyEsc:
		if m.uploading && m.cancel != nil {
			m.cancel()
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleResultsKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case KeyQuit, KeyQuitUpper, KeyCtrlC, KeyEsc:
		return m, tea.Quit
	case KeyJ, KeyDown:
		if m.result != nil && m.selectedReview < len(m.result.Reviews)-1 {
			m.selectedReview++
		}
	case KeyK, KeyUp:
		if m.selectedReview > 0 {
			m.selectedReview--
		}
	}
	return m, nil
}

func (m *Model) refresh() {
	m.snap = m.sess.Snapshot()
}

// setError превращает ошибку перехода в уведомление для пользователя
func (m *Model) setError(err error) {
	if err == nil {
		return
	}
	var valErr *session.ValidationError
	switch {
	case errors.Is(err, session.ErrPermissionDenied):
		m.alert = &Alert{Title: "Permission Denied", Message: "Please grant microphone access to record audio."}
	case errors.As(err, &valErr):
		m.alert = &Alert{Title: "Invalid Recording", Message: err.Error() + ". Press r to retry the upload."}
	case errors.Is(err, session.ErrEmptyCapture):
		m.alert = &Alert{Title: "Empty Recording", Message: err.Error()}
	case errors.Is(err, context.Canceled):
		m.alert = &Alert{Title: "Upload Cancelled", Message: "Press r to upload again."}
	case errors.Is(err, session.ErrSubmission):
		m.alert = &Alert{Title: "Upload Failed", Message: err.Error() + "\nPress r to retry."}
	default:
		m.alert = &Alert{Title: "Error", Message: err.Error()}
	}
}
