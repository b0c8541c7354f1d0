package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"interview-practice/internal/audio"
	"interview-practice/internal/session"
	"interview-practice/internal/testutil"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
)

type fixture struct {
	rec      *testutil.Recorder
	prompter *testutil.Prompter
	sub      *testutil.Submitter
	sess     *session.Session
}

func newFixture(t *testing.T, questions []string, takes ...int) *fixture {
	t.Helper()
	fs := afero.NewMemMapFs()
	f := &fixture{
		rec:      testutil.NewRecorder(fs, takes...),
		prompter: &testutil.Prompter{},
		sub:      &testutil.Submitter{},
	}
	s, err := session.New(session.Config{
		Questions: questions,
		Dir:       "/rec",
		Prompter:  f.prompter,
		Recorder:  f.rec,
		Inspector: audio.NewInspector(fs),
		Submitter: f.sub,
	})
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	f.sess = s
	return f
}

// start создает модель и выполняет Init
func (f *fixture) start(t *testing.T) Model {
	t.Helper()
	m := New(f.sess, Options{Title: "Go", Context: context.Background()})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = updated.(Model)
	return run(t, m, m.Init())
}

// run синхронно выполняет команды до их исчерпания
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for i := 0; cmd != nil; i++ {
		if i > 20 {
			t.Fatal("command chain did not settle")
		}
		msg := cmd()
		if _, ok := msg.(tea.QuitMsg); ok {
			return m
		}
		var updated tea.Model
		updated, cmd = m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func press(t *testing.T, m Model, key tea.KeyMsg) Model {
	t.Helper()
	updated, cmd := m.Update(key)
	return run(t, updated.(Model), cmd)
}

var (
	space = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
)

func runes(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestInitSpeaksFirstQuestion(t *testing.T) {
	f := newFixture(t, []string{"Q1", "Q2"})
	m := f.start(t)

	if got := f.prompter.Spoken(); len(got) != 1 || got[0] != "Q1" {
		t.Errorf("spoken = %v, want [Q1]", got)
	}
	if m.busy {
		t.Error("model still busy after Init")
	}
	if !strings.Contains(m.View(), "Q1") {
		t.Errorf("View() does not show the first question:\n%s", m.View())
	}
}

func TestViewBeforeWindowSize(t *testing.T) {
	f := newFixture(t, []string{"Q1"})
	m := New(f.sess, Options{})
	if got := m.View(); got != "Initializing..." {
		t.Errorf("View() = %q, want Initializing...", got)
	}
}

func TestFullInterviewShowsResults(t *testing.T) {
	f := newFixture(t, []string{"Q1", "Q2"})
	m := f.start(t)

	for i := 0; i < 2; i++ {
		m = press(t, m, space)
		if m.snap.State != session.StateRecording {
			t.Fatalf("answer %d: state = %s, want recording", i, m.snap.State)
		}
		m = press(t, m, space)
	}

	if m.Screen() != ScreenResults {
		t.Fatalf("screen = %v, want results (state %s)", m.Screen(), m.snap.State)
	}
	if m.Result() == nil || len(m.Result().Reviews) != 2 {
		t.Fatalf("Result() = %+v, want 2 reviews", m.Result())
	}
	if len(f.sub.Calls()) != 1 {
		t.Errorf("submit calls = %d, want 1", len(f.sub.Calls()))
	}
	view := m.View()
	if !strings.Contains(view, "Interview Results") || !strings.Contains(view, "answer 1") {
		t.Errorf("results view missing content:\n%s", view)
	}
}

func TestEmptyRecordingShowsAlert(t *testing.T) {
	f := newFixture(t, []string{"Q1", "Q2"}, 0)
	m := f.start(t)

	m = press(t, m, space)
	m = press(t, m, space)

	if m.Alert() == nil || m.Alert().Title != "Empty Recording" {
		t.Fatalf("alert = %+v, want Empty Recording", m.Alert())
	}
	if m.snap.CurrentIndex != 0 || m.snap.State != session.StateIdle {
		t.Errorf("index/state = %d/%s, want 0/idle", m.snap.CurrentIndex, m.snap.State)
	}

	// первое нажатие только закрывает уведомление
	m = press(t, m, space)
	if m.Alert() != nil {
		t.Error("alert not dismissed")
	}
	if m.snap.State != session.StateIdle {
		t.Errorf("dismissing key started recording: state = %s", m.snap.State)
	}

	m = press(t, m, space)
	m = press(t, m, space)
	if m.snap.CurrentIndex != 1 {
		t.Errorf("CurrentIndex = %d after retake, want 1", m.snap.CurrentIndex)
	}
}

func TestPermissionDeniedAlert(t *testing.T) {
	f := newFixture(t, []string{"Q1"})
	f.rec.Deny = errors.New("denied")
	m := f.start(t)

	m = press(t, m, space)
	if m.Alert() == nil || m.Alert().Title != "Permission Denied" {
		t.Fatalf("alert = %+v, want Permission Denied", m.Alert())
	}
	if m.snap.State != session.StateIdle {
		t.Errorf("state = %s, want idle", m.snap.State)
	}
}

func TestUploadFailureRetry(t *testing.T) {
	f := newFixture(t, []string{"Q1"})
	f.sub.FailTimes = 1
	m := f.start(t)

	m = press(t, m, space)
	m = press(t, m, space)

	if m.snap.State != session.StateFailed {
		t.Fatalf("state = %s, want failed", m.snap.State)
	}
	if m.Alert() == nil || m.Alert().Title != "Upload Failed" {
		t.Fatalf("alert = %+v, want Upload Failed", m.Alert())
	}
	if !strings.Contains(m.Alert().Message, "server returned 500") {
		t.Errorf("alert message = %q", m.Alert().Message)
	}

	m = press(t, m, runes('r'))
	if m.Screen() != ScreenResults {
		t.Fatalf("screen after retry = %v, state %s", m.Screen(), m.snap.State)
	}
	if len(f.sub.Calls()) != 2 {
		t.Errorf("submit calls = %d, want 2", len(f.sub.Calls()))
	}
}

func TestQuestionListJump(t *testing.T) {
	f := newFixture(t, []string{"Q1", "Q2", "Q3"})
	m := f.start(t)
	m = press(t, m, space)
	m = press(t, m, space)

	m = press(t, m, tab)
	if !m.showList || m.listCursor != 1 {
		t.Fatalf("showList/cursor = %v/%d, want true/1", m.showList, m.listCursor)
	}

	m = press(t, m, runes('k'))
	m = press(t, m, enter)
	if m.snap.ViewIndex != 0 || m.snap.CurrentIndex != 1 {
		t.Errorf("view/current = %d/%d, want 0/1", m.snap.ViewIndex, m.snap.CurrentIndex)
	}
	spoken := f.prompter.Spoken()
	if spoken[len(spoken)-1] != "Q1" {
		t.Errorf("last spoken = %q, want Q1", spoken[len(spoken)-1])
	}

	// вопрос, до которого не дошли, недоступен
	m = press(t, m, runes('j'))
	m = press(t, m, runes('j'))
	m = press(t, m, enter)
	if m.Alert() == nil {
		t.Error("jump to unreached question did not raise an alert")
	}
	if m.snap.ViewIndex != 0 {
		t.Errorf("ViewIndex = %d, want 0", m.snap.ViewIndex)
	}
}

func TestSubtitlesToggle(t *testing.T) {
	f := newFixture(t, []string{"What is a goroutine?"})
	m := f.start(t)

	m = press(t, m, runes('s'))
	if strings.Contains(m.View(), "goroutine") {
		t.Error("question visible with subtitles off")
	}
	m = press(t, m, runes('s'))
	if !strings.Contains(m.View(), "goroutine") {
		t.Error("question hidden with subtitles on")
	}
}

func TestQuitWhileRecordingAbandons(t *testing.T) {
	f := newFixture(t, []string{"Q1", "Q2"})
	m := f.start(t)
	m = press(t, m, space)

	m = press(t, m, runes('q'))
	if !m.Abandoned() {
		t.Fatal("Abandoned() = false after quit")
	}
	if f.sess.State() != session.StateAbandoned {
		t.Errorf("session state = %s, want abandoned", f.sess.State())
	}
	if len(f.rec.Discarded()) != 1 {
		t.Errorf("discarded = %v, want one capture", f.rec.Discarded())
	}
	if f.rec.Mode() != session.ModePlayback {
		t.Errorf("audio mode = %s, want playback", f.rec.Mode())
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("one two three four", 9)
	want := []string{"one two", "three", "four"}
	if len(got) != len(want) {
		t.Fatalf("wrapText = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}
