//go:build cucumber

package session_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	"github.com/spf13/afero"

	"interview-practice/internal/audio"
	"interview-practice/internal/session"
	"interview-practice/internal/testutil"
)

// TestSessionScenarios runs the recording session feature scenarios.
func TestSessionScenarios(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "interview-session",
		ScenarioInitializer: InitializeSessionScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{filepath.Join("testdata", "session.feature")},
			Strict:   true,
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeSessionScenario wires steps for session scenarios.
func InitializeSessionScenario(ctx *godog.ScenarioContext) {
	state := &sessionScenarioState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.Step(`^an interview with questions "([^"]*)"$`, state.givenQuestions)
	ctx.Step(`^the second capture will be empty$`, state.givenSecondEmpty)
	ctx.Step(`^the server fails the first upload$`, state.givenServerFailsOnce)
	ctx.Step(`^I record a valid answer$`, state.whenRecordValid)
	ctx.Step(`^I record an answer$`, state.whenRecord)
	ctx.Step(`^I start recording$`, state.whenStart)
	ctx.Step(`^I submit$`, state.whenSubmit)
	ctx.Step(`^I abandon the session$`, state.whenAbandon)
	ctx.Step(`^the session is "([^"]*)"$`, state.thenState)
	ctx.Step(`^the current index is (\d+)$`, state.thenIndex)
	ctx.Step(`^recordings exist for indices "([^"]*)"$`, state.thenRecordings)
	ctx.Step(`^the upload had (\d+) answer parts and (\d+) questions$`, state.thenUpload)
	ctx.Step(`^an empty recording alert is shown$`, state.thenEmptyAlert)
	ctx.Step(`^(\d+) uploads sent the same files$`, state.thenSameFiles)
	ctx.Step(`^(\d+) captures were made$`, state.thenCaptures)
	ctx.Step(`^no capture is open$`, state.thenNoCapture)
	ctx.Step(`^the in-progress capture was deleted$`, state.thenDeleted)
}

type sessionScenarioState struct {
	fs      afero.Fs
	rec     *testutil.Recorder
	sub     *testutil.Submitter
	s       *session.Session
	lastErr error
}

// reset clears scenario state.
func (st *sessionScenarioState) reset() {
	st.fs = afero.NewMemMapFs()
	st.rec = testutil.NewRecorder(st.fs)
	st.sub = &testutil.Submitter{}
	st.s = nil
	st.lastErr = nil
}

func (st *sessionScenarioState) givenQuestions(list string) error {
	s, err := session.New(session.Config{
		Questions: strings.Split(list, ","),
		Dir:       "/rec",
		Prompter:  &testutil.Prompter{},
		Recorder:  st.rec,
		Inspector: audio.NewInspector(st.fs),
		Submitter: st.sub,
	})
	if err != nil {
		return err
	}
	st.s = s
	return s.Begin(context.Background())
}

func (st *sessionScenarioState) givenSecondEmpty() error {
	st.rec.Takes = []int{1600, 0}
	return nil
}

func (st *sessionScenarioState) givenServerFailsOnce() error {
	st.sub.FailTimes = 1
	return nil
}

func (st *sessionScenarioState) whenRecord() error {
	ctx := context.Background()
	if err := st.s.Start(ctx); err != nil {
		return err
	}
	st.lastErr = st.s.Stop(ctx)
	return nil
}

func (st *sessionScenarioState) whenRecordValid() error {
	if err := st.whenRecord(); err != nil {
		return err
	}
	return st.lastErr
}

func (st *sessionScenarioState) whenStart() error {
	return st.s.Start(context.Background())
}

func (st *sessionScenarioState) whenSubmit() error {
	_, st.lastErr = st.s.Submit(context.Background())
	return nil
}

func (st *sessionScenarioState) whenAbandon() error {
	return st.s.Abandon(context.Background())
}

func (st *sessionScenarioState) thenState(want string) error {
	if got := st.s.State(); string(got) != want {
		return fmt.Errorf("state = %s, want %s (last error %v)", got, want, st.lastErr)
	}
	return nil
}

func (st *sessionScenarioState) thenIndex(want int) error {
	if got := st.s.Snapshot().CurrentIndex; got != want {
		return fmt.Errorf("current index = %d, want %d", got, want)
	}
	return nil
}

func (st *sessionScenarioState) thenRecordings(list string) error {
	snap := st.s.Snapshot()
	want := strings.Split(list, ",")
	if len(snap.Recordings) != len(want) {
		return fmt.Errorf("%d recordings, want %d", len(snap.Recordings), len(want))
	}
	for _, w := range want {
		i, err := strconv.Atoi(w)
		if err != nil {
			return err
		}
		if !snap.Answered(i) {
			return fmt.Errorf("no recording for index %d", i)
		}
	}
	return nil
}

func (st *sessionScenarioState) thenUpload(parts, questions int) error {
	calls := st.sub.Calls()
	if len(calls) == 0 {
		return errors.New("nothing was uploaded")
	}
	last := calls[len(calls)-1]
	if len(last.Recordings) != parts || len(last.Questions) != questions {
		return fmt.Errorf("upload had %d parts and %d questions", len(last.Recordings), len(last.Questions))
	}
	return nil
}

func (st *sessionScenarioState) thenEmptyAlert() error {
	if !errors.Is(st.lastErr, session.ErrEmptyCapture) {
		return fmt.Errorf("last error = %v, want empty capture", st.lastErr)
	}
	return nil
}

func (st *sessionScenarioState) thenSameFiles(n int) error {
	calls := st.sub.Calls()
	if len(calls) != n {
		return fmt.Errorf("%d uploads, want %d", len(calls), n)
	}
	for i := 1; i < len(calls); i++ {
		for j, r := range calls[i].Recordings {
			if r.Path != calls[0].Recordings[j].Path {
				return fmt.Errorf("upload %d sent %s for answer %d", i+1, r.Path, j)
			}
		}
	}
	return nil
}

func (st *sessionScenarioState) thenCaptures(n int) error {
	if got := st.rec.Begun(); got != n {
		return fmt.Errorf("%d captures, want %d", got, n)
	}
	return nil
}

func (st *sessionScenarioState) thenNoCapture() error {
	if open := st.rec.Open(); open != 0 {
		return fmt.Errorf("%d captures still open", open)
	}
	return nil
}

func (st *sessionScenarioState) thenDeleted() error {
	discarded := st.rec.Discarded()
	if len(discarded) != 1 {
		return fmt.Errorf("discarded %v", discarded)
	}
	if ok, _ := afero.Exists(st.fs, discarded[0]); ok {
		return fmt.Errorf("%s still exists", discarded[0])
	}
	return nil
}
