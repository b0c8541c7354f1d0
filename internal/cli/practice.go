package cli

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"sync"

	"interview-practice/internal/audio"
	"interview-practice/internal/config"
	"interview-practice/internal/metrics"
	"interview-practice/internal/selection"
	"interview-practice/internal/session"
	"interview-practice/internal/speech"
	"interview-practice/internal/storage"
	"interview-practice/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
)

const logFileName = "practice.log"

// runProgram запускает терминальный интерфейс, тесты подменяют его
var runProgram = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m, tea.WithAltScreen()).Run()
}

type presets struct {
	mode, main, sub, specific, difficulty string
	company, role, questionType           string
}

func runPractice(cmd *Command) func(env *Env, args []string) int {
	return func(env *Env, args []string) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, env.Stdout)
			return ExitOK
		}

		var p presets
		flags := newFlagSet(cmd, env)
		flags.StringVar(&p.mode, "mode", "", "Interview type: topic or company")
		flags.StringVar(&p.main, "main", "", "Main topic")
		flags.StringVar(&p.sub, "sub", "", "Sub topic")
		flags.StringVar(&p.specific, "specific", "", "Specific topic")
		flags.StringVar(&p.difficulty, "difficulty", "", "Easy, Moderate or Hard")
		flags.StringVar(&p.company, "company", "", "Company")
		flags.StringVar(&p.role, "role", "", "Role")
		flags.StringVar(&p.questionType, "type", "", "Question type")
		stats := flags.Bool("stats", false, "Print session counters on exit")
		mute := flags.Bool("mute", false, "Do not read questions aloud")
		if code, ok := parseFlags(cmd, env, flags, args, 0); !ok {
			return code
		}

		if env.NewRecorder == nil {
			fmt.Fprintln(env.Stderr, "Error: no microphone recorder is available")
			return ExitError
		}

		catalog, err := env.catalog()
		if err != nil {
			fmt.Fprintf(env.Stderr, "Error: %v\n", err)
			return ExitError
		}

		sel := selection.New(catalog)
		if err := applyPresets(sel, p); err != nil {
			fmt.Fprintf(env.Stderr, "Error: %v\n", err)
			return ExitUsage
		}

		c, err := env.connect()
		if err != nil {
			fmt.Fprintf(env.Stderr, "Error: %v\n", err)
			return ExitError
		}
		defer c.Close()

		user, err := c.account.Require()
		if err != nil {
			fmt.Fprintf(env.Stderr, "%v. Run \"%s login\" first.\n", err, programName)
			return ExitError
		}

		req, err := chooseInterview(sel, bufio.NewReader(env.Stdin), env.Stdout)
		if err != nil {
			fmt.Fprintf(env.Stderr, "Error: %v\n", err)
			return ExitUsage
		}

		fmt.Fprintf(env.Stdout, "⏳ Preparing questions for %s...\n", req.Title())
		questions, err := c.client.GenerateQuestions(env.ctx(), req)
		if err != nil || len(questions) == 0 {
			questions = fallbackQuestions(catalog, req)
			if len(questions) == 0 {
				fmt.Fprintf(env.Stderr, "Error: no questions available: %v\n", err)
				return ExitError
			}
			fmt.Fprintf(env.Stderr, "⚠️ Question service unavailable (%v), using built-in questions\n", err)
		}

		speechCfg := env.Config.Speech
		if *mute {
			speechCfg.Command = "none"
		}
		return env.interview(c, user.ID, req, questions, speechCfg, *stats)
	}
}

// applyPresets применяет флаги в порядке экрана выбора
func applyPresets(sel *selection.Selection, p presets) error {
	if p.mode == "" {
		if p.main != "" || p.sub != "" || p.specific != "" || p.difficulty != "" {
			p.mode = string(selection.ModeTopic)
		} else if p.company != "" || p.role != "" || p.questionType != "" {
			p.mode = string(selection.ModeCompany)
		}
	}
	if p.mode == "" {
		return nil
	}
	if err := sel.SetMode(selection.Mode(strings.ToLower(p.mode))); err != nil {
		return err
	}

	steps := []struct {
		value  string
		choose func(string) error
	}{
		{p.main, sel.ChooseMainTopic},
		{p.sub, sel.ChooseSubTopic},
		{p.specific, sel.ChooseSpecific},
		{p.difficulty, sel.ChooseDifficulty},
		{p.company, sel.ChooseCompany},
		{p.role, sel.ChooseRole},
		{p.questionType, sel.ChooseQuestionType},
	}
	for _, step := range steps {
		if step.value == "" {
			continue
		}
		if err := step.choose(step.value); err != nil {
			return err
		}
	}
	return nil
}

// chooseInterview спрашивает недостающие шаги выбора
func chooseInterview(sel *selection.Selection, reader *bufio.Reader, out io.Writer) (selection.Request, error) {
	for {
		step, options := sel.Next()
		if step == selection.StepDone {
			return sel.Proceed()
		}
		value, err := promptChoice(reader, out, "Choose "+string(step), options)
		if err != nil {
			return selection.Request{}, err
		}
		if err := sel.Choose(value); err != nil {
			return selection.Request{}, err
		}
	}
}

func fallbackQuestions(catalog *config.Catalog, req selection.Request) []string {
	questions := catalog.QuestionsFor(req.Keys()...)
	if req.Count > 0 && len(questions) > req.Count {
		questions = questions[:req.Count]
	}
	return questions
}

// interview проводит одну сессию в терминальном интерфейсе
func (e *Env) interview(c *conn, userID string, req selection.Request, questions []string, speechCfg config.SpeechConfig, stats bool) int {
	cfg := e.Config

	dir, err := afero.TempDir(e.FS, "", "interview-")
	if err != nil {
		fmt.Fprintf(e.Stderr, "Error: %v\n", err)
		return ExitError
	}
	defer e.FS.RemoveAll(dir)

	// вывод log в терминал ломает экран, пишем в файл
	prevLog := log.Writer()
	if f, err := tea.LogToFile(filepath.Join(cfg.DataDir, logFileName), "practice"); err == nil {
		defer func() {
			log.SetOutput(prevLog)
			f.Close()
		}()
	}

	meter := &audio.Meter{}
	recorder, closer := e.NewRecorder(meter)
	defer closer.Close()

	prompter, stopSpeech := newPrompter(speechCfg)
	defer stopSpeech()

	m := metrics.NewMetrics()
	router := &historyRouter{store: e.results(), userID: userID, request: req, questions: questions}
	sess, err := session.New(session.Config{
		Questions:     questions,
		Dir:           dir,
		Extension:     cfg.Audio.Extension,
		Prompter:      prompter,
		Recorder:      recorder,
		Inspector:     audio.NewInspector(e.FS),
		Submitter:     c.client,
		Router:        router,
		Metrics:       m,
		UploadTimeout: cfg.API.UploadTimeout,
	})
	if err != nil {
		fmt.Fprintf(e.Stderr, "Error: %v\n", err)
		return ExitError
	}

	final, err := runProgram(tui.New(sess, tui.Options{Title: req.Title(), Meter: meter, Context: e.ctx()}))
	if err != nil {
		if abandonErr := sess.Abandon(e.ctx()); abandonErr != nil {
			log.Printf("abandon after UI error: %v", abandonErr)
		}
		fmt.Fprintf(e.Stderr, "Error: %v\n", err)
		return ExitError
	}

	code := ExitOK
	saved, saveErr := router.outcome()
	switch {
	case saved != "":
		fmt.Fprintf(e.Stdout, "✅ Interview saved. Review it again with: %s show %s\n", programName, saved)
	case saveErr != nil:
		fmt.Fprintf(e.Stderr, "⚠️ Results were shown but not saved: %v\n", saveErr)
		code = ExitError
	default:
		if fm, ok := final.(tui.Model); !ok || !fm.Abandoned() {
			if err := sess.Abandon(e.ctx()); err != nil {
				log.Printf("abandon: %v", err)
			}
		}
		fmt.Fprintln(e.Stdout, "Interview abandoned")
	}

	if stats {
		fmt.Fprintln(e.Stdout, m.GetSnapshot())
	}
	return code
}

func newPrompter(cfg config.SpeechConfig) (session.Prompter, func()) {
	switch cfg.Command {
	case "", "none":
		return speech.Silent{}, func() {}
	}
	p := speech.NewCommandPrompter(cfg.Command, cfg.Rate)
	return p, p.Stop
}

// historyRouter сохраняет результат сразу после успешной отправки
type historyRouter struct {
	store     *storage.Store
	userID    string
	request   selection.Request
	questions []string

	mu    sync.Mutex
	saved string
	err   error
}

func (r *historyRouter) ShowResults(id string, result *session.Result) {
	rec := storage.NewInterviewResult(id, r.userID, r.request, r.questions, result)
	err := r.store.SaveResult(rec)
	if err != nil {
		log.Printf("save interview %s: %v", id, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.err = err
		return
	}
	r.saved = id
}

func (r *historyRouter) outcome() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saved, r.err
}
