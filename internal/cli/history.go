package cli

import (
	"fmt"
	"io"
	"strings"

	"interview-practice/internal/storage"
)

func (e *Env) results() *storage.Store {
	return storage.NewStore(e.FS, e.Config.DataDir)
}

func runHistory(cmd *Command) func(env *Env, args []string) int {
	return func(env *Env, args []string) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, env.Stdout)
			return ExitOK
		}
		flags := newFlagSet(cmd, env)
		all := flags.Bool("all", false, "Include interviews of every account on this machine")
		if code, ok := parseFlags(cmd, env, flags, args, 0); !ok {
			return code
		}

		userID := ""
		if !*all {
			c, err := env.connect()
			if err != nil {
				fmt.Fprintf(env.Stderr, "Error: %v\n", err)
				return ExitError
			}
			userID = c.account.UserID()
			c.Close()
		}

		results, err := env.results().ListForUser(userID)
		if err != nil {
			fmt.Fprintf(env.Stderr, "Error: %v\n", err)
			return ExitError
		}
		if len(results) == 0 {
			fmt.Fprintln(env.Stdout, "No saved interviews")
			return ExitOK
		}
		for _, r := range results {
			rating := "   -"
			if r.Rating != nil {
				rating = fmt.Sprintf("%4.1f", *r.Rating)
			}
			fmt.Fprintf(env.Stdout, "%s  %s  %s  %s\n",
				r.InterviewID, r.Time().Local().Format("2006-01-02 15:04"), rating, r.Request.Title())
		}
		return ExitOK
	}
}

func runShow(cmd *Command) func(env *Env, args []string) int {
	return func(env *Env, args []string) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, env.Stdout)
			return ExitOK
		}
		flags := newFlagSet(cmd, env)
		if code, ok := parseFlags(cmd, env, flags, args, 1); !ok {
			return code
		}

		result, err := env.results().LoadResult(flags.Arg(0))
		if err != nil {
			fmt.Fprintf(env.Stderr, "Error: %v\n", err)
			return ExitError
		}
		printResult(env.Stdout, result)
		return ExitOK
	}
}

// printResult текстовая версия экрана результатов
func printResult(w io.Writer, r *storage.InterviewResult) {
	fmt.Fprintf(w, "%s\n", r.Request.Title())
	fmt.Fprintf(w, "Interview %s, %s\n", r.InterviewID, r.Time().Local().Format("2006-01-02 15:04"))
	if r.Rating != nil {
		fmt.Fprintf(w, "Overall rating: %.1f/10\n", *r.Rating)
	}
	for i, review := range r.Reviews {
		fmt.Fprintf(w, "\n%d. %s\n", i+1, review.Question)
		if review.Rating != nil {
			fmt.Fprintf(w, "   Rating: %.1f\n", *review.Rating)
		}
		writeField(w, "Your answer", review.Answer)
		writeField(w, "Feedback", review.Comment())
		writeField(w, "Ideal answer", review.Improvement())
	}
}

func writeField(w io.Writer, label, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	fmt.Fprintf(w, "   %s: %s\n", label, strings.ReplaceAll(text, "\n", "\n      "))
}
