// Package cli команды интерфейса командной строки.
package cli

import (
	"fmt"
	"io"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

const programName = "interview-practice"

type Command struct {
	Name    string
	Summary string
	Usage   []string
	Run     func(env *Env, args []string) int
}

// Run выполняет команду args[0] и возвращает код выхода
func Run(env *Env, args []string) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitUsage
	}
	if isHelpArg(args[0]) {
		printUsage(env.Stdout)
		return ExitOK
	}

	cmd := findCommand(args[0])
	if cmd == nil {
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}

	return cmd.Run(env, args[1:])
}

func findCommand(name string) *Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-h", "--help":
			return true
		}
	}
	return false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s <command> [options]\n", programName)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-9s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintf(w, "\nUse \"%s <command> --help\" for more information.\n", programName)
}

func printCommandUsage(cmd *Command, w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, line := range cmd.Usage {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if cmd.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", cmd.Summary)
	}
}

func command(name, summary string, usage []string, runner func(cmd *Command) func(env *Env, args []string) int) *Command {
	cmd := &Command{
		Name:    name,
		Summary: summary,
		Usage:   usage,
	}
	cmd.Run = runner(cmd)
	return cmd
}

var commands = []*Command{
	command("practice", "Choose an interview and answer its questions", []string{
		programName + " practice [--mode topic|company] [--main <topic>] [--sub <topic>] [--specific <topic>] [--difficulty <level>]",
		programName + " practice --mode company [--company <name>] [--role <role>] [--type <question type>] [--stats] [--mute]",
	}, runPractice),
	command("login", "Log in and remember the account", []string{
		programName + " login [--username <name>] [--email <email>]",
	}, runLogin),
	command("register", "Create an account", []string{
		programName + " register [--username <name>] [--email <email>]",
	}, runRegister),
	command("logout", "Forget the stored account", []string{
		programName + " logout",
	}, runLogout),
	command("whoami", "Show the logged in account", []string{
		programName + " whoami",
	}, runWhoami),
	command("history", "List saved interview results", []string{
		programName + " history [--all]",
	}, runHistory),
	command("show", "Print the reviews of a saved interview", []string{
		programName + " show <interview-id>",
	}, runShow),
	command("resume", "Upload a resume (png, jpg or pdf)", []string{
		programName + " resume <file>",
	}, runResume),
	command("serve", "Run the offline mock backend", []string{
		programName + " serve [--addr <host:port>]",
	}, runServe),
}
