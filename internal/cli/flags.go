package cli

import (
	"errors"
	"flag"
	"fmt"
)

// newFlagSet flag set, пишущий ошибки разбора в stderr окружения
func newFlagSet(cmd *Command, env *Env) *flag.FlagSet {
	flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
	flags.SetOutput(env.Stderr)
	return flags
}

// parseFlags разбирает аргументы и проверяет число позиционных.
// Второе значение false означает, что команда должна вернуть code.
func parseFlags(cmd *Command, env *Env, flags *flag.FlagSet, args []string, positional int) (code int, ok bool) {
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printCommandUsage(cmd, env.Stdout)
			return ExitOK, false
		}
		printCommandUsage(cmd, env.Stderr)
		return ExitUsage, false
	}
	if flags.NArg() != positional {
		if flags.NArg() < positional {
			fmt.Fprintln(env.Stderr, "Missing arguments")
		} else {
			fmt.Fprintln(env.Stderr, "Too many arguments")
		}
		printCommandUsage(cmd, env.Stderr)
		return ExitUsage, false
	}
	return ExitOK, true
}
