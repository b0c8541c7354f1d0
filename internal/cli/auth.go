package cli

import (
	"bufio"
	"fmt"

	"interview-practice/internal/api"
)

func runLogin(cmd *Command) func(env *Env, args []string) int {
	return authCommand(cmd, false)
}

func runRegister(cmd *Command) func(env *Env, args []string) int {
	return authCommand(cmd, true)
}

// authCommand вход и регистрация отличаются только вызовом сервера
func authCommand(cmd *Command, register bool) func(env *Env, args []string) int {
	return func(env *Env, args []string) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, env.Stdout)
			return ExitOK
		}

		flags := newFlagSet(cmd, env)
		username := flags.String("username", "", "Account name")
		email := flags.String("email", "", "Account email")
		if code, ok := parseFlags(cmd, env, flags, args, 0); !ok {
			return code
		}

		reader := bufio.NewReader(env.Stdin)
		creds := api.Credentials{Username: *username, Email: *email}
		var err error
		if creds.Username == "" {
			if creds.Username, err = promptString(reader, env.Stdout, "Username"); err != nil {
				fmt.Fprintln(env.Stderr, err)
				return ExitUsage
			}
		}
		if creds.Email == "" {
			if creds.Email, err = promptString(reader, env.Stdout, "Email"); err != nil {
				fmt.Fprintln(env.Stderr, err)
				return ExitUsage
			}
		}
		if creds.Password, err = promptPassword(env.Stdin, reader, env.Stdout); err != nil {
			fmt.Fprintln(env.Stderr, err)
			return ExitUsage
		}

		c, err := env.connect()
		if err != nil {
			fmt.Fprintf(env.Stderr, "Error: %v\n", err)
			return ExitError
		}
		defer c.Close()

		action := "Logged in"
		call := c.account.Login
		if register {
			action = "Registered"
			call = c.account.Register
		}
		user, err := call(env.ctx(), creds)
		if err != nil {
			fmt.Fprintf(env.Stderr, "Error: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(env.Stdout, "%s as %s <%s>\n", action, user.Username, user.Email)
		return ExitOK
	}
}

func runLogout(cmd *Command) func(env *Env, args []string) int {
	return func(env *Env, args []string) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, env.Stdout)
			return ExitOK
		}
		if code, ok := parseFlags(cmd, env, newFlagSet(cmd, env), args, 0); !ok {
			return code
		}

		c, err := env.connect()
		if err != nil {
			fmt.Fprintf(env.Stderr, "Error: %v\n", err)
			return ExitError
		}
		defer c.Close()

		if err := c.account.Logout(env.ctx()); err != nil {
			fmt.Fprintf(env.Stderr, "Error: %v\n", err)
			return ExitError
		}
		fmt.Fprintln(env.Stdout, "Logged out")
		return ExitOK
	}
}

func runWhoami(cmd *Command) func(env *Env, args []string) int {
	return func(env *Env, args []string) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, env.Stdout)
			return ExitOK
		}
		if code, ok := parseFlags(cmd, env, newFlagSet(cmd, env), args, 0); !ok {
			return code
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
		fmt.Fprintf(env.Stdout, "%s <%s> (id %s)\n", user.Username, user.Email, user.ID)
		return ExitOK
	}
}
