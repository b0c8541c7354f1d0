package cli

import (
	"fmt"
)

func runResume(cmd *Command) func(env *Env, args []string) int {
	return func(env *Env, args []string) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, env.Stdout)
			return ExitOK
		}
		flags := newFlagSet(cmd, env)
		if code, ok := parseFlags(cmd, env, flags, args, 1); !ok {
			return code
		}
		path := flags.Arg(0)
		if _, err := env.FS.Stat(path); err != nil {
			fmt.Fprintf(env.Stderr, "Resume not found: %v\n", err)
			return ExitError
		}

		c, err := env.connect()
		if err != nil {
			fmt.Fprintf(env.Stderr, "Error: %v\n", err)
			return ExitError
		}
		defer c.Close()

		if _, err := c.account.Require(); err != nil {
			fmt.Fprintf(env.Stderr, "%v. Run \"%s login\" first.\n", err, programName)
			return ExitError
		}

		res, err := c.client.UploadResume(env.ctx(), path)
		if err != nil {
			fmt.Fprintf(env.Stderr, "Upload failed: %v\n", err)
			return ExitError
		}
		msg := res.Message
		if msg == "" {
			msg = "Resume uploaded"
		}
		fmt.Fprintln(env.Stdout, msg)
		return ExitOK
	}
}
