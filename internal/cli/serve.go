package cli

import (
	"context"
	"fmt"

	"interview-practice/internal/config"
	"interview-practice/internal/mockapi"
)

// serveMock запускает mock сервер, тесты подменяют его
var serveMock = func(ctx context.Context, srv *mockapi.Server, cfg config.ServerConfig) error {
	return srv.Run(ctx, cfg)
}

func runServe(cmd *Command) func(env *Env, args []string) int {
	return func(env *Env, args []string) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, env.Stdout)
			return ExitOK
		}
		flags := newFlagSet(cmd, env)
		addr := flags.String("addr", env.Config.Server.Addr, "Address to listen on")
		if code, ok := parseFlags(cmd, env, flags, args, 0); !ok {
			return code
		}
		if *addr == "" {
			fmt.Fprintln(env.Stderr, "Missing --addr")
			return ExitUsage
		}

		catalog, err := env.catalog()
		if err != nil {
			fmt.Fprintf(env.Stderr, "Error: %v\n", err)
			return ExitError
		}

		cfg := env.Config.Server
		cfg.Addr = *addr
		fmt.Fprintf(env.Stdout, "🚀 Mock API on http://%s/api\n", displayAddr(cfg.Addr))
		if err := serveMock(env.ctx(), mockapi.New(catalog), cfg); err != nil {
			fmt.Fprintf(env.Stderr, "Server error: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
