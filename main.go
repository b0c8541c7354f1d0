package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"interview-practice/internal/audio"
	"interview-practice/internal/audio/mic"
	"interview-practice/internal/cli"
	"interview-practice/internal/config"
	"interview-practice/internal/session"

	"github.com/joho/godotenv"
)

func main() {
	// .env необязателен, переменные окружения имеют приоритет
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Ошибка загрузки .env файла: %v", err)
	}

	cfg := config.LoadAppConfig()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(cli.ExitError)
	}
	if !cfg.Debug {
		log.SetOutput(io.Discard)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := cli.NewEnv(ctx, cfg)
	env.NewRecorder = func(meter *audio.Meter) (session.Recorder, io.Closer) {
		format := audio.Format{SampleRate: cfg.Audio.SampleRate, Channels: cfg.Audio.Channels}
		rec := mic.NewRecorder(env.FS, format, audio.NewModeSwitch(), meter)
		return rec, rec
	}

	code := cli.Run(env, os.Args[1:])
	stop()
	os.Exit(code)
}
