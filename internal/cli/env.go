package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"interview-practice/internal/account"
	"interview-practice/internal/api"
	"interview-practice/internal/audio"
	"interview-practice/internal/config"
	"interview-practice/internal/session"

	"github.com/spf13/afero"
)

const stateFile = "state.sqlite"

// Env окружение команды: потоки ввода-вывода, конфигурация и файловая система
type Env struct {
	Context context.Context
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Config  *config.AppConfig
	FS      afero.Fs
	// NewRecorder открывает микрофон, nil отключает practice
	NewRecorder func(meter *audio.Meter) (session.Recorder, io.Closer)
}

// NewEnv окружение процесса с конфигурацией из переменных среды
func NewEnv(ctx context.Context, cfg *config.AppConfig) *Env {
	return &Env{
		Context: ctx,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Config:  cfg,
		FS:      afero.NewOsFs(),
	}
}

func (e *Env) ctx() context.Context {
	if e.Context == nil {
		return context.Background()
	}
	return e.Context
}

// catalog каталог интервью из CATALOG_PATH или встроенный
func (e *Env) catalog() (*config.Catalog, error) {
	if e.Config.Catalog != "" {
		return config.Load(e.Config.Catalog)
	}
	return config.LoadDefault()
}

// conn клиент сервера и сохраненный пользователь
type conn struct {
	client  *api.Client
	account *account.Session
	store   *account.Store
}

func (c *conn) Close() error {
	return c.store.Close()
}

// connect открывает хранилище аккаунта и восстанавливает вход.
// Устаревший вход очищается с предупреждением, это не ошибка.
func (e *Env) connect() (*conn, error) {
	if err := e.FS.MkdirAll(e.Config.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	store, err := account.Open(filepath.Join(e.Config.DataDir, stateFile))
	if err != nil {
		return nil, err
	}

	client := api.NewClient(api.Options{
		BaseURL:        e.Config.API.BaseURL,
		RequestTimeout: e.Config.API.RequestTimeout,
		FS:             e.FS,
	})
	sess := account.NewSession(store, client)
	if err := sess.Load(e.ctx()); err != nil {
		if !errors.Is(err, account.ErrSessionExpired) {
			store.Close()
			return nil, err
		}
		fmt.Fprintln(e.Stderr, account.ErrSessionExpired)
	}
	return &conn{client: client, account: sess, store: store}, nil
}
