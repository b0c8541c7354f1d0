package audio

import (
	"context"
	"log"
	"sync"

	"interview-practice/internal/session"
)

// ModeSwitch хранит текущий режим маршрутизации звука.
// Речь обрывается сессией до перехода в режим записи.
type ModeSwitch struct {
	mu   sync.Mutex
	mode session.AudioMode
}

func NewModeSwitch() *ModeSwitch {
	return &ModeSwitch{mode: session.ModePlayback}
}

func (m *ModeSwitch) Set(ctx context.Context, mode session.AudioMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mode == mode {
		return nil
	}
	log.Printf("audio mode: %s -> %s", m.mode, mode)
	m.mode = mode
	return nil
}

func (m *ModeSwitch) Mode() session.AudioMode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}
