// Package speech озвучивает вопросы системным синтезатором речи.
package speech

import (
	"context"
	"log"
	"math"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"
)

// базовая скорость say и espeak в словах в минуту
const baseWordsPerMinute = 175

type runner func(ctx context.Context, name string, args ...string) error

func execRunner(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// CommandPrompter запускает синтезатор в фоне. Новый вопрос прерывает
// предыдущий, если тот еще звучит.
type CommandPrompter struct {
	command string
	rate    float64
	run     runner

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewCommandPrompter(command string, rate float64) *CommandPrompter {
	return &CommandPrompter{command: command, rate: rate, run: execRunner}
}

// Args аргументы командной строки для text
func (p *CommandPrompter) Args(text string) []string {
	wpm := strconv.Itoa(int(math.Round(baseWordsPerMinute * p.rate)))
	switch filepath.Base(p.command) {
	case "say":
		return []string{"-r", wpm, text}
	case "espeak", "espeak-ng":
		return []string{"-s", wpm, text}
	default:
		return []string{text}
	}
}

func (p *CommandPrompter) Speak(text string) {
	if text == "" {
		return
	}
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.wg.Add(1)
	p.mu.Unlock()

	args := p.Args(text)
	go func() {
		defer p.wg.Done()
		defer cancel()
		if err := p.run(ctx, p.command, args...); err != nil && ctx.Err() == nil {
			log.Printf("speech: %s: %v", p.command, err)
		}
	}()
}

// Stop прерывает текущую речь и ждет завершения процесса
func (p *CommandPrompter) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()
	p.wg.Wait()
}

// Silent ничего не озвучивает
type Silent struct{}

func (Silent) Speak(string) {}

func (Silent) Stop() {}
