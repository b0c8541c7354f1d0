package tui

import "interview-practice/internal/session"

// BeganMsg первый вопрос озвучен
type BeganMsg struct{ Err error }

// StartedMsg результат начала записи
type StartedMsg struct{ Err error }

// StoppedMsg результат остановки записи
type StoppedMsg struct{ Err error }

// JumpedMsg результат перехода к вопросу
type JumpedMsg struct {
	Index int
	Err   error
}

// SubmittedMsg результат отправки ответов
type SubmittedMsg struct {
	Result *session.Result
	Err    error
}

// AbandonedMsg сессия прервана, программа завершается
type AbandonedMsg struct{ Err error }

// LevelTickMsg обновление индикатора громкости
type LevelTickMsg struct{}
