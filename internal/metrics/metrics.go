package metrics

import (
	"fmt"
	"sync"
	"time"
)

// Metrics считает события сессий интервью. Нулевой указатель допустим:
// все методы на nil ничего не делают.
type Metrics struct {
	mu                   sync.RWMutex
	sessionsStarted      int64
	sessionsCompleted    int64
	sessionsAbandoned    int64
	recordingsCaptured   int64
	emptyCaptures        int64
	permissionDenials    int64
	submissionsAttempted int64
	submissionsSucceeded int64
	lastUpdateTime       time.Time
}

// Snapshot копия счетчиков без блокировки
type Snapshot struct {
	SessionsStarted      int64
	SessionsCompleted    int64
	SessionsAbandoned    int64
	RecordingsCaptured   int64
	EmptyCaptures        int64
	PermissionDenials    int64
	SubmissionsAttempted int64
	SubmissionsSucceeded int64
	LastUpdateTime       time.Time
}

func NewMetrics() *Metrics {
	return &Metrics{
		lastUpdateTime: time.Now(),
	}
}

func (m *Metrics) add(counter *int64) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	*counter++
	m.lastUpdateTime = time.Now()
}

func (m *Metrics) IncrementSessionsStarted() {
	if m == nil {
		return
	}
	m.add(&m.sessionsStarted)
}

func (m *Metrics) IncrementSessionsCompleted() {
	if m == nil {
		return
	}
	m.add(&m.sessionsCompleted)
}

func (m *Metrics) IncrementSessionsAbandoned() {
	if m == nil {
		return
	}
	m.add(&m.sessionsAbandoned)
}

func (m *Metrics) IncrementRecordingsCaptured() {
	if m == nil {
		return
	}
	m.add(&m.recordingsCaptured)
}

func (m *Metrics) IncrementEmptyCaptures() {
	if m == nil {
		return
	}
	m.add(&m.emptyCaptures)
}

func (m *Metrics) IncrementPermissionDenials() {
	if m == nil {
		return
	}
	m.add(&m.permissionDenials)
}

func (m *Metrics) IncrementSubmission(success bool) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submissionsAttempted++
	if success {
		m.submissionsSucceeded++
	}
	m.lastUpdateTime = time.Now()
}

func (m *Metrics) GetSnapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{
		SessionsStarted:      m.sessionsStarted,
		SessionsCompleted:    m.sessionsCompleted,
		SessionsAbandoned:    m.sessionsAbandoned,
		RecordingsCaptured:   m.recordingsCaptured,
		EmptyCaptures:        m.emptyCaptures,
		PermissionDenials:    m.permissionDenials,
		SubmissionsAttempted: m.submissionsAttempted,
		SubmissionsSucceeded: m.submissionsSucceeded,
		LastUpdateTime:       m.lastUpdateTime,
	}
}

// String форматирует снимок для вывода по --stats
func (s Snapshot) String() string {
	return fmt.Sprintf("sessions: %d started, %d completed, %d abandoned\n"+
		"recordings: %d captured, %d empty, %d permission denials\n"+
		"submissions: %d/%d succeeded",
		s.SessionsStarted, s.SessionsCompleted, s.SessionsAbandoned,
		s.RecordingsCaptured, s.EmptyCaptures, s.PermissionDenials,
		s.SubmissionsSucceeded, s.SubmissionsAttempted)
}
