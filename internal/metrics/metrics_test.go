package metrics

import (
	"strings"
	"sync"
	"testing"
)

func TestCounters(t *testing.T) {
	m := NewMetrics()
	m.IncrementSessionsStarted()
	m.IncrementRecordingsCaptured()
	m.IncrementRecordingsCaptured()
	m.IncrementEmptyCaptures()
	m.IncrementSubmission(false)
	m.IncrementSubmission(true)

	snap := m.GetSnapshot()
	if snap.SessionsStarted != 1 {
		t.Errorf("SessionsStarted = %d, want 1", snap.SessionsStarted)
	}
	if snap.RecordingsCaptured != 2 {
		t.Errorf("RecordingsCaptured = %d, want 2", snap.RecordingsCaptured)
	}
	if snap.SubmissionsAttempted != 2 || snap.SubmissionsSucceeded != 1 {
		t.Errorf("submissions = %d/%d, want 1/2", snap.SubmissionsSucceeded, snap.SubmissionsAttempted)
	}
	if !strings.Contains(snap.String(), "1/2 succeeded") {
		t.Errorf("String() = %q", snap.String())
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.IncrementSessionsStarted()
	m.IncrementSubmission(true)
	if snap := m.GetSnapshot(); snap.SessionsStarted != 0 {
		t.Errorf("nil metrics snapshot = %+v", snap)
	}
}

func TestConcurrentIncrements(t *testing.T) {
	m := NewMetrics()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.IncrementPermissionDenials()
		}()
	}
	wg.Wait()
	if got := m.GetSnapshot().PermissionDenials; got != 50 {
		t.Errorf("PermissionDenials = %d, want 50", got)
	}
}
