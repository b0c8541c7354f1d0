package audio

import (
	"context"
	"math"
	"testing"

	"interview-practice/internal/session"

	"github.com/spf13/afero"
)

func TestInspectMissingFile(t *testing.T) {
	in := NewInspector(afero.NewMemMapFs())
	info, err := in.Inspect("/rec/missing.wav")
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if info.Exists {
		t.Errorf("Exists = true for missing file")
	}
}

func TestInspectEmptyFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/rec/empty.wav", nil, 0o644); err != nil {
		t.Fatal(err)
	}
	info, err := NewInspector(fs).Inspect("/rec/empty.wav")
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if !info.Exists || info.Size != 0 {
		t.Errorf("got %+v, want existing zero-byte file", info)
	}
}

func TestInspectNonWAV(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/rec/a.m4a", []byte("not really audio"), 0o644); err != nil {
		t.Fatal(err)
	}
	info, err := NewInspector(fs).Inspect("/rec/a.m4a")
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if info.Size != 16 || info.Duration != 0 {
		t.Errorf("got %+v", info)
	}
}

func TestWAVFileRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	w, err := CreateWAV(fs, "/rec/answer.wav", DefaultFormat)
	if err != nil {
		t.Fatalf("CreateWAV: %v", err)
	}
	samples := make([]int16, 1600)
	for i := range samples {
		samples[i] = int16(1000 * math.Sin(float64(i)/8))
	}
	for i := 0; i < 10; i++ {
		if err := w.Write(samples); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if got := w.Frames(); got != 16000 {
		t.Errorf("Frames = %d, want 16000", got)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	info, err := NewInspector(fs).Inspect("/rec/answer.wav")
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if !info.Exists {
		t.Fatal("file does not exist after Close")
	}
	if info.Size < 32000 {
		t.Errorf("Size = %d, want at least 32000 bytes of PCM", info.Size)
	}
}

func TestInspectHeaderOnlyWAV(t *testing.T) {
	fs := afero.NewMemMapFs()
	w, err := CreateWAV(fs, "/rec/silent.wav", DefaultFormat)
	if err != nil {
		t.Fatalf("CreateWAV: %v", err)
	}
	if err := w.Write(nil); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	info, err := NewInspector(fs).Inspect("/rec/silent.wav")
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if !info.Exists || info.Size == 0 {
		t.Fatalf("got %+v, want a header on disk", info)
	}
	if !info.NoAudio || info.HasAudio() {
		t.Errorf("header-only WAV reported as audio: %+v", info)
	}
}

func TestInspectWAVWithSamplesHasAudio(t *testing.T) {
	fs := afero.NewMemMapFs()
	w, err := CreateWAV(fs, "/rec/short.wav", DefaultFormat)
	if err != nil {
		t.Fatalf("CreateWAV: %v", err)
	}
	if err := w.Write(make([]int16, 160)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	info, err := NewInspector(fs).Inspect("/rec/short.wav")
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if !info.HasAudio() {
		t.Errorf("got %+v, want audio", info)
	}
}

func TestCreateWAVRejectsBadFormat(t *testing.T) {
	if _, err := CreateWAV(afero.NewMemMapFs(), "/x.wav", Format{}); err == nil {
		t.Error("expected error for zero format")
	}
}

func TestModeSwitch(t *testing.T) {
	m := NewModeSwitch()
	if m.Mode() != session.ModePlayback {
		t.Fatal("new switch should start in playback")
	}
	ctx := context.Background()
	if err := m.Set(ctx, session.ModeRecord); err != nil {
		t.Fatal(err)
	}
	if m.Mode() != session.ModeRecord {
		t.Errorf("mode = %s, want record", m.Mode())
	}
	if err := m.Set(ctx, session.ModeRecord); err != nil {
		t.Errorf("repeated Set: %v", err)
	}
	if err := m.Set(ctx, session.ModePlayback); err != nil {
		t.Fatal(err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := m.Set(cancelled, session.ModeRecord); err == nil {
		t.Error("Set with cancelled context should fail")
	}
	if m.Mode() != session.ModePlayback {
		t.Errorf("mode changed despite cancelled context")
	}
}

func TestRMS(t *testing.T) {
	if got := RMS(nil); got != 0 {
		t.Errorf("RMS(nil) = %v", got)
	}
	if got := RMS([]int16{0, 0, 0}); got != 0 {
		t.Errorf("RMS(silence) = %v", got)
	}
	full := RMS([]int16{math.MaxInt16, -math.MaxInt16})
	if math.Abs(full-1) > 1e-9 {
		t.Errorf("RMS(full scale) = %v, want 1", full)
	}

	var m Meter
	m.Observe([]int16{math.MaxInt16})
	if m.Level() < 0.99 {
		t.Errorf("Level = %v", m.Level())
	}
	m.Reset()
	if m.Level() != 0 {
		t.Errorf("Level after Reset = %v", m.Level())
	}
}
