package mic

import (
	"errors"
	"testing"

	"interview-practice/internal/audio"

	"github.com/spf13/afero"
)

type failingStream struct {
	readErr error
	closed  bool
}

func (s *failingStream) Read() error  { return s.readErr }
func (s *failingStream) Stop() error  { return nil }
func (s *failingStream) Close() error { s.closed = true; return nil }

func newTestCapture(t *testing.T, stream inputStream) (*capture, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	rec := NewRecorder(fs, audio.DefaultFormat, nil, nil)
	file, err := audio.CreateWAV(fs, "/rec/answer.wav", audio.DefaultFormat)
	if err != nil {
		t.Fatalf("CreateWAV: %v", err)
	}
	c := &capture{
		owner:  rec,
		file:   file,
		stream: stream,
		buf:    make([]int16, framesPerBuffer),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	rec.active = c
	go c.run()
	return c, fs
}

func TestDiscardReportsStreamError(t *testing.T) {
	unplugged := errors.New("device unplugged")
	stream := &failingStream{readErr: unplugged}
	c, fs := newTestCapture(t, stream)

	err := c.Discard()
	if !errors.Is(err, unplugged) {
		t.Errorf("Discard = %v, want stream error", err)
	}
	if ok, _ := afero.Exists(fs, "/rec/answer.wav"); ok {
		t.Error("discarded file still on disk")
	}
	if !stream.closed {
		t.Error("stream was not closed")
	}
	if c.owner.active != nil {
		t.Error("capture still active after discard")
	}
}

func TestStopIsIdempotent(t *testing.T) {
	c, _ := newTestCapture(t, &failingStream{readErr: errors.New("boom")})
	if err := c.Stop(); err == nil {
		t.Fatal("first Stop should report the read error")
	}
	if err := c.Stop(); err != nil {
		t.Errorf("second Stop = %v, want nil", err)
	}
}
