// Package mic записывает ответы с микрофона через PortAudio.
package mic

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"interview-practice/internal/audio"
	"interview-practice/internal/session"

	"github.com/gordonklaus/portaudio"
	"github.com/spf13/afero"
)

const framesPerBuffer = 1600

// Recorder реализует session.Recorder поверх устройства ввода по умолчанию
type Recorder struct {
	fs     afero.Fs
	format audio.Format
	modes  *audio.ModeSwitch
	meter  *audio.Meter

	mu          sync.Mutex
	initialized bool
	active      *capture
}

func NewRecorder(fs afero.Fs, format audio.Format, modes *audio.ModeSwitch, meter *audio.Meter) *Recorder {
	if modes == nil {
		modes = audio.NewModeSwitch()
	}
	if meter == nil {
		meter = &audio.Meter{}
	}
	return &Recorder{fs: fs, format: format, modes: modes, meter: meter}
}

// RequestPermission инициализирует PortAudio и проверяет, что есть
// устройство ввода. Ошибка означает отказ в доступе к микрофону.
func (r *Recorder) RequestPermission(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.initialized {
		if err := portaudio.Initialize(); err != nil {
			return fmt.Errorf("initialize audio: %w", err)
		}
		r.initialized = true
	}

	dev, err := portaudio.DefaultInputDevice()
	if err != nil {
		return fmt.Errorf("default input device: %w", err)
	}
	if dev == nil || dev.MaxInputChannels < r.format.Channels {
		return errors.New("no usable input device")
	}
	return nil
}

func (r *Recorder) SetMode(ctx context.Context, mode session.AudioMode) error {
	return r.modes.Set(ctx, mode)
}

// Begin открывает поток и пишет его в WAV файл path до Stop
func (r *Recorder) Begin(ctx context.Context, path string) (session.Capture, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.modes.Mode() != session.ModeRecord {
		return nil, errors.New("audio is not in record mode")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.initialized {
		return nil, errors.New("audio is not initialized")
	}
	if r.active != nil {
		return nil, fmt.Errorf("capture %s is still open", r.active.file.Path())
	}

	file, err := audio.CreateWAV(r.fs, path, r.format)
	if err != nil {
		return nil, err
	}

	in := make([]int16, framesPerBuffer*r.format.Channels)
	stream, err := portaudio.OpenDefaultStream(r.format.Channels, 0, float64(r.format.SampleRate), framesPerBuffer, in)
	if err != nil {
		file.Close()
		r.fs.Remove(path)
		return nil, fmt.Errorf("open input stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		file.Close()
		r.fs.Remove(path)
		return nil, fmt.Errorf("start input stream: %w", err)
	}

	c := &capture{
		owner:  r,
		file:   file,
		stream: stream,
		buf:    in,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	r.active = c
	r.meter.Reset()
	go c.run()
	return c, nil
}

// Close освобождает PortAudio
func (r *Recorder) Close() error {
	r.mu.Lock()
	active := r.active
	r.mu.Unlock()
	if active != nil {
		if err := active.Discard(); err != nil {
			log.Printf("discard capture on close: %v", err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.initialized {
		return nil
	}
	r.initialized = false
	return portaudio.Terminate()
}

func (r *Recorder) release(c *capture) {
	r.mu.Lock()
	if r.active == c {
		r.active = nil
	}
	r.mu.Unlock()
	r.meter.Reset()
}

// inputStream часть *portaudio.Stream, нужная захвату
type inputStream interface {
	Read() error
	Stop() error
	Close() error
}

type capture struct {
	owner  *Recorder
	file   *audio.WAVFile
	stream inputStream
	buf    []int16

	stop chan struct{}
	done chan struct{}
	once sync.Once
	err  error
}

func (c *capture) run() {
	defer close(c.done)
	for {
		select {
		case <-c.stop:
			return
		default:
		}
		if err := c.stream.Read(); err != nil {
			// переполнение входа не прерывает запись
			if errors.Is(err, portaudio.InputOverflowed) {
				continue
			}
			c.err = fmt.Errorf("read input stream: %w", err)
			return
		}
		c.owner.meter.Observe(c.buf)
		if err := c.file.Write(c.buf); err != nil {
			c.err = err
			return
		}
	}
}

func (c *capture) Path() string {
	return c.file.Path()
}

func (c *capture) Stop() error {
	var err error
	c.once.Do(func() {
		close(c.stop)
		<-c.done

		errs := []error{c.err}
		if e := c.stream.Stop(); e != nil {
			errs = append(errs, fmt.Errorf("stop input stream: %w", e))
		}
		if e := c.stream.Close(); e != nil {
			errs = append(errs, fmt.Errorf("close input stream: %w", e))
		}
		errs = append(errs, c.file.Close())
		c.owner.release(c)
		err = errors.Join(errs...)
	})
	return err
}

func (c *capture) Discard() error {
	stopErr := c.Stop()
	if err := c.owner.fs.Remove(c.file.Path()); err != nil && !errors.Is(err, afero.ErrFileNotFound) {
		return errors.Join(stopErr, fmt.Errorf("remove %s: %w", c.file.Path(), err))
	}
	return stopErr
}
