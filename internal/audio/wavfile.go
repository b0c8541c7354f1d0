package audio

import (
	"fmt"

	"github.com/spf13/afero"
	wave "github.com/zenwerk/go-wave"
)

// Format параметры PCM записи
type Format struct {
	SampleRate int
	Channels   int
}

// DefaultFormat 16 кГц моно, как ожидает сервер транскрипции
var DefaultFormat = Format{SampleRate: 16000, Channels: 1}

// WAVFile 16-битный WAV файл, открытый на запись.
// Данные попадают на диск при Close.
type WAVFile struct {
	path   string
	writer *wave.Writer
	frames int64
}

// CreateWAV создает файл path в fs и готовит writer
func CreateWAV(fs afero.Fs, path string, format Format) (*WAVFile, error) {
	if format.SampleRate <= 0 || format.Channels <= 0 {
		return nil, fmt.Errorf("invalid audio format %+v", format)
	}

	f, err := fs.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}

	w, err := wave.NewWriter(wave.WriterParam{
		Out:           f,
		Channel:       format.Channels,
		SampleRate:    format.SampleRate,
		BitsPerSample: 16,
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("wav writer for %s: %w", path, err)
	}

	return &WAVFile{path: path, writer: w}, nil
}

func (w *WAVFile) Path() string {
	return w.path
}

// Frames количество записанных сэмплов
func (w *WAVFile) Frames() int64 {
	return w.frames
}

func (w *WAVFile) Write(samples []int16) error {
	if len(samples) == 0 {
		return nil
	}
	if _, err := w.writer.WriteSample16(samples); err != nil {
		return fmt.Errorf("write samples: %w", err)
	}
	w.frames += int64(len(samples))
	return nil
}

// Close записывает заголовок и данные и закрывает файл
func (w *WAVFile) Close() error {
	if err := w.writer.Close(); err != nil {
		return fmt.Errorf("close %s: %w", w.path, err)
	}
	return nil
}
