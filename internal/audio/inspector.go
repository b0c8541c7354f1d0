package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"interview-practice/internal/session"

	"github.com/go-audio/wav"
	"github.com/spf13/afero"
)

// wavHeaderSize размер канонического RIFF заголовка без данных
const wavHeaderSize = 44

// Inspector читает размер и длительность записей
type Inspector struct {
	fs afero.Fs
}

func NewInspector(fs afero.Fs) *Inspector {
	return &Inspector{fs: fs}
}

// Inspect возвращает Exists=false без ошибки, если файла нет.
// Длительность определяется только для корректных WAV файлов.
// WAV без сэмплов помечается NoAudio.
func (i *Inspector) Inspect(path string) (session.FileInfo, error) {
	st, err := i.fs.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return session.FileInfo{}, nil
		}
		return session.FileInfo{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if st.IsDir() {
		return session.FileInfo{}, fmt.Errorf("%s is a directory", path)
	}

	info := session.FileInfo{Exists: true, Size: st.Size()}
	if info.Size == 0 || !strings.EqualFold(filepath.Ext(path), ".wav") {
		return info, nil
	}

	if info.Size <= wavHeaderSize {
		info.NoAudio = true
		return info, nil
	}

	f, err := i.fs.Open(path)
	if err != nil {
		return info, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return info, nil
	}
	if dur, err := d.Duration(); err == nil {
		info.Duration = dur
	}
	if err := d.FwdToPCM(); err == nil && d.PCMLen() == 0 {
		info.NoAudio = true
		info.Duration = 0
	}
	return info, nil
}
