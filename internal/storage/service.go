package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

const resultsDir = "results"

// Store история интервью в виде JSON файлов results/interview_<id>.json
type Store struct {
	fs  afero.Fs
	dir string
}

func NewStore(fs afero.Fs, dataDir string) *Store {
	return &Store{fs: fs, dir: filepath.Join(dataDir, resultsDir)}
}

func (s *Store) path(interviewID string) string {
	return filepath.Join(s.dir, fmt.Sprintf("interview_%s.json", interviewID))
}

// SaveResult сохраняет результат интервью в JSON файл
func (s *Store) SaveResult(result *InterviewResult) error {
	if result.InterviewID == "" || strings.ContainsAny(result.InterviewID, `/\`) {
		return fmt.Errorf("invalid interview id %q", result.InterviewID)
	}

	// Создаем директорию если её нет
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("ошибка создания директории %s: %w", s.dir, err)
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("ошибка сериализации результата: %w", err)
	}

	path := s.path(result.InterviewID)
	if err := afero.WriteFile(s.fs, path, jsonData, 0o644); err != nil {
		return fmt.Errorf("ошибка записи файла %s: %w", path, err)
	}
	return nil
}

// LoadResult загружает результат интервью из JSON файла
func (s *Store) LoadResult(interviewID string) (*InterviewResult, error) {
	path := s.path(interviewID)
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла %s: %w", path, err)
	}

	var result InterviewResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("ошибка десериализации JSON: %w", err)
	}
	return &result, nil
}

// ListResults возвращает ID сохраненных интервью, новые первыми
func (s *Store) ListResults() ([]string, error) {
	entries, err := afero.ReadDir(s.fs, s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения директории %s: %w", s.dir, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ModTime().After(entries[j].ModTime())
	})

	results := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" || !strings.HasPrefix(name, "interview_") {
			continue
		}
		results = append(results, strings.TrimSuffix(strings.TrimPrefix(name, "interview_"), ".json"))
	}
	return results, nil
}

// ListForUser загружает результаты одного пользователя, пропуская
// поврежденные файлы
func (s *Store) ListForUser(userID string) ([]*InterviewResult, error) {
	ids, err := s.ListResults()
	if err != nil {
		return nil, err
	}
	var out []*InterviewResult
	for _, id := range ids {
		r, err := s.LoadResult(id)
		if err != nil {
			continue
		}
		if userID == "" || r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time().After(out[j].Time())
	})
	return out, nil
}
