package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Load загружает каталог из YAML файла
func Load(filename string) (*Catalog, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла %s: %w", filename, err)
	}
	return Parse(data)
}

// LoadDefault возвращает встроенный каталог
func LoadDefault() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Parse разбирает и проверяет YAML каталога
func Parse(data []byte) (*Catalog, error) {
	var catalog Catalog
	err := yaml.Unmarshal(data, &catalog)
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга YAML: %w", err)
	}

	// Валидация каталога
	err = validateConfig(&catalog)
	if err != nil {
		return nil, fmt.Errorf("ошибка валидации конфигурации: %w", err)
	}

	return &catalog, nil
}

// validateConfig проверяет корректность каталога
func validateConfig(c *Catalog) error {
	if c.Practice.QuestionCount <= 0 {
		return fmt.Errorf("question_count должно быть больше 0")
	}

	if len(c.Topics) == 0 {
		return fmt.Errorf("нужна хотя бы одна тема")
	}

	seen := make(map[string]bool)
	for i, topic := range c.Topics {
		if topic.Name == "" {
			return fmt.Errorf("тема %d должна иметь name", i+1)
		}
		if seen[topic.Name] {
			return fmt.Errorf("тема %q повторяется", topic.Name)
		}
		seen[topic.Name] = true

		if len(topic.SubTopics) == 0 {
			return fmt.Errorf("тема %q должна иметь sub_topics", topic.Name)
		}
		for j, sub := range topic.SubTopics {
			if sub.Name == "" {
				return fmt.Errorf("подтема %d темы %q должна иметь name", j+1, topic.Name)
			}
			if len(sub.Specific) == 0 {
				return fmt.Errorf("подтема %q должна иметь specific", sub.Name)
			}
		}
	}

	if len(c.Difficulties) == 0 {
		return fmt.Errorf("difficulties не может быть пустым")
	}

	if len(c.Companies) == 0 || len(c.Roles) == 0 || len(c.QuestionTypes) == 0 {
		return fmt.Errorf("companies, roles и question_types обязательны")
	}

	// Набор по умолчанию нужен офлайн серверу
	hasDefault := false
	for i, set := range c.QuestionBank {
		if set.Key == "" {
			return fmt.Errorf("набор вопросов %d должен иметь key", i+1)
		}
		if len(set.Questions) == 0 {
			return fmt.Errorf("набор вопросов %q пуст", set.Key)
		}
		if set.Key == DefaultQuestionSet {
			hasDefault = true
		}
	}
	if !hasDefault {
		return fmt.Errorf("question_bank должен содержать набор %q", DefaultQuestionSet)
	}

	return nil
}
