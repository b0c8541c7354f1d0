package config

import "strings"

// Catalog представляет каталог вариантов практики
type Catalog struct {
	Practice      PracticeConfig `yaml:"practice_config"`
	Topics        []Topic        `yaml:"topics"`
	Difficulties  []string       `yaml:"difficulties"`
	Companies     []string       `yaml:"companies"`
	Roles         []string       `yaml:"roles"`
	QuestionTypes []string       `yaml:"question_types"`
	QuestionBank  []QuestionSet  `yaml:"question_bank"`
}

// PracticeConfig содержит общие настройки тренировки
type PracticeConfig struct {
	QuestionCount int `yaml:"question_count"`
}

// Topic главная тема с подтемами
type Topic struct {
	Name      string     `yaml:"name"`
	SubTopics []SubTopic `yaml:"sub_topics"`
}

// SubTopic подтема с конкретными темами
type SubTopic struct {
	Name     string   `yaml:"name"`
	Specific []string `yaml:"specific"`
}

// QuestionSet вопросы для офлайн сервера. Key совпадает с конкретной
// темой, типом вопросов или равен "default".
type QuestionSet struct {
	Key       string   `yaml:"key"`
	Questions []string `yaml:"questions"`
}

// DefaultQuestionSet ключ набора, используемого когда ничего не подошло
const DefaultQuestionSet = "default"

// Методы для удобного доступа к каталогу
func (c *Catalog) GetQuestionCount() int {
	return c.Practice.QuestionCount
}

func (c *Catalog) FindTopic(name string) (Topic, bool) {
	for _, t := range c.Topics {
		if t.Name == name {
			return t, true
		}
	}
	return Topic{}, false
}

func (t Topic) FindSubTopic(name string) (SubTopic, bool) {
	for _, s := range t.SubTopics {
		if s.Name == name {
			return s, true
		}
	}
	return SubTopic{}, false
}

func (s SubTopic) HasSpecific(name string) bool {
	return contains(s.Specific, name)
}

func (c *Catalog) HasDifficulty(name string) bool {
	return contains(c.Difficulties, name)
}

func (c *Catalog) HasCompany(name string) bool {
	return contains(c.Companies, name)
}

func (c *Catalog) HasRole(name string) bool {
	return contains(c.Roles, name)
}

func (c *Catalog) HasQuestionType(name string) bool {
	return contains(c.QuestionTypes, name)
}

// QuestionsFor возвращает первый набор, ключ которого совпал с одним из
// keys без учета регистра, иначе набор по умолчанию
func (c *Catalog) QuestionsFor(keys ...string) []string {
	for _, key := range keys {
		if key == "" {
			continue
		}
		for _, set := range c.QuestionBank {
			if strings.EqualFold(set.Key, key) {
				return set.Questions
			}
		}
	}
	for _, set := range c.QuestionBank {
		if set.Key == DefaultQuestionSet {
			return set.Questions
		}
	}
	return nil
}

func contains(list []string, name string) bool {
	for _, v := range list {
		if v == name {
			return true
		}
	}
	return false
}
