// Package selection выбирает тип интервью по каталогу: тема или компания.
package selection

import (
	"errors"
	"fmt"
	"strings"

	"interview-practice/internal/config"
)

var (
	ErrNoMode        = errors.New("interview type is not selected")
	ErrWrongMode     = errors.New("option does not belong to the selected interview type")
	ErrUnknownOption = errors.New("unknown option")
	ErrOutOfOrder    = errors.New("previous choice is missing")
	ErrIncomplete    = errors.New("selection is incomplete")
)

// Mode тип интервью
type Mode string

const (
	ModeNone    Mode = ""
	ModeTopic   Mode = "topic"
	ModeCompany Mode = "company"
)

// Level глубина сброса выбора
type Level string

const (
	LevelAll  Level = "all"
	LevelMain Level = "main"
	LevelSub  Level = "sub"
)

// Step следующий шаг выбора
type Step string

const (
	StepMode         Step = "mode"
	StepMainTopic    Step = "main topic"
	StepSubTopic     Step = "sub topic"
	StepSpecific     Step = "specific topic"
	StepDifficulty   Step = "difficulty"
	StepCompany      Step = "company"
	StepRole         Step = "role"
	StepQuestionType Step = "question type"
	StepDone         Step = "done"
)

// Request параметры генерации вопросов
type Request struct {
	Mode         Mode   `json:"mode"`
	MainTopic    string `json:"mainTopic,omitempty"`
	SubTopic     string `json:"subTopic,omitempty"`
	Specific     string `json:"specific,omitempty"`
	Difficulty   string `json:"difficulty,omitempty"`
	Company      string `json:"company,omitempty"`
	Role         string `json:"role,omitempty"`
	QuestionType string `json:"questionType,omitempty"`
	Count        int    `json:"count,omitempty"`
}

// Keys ключи для подбора набора вопросов, от частного к общему
func (r Request) Keys() []string {
	if r.Mode == ModeCompany {
		return []string{r.QuestionType, r.Role, r.Company}
	}
	return []string{r.Specific, r.SubTopic, r.MainTopic}
}

// Title короткое описание для заголовков и истории
func (r Request) Title() string {
	switch r.Mode {
	case ModeTopic:
		return fmt.Sprintf("%s / %s / %s (%s)", r.MainTopic, r.SubTopic, r.Specific, r.Difficulty)
	case ModeCompany:
		return fmt.Sprintf("%s %s, %s", r.Company, r.Role, r.QuestionType)
	default:
		return "interview"
	}
}

// Selection состояние экрана выбора
type Selection struct {
	catalog *config.Catalog

	mode         Mode
	mainTopic    string
	subTopic     string
	specific     string
	difficulty   string
	company      string
	role         string
	questionType string
}

func New(catalog *config.Catalog) *Selection {
	return &Selection{catalog: catalog}
}

func (s *Selection) Mode() Mode {
	return s.mode
}

// SetMode выбирает тип интервью. Повторный выбор того же типа снимает его.
// Любая смена типа сбрасывает все выборы.
func (s *Selection) SetMode(m Mode) error {
	if m != ModeTopic && m != ModeCompany && m != ModeNone {
		return fmt.Errorf("%w: mode %q", ErrUnknownOption, m)
	}
	if s.mode == m {
		m = ModeNone
	}
	s.mode = m
	s.Reset(LevelAll)
	return nil
}

// Reset очищает выборы, зависящие от уровня level
func (s *Selection) Reset(level Level) {
	switch level {
	case LevelAll:
		s.mainTopic, s.subTopic, s.specific, s.difficulty = "", "", "", ""
		s.company, s.role, s.questionType = "", "", ""
	case LevelMain:
		s.subTopic, s.specific, s.difficulty = "", "", ""
	case LevelSub:
		s.specific, s.difficulty = "", ""
	}
}

func (s *Selection) ChooseMainTopic(name string) error {
	if err := s.requireMode(ModeTopic); err != nil {
		return err
	}
	if _, ok := s.catalog.FindTopic(name); !ok {
		return fmt.Errorf("%w: topic %q", ErrUnknownOption, name)
	}
	s.Reset(LevelMain)
	s.mainTopic = name
	return nil
}

func (s *Selection) ChooseSubTopic(name string) error {
	if err := s.requireMode(ModeTopic); err != nil {
		return err
	}
	topic, ok := s.catalog.FindTopic(s.mainTopic)
	if !ok {
		return fmt.Errorf("%w: choose a main topic first", ErrOutOfOrder)
	}
	if _, ok := topic.FindSubTopic(name); !ok {
		return fmt.Errorf("%w: sub topic %q in %s", ErrUnknownOption, name, s.mainTopic)
	}
	s.Reset(LevelSub)
	s.subTopic = name
	return nil
}

func (s *Selection) ChooseSpecific(name string) error {
	sub, err := s.currentSubTopic()
	if err != nil {
		return err
	}
	if !sub.HasSpecific(name) {
		return fmt.Errorf("%w: %q in %s", ErrUnknownOption, name, s.subTopic)
	}
	s.specific = name
	return nil
}

func (s *Selection) ChooseDifficulty(name string) error {
	if err := s.requireMode(ModeTopic); err != nil {
		return err
	}
	if s.specific == "" {
		return fmt.Errorf("%w: choose a specific topic first", ErrOutOfOrder)
	}
	if !s.catalog.HasDifficulty(name) {
		return fmt.Errorf("%w: difficulty %q", ErrUnknownOption, name)
	}
	s.difficulty = name
	return nil
}

func (s *Selection) ChooseCompany(name string) error {
	if err := s.requireMode(ModeCompany); err != nil {
		return err
	}
	if !s.catalog.HasCompany(name) {
		return fmt.Errorf("%w: company %q", ErrUnknownOption, name)
	}
	s.company = name
	return nil
}

func (s *Selection) ChooseRole(name string) error {
	if err := s.requireMode(ModeCompany); err != nil {
		return err
	}
	if s.company == "" {
		return fmt.Errorf("%w: choose a company first", ErrOutOfOrder)
	}
	if !s.catalog.HasRole(name) {
		return fmt.Errorf("%w: role %q", ErrUnknownOption, name)
	}
	s.role = name
	return nil
}

func (s *Selection) ChooseQuestionType(name string) error {
	if err := s.requireMode(ModeCompany); err != nil {
		return err
	}
	if s.role == "" {
		return fmt.Errorf("%w: choose a role first", ErrOutOfOrder)
	}
	if !s.catalog.HasQuestionType(name) {
		return fmt.Errorf("%w: question type %q", ErrUnknownOption, name)
	}
	s.questionType = name
	return nil
}

// Next возвращает следующий шаг и доступные варианты
func (s *Selection) Next() (Step, []string) {
	switch s.mode {
	case ModeTopic:
		switch {
		case s.mainTopic == "":
			names := make([]string, 0, len(s.catalog.Topics))
			for _, t := range s.catalog.Topics {
				names = append(names, t.Name)
			}
			return StepMainTopic, names
		case s.subTopic == "":
			topic, _ := s.catalog.FindTopic(s.mainTopic)
			names := make([]string, 0, len(topic.SubTopics))
			for _, sub := range topic.SubTopics {
				names = append(names, sub.Name)
			}
			return StepSubTopic, names
		case s.specific == "":
			sub, _ := s.currentSubTopic()
			return StepSpecific, sub.Specific
		case s.difficulty == "":
			return StepDifficulty, s.catalog.Difficulties
		}
	case ModeCompany:
		switch {
		case s.company == "":
			return StepCompany, s.catalog.Companies
		case s.role == "":
			return StepRole, s.catalog.Roles
		case s.questionType == "":
			return StepQuestionType, s.catalog.QuestionTypes
		}
	default:
		return StepMode, []string{string(ModeTopic), string(ModeCompany)}
	}
	return StepDone, nil
}

// Choose применяет value к текущему шагу
func (s *Selection) Choose(value string) error {
	step, _ := s.Next()
	switch step {
	case StepMode:
		return s.SetMode(Mode(strings.ToLower(value)))
	case StepMainTopic:
		return s.ChooseMainTopic(value)
	case StepSubTopic:
		return s.ChooseSubTopic(value)
	case StepSpecific:
		return s.ChooseSpecific(value)
	case StepDifficulty:
		return s.ChooseDifficulty(value)
	case StepCompany:
		return s.ChooseCompany(value)
	case StepRole:
		return s.ChooseRole(value)
	case StepQuestionType:
		return s.ChooseQuestionType(value)
	}
	return fmt.Errorf("nothing left to choose")
}

// Ready можно ли продолжать
func (s *Selection) Ready() bool {
	step, _ := s.Next()
	return step == StepDone
}

// Proceed возвращает запрос на генерацию вопросов
func (s *Selection) Proceed() (Request, error) {
	if s.mode == ModeNone {
		return Request{}, ErrNoMode
	}
	if step, _ := s.Next(); step != StepDone {
		return Request{}, fmt.Errorf("%w: %s is missing", ErrIncomplete, step)
	}
	return Request{
		Mode:         s.mode,
		MainTopic:    s.mainTopic,
		SubTopic:     s.subTopic,
		Specific:     s.specific,
		Difficulty:   s.difficulty,
		Company:      s.company,
		Role:         s.role,
		QuestionType: s.questionType,
		Count:        s.catalog.GetQuestionCount(),
	}, nil
}

func (s *Selection) requireMode(m Mode) error {
	if s.mode == ModeNone {
		return ErrNoMode
	}
	if s.mode != m {
		return fmt.Errorf("%w: %s", ErrWrongMode, s.mode)
	}
	return nil
}

func (s *Selection) currentSubTopic() (config.SubTopic, error) {
	if err := s.requireMode(ModeTopic); err != nil {
		return config.SubTopic{}, err
	}
	topic, ok := s.catalog.FindTopic(s.mainTopic)
	if !ok {
		return config.SubTopic{}, fmt.Errorf("%w: choose a main topic first", ErrOutOfOrder)
	}
	sub, ok := topic.FindSubTopic(s.subTopic)
	if !ok {
		return config.SubTopic{}, fmt.Errorf("%w: choose a sub topic first", ErrOutOfOrder)
	}
	return sub, nil
}
