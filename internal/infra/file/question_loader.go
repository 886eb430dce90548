package file

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"quiz-game-app/internal/domain"
)

// bankDocument is the on-disk layout: {"preguntas": [...]}.
type bankDocument struct {
	Questions *[]domain.Question `json:"preguntas" yaml:"preguntas"`
}

// QuestionLoader reads the question bank from a JSON or YAML file.
type QuestionLoader struct {
	path string
}

func NewQuestionLoader(path string) *QuestionLoader {
	return &QuestionLoader{path: path}
}

// LoadQuestions parses and validates the bank. Every failure is a *domain.LoadError.
func (l *QuestionLoader) LoadQuestions(_ context.Context) ([]domain.Question, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, &domain.LoadError{Source: l.path, Err: err}
	}
	questions, err := ParseBank(data, isYAML(l.path))
	if err != nil {
		return nil, &domain.LoadError{Source: l.path, Err: err}
	}
	return questions, nil
}

// ParseBank decodes a bank document and validates every question.
func ParseBank(data []byte, asYAML bool) ([]domain.Question, error) {
	var doc bankDocument
	if asYAML {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	} else {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	}
	if doc.Questions == nil {
		return nil, errors.New(`missing "preguntas" key`)
	}
	questions := *doc.Questions
	if err := domain.ValidateBank(questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
