package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"quiz-game-app/internal/domain"
)

const validBank = `{
  "preguntas": [
    {"id": 1, "pregunta": "¿Cuánto es 2 + 2?", "alternativas": ["3", "4", "5"], "respuesta_correcta": 2},
    {"id": "b", "pregunta": "Capital de Chile", "alternativas": ["Lima", "Santiago"], "respuesta_correcta": 2}
  ]
}`

func TestLoadQuestionsJSON(t *testing.T) {
	path := writeFile(t, "preguntas.json", validBank)

	questions, err := NewQuestionLoader(path).LoadQuestions(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	if questions[0].ID != "1" || questions[0].CorrectChoice != 2 || questions[0].Choices[1] != "4" {
		t.Fatalf("unexpected first question: %+v", questions[0])
	}
	if questions[1].ID != "b" {
		t.Fatalf("expected order preserved, got %+v", questions[1])
	}
}

func TestLoadQuestionsYAML(t *testing.T) {
	doc := `preguntas:
  - id: 1
    pregunta: Color del cielo
    alternativas: [Azul, Verde]
    respuesta_correcta: 1
`
	path := writeFile(t, "preguntas.yaml", doc)

	questions, err := NewQuestionLoader(path).LoadQuestions(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(questions) != 1 || questions[0].Text != "Color del cielo" {
		t.Fatalf("unexpected questions: %+v", questions)
	}
}

func TestLoadQuestionsFailures(t *testing.T) {
	cases := map[string]string{
		"malformed":       `{"preguntas": [`,
		"trailing data":   `{"preguntas": [{"id": 1, "pregunta": "x", "alternativas": ["a", "b"], "respuesta_correcta": 1}]} }garbage{`,
		"missing key":     `{"questions": []}`,
		"one alternative": `{"preguntas": [{"id": 1, "pregunta": "x", "alternativas": ["a"], "respuesta_correcta": 1}]}`,
		"out of range":    `{"preguntas": [{"id": 1, "pregunta": "x", "alternativas": ["a", "b"], "respuesta_correcta": 3}]}`,
		"missing correct": `{"preguntas": [{"id": 1, "pregunta": "x", "alternativas": ["a", "b"]}]}`,
		"wrong type":      `{"preguntas": [{"id": 1, "pregunta": "x", "alternativas": ["a", "b"], "respuesta_correcta": "2"}]}`,
		"duplicate ids":   `{"preguntas": [{"id": 1, "pregunta": "x", "alternativas": ["a", "b"], "respuesta_correcta": 1}, {"id": "1", "pregunta": "y", "alternativas": ["a", "b"], "respuesta_correcta": 1}]}`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, "preguntas.json", content)
			_, err := NewQuestionLoader(path).LoadQuestions(context.Background())
			var loadErr *domain.LoadError
			if !errors.As(err, &loadErr) {
				t.Fatalf("expected LoadError, got %v", err)
			}
		})
	}
}

func TestLoadQuestionsMissingFile(t *testing.T) {
	_, err := NewQuestionLoader(filepath.Join(t.TempDir(), "nope.json")).LoadQuestions(context.Background())
	var loadErr *domain.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped not-exist error, got %v", err)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}
