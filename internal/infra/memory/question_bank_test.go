package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"quiz-game-app/internal/domain"
)

func TestQuestionBankCaches(t *testing.T) {
	loader := &countingLoader{QuestionLoader: NewStaticQuestionLoader(sampleQuestions())}
	bank := NewQuestionBank(loader, 0)

	if _, err := bank.Questions(context.Background()); err != nil {
		t.Fatalf("questions: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	qs, err := bank.Questions(context.Background())
	if err != nil {
		t.Fatalf("questions 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(qs))
	}
}

func TestQuestionBankReloadsAfterTTL(t *testing.T) {
	loader := &countingLoader{QuestionLoader: NewStaticQuestionLoader(sampleQuestions())}
	bank := NewQuestionBank(loader, time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	bank.clock = func() time.Time { return now }

	_, _ = bank.Questions(context.Background())
	now = now.Add(30 * time.Second)
	_, _ = bank.Questions(context.Background())
	if loader.calls != 1 {
		t.Fatalf("expected cache hit within ttl, loader calls %d", loader.calls)
	}

	now = now.Add(2 * time.Minute)
	_, _ = bank.Questions(context.Background())
	if loader.calls != 2 {
		t.Fatalf("expected reload after ttl, loader calls %d", loader.calls)
	}
}

func TestQuestionBankDoesNotCacheErrors(t *testing.T) {
	invalid := []domain.Question{{ID: "1", Text: "x", Choices: []string{"only"}, CorrectChoice: 1}}
	loader := &countingLoader{QuestionLoader: NewStaticQuestionLoader(invalid)}
	bank := NewQuestionBank(loader, 0)

	for i := 0; i < 2; i++ {
		_, err := bank.Questions(context.Background())
		var loadErr *domain.LoadError
		if !errors.As(err, &loadErr) {
			t.Fatalf("expected LoadError, got %v", err)
		}
	}
	if loader.calls != 2 {
		t.Fatalf("expected every call to hit the loader, got %d", loader.calls)
	}
}

type countingLoader struct {
	QuestionLoader
	calls int
}

func (l *countingLoader) LoadQuestions(ctx context.Context) ([]domain.Question, error) {
	l.calls++
	return l.QuestionLoader.LoadQuestions(ctx)
}

func sampleQuestions() []domain.Question {
	return []domain.Question{
		{ID: "1", Text: "What is 2 + 2?", Choices: []string{"3", "4", "5"}, CorrectChoice: 2},
		{ID: "2", Text: "Capital of Chile?", Choices: []string{"Lima", "Santiago"}, CorrectChoice: 2},
	}
}
