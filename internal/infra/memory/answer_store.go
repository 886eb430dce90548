package memory

import (
	"context"
	"sync"

	"quiz-game-app/internal/domain"
)

// AnswerStore keeps the answer log in process memory.
type AnswerStore struct {
	mu      sync.Mutex
	answers []domain.Answer
}

func NewAnswerStore() *AnswerStore {
	return &AnswerStore{}
}

func (s *AnswerStore) Append(_ context.Context, answer domain.Answer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers = append(s.answers, answer)
	return nil
}

func (s *AnswerStore) ReadAll(_ context.Context) []domain.Answer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Answer, len(s.answers))
	copy(out, s.answers)
	return out
}

func (s *AnswerStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers = nil
	return nil
}
