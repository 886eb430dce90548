package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"quiz-game-app/internal/domain"
)

const answersKey = "quiz:answers"

// AnswerStore keeps the answer log as a Redis list of JSON records.
// RPUSH appends atomically on the server, so concurrent writers cannot lose
// each other's answers.
type AnswerStore struct {
	client *redis.Client
	logger zerolog.Logger
}

func NewAnswerStore(client *redis.Client, logger zerolog.Logger) *AnswerStore {
	return &AnswerStore{client: client, logger: logger}
}

func (s *AnswerStore) Append(ctx context.Context, answer domain.Answer) error {
	raw, err := json.Marshal(answer)
	if err != nil {
		return &domain.StoreWriteError{Err: err}
	}
	if err := s.client.RPush(ctx, answersKey, raw).Err(); err != nil {
		return &domain.StoreWriteError{Err: err}
	}
	return nil
}

// ReadAll returns an empty log when Redis is unreachable or any record is undecodable.
func (s *AnswerStore) ReadAll(ctx context.Context) []domain.Answer {
	items, err := s.client.LRange(ctx, answersKey, 0, -1).Result()
	if err != nil {
		s.logger.Warn().Err(err).Msg("answer list unreadable, treating as empty")
		return []domain.Answer{}
	}
	answers := make([]domain.Answer, 0, len(items))
	for i, item := range items {
		var a domain.Answer
		if err := json.Unmarshal([]byte(item), &a); err != nil {
			s.logger.Warn().
				Err(fmt.Errorf("%w: record %d: %v", domain.ErrStoreCorrupt, i, err)).
				Msg("answer list corrupt, treating as empty")
			return []domain.Answer{}
		}
		answers = append(answers, a)
	}
	return answers
}

func (s *AnswerStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, answersKey).Err(); err != nil {
		return fmt.Errorf("clear answers: %w", err)
	}
	return nil
}
