package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"quiz-game-app/internal/domain"
	"quiz-game-app/internal/infra/memory"
)

const bankKey = "quiz:bank"

// QuestionBank caches the validated bank in Redis as one JSON document and
// falls back to the loader on a miss. Several service instances can share the
// cache so only one of them hits the backing store per TTL.
type QuestionBank struct {
	client *redis.Client
	loader memory.QuestionLoader
	ttl    time.Duration
	logger zerolog.Logger
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewQuestionBank(client *redis.Client, loader memory.QuestionLoader, ttl time.Duration, logger zerolog.Logger) *QuestionBank {
	return &QuestionBank{
		client: client,
		loader: loader,
		ttl:    ttl,
		logger: logger,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (b *QuestionBank) Questions(ctx context.Context) ([]domain.Question, error) {
	if questions, ok := b.fromCache(ctx); ok {
		return questions, nil
	}

	result, err, _ := b.sf.Do(bankKey, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if questions, ok := b.fromCache(ctx); ok {
			return questions, nil
		}

		questions, err := b.loader.LoadQuestions(ctx)
		if err != nil {
			return nil, err
		}

		raw, err := json.Marshal(questions)
		if err == nil {
			err = b.client.Set(ctx, bankKey, raw, b.ttlWithJitter()).Err()
		}
		if err != nil {
			b.logger.Warn().Err(err).Msg("question bank not cached in redis")
		}
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func (b *QuestionBank) fromCache(ctx context.Context) ([]domain.Question, bool) {
	raw, err := b.client.Get(ctx, bankKey).Bytes()
	if err != nil {
		return nil, false
	}
	var questions []domain.Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		b.logger.Warn().Err(err).Msg("cached question bank undecodable, reloading")
		return nil, false
	}
	if err := domain.ValidateBank(questions); err != nil {
		b.logger.Warn().Err(err).Msg("cached question bank invalid, reloading")
		return nil, false
	}
	return questions, true
}

// ttlWithJitter returns 0 (no expiry) for a non-positive ttl.
func (b *QuestionBank) ttlWithJitter() time.Duration {
	if b.ttl <= 0 {
		return 0
	}
	jitterMax := int64(b.ttl) / 10
	return b.ttl + time.Duration(b.rnd.Int63n(jitterMax+1))
}
