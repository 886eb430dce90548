package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"quiz-game-app/internal/app"
	"quiz-game-app/internal/config"
	"quiz-game-app/internal/infra/file"
	"quiz-game-app/internal/infra/memory"
	"quiz-game-app/internal/infra/postgres"
	redisinfra "quiz-game-app/internal/infra/redis"
	"quiz-game-app/internal/infra/sqlite"
	"quiz-game-app/internal/logging"
	"quiz-game-app/internal/metrics"
)

// components is everything a command needs, built from config.
type components struct {
	logger   zerolog.Logger
	registry *prometheus.Registry
	service  *app.QuizService
	closers  []func()
}

func (c *components) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

func build(ctx context.Context, cfg config.Config) (*components, error) {
	c := &components{
		logger:   logging.New(cfg.Log.Level, cfg.Log.Pretty),
		registry: prometheus.NewRegistry(),
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		c.closers = append(c.closers, func() { _ = redisClient.Close() })
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		var err error
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		c.closers = append(c.closers, pool.Close)
	}

	var loader memory.QuestionLoader = file.NewQuestionLoader(cfg.Questions.Path)
	if cfg.Questions.Source == "postgres" {
		loader = postgres.NewQuestionLoader(pool)
	}

	bankTTL := config.TTLDuration(cfg.Questions.TTL, 0)
	var questions app.QuestionBank
	if redisClient != nil {
		questions = redisinfra.NewQuestionBank(redisClient, loader, bankTTL, c.logger)
	} else {
		questions = memory.NewQuestionBank(loader, bankTTL)
	}

	answers, err := buildAnswerStore(cfg, c, redisClient, pool)
	if err != nil {
		c.Close()
		return nil, err
	}

	var sessions app.SessionRepository = memory.NewSessionStore()
	if redisClient != nil {
		sessions = redisinfra.NewSessionStore(redisClient, config.TTLDuration(cfg.Sessions.TTL, 30*time.Minute))
	}

	c.service = app.NewQuizService(sessions, questions, answers, c.logger, metrics.New(c.registry))
	return c, nil
}

func buildAnswerStore(cfg config.Config, c *components, redisClient *redis.Client, pool *pgxpool.Pool) (app.AnswerStore, error) {
	switch cfg.Answers.Backend {
	case config.BackendMemory:
		return memory.NewAnswerStore(), nil
	case config.BackendSQLite:
		store, err := sqlite.NewAnswerStore(cfg.Answers.SQLitePath, c.logger)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, func() { _ = store.Close() })
		return store, nil
	case config.BackendPostgres:
		return postgres.NewAnswerStore(pool, c.logger), nil
	case config.BackendRedis:
		return redisinfra.NewAnswerStore(redisClient, c.logger), nil
	default:
		return file.NewAnswerStore(cfg.Answers.Path, c.logger), nil
	}
}

func needsMigrations(cfg config.Config) bool {
	return cfg.Questions.Source == "postgres" || cfg.Answers.Backend == config.BackendPostgres
}
