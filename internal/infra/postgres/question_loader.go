package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"quiz-game-app/internal/domain"
)

// QuestionLoader loads the question bank from the questions table, one JSONB
// document per question, ordered by position.
type QuestionLoader struct {
	pool *pgxpool.Pool
}

func NewQuestionLoader(pool *pgxpool.Pool) *QuestionLoader {
	return &QuestionLoader{pool: pool}
}

func (l *QuestionLoader) LoadQuestions(ctx context.Context) ([]domain.Question, error) {
	rows, err := l.pool.Query(ctx, `SELECT data FROM questions ORDER BY position, id`)
	if err != nil {
		return nil, &domain.LoadError{Source: "postgres", Err: fmt.Errorf("query questions: %w", err)}
	}
	defer rows.Close()

	questions := make([]domain.Question, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, &domain.LoadError{Source: "postgres", Err: err}
		}
		var q domain.Question
		if err := json.Unmarshal(raw, &q); err != nil {
			return nil, &domain.LoadError{Source: "postgres", Err: fmt.Errorf("unmarshal question: %w", err)}
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.LoadError{Source: "postgres", Err: err}
	}
	if err := domain.ValidateBank(questions); err != nil {
		return nil, &domain.LoadError{Source: "postgres", Err: err}
	}
	return questions, nil
}

// SeedQuestions replaces the questions table with bank.
func SeedQuestions(ctx context.Context, pool *pgxpool.Pool, bank []domain.Question) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM questions`); err != nil {
		return err
	}
	for i, q := range bank {
		raw, err := json.Marshal(q)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO questions (id, position, data) VALUES ($1, $2, $3)`,
			string(q.ID), i, raw,
		); err != nil {
			return fmt.Errorf("insert question %s: %w", q.ID, err)
		}
	}
	return tx.Commit(ctx)
}
