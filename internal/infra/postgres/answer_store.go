package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/rs/zerolog"

	"quiz-game-app/internal/domain"
)

// AnswerStore keeps the answer log in the answers table.
type AnswerStore struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewAnswerStore(pool *pgxpool.Pool, logger zerolog.Logger) *AnswerStore {
	return &AnswerStore{pool: pool, logger: logger}
}

func (s *AnswerStore) Append(ctx context.Context, answer domain.Answer) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO answers (nombre, id_pregunta, respuesta) VALUES ($1, $2, $3)`,
		answer.Participant, string(answer.QuestionID), answer.Choice,
	)
	if err != nil {
		return &domain.StoreWriteError{Err: err}
	}
	return nil
}

func (s *AnswerStore) ReadAll(ctx context.Context) []domain.Answer {
	answers, err := s.readAll(ctx)
	if err != nil {
		s.logger.Warn().Err(fmt.Errorf("%w: %v", domain.ErrStoreCorrupt, err)).Msg("answers table unreadable, treating as empty")
		return []domain.Answer{}
	}
	return answers
}

func (s *AnswerStore) readAll(ctx context.Context) ([]domain.Answer, error) {
	rows, err := s.pool.Query(ctx, `SELECT nombre, id_pregunta, respuesta FROM answers ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	answers := make([]domain.Answer, 0)
	for rows.Next() {
		var (
			a  domain.Answer
			id string
		)
		if err := rows.Scan(&a.Participant, &id, &a.Choice); err != nil {
			return nil, err
		}
		a.QuestionID = domain.QuestionID(id)
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

func (s *AnswerStore) Clear(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `TRUNCATE answers`); err != nil {
		return fmt.Errorf("clear answers: %w", err)
	}
	return nil
}
