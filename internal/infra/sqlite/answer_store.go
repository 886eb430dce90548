package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"quiz-game-app/internal/domain"
)

// AnswerStore keeps the answer log in a SQLite table. Appends are single
// INSERTs, so unlike the JSON file store their cost does not grow with the log.
type AnswerStore struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewAnswerStore(path string, logger zerolog.Logger) (*AnswerStore, error) {
	if strings.TrimSpace(path) == "" {
		path = "respuestas.db"
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	store := &AnswerStore{db: db, logger: logger}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *AnswerStore) initSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS answers (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		nombre TEXT NOT NULL,
		id_pregunta TEXT NOT NULL,
		respuesta INTEGER NOT NULL
	);`)
	return err
}

func (s *AnswerStore) Close() error {
	return s.db.Close()
}

func (s *AnswerStore) Append(ctx context.Context, answer domain.Answer) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO answers (nombre, id_pregunta, respuesta) VALUES (?, ?, ?)`,
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
		s.logger.Warn().Err(fmt.Errorf("%w: %v", domain.ErrStoreCorrupt, err)).Msg("answer table unreadable, treating as empty")
		return []domain.Answer{}
	}
	return answers
}

func (s *AnswerStore) readAll(ctx context.Context) ([]domain.Answer, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT nombre, id_pregunta, respuesta FROM answers ORDER BY seq`)
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
	if _, err := s.db.ExecContext(ctx, `DELETE FROM answers`); err != nil {
		return fmt.Errorf("clear answers: %w", err)
	}
	return nil
}
