package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"quiz-game-app/internal/domain"
)

// AnswerStore keeps the answer log as a JSON array in a single file.
//
// Append is a full read-modify-write of the log, so its cost grows with the
// number of stored answers. The rewrite goes to a temp file that is renamed
// over the log, so readers never see a half-written file. The mutex only
// serializes writers inside this process: two processes sharing the file can
// still lose an update.
type AnswerStore struct {
	path   string
	logger zerolog.Logger
	mu     sync.Mutex
}

func NewAnswerStore(path string, logger zerolog.Logger) *AnswerStore {
	return &AnswerStore{path: path, logger: logger}
}

func (s *AnswerStore) Append(_ context.Context, answer domain.Answer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	answers, err := s.readLocked()
	if err != nil {
		return &domain.StoreWriteError{Err: fmt.Errorf("read answer log: %w", err)}
	}
	answers = append(answers, answer)
	if err := s.writeLocked(answers); err != nil {
		return &domain.StoreWriteError{Err: err}
	}
	return nil
}

func (s *AnswerStore) ReadAll(_ context.Context) []domain.Answer {
	s.mu.Lock()
	defer s.mu.Unlock()
	answers, err := s.readLocked()
	if err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("answer log unreadable, treating as empty")
		return []domain.Answer{}
	}
	return answers
}

func (s *AnswerStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writeLocked([]domain.Answer{}); err != nil {
		return fmt.Errorf("clear answers: %w", err)
	}
	return nil
}

// readLocked returns an error only when an existing log cannot be read.
// Missing, blank and corrupt logs read as empty.
func (s *AnswerStore) readLocked() ([]domain.Answer, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.Answer{}, nil
		}
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []domain.Answer{}, nil
	}
	var answers []domain.Answer
	if err := json.Unmarshal(data, &answers); err != nil {
		s.logger.Warn().
			Err(fmt.Errorf("%w: %v", domain.ErrStoreCorrupt, err)).
			Str("path", s.path).
			Msg("answer log corrupt, treating as empty")
		return []domain.Answer{}, nil
	}
	if answers == nil {
		answers = []domain.Answer{}
	}
	return answers, nil
}

func (s *AnswerStore) writeLocked(answers []domain.Answer) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(answers); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, s.path)
}
