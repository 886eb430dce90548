package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks a single question's invariants.
func (q Question) Validate() error {
	if q.ID == "" {
		return errors.New("missing id")
	}
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("question %s: missing pregunta", q.ID)
	}
	if len(q.Choices) < 2 {
		return fmt.Errorf("question %s: need at least 2 alternativas, got %d", q.ID, len(q.Choices))
	}
	if q.CorrectChoice < 1 || q.CorrectChoice > len(q.Choices) {
		return fmt.Errorf("question %s: respuesta_correcta %d out of range 1..%d", q.ID, q.CorrectChoice, len(q.Choices))
	}
	return nil
}

// ValidateBank validates every question and requires unique ids.
func ValidateBank(questions []Question) error {
	seen := make(map[QuestionID]struct{}, len(questions))
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question #%d: %w", i+1, err)
		}
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("question #%d: duplicate id %s", i+1, q.ID)
		}
		seen[q.ID] = struct{}{}
	}
	return nil
}
