package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionNotFound is returned when a session id has no live session.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrNotStarted is returned when a participant acts before entering a name.
	ErrNotStarted = errors.New("participant name not set")
	// ErrSessionCompleted is returned once the quota has been answered.
	ErrSessionCompleted = errors.New("session already completed")
	// ErrNoQuestionAvailable means the bank ran out before the quota was met.
	ErrNoQuestionAvailable = errors.New("no more questions available")
	// ErrStoreCorrupt marks answer store content that could not be decoded.
	ErrStoreCorrupt = errors.New("answer store corrupt")
)

// LoadError reports a question bank that is missing, malformed or invalid.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load question bank %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// StoreWriteError reports an answer that was not persisted.
type StoreWriteError struct {
	Err error
}

func (e *StoreWriteError) Error() string {
	return fmt.Sprintf("store answer: %v", e.Err)
}

func (e *StoreWriteError) Unwrap() error { return e.Err }

// InvalidChoiceError reports a choice outside 1..Choices.
type InvalidChoiceError struct {
	Choice  int
	Choices int
}

func (e *InvalidChoiceError) Error() string {
	return fmt.Sprintf("invalid choice %d: must be between 1 and %d", e.Choice, e.Choices)
}
