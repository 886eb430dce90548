package app

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"

	"quiz-game-app/internal/domain"
)

// Session is one participant's in-memory quiz state. It is never persisted;
// only the answers it appends to the AnswerStore outlive it.
type Session struct {
	id  string
	mu  sync.Mutex
	rnd *rand.Rand

	participant string
	answered    []domain.QuestionID
	answeredSet map[domain.QuestionID]struct{}
	current     *domain.Question
	local       []domain.Answer
}

// NewSession is exported for infrastructure layers that need to seed sessions.
func NewSession(id string) *Session {
	return NewSessionWithRand(id, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewSessionWithRand lets tests fix the question order.
func NewSessionWithRand(id string, rnd *rand.Rand) *Session {
	return &Session{
		id:          id,
		rnd:         rnd,
		answeredSet: make(map[domain.QuestionID]struct{}),
	}
}

// ID returns the session key.
func (s *Session) ID() string {
	return s.id
}

// PickRandomUnanswered returns a uniformly random question whose id is not in
// answered. ok is false when every question has been answered.
func PickRandomUnanswered(bank []domain.Question, answered map[domain.QuestionID]struct{}, rnd *rand.Rand) (domain.Question, bool) {
	available := make([]domain.Question, 0, len(bank))
	for _, q := range bank {
		if _, done := answered[q.ID]; !done {
			available = append(available, q)
		}
	}
	if len(available) == 0 {
		return domain.Question{}, false
	}
	return available[rnd.Intn(len(available))], true
}

// setParticipant resets the session when the name changes. An unchanged name
// keeps the session as is.
func (s *Session) setParticipant(name string, bank []domain.Question) (domain.SessionView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == s.participant {
		return s.viewLocked(), false
	}

	s.participant = name
	s.answered = nil
	s.answeredSet = make(map[domain.QuestionID]struct{})
	s.local = nil
	s.current = nil
	if name != "" {
		s.advanceLocked(bank)
	}
	return s.viewLocked(), true
}

// submit validates choice against the current question, persists the answer
// and only then updates local state. A failed append leaves the session on the
// same question.
func (s *Session) submit(ctx context.Context, choice int, bank []domain.Question, store AnswerStore) (domain.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.statusLocked() {
	case domain.StatusNotStarted:
		return s.viewLocked(), domain.ErrNotStarted
	case domain.StatusCompleted:
		return s.viewLocked(), domain.ErrSessionCompleted
	case domain.StatusNoMoreQuestions:
		return s.viewLocked(), domain.ErrNoQuestionAvailable
	}

	q := s.current
	if choice < 1 || choice > len(q.Choices) {
		return s.viewLocked(), &domain.InvalidChoiceError{Choice: choice, Choices: len(q.Choices)}
	}

	answer := domain.Answer{Participant: s.participant, QuestionID: q.ID, Choice: choice}
	if err := store.Append(ctx, answer); err != nil {
		var writeErr *domain.StoreWriteError
		if !errors.As(err, &writeErr) {
			err = &domain.StoreWriteError{Err: err}
		}
		return s.viewLocked(), err
	}

	s.local = append(s.local, answer)
	s.answered = append(s.answered, q.ID)
	s.answeredSet[q.ID] = struct{}{}
	s.current = nil
	if len(s.answered) < domain.Quota {
		s.advanceLocked(bank)
	}
	return s.viewLocked(), nil
}

func (s *Session) advanceLocked(bank []domain.Question) {
	next, ok := PickRandomUnanswered(bank, s.answeredSet, s.rnd)
	if !ok {
		s.current = nil
		return
	}
	s.current = &next
}

func (s *Session) statusLocked() domain.SessionStatus {
	switch {
	case s.participant == "":
		return domain.StatusNotStarted
	case len(s.answered) >= domain.Quota:
		return domain.StatusCompleted
	case s.current == nil:
		return domain.StatusNoMoreQuestions
	default:
		return domain.StatusInProgress
	}
}

func (s *Session) view() domain.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Session) viewLocked() domain.SessionView {
	v := domain.SessionView{
		SessionID:   s.id,
		Participant: s.participant,
		Status:      s.statusLocked(),
		Answered:    len(s.answered),
		Quota:       domain.Quota,
	}
	if v.Status == domain.StatusInProgress {
		pub := s.current.Public()
		v.Question = &pub
		v.Number = len(s.answered) + 1
	}
	return v
}

func (s *Session) currentQuestion() (domain.PublicQuestion, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.statusLocked() != domain.StatusInProgress {
		return domain.PublicQuestion{}, false
	}
	return s.current.Public(), true
}

// Answers returns a copy of the answers recorded by this session.
func (s *Session) Answers() []domain.Answer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Answer, len(s.local))
	copy(out, s.local)
	return out
}
