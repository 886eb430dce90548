package app

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"quiz-game-app/internal/domain"
	"quiz-game-app/internal/metrics"
	"quiz-game-app/internal/scoring"
)

// SessionRepository abstracts where participant sessions live (in-memory, Redis, etc).
type SessionRepository interface {
	GetOrCreate(sessionID string) *Session
	Get(sessionID string) (*Session, bool)
	Delete(sessionID string)
}

// QuestionBank provides the immutable question bank.
type QuestionBank interface {
	Questions(ctx context.Context) ([]domain.Question, error)
}

// AnswerStore is the append-only answer log.
//
// ReadAll never fails: an absent, unreadable or corrupt store reads as empty so
// the quiz stays playable. Append returns a *domain.StoreWriteError when the
// answer was not persisted.
type AnswerStore interface {
	Append(ctx context.Context, answer domain.Answer) error
	ReadAll(ctx context.Context) []domain.Answer
	Clear(ctx context.Context) error
}

// QuizService contains the quiz use cases exposed to the transport layer.
type QuizService struct {
	sessions  SessionRepository
	questions QuestionBank
	answers   AnswerStore
	logger    zerolog.Logger
	metrics   *metrics.Metrics
}

func NewQuizService(sessions SessionRepository, questions QuestionBank, answers AnswerStore, logger zerolog.Logger, m *metrics.Metrics) *QuizService {
	return &QuizService{
		sessions:  sessions,
		questions: questions,
		answers:   answers,
		logger:    logger,
		metrics:   m,
	}
}

// Open creates an empty, not started session for a new connection.
func (s *QuizService) Open(_ context.Context, sessionID string) domain.SessionView {
	if _, ok := s.sessions.Get(sessionID); !ok {
		s.metrics.SessionOpened()
	}
	return s.sessions.GetOrCreate(sessionID).view()
}

// SetParticipantName starts the session under name. Changing the name discards
// all local progress; answers already in the store are left untouched.
func (s *QuizService) SetParticipantName(ctx context.Context, sessionID, name string) (domain.SessionView, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.SessionView{}, domain.ErrSessionNotFound
	}

	bank, err := s.questions.Questions(ctx)
	if err != nil {
		return session.view(), err
	}

	view, reset := session.setParticipant(name, bank)
	if reset {
		s.logger.Info().
			Str("session", sessionID).
			Str("participant", view.Participant).
			Str("status", string(view.Status)).
			Msg("participant set")
		if view.Status == domain.StatusNoMoreQuestions {
			s.metrics.SessionExhausted()
		}
	}
	return view, nil
}

// CurrentQuestion returns the question awaiting an answer, if any.
func (s *QuizService) CurrentQuestion(_ context.Context, sessionID string) (domain.PublicQuestion, bool, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.PublicQuestion{}, false, domain.ErrSessionNotFound
	}
	q, ok := session.currentQuestion()
	return q, ok, nil
}

// SubmitAnswer records choice (1-based) for the current question.
func (s *QuizService) SubmitAnswer(ctx context.Context, sessionID string, choice int) (domain.SessionView, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.SessionView{}, domain.ErrSessionNotFound
	}

	bank, err := s.questions.Questions(ctx)
	if err != nil {
		return session.view(), err
	}

	view, err := session.submit(ctx, choice, bank, s.answers)
	if err != nil {
		s.metrics.AnswerRejected(rejectReason(err))
		var writeErr *domain.StoreWriteError
		if errors.As(err, &writeErr) {
			s.logger.Error().Err(err).Str("session", sessionID).Str("participant", view.Participant).Msg("answer not saved")
		}
		return view, err
	}

	s.metrics.AnswerRecorded()
	switch view.Status {
	case domain.StatusCompleted:
		s.metrics.SessionCompleted()
		s.logger.Info().Str("session", sessionID).Str("participant", view.Participant).Msg("quota reached")
	case domain.StatusNoMoreQuestions:
		s.metrics.SessionExhausted()
		s.logger.Warn().Str("session", sessionID).Str("participant", view.Participant).Int("answered", view.Answered).Msg("question bank exhausted before quota")
	}
	return view, nil
}

// Status returns the session snapshot.
func (s *QuizService) Status(_ context.Context, sessionID string) (domain.SessionView, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.SessionView{}, domain.ErrSessionNotFound
	}
	return session.view(), nil
}

// Leave drops the session; answers already stored are kept.
func (s *QuizService) Leave(_ context.Context, sessionID string) {
	if _, ok := s.sessions.Get(sessionID); !ok {
		return
	}
	s.sessions.Delete(sessionID)
	s.metrics.SessionClosed()
}

// Preload fetches the question bank and reports its size.
func (s *QuizService) Preload(ctx context.Context) (int, error) {
	bank, err := s.questions.Questions(ctx)
	if err != nil {
		return 0, err
	}
	s.logger.Info().Int("questions", len(bank)).Msg("question bank loaded")
	return len(bank), nil
}

// ScoreTable scores every participant in the answer store.
func (s *QuizService) ScoreTable(ctx context.Context) (domain.ScoreTable, error) {
	bank, err := s.questions.Questions(ctx)
	if err != nil {
		return nil, err
	}
	return scoring.Score(s.answers.ReadAll(ctx), bank), nil
}

// ScoreReport returns the ranked leaderboard with summary statistics.
func (s *QuizService) ScoreReport(ctx context.Context) (domain.ScoreReport, error) {
	scores, err := s.ScoreTable(ctx)
	if err != nil {
		return domain.ScoreReport{}, err
	}
	return scoring.Report(scores), nil
}

// Winners returns everyone tied on the top score.
func (s *QuizService) Winners(ctx context.Context) (domain.WinnerReport, error) {
	bank, err := s.questions.Questions(ctx)
	if err != nil {
		return domain.WinnerReport{}, err
	}
	answers := s.answers.ReadAll(ctx)
	scores := scoring.Score(answers, bank)
	return domain.WinnerReport{
		Winners:      scoring.Winners(scores),
		TopScore:     scoring.TopScore(scores),
		Participants: scoring.Participants(answers),
	}, nil
}

// ClearAllAnswers empties the answer store. Live sessions keep their local state.
func (s *QuizService) ClearAllAnswers(ctx context.Context) error {
	if err := s.answers.Clear(ctx); err != nil {
		return err
	}
	s.metrics.AnswersCleared()
	s.logger.Warn().Msg("answer store cleared")
	return nil
}

func rejectReason(err error) string {
	var invalid *domain.InvalidChoiceError
	var writeErr *domain.StoreWriteError
	switch {
	case errors.As(err, &invalid):
		return "invalid_choice"
	case errors.As(err, &writeErr):
		return "store_write"
	case errors.Is(err, domain.ErrNotStarted):
		return "not_started"
	case errors.Is(err, domain.ErrSessionCompleted):
		return "completed"
	case errors.Is(err, domain.ErrNoQuestionAvailable):
		return "no_more_questions"
	default:
		return "other"
	}
}
