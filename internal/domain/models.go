package domain

// Quota is the number of questions a participant answers to complete a session.
const Quota = 6

// Question is a multiple choice question from the bank. CorrectChoice is a
// 1-based index into Choices.
type Question struct {
	ID            QuestionID `json:"id" yaml:"id"`
	Text          string     `json:"pregunta" yaml:"pregunta"`
	Choices       []string   `json:"alternativas" yaml:"alternativas"`
	CorrectChoice int        `json:"respuesta_correcta" yaml:"respuesta_correcta"`
}

// Public strips the correct choice so the question can be shown to participants.
func (q Question) Public() PublicQuestion {
	choices := make([]string, len(q.Choices))
	copy(choices, q.Choices)
	return PublicQuestion{ID: q.ID, Text: q.Text, Choices: choices}
}

// PublicQuestion is the participant-facing view of a Question.
type PublicQuestion struct {
	ID      QuestionID `json:"id"`
	Text    string     `json:"text"`
	Choices []string   `json:"choices"`
}

// Answer is one recorded response. Choice is 1-based.
type Answer struct {
	Participant string     `json:"nombre"`
	QuestionID  QuestionID `json:"id_pregunta"`
	Choice      int        `json:"respuesta"`
}

// SessionStatus is the externally visible state of a participant session.
type SessionStatus string

const (
	StatusNotStarted      SessionStatus = "not_started"
	StatusInProgress      SessionStatus = "in_progress"
	StatusNoMoreQuestions SessionStatus = "no_more_questions"
	StatusCompleted       SessionStatus = "completed"
)

// SessionView is a snapshot of a participant session.
type SessionView struct {
	SessionID   string          `json:"sessionId"`
	Participant string          `json:"participant"`
	Status      SessionStatus   `json:"status"`
	Answered    int             `json:"answered"`
	Quota       int             `json:"quota"`
	Number      int             `json:"number,omitempty"` // 1-based position of Question
	Question    *PublicQuestion `json:"question,omitempty"`
}

// ScoreTable maps participant name to score.
type ScoreTable map[string]int

// ScoreEntry is one ranked row of the leaderboard.
type ScoreEntry struct {
	Rank        int    `json:"rank"`
	Participant string `json:"participant"`
	Score       int    `json:"score"`
}

// ScoreStats summarizes a score table.
type ScoreStats struct {
	Participants int     `json:"participants"`
	Mean         float64 `json:"mean"`
	Max          int     `json:"max"`
	Min          int     `json:"min"`
}

// ScoreReport is the leaderboard plus summary statistics.
type ScoreReport struct {
	Entries []ScoreEntry `json:"entries"`
	Stats   ScoreStats   `json:"stats"`
}

// WinnerReport names everyone tied on the top score.
type WinnerReport struct {
	Winners      []string `json:"winners"`
	TopScore     int      `json:"topScore"`
	Participants []string `json:"participants"`
}
