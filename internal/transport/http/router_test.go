package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"quiz-game-app/internal/app"
	"quiz-game-app/internal/domain"
	"quiz-game-app/internal/infra/memory"
	"quiz-game-app/internal/metrics"
)

func TestResultsEndpoints(t *testing.T) {
	ctx := context.Background()
	bank := []domain.Question{
		{ID: "1", Text: "one", Choices: []string{"a", "b"}, CorrectChoice: 2},
		{ID: "2", Text: "two", Choices: []string{"a", "b"}, CorrectChoice: 1},
	}
	service, answers := newTestService(bank)
	for _, a := range []domain.Answer{
		{Participant: "Ana", QuestionID: "1", Choice: 2},
		{Participant: "Ana", QuestionID: "2", Choice: 1},
		{Participant: "Ben", QuestionID: "1", Choice: 1},
	} {
		_ = answers.Append(ctx, a)
	}
	router := NewRouter(service, zerolog.Nop(), prometheus.NewRegistry())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scores", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("scores status %d", rec.Code)
	}
	var report domain.ScoreReport
	if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
		t.Fatalf("decode scores: %v", err)
	}
	if len(report.Entries) != 2 || report.Entries[0].Participant != "Ana" || report.Entries[0].Score != 3 {
		t.Fatalf("unexpected report %+v", report)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/winners", nil))
	var winners domain.WinnerReport
	if err := json.NewDecoder(rec.Body).Decode(&winners); err != nil {
		t.Fatalf("decode winners: %v", err)
	}
	if len(winners.Winners) != 1 || winners.Winners[0] != "Ana" || winners.TopScore != 3 {
		t.Fatalf("unexpected winners %+v", winners)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/answers", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 for POST, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/answers", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if got := answers.ReadAll(ctx); len(got) != 0 {
		t.Fatalf("expected cleared store, got %v", got)
	}
}

func TestScoresLoadErrorIs500(t *testing.T) {
	invalid := []domain.Question{{ID: "1", Text: "x", Choices: []string{"a"}, CorrectChoice: 1}}
	service, _ := newTestService(invalid)
	router := NewRouter(service, zerolog.Nop(), prometheus.NewRegistry())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scores", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"code":"load"`) {
		t.Fatalf("expected load error code, got %s", rec.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	questions := memory.NewQuestionBank(memory.NewStaticQuestionLoader(sampleBank(6)), 0)
	service := app.NewQuizService(memory.NewSessionStore(), questions, memory.NewAnswerStore(), zerolog.Nop(), m)
	_ = service.ClearAllAnswers(context.Background())

	rec := httptest.NewRecorder()
	NewRouter(service, zerolog.Nop(), reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), "quiz_answer_store_clears_total 1") {
		t.Fatalf("expected clear counter in metrics output, got %s", rec.Body.String())
	}
}

func TestHealthz(t *testing.T) {
	service, _ := newTestService(sampleBank(1))
	rec := httptest.NewRecorder()
	NewRouter(service, zerolog.Nop(), prometheus.NewRegistry()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("unexpected healthz response %d %q", rec.Code, rec.Body.String())
	}
}
