package http

import (
	"errors"
	"net/http"

	"quiz-game-app/internal/domain"
)

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// classify maps domain errors to a stable code and an HTTP status.
func classify(err error) (string, int) {
	var (
		invalid  *domain.InvalidChoiceError
		writeErr *domain.StoreWriteError
		loadErr  *domain.LoadError
	)
	switch {
	case errors.As(err, &invalid):
		return "invalid_choice", http.StatusBadRequest
	case errors.As(err, &writeErr):
		return "store_write", http.StatusServiceUnavailable
	case errors.As(err, &loadErr):
		return "load", http.StatusInternalServerError
	case errors.Is(err, domain.ErrNotStarted):
		return "not_started", http.StatusConflict
	case errors.Is(err, domain.ErrSessionCompleted):
		return "completed", http.StatusConflict
	case errors.Is(err, domain.ErrNoQuestionAvailable):
		return "no_more_questions", http.StatusConflict
	case errors.Is(err, domain.ErrSessionNotFound):
		return "not_found", http.StatusNotFound
	default:
		return "internal", http.StatusInternalServerError
	}
}

func errorMessage(err error) outboundMessage[errorPayload] {
	code, _ := classify(err)
	return outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Code: code, Message: err.Error()}}
}

func badRequest(msg string) outboundMessage[errorPayload] {
	return outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Code: "bad_request", Message: msg}}
}
