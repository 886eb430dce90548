package http

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"quiz-game-app/internal/app"
	"quiz-game-app/internal/domain"
	"quiz-game-app/internal/logging"
)

// WSHandler serves the play endpoint. Each connection owns one participant
// session, created on connect and dropped on disconnect.
type WSHandler struct {
	service  *app.QuizService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type namePayload struct {
	Name string `json:"name"`
}

type answerPayload struct {
	Choice int `json:"choice"`
}

type questionPayload struct {
	Question *domain.PublicQuestion `json:"question,omitempty"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

// ServeWS upgrades HTTP requests to websockets and wires them into the quiz use cases.
// An optional ?name= query parameter sets the participant right away.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn().Err(err).Msg("ws upgrade failed")
		return
	}
	defer conn.Close()

	ctx := r.Context()
	sessionID := uuid.NewString()
	logger = logger.With().Str("session", sessionID).Logger()

	view := h.service.Open(ctx, sessionID)
	defer h.service.Leave(ctx, sessionID)

	if name := r.URL.Query().Get("name"); name != "" {
		view, err = h.service.SetParticipantName(ctx, sessionID, name)
		if err != nil {
			_ = conn.WriteJSON(errorMessage(err))
			return
		}
	}
	if err := conn.WriteJSON(outboundMessage[domain.SessionView]{Type: "session", Payload: view}); err != nil {
		return
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug().Err(err).Msg("ws read ended")
			}
			return
		}

		reply := h.dispatch(r, sessionID, inbound)
		if err := conn.WriteJSON(reply); err != nil {
			logger.Warn().Err(err).Msg("ws write error")
			return
		}
	}
}

func (h *WSHandler) dispatch(r *http.Request, sessionID string, inbound inboundMessage) any {
	ctx := r.Context()
	switch inbound.Type {
	case "name":
		var payload namePayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return badRequest("invalid name payload")
		}
		view, err := h.service.SetParticipantName(ctx, sessionID, payload.Name)
		if err != nil {
			return errorMessage(err)
		}
		return outboundMessage[domain.SessionView]{Type: "session", Payload: view}
	case "answer":
		var payload answerPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return badRequest("invalid answer payload")
		}
		view, err := h.service.SubmitAnswer(ctx, sessionID, payload.Choice)
		if err != nil {
			return errorMessage(err)
		}
		return outboundMessage[domain.SessionView]{Type: "session", Payload: view}
	case "status":
		view, err := h.service.Status(ctx, sessionID)
		if err != nil {
			return errorMessage(err)
		}
		return outboundMessage[domain.SessionView]{Type: "session", Payload: view}
	case "question":
		q, ok, err := h.service.CurrentQuestion(ctx, sessionID)
		if err != nil {
			return errorMessage(err)
		}
		payload := questionPayload{}
		if ok {
			payload.Question = &q
		}
		return outboundMessage[questionPayload]{Type: "question", Payload: payload}
	case "scores":
		report, err := h.service.ScoreReport(ctx)
		if err != nil {
			return errorMessage(err)
		}
		return outboundMessage[domain.ScoreReport]{Type: "scores", Payload: report}
	case "winners":
		report, err := h.service.Winners(ctx)
		if err != nil {
			return errorMessage(err)
		}
		return outboundMessage[domain.WinnerReport]{Type: "winners", Payload: report}
	case "clear":
		if err := h.service.ClearAllAnswers(ctx); err != nil {
			return errorMessage(err)
		}
		return outboundMessage[struct{}]{Type: "cleared"}
	default:
		return badRequest("unsupported message type")
	}
}
