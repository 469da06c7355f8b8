// Package api exposes the chat over HTTP: a JSON request surface plus a
// long-lived SSE stream for real-time delivery.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/samber/lo"

	"chat-room/auth"
	"chat-room/domain"
	chaterrors "chat-room/errors"
	"chat-room/services"
)

// SessionCookie carries the signed session token.
const SessionCookie = "chat_session"

type Handler struct {
	log               *slog.Logger
	chat              services.IChatService
	auth              services.IAuthService
	tokens            *auth.TokenIssuer
	bufferSize        int
	heartbeatInterval time.Duration
	sessionTTL        time.Duration
	started           time.Time
}

func NewHandler(log *slog.Logger, chat services.IChatService, authService services.IAuthService,
	tokens *auth.TokenIssuer, bufferSize int, heartbeatInterval, sessionTTL time.Duration) *Handler {
	return &Handler{
		log:               log,
		chat:              chat,
		auth:              authService,
		tokens:            tokens,
		bufferSize:        bufferSize,
		heartbeatInterval: heartbeatInterval,
		sessionTTL:        sessionTTL,
		started:           time.Now(),
	}
}

// messageResponse is the wire form of a message, identical in the list
// endpoint, the search endpoint and the SSE message event.
type messageResponse struct {
	Username  string `json:"username"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

func toMessageResponse(m domain.Message) messageResponse {
	return messageResponse{
		Username:  m.Username,
		Text:      m.Text,
		Timestamp: m.SentAtMillis(),
	}
}

func toMessageResponses(messages []domain.Message) []messageResponse {
	return lo.Map(messages, func(m domain.Message, _ int) messageResponse {
		return toMessageResponse(m)
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Error("Response encoding failed", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := chaterrors.MapToHTTPStatus(err)
	if status == http.StatusInternalServerError {
		// Internal detail stays in the log, not on the wire.
		h.log.Error("Request failed", "error", err)
		h.writeJSON(w, status, map[string]string{"error": "internal error"})
		return
	}
	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}
