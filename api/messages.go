package api

import (
	"encoding/json"
	"net/http"

	chaterrors "chat-room/errors"
)

type postMessageRequest struct {
	Text string `json:"text"`
}

type postMessageResponse struct {
	Success bool            `json:"success"`
	Message messageResponse `json:"message"`
}

// HandleListMessages returns the full history in append order, so a
// client reconnecting after a missed broadcast catches up here.
func (h *Handler) HandleListMessages(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, toMessageResponses(h.chat.History()))
}

// HandlePostMessage publishes a message authored by the verified
// identity. The response only acknowledges durability; delivery to peers
// happens on their streams.
func (h *Handler) HandlePostMessage(w http.ResponseWriter, r *http.Request) {
	username, ok := Identity(r.Context())
	if !ok {
		h.writeError(w, chaterrors.ErrNotAuthenticated)
		return
	}

	var req postMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	msg, err := h.chat.Post(r.Context(), username, req.Text)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, postMessageResponse{Success: true, Message: toMessageResponse(msg)})
}

// HandleSearchMessages queries the history index. The q parameter
// accepts inline flags, e.g. ?q=invoice+--author+alice+--limit+5
func (h *Handler) HandleSearchMessages(w http.ResponseWriter, r *http.Request) {
	results, err := h.chat.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toMessageResponses(results))
}

// HandleStats returns the current per-user send counts.
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.chat.Stats())
}
