package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"chat-room/domain/event"
	"chat-room/sink"
)

// HandleEvents is the long-lived push channel. It registers a dedicated
// sink, emits the current aggregate snapshot, then blocks for the
// lifetime of the connection relaying events as they arrive. The client
// closing the transport is the only cancellation trigger; the deferred
// cleanup releases both the registry entry and the heartbeat ticker, so
// churn cannot leak either.
func (h *Handler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	username, _ := Identity(r.Context())

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	streamSink := sink.NewStreamSink(h.bufferSize)
	id := h.chat.Subscribe(streamSink)
	h.log.Info("Stream opened", "username", username, "subscriber_id", id)
	defer func() {
		h.chat.Unsubscribe(id)
		streamSink.Close()
		h.log.Info("Stream closed", "username", username, "subscriber_id", id)
	}()

	// The aggregate snapshot goes out first so a fresh client can render
	// counters before any message arrives.
	if err := writeEvent(w, flusher, event.StatsUpdated{Counts: h.chat.Stats()}); err != nil {
		return
	}

	ticker := time.NewTicker(h.heartbeatInterval)
	defer ticker.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case evt, open := <-streamSink.Events():
			if !open {
				return
			}
			if err := writeEvent(w, flusher, evt); err != nil {
				h.log.Warn("Stream write failed",
					"username", username, "subscriber_id", id, "error", err)
				return
			}
		case <-ticker.C:
			// No-op comment frame; keeps intermediaries from timing out
			// an idle connection.
			if _, err := fmt.Fprint(w, ":keep-alive\n\n"); err != nil {
				h.log.Warn("Stream write failed",
					"username", username, "subscriber_id", id, "error", err)
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w io.Writer, flusher http.Flusher, e event.DomainEvent) error {
	payload, err := json.Marshal(eventPayload(e))
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", e.Kind(), payload); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}

func eventPayload(e event.DomainEvent) any {
	switch evt := e.(type) {
	case event.MessagePosted:
		return toMessageResponse(evt.Message)
	case event.StatsUpdated:
		return evt.Counts
	default:
		return nil
	}
}
