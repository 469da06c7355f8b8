// Package store owns the ordered message log and the per-user send
// counts, mirrored synchronously to a durable snapshot.
package store

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"

	"chat-room/domain"
	chaterrors "chat-room/errors"
)

// MessageStore is the single owner of the log and the aggregate. Every
// mutation happens under one mutex so the append and its counter
// increment are one atomic unit: no reader ever observes one without the
// other.
type MessageStore struct {
	mu         sync.Mutex
	log        []domain.Message
	counts     map[string]int
	lastMillis int64
	snapshots  ISnapshotStore
	logger     *slog.Logger

	// now is swappable for tests that need colliding timestamps.
	now func() time.Time
}

// NewMessageStore hydrates from the last snapshot when one exists. An
// unreadable or malformed snapshot is logged and treated as absent; it
// never prevents startup.
func NewMessageStore(snapshots ISnapshotStore, logger *slog.Logger) *MessageStore {
	s := &MessageStore{
		counts:    make(map[string]int),
		snapshots: snapshots,
		logger:    logger,
		now:       time.Now,
	}
	s.hydrate()
	return s
}

func (s *MessageStore) hydrate() {
	snap, found, err := s.snapshots.Load()
	if err != nil {
		s.logger.Warn("Snapshot unreadable, starting with empty history", "error", err)
		return
	}
	if !found {
		return
	}
	for _, m := range snap.Messages {
		s.log = append(s.log, domain.Message{
			Username: m.Username,
			Text:     m.Text,
			SentAt:   time.UnixMilli(m.Timestamp).UTC(),
		})
		if m.Timestamp > s.lastMillis {
			s.lastMillis = m.Timestamp
		}
	}
	for user, n := range snap.Counts {
		s.counts[user] = n
	}
	s.logger.Info("Hydrated chat history from snapshot",
		"messages", len(s.log), "users", len(s.counts))
}

// Append validates, records the message, increments the author's count
// and mirrors the whole state to disk before returning. A failed save is
// logged but does not roll back the in-memory append: memory runs ahead
// of disk rather than losing an acknowledged message from the live view.
func (s *MessageStore) Append(author, text string) (domain.Message, error) {
	if author == "" {
		return domain.Message{}, chaterrors.ErrMissingAuthor
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return domain.Message{}, chaterrors.ErrEmptyMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	millis := s.now().UnixMilli()
	// The wall clock may step backwards; SentAt stays non-decreasing and
	// append order stays authoritative.
	if millis < s.lastMillis {
		millis = s.lastMillis
	}
	s.lastMillis = millis

	msg := domain.Message{
		Username: author,
		Text:     trimmed,
		SentAt:   time.UnixMilli(millis).UTC(),
	}
	s.log = append(s.log, msg)
	s.counts[author]++

	if err := s.snapshots.Save(s.snapshotLocked()); err != nil {
		s.logger.Error("Snapshot save failed", "error", err)
	}
	return msg, nil
}

// AllMessages returns a copy of the log in append order.
func (s *MessageStore) AllMessages() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Message, len(s.log))
	copy(out, s.log)
	return out
}

// Counts returns a copy of the per-user aggregate.
func (s *MessageStore) Counts() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int, len(s.counts))
	for user, n := range s.counts {
		out[user] = n
	}
	return out
}

// Len reports the number of recorded messages.
func (s *MessageStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.log)
}

func (s *MessageStore) snapshotLocked() Snapshot {
	messages := lo.Map(s.log, func(m domain.Message, _ int) SnapshotMessage {
		return SnapshotMessage{
			Username:  m.Username,
			Text:      m.Text,
			Timestamp: m.SentAtMillis(),
		}
	})
	counts := make(map[string]int, len(s.counts))
	for user, n := range s.counts {
		counts[user] = n
	}
	return Snapshot{Messages: messages, Counts: counts}
}
