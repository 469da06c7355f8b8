package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"

	chaterrors "chat-room/errors"
)

func newTestStore(t *testing.T) (*MessageStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chat.json")
	return NewMessageStore(NewFileSnapshotStore(path), logs.GetLoggerFromLevel(slog.LevelError)), path
}

func Test_Append_Increments_Counts(t *testing.T) {
	req := require.New(t)
	s, _ := newTestStore(t)

	// When several authors post
	_, err := s.Append("alice", "hello")
	req.NoError(err)
	_, err = s.Append("bob", "hi alice")
	req.NoError(err)
	_, err = s.Append("alice", "hi bob")
	req.NoError(err)

	// Then counts match the per-author log cardinality
	counts := s.Counts()
	req.Equal(2, counts["alice"])
	req.Equal(1, counts["bob"])
	req.Len(s.AllMessages(), 3)
	req.Equal(3, s.Len())
}

func Test_Append_Rejects_Blank_Text(t *testing.T) {
	req := require.New(t)
	s, _ := newTestStore(t)

	_, err := s.Append("alice", "   ")

	req.ErrorIs(err, chaterrors.ErrEmptyMessage)
	req.Empty(s.AllMessages())
	req.Empty(s.Counts())
}

func Test_Append_Rejects_Missing_Author(t *testing.T) {
	req := require.New(t)
	s, _ := newTestStore(t)

	_, err := s.Append("", "hello")

	req.ErrorIs(err, chaterrors.ErrMissingAuthor)
	req.Empty(s.AllMessages())
}

func Test_Append_Trims_Text(t *testing.T) {
	req := require.New(t)
	s, _ := newTestStore(t)

	msg, err := s.Append("alice", "  hello  ")

	req.NoError(err)
	req.Equal("hello", msg.Text)
}

func Test_Append_Preserves_Order_On_Timestamp_Collision(t *testing.T) {
	req := require.New(t)
	s, _ := newTestStore(t)
	// Given a frozen clock, so both messages land on the same millisecond
	frozen := time.UnixMilli(1700000000000)
	s.now = func() time.Time { return frozen }

	_, err := s.Append("alice", "first")
	req.NoError(err)
	_, err = s.Append("alice", "second")
	req.NoError(err)

	messages := s.AllMessages()
	req.Equal("first", messages[0].Text)
	req.Equal("second", messages[1].Text)
	req.Equal(messages[0].SentAt, messages[1].SentAt)
}

func Test_Append_Clamps_Backwards_Clock(t *testing.T) {
	req := require.New(t)
	s, _ := newTestStore(t)
	clock := time.UnixMilli(1700000000000)
	s.now = func() time.Time { return clock }

	first, err := s.Append("alice", "first")
	req.NoError(err)

	// When the wall clock steps backwards
	clock = clock.Add(-1 * time.Minute)
	second, err := s.Append("alice", "second")
	req.NoError(err)

	// Then SentAt stays non-decreasing
	req.False(second.SentAt.Before(first.SentAt))
}

func Test_Snapshot_RoundTrip(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "chat.json")
	logger := logs.GetLoggerFromLevel(slog.LevelError)

	first := NewMessageStore(NewFileSnapshotStore(path), logger)
	for i := 0; i < 5; i++ {
		_, err := first.Append("alice", fmt.Sprintf("message %d", i))
		req.NoError(err)
	}
	_, err := first.Append("bob", "hello")
	req.NoError(err)

	// When a fresh instance hydrates from the same file
	second := NewMessageStore(NewFileSnapshotStore(path), logger)

	// Then log order, content and counts are identical
	req.Equal(first.AllMessages(), second.AllMessages())
	req.Equal(first.Counts(), second.Counts())
}

func Test_Startup_Hydrates_From_Snapshot(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "chat.json")
	document := `{"messages":[{"username":"x","text":"hey","timestamp":1}],"counts":{"x":1}}`
	req.NoError(os.WriteFile(path, []byte(document), 0o644))

	s := NewMessageStore(NewFileSnapshotStore(path), logs.GetLoggerFromLevel(slog.LevelError))

	messages := s.AllMessages()
	req.Len(messages, 1)
	req.Equal("x", messages[0].Username)
	req.Equal("hey", messages[0].Text)
	req.Equal(int64(1), messages[0].SentAtMillis())
	req.Equal(map[string]int{"x": 1}, s.Counts())
}

func Test_Startup_Ignores_Corrupt_Snapshot(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "chat.json")
	req.NoError(os.WriteFile(path, []byte("{not json"), 0o644))

	// A malformed document must never prevent startup
	s := NewMessageStore(NewFileSnapshotStore(path), logs.GetLoggerFromLevel(slog.LevelError))

	req.Empty(s.AllMessages())
	req.Empty(s.Counts())
}

// failingSnapshotStore simulates unavailable storage.
type failingSnapshotStore struct{}

func (failingSnapshotStore) Save(Snapshot) error { return fmt.Errorf("disk on fire") }

func (failingSnapshotStore) Load() (Snapshot, bool, error) { return Snapshot{}, false, nil }

func Test_Append_Survives_Persistence_Failure(t *testing.T) {
	req := require.New(t)
	s := NewMessageStore(failingSnapshotStore{}, logs.GetLoggerFromLevel(slog.LevelError))

	// A failed save keeps the live view intact and does not fail the post
	msg, err := s.Append("alice", "still here")

	req.NoError(err)
	req.Equal("still here", msg.Text)
	req.Len(s.AllMessages(), 1)
	req.Equal(1, s.Counts()["alice"])
}
