package runtime

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"chat-room/domain/event"
	chaterrors "chat-room/errors"
	"chat-room/moderation"
	"chat-room/store"
)

func newDispatcher(t *testing.T) (*Dispatcher, *store.MessageStore, *Registry) {
	t.Helper()
	logger := testLogger()
	snapshots := store.NewFileSnapshotStore(filepath.Join(t.TempDir(), "chat.json"))
	messageStore := store.NewMessageStore(snapshots, logger)
	registry := NewRegistry(logger)
	return NewDispatcher(logger, messageStore, registry), messageStore, registry
}

func TestDispatcher_Publish_Scenario(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	dispatcher, messageStore, registry := newDispatcher(t)

	// Given one successful publish on a fresh store
	_, err := dispatcher.Publish(ctx, "alice", "hi")
	req.NoError(err)
	req.Len(messageStore.AllMessages(), 1)
	req.Equal(map[string]int{"alice": 1}, messageStore.Counts())

	// When bob posts whitespace only
	_, err = dispatcher.Publish(ctx, "bob", "  ")

	// Then the publish fails and nothing changed
	req.ErrorIs(err, chaterrors.ErrEmptyMessage)
	req.Len(messageStore.AllMessages(), 1)
	req.Equal(map[string]int{"alice": 1}, messageStore.Counts())

	// Given a subscriber registered before the next publish
	subscriber := &captureSink{}
	registry.Register(subscriber)

	// When alice posts again
	msg, err := dispatcher.Publish(ctx, "alice", "yo")
	req.NoError(err)
	req.Len(messageStore.AllMessages(), 2)

	// Then the subscriber received exactly one message event followed by
	// one stats event
	req.Len(subscriber.events, 2)
	posted, ok := subscriber.events[0].(event.MessagePosted)
	req.True(ok)
	req.Equal("alice", posted.Message.Username)
	req.Equal("yo", posted.Message.Text)
	req.Equal(msg, posted.Message)

	stats, ok := subscriber.events[1].(event.StatsUpdated)
	req.True(ok)
	req.Equal(map[string]int{"alice": 2}, stats.Counts)
}

func TestDispatcher_Publish_No_Broadcast_On_Validation_Error(t *testing.T) {
	req := require.New(t)
	dispatcher, _, registry := newDispatcher(t)
	subscriber := &captureSink{}
	registry.Register(subscriber)

	_, err := dispatcher.Publish(context.Background(), "", "hello")

	req.ErrorIs(err, chaterrors.ErrMissingAuthor)
	req.Empty(subscriber.events)
}

func TestDispatcher_Publish_Censors_Text(t *testing.T) {
	req := require.New(t)
	dispatcher, messageStore, _ := newDispatcher(t)
	moderator, err := moderation.NewModerator([]string{"troll"}, '*')
	req.NoError(err)
	dispatcher.WithModerator(moderator)

	msg, err := dispatcher.Publish(context.Background(), "alice", "what a TROLL move")

	req.NoError(err)
	req.Equal("what a ***** move", msg.Text)
	req.Equal("what a ***** move", messageStore.AllMessages()[0].Text)
}

func TestDispatcher_Permanent_Sink_Failure_Does_Not_Block_Subscribers(t *testing.T) {
	req := require.New(t)
	dispatcher, _, registry := newDispatcher(t)
	dispatcher.Add(failingSink{})
	subscriber := &captureSink{}
	registry.Register(subscriber)

	_, err := dispatcher.Publish(context.Background(), "alice", "hi")

	req.NoError(err)
	req.Len(subscriber.events, 2)
}
