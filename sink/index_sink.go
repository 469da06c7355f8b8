package sink

import (
	"context"
	"log/slog"

	"chat-room/domain/event"
	"chat-room/repositories"
)

// IndexSink mirrors appended messages into the search index. Indexing is
// a side effect with no delivery guarantee; a failure surfaces to the
// dispatcher's log and nowhere else.
type IndexSink struct {
	index repositories.ISearchIndex
	log   *slog.Logger
}

func NewIndexSink(index repositories.ISearchIndex, log *slog.Logger) IndexSink {
	return IndexSink{index: index, log: log}
}

func (s IndexSink) Consume(_ context.Context, e event.DomainEvent) error {
	switch evt := e.(type) {
	case event.MessagePosted:
		return s.index.Index(evt.Message)
	default:
		return nil
	}
}
