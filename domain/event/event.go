package event

import "chat-room/domain"

// DomainEvent is anything the dispatcher can fan out to sinks.
// Kind doubles as the SSE event name on the wire.
type DomainEvent interface {
	Kind() string
}

// MessagePosted carries a newly appended message.
type MessagePosted struct {
	Message domain.Message
}

func (MessagePosted) Kind() string { return "message" }

// StatsUpdated carries the full per-user send counts, taken after the
// append that triggered it.
type StatsUpdated struct {
	Counts map[string]int
}

func (StatsUpdated) Kind() string { return "stats" }
