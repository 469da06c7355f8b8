// Package domain contains core concepts of the chat room.
// Messages are immutable once appended; append order, not wall clock,
// is the authoritative ordering.
package domain

import "time"

// Message is one immutable chat entry.
type Message struct {
	Username string
	Text     string
	SentAt   time.Time
}

// SentAtMillis is the wire representation of the timestamp.
func (m Message) SentAtMillis() int64 {
	return m.SentAt.UnixMilli()
}
