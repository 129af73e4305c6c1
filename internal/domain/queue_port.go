package domain

import (
	"context"
	"time"
)

// QueueMessage hands a freshly appended event to a downstream consumer.
// Payload is opaque to the transport; TTL and visibility delay are the only
// delivery semantics this core relies on.
type QueueMessage struct {
	Event           *Event
	TTL             time.Duration
	VisibilityDelay time.Duration
}

type DeliveryReceipt struct {
	MessageID string
	SentAt    time.Time
}

// QueuePublisher is at-most-once-attempted: delivery failure is surfaced to
// the caller, never retried here.
type QueuePublisher interface {
	SendWithResponse(ctx context.Context, msg QueueMessage) (*DeliveryReceipt, error)
}
