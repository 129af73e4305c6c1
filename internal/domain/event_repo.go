package domain

import (
	"context"
	"time"
)

// EventRepository is the append-only, per-transaction ordered event log.
// Append is the durability boundary of every command pipeline.
type EventRepository interface {
	Append(ctx context.Context, event *Event) (*Event, error)
	// FindOrdered returns the transaction's events ascending by creation
	// date, possibly empty.
	FindOrdered(ctx context.Context, transactionID string) ([]*Event, error)
	// FindStaleTransactionIDs lists transactions whose latest event is
	// older than the cutoff and whose status is not terminal yet.
	FindStaleTransactionIDs(ctx context.Context, cutoff time.Time) ([]string, error)
}
