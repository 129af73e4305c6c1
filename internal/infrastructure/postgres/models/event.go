package models

import "time"

// TransactionEventModel is one row of the append-only transaction log. The
// unique (transaction_id, code) index rejects a duplicate append of an
// equivalent event.
type TransactionEventModel struct {
	ID            string    `gorm:"primaryKey;type:uuid"`
	TransactionID string    `gorm:"type:uuid;not null;index:idx_tx_events;uniqueIndex:idx_tx_event_code"`
	Code          string    `gorm:"not null;uniqueIndex:idx_tx_event_code"`
	CreationDate  time.Time `gorm:"not null;index:idx_tx_events"`
	Data          []byte    `gorm:"type:jsonb"`
}

func (TransactionEventModel) TableName() string {
	return "transaction_events"
}
