package models

import "time"

// TransactionViewModel is the read-optimized mirror of reduced transaction
// state. A cache of the event log, never authoritative.
type TransactionViewModel struct {
	TransactionID   string `gorm:"primaryKey;type:uuid"`
	Status          string `gorm:"index:idx_view_status"`
	ClientID        string
	Email           string
	Amount          int64
	Fee             int64
	NoticesJSON     []byte `gorm:"type:jsonb"`
	OperationResult string
	ClosureOutcome  string
	UpdatedAt       time.Time
}

func (TransactionViewModel) TableName() string {
	return "transactions_view"
}
