package models

import "time"

// PaymentRequestInfoModel caches the external notice activation so a retried
// Activate command can skip the notice service.
type PaymentRequestInfoModel struct {
	CreditorReferenceID string `gorm:"primaryKey"`
	RptID               string `gorm:"index:idx_payment_requests_rpt"`
	PaymentToken        string
	IdempotencyKey      string
	Amount              int64
	Description         string
	CompanyName         string
	CreatedAt           time.Time
}

func (PaymentRequestInfoModel) TableName() string {
	return "payment_requests_info"
}
