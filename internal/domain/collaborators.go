package domain

import (
	"context"
	"time"
)

// TokenIssuer mints short-lived bearer tokens for the app client's outcome
// redirect.
type TokenIssuer interface {
	CreateToken(ctx context.Context, claims map[string]string, audience string, duration time.Duration) (string, error)
}

// SessionRegistry links a payment instrument and gateway order to the
// transaction for card flows. Failures propagate verbatim.
type SessionRegistry interface {
	UpdateSession(ctx context.Context, paymentInstrumentID, orderID, transactionID string) error
}

// WalletSessionCache stores the wallet/APM session so a later redirect
// callback can be correlated with the transaction.
type WalletSessionCache interface {
	Save(ctx context.Context, transactionID string, info WalletPaymentInfo) error
}

// PaymentRequestInfo is the cached result of a prior "activate payment
// notice" call, keyed by creditor reference, so that activation retries skip
// the external notice service.
type PaymentRequestInfo struct {
	CreditorReferenceID string
	RptID               string
	PaymentToken        string
	IdempotencyKey      string
	Amount              int64
	Description         string
	CompanyName         string
	CreatedAt           time.Time
}

type PaymentRequestsInfoRepository interface {
	FindByCreditorReference(ctx context.Context, creditorReferenceID string) (*PaymentRequestInfo, error)
	Save(ctx context.Context, info *PaymentRequestInfo) error
}

// NoticeService activates a payment notice at the creditor side and returns
// the payment token to collect.
type NoticeService interface {
	ActivatePaymentNotice(ctx context.Context, rptID string, amount int64, idempotencyKey string) (*PaymentRequestInfo, error)
}

// ProjectionWriter mirrors reduced state into a read-optimized document.
// It is a cache, never authoritative; when the view-update toggle is off the
// writer is a pure pass-through returning the in-memory value unsaved.
type ProjectionWriter interface {
	Save(ctx context.Context, tx *ReducedTransaction) (*ReducedTransaction, error)
}
