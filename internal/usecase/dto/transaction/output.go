package txdto

import "github.com/halvora/transaction-service/internal/domain"

type TransactionOutput struct {
	TransactionID  string
	Status         domain.TransactionStatus
	ClientID       domain.ClientID
	PaymentNotices []domain.PaymentNotice
	IdempotencyKey string
}

type RequestAuthorizationOutput struct {
	AuthorizationRequestID string
	AuthorizationURL       string
}

type UpdateAuthorizationOutput struct {
	TransactionID string
	Status        domain.TransactionStatus
}

type ClosureOutput struct {
	TransactionID string
	Status        domain.TransactionStatus
	Outcome       domain.ClosePaymentOutcome
}

type UserReceiptOutput struct {
	TransactionID string
	Status        domain.TransactionStatus
}
