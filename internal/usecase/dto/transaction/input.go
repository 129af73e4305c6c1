package txdto

import "github.com/halvora/transaction-service/internal/domain"

type NoticeRequest struct {
	RptID               string
	Amount              int64
	Description         string
	CreditorReferenceID string
	CompanyName         string
	TransferList        []domain.Transfer
	AllCCP              bool
}

type NewTransactionInput struct {
	Email    string
	ClientID domain.ClientID
	Notices  []NoticeRequest
}

type RequestAuthorizationInput struct {
	TransactionID string
	AuthData      *domain.AuthorizationRequestData
	Language      string
	UserID        string
}

// UpdateAuthorizationInput carries the gateway-specific authorization
// outcome: OperationResult for NPG, OutcomeCode for redirect flows.
type UpdateAuthorizationInput struct {
	TransactionID     string
	Gateway           domain.GatewayKind
	OperationResult   string
	OutcomeCode       string
	AuthorizationCode string
	ErrorCode         string
}

type UserReceiptInput struct {
	TransactionID string
	PaymentTokens []string
	Language      string
}
