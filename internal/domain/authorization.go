package domain

// AuthDetails is the method-specific slice of an authorization request.
// Dispatch happens on the concrete variant, not on the gateway kind alone.
type AuthDetails interface {
	authDetailKind() string
}

type CardDetails struct {
	OrderID string
}

type WalletDetails struct {
	WalletID string
}

type ApmDetails struct{}

type RedirectDetails struct{}

func (CardDetails) authDetailKind() string     { return "CARDS" }
func (WalletDetails) authDetailKind() string   { return "WALLET" }
func (ApmDetails) authDetailKind() string      { return "APM" }
func (RedirectDetails) authDetailKind() string { return "REDIRECT" }

// AuthorizationRequestData carries everything a single authorization attempt
// needs. Immutable once built, except for the session id merged in after a
// build-session step.
type AuthorizationRequestData struct {
	TransactionID       string
	PaymentNotices      []PaymentNotice
	Fee                 int64
	PaymentInstrumentID string
	PspID               string
	PaymentTypeCode     string
	BrokerName          string
	PspChannelCode      string
	PaymentMethodName   string
	Gateway             GatewayKind
	SessionID           string
	ContractID          string
	Brand               string
	Details             AuthDetails
	AssetURL            string
	BrandAssets         map[string]string
	IdempotencyKeyID    string
	ContextualOnboard   bool
}

// WalletPaymentInfo correlates a wallet/APM redirect callback back to the
// transaction that opened the gateway session.
type WalletPaymentInfo struct {
	OrderID       string `json:"orderId"`
	SessionID     string `json:"sessionId"`
	SecurityToken string `json:"securityToken"`
}
