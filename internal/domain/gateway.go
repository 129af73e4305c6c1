package domain

import "context"

type GatewayKind string

const (
	GatewayNPG      GatewayKind = "NPG"
	GatewayRedirect GatewayKind = "REDIRECT"
)

// WorkflowState is the gateway-reported progress of an authorization attempt.
type WorkflowState string

const (
	StateRedirectedToExternalDomain WorkflowState = "REDIRECTED_TO_EXTERNAL_DOMAIN"
	StatePaymentComplete            WorkflowState = "PAYMENT_COMPLETE"
	StateGdiVerification            WorkflowState = "GDI_VERIFICATION"
)

// Field is one entry of a gateway field set. Src carries the URL of an
// embedded verification step and may be absent.
type Field struct {
	ID  string  `json:"id,omitempty"`
	Src *string `json:"src,omitempty"`
}

type FieldSet struct {
	Fields []Field `json:"fields"`
}

// WorkflowStateResponse is the heterogeneous gateway answer to an
// authorization or confirm call. State may be absent on malformed replies.
type WorkflowStateResponse struct {
	State    *WorkflowState
	URL      *string
	FieldSet *FieldSet
}

// BuildSessionResponse is the result of the wallet/APM build-session step.
type BuildSessionResponse struct {
	OrderID       string
	SessionID     string
	SecurityToken string
}

type RedirectResponse struct {
	URL              string
	PSPTransactionID string
	Amount           int64
	TimeoutMillis    int64
}

type OperationResult string

const (
	OperationResultExecuted OperationResult = "EXECUTED"
	OperationResultDeclined OperationResult = "DECLINED"
	OperationResultDenied   OperationResult = "DENIED_BY_RISK"
	OperationResultCanceled OperationResult = "CANCELED"
	OperationResultFailed   OperationResult = "FAILED"
)

type ClosePaymentOutcome string

const (
	ClosePaymentOutcomeOK ClosePaymentOutcome = "OK"
	ClosePaymentOutcomeKO ClosePaymentOutcome = "KO"
)

type ClosePaymentRequest struct {
	TransactionID     string
	PaymentTokens     []string
	Outcome           ClosePaymentOutcome
	AuthorizationCode string
	Fee               int64
	TotalAmount       int64
	PspID             string
	BrokerName        string
	PspChannelCode    string
	PaymentTypeCode   string
}

type ClosePaymentResponse struct {
	Outcome ClosePaymentOutcome
}

// GatewayAdapter is the capability-polymorphic boundary over the payment
// gateway backends. Concrete clients live outside the core; handlers only
// dispatch on the AuthDetails variant and the declared GatewayKind.
type GatewayAdapter interface {
	RequestCardsAuthorization(ctx context.Context, data *AuthorizationRequestData, correlationID string) (*WorkflowStateResponse, error)
	RequestBuildSession(ctx context.Context, data *AuthorizationRequestData, correlationID string, isContextual bool, clientID ClientID, language, userID string) (*BuildSessionResponse, error)
	RequestBuildApmPayment(ctx context.Context, data *AuthorizationRequestData, correlationID string, clientID ClientID, language, userID string) (*BuildSessionResponse, error)
	RequestRedirectAuthorization(ctx context.Context, data *AuthorizationRequestData, touchpoint string, clientID ClientID) (*RedirectResponse, error)
	ClosePayment(ctx context.Context, req *ClosePaymentRequest) (*ClosePaymentResponse, error)
}
