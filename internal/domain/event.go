package domain

import "time"

type EventCode string

const (
	EventActivated              EventCode = "TRANSACTION_ACTIVATED_EVENT"
	EventAuthorizationRequested EventCode = "TRANSACTION_AUTHORIZATION_REQUESTED_EVENT"
	EventAuthorizationCompleted EventCode = "TRANSACTION_AUTHORIZATION_COMPLETED_EVENT"
	EventClosureRequested       EventCode = "TRANSACTION_CLOSURE_REQUESTED_EVENT"
	EventClosed                 EventCode = "TRANSACTION_CLOSED_EVENT"
	EventClosureFailed          EventCode = "TRANSACTION_CLOSURE_FAILED_EVENT"
	EventUserReceiptRequested   EventCode = "TRANSACTION_USER_RECEIPT_REQUESTED_EVENT"
	EventUserReceiptAddedOK     EventCode = "TRANSACTION_USER_RECEIPT_ADDED_OK_EVENT"
	EventUserReceiptAddedKO     EventCode = "TRANSACTION_USER_RECEIPT_ADDED_KO_EVENT"
	EventUserCanceled           EventCode = "TRANSACTION_USER_CANCELED_EVENT"
	EventExpired                EventCode = "TRANSACTION_EXPIRED_EVENT"
	EventRefundRequested        EventCode = "TRANSACTION_REFUND_REQUESTED_EVENT"
)

// Event is one immutable entry of a transaction's append-only log. For a
// given transaction events are totally ordered by CreationDate and that
// order is the only valid replay order.
type Event struct {
	ID            string
	TransactionID string
	Code          EventCode
	CreationDate  time.Time
	Data          EventData
}

// EventData is the closed payload variant set, one member per EventCode.
type EventData interface {
	eventCode() EventCode
}

type ActivatedData struct {
	Email                       string          `json:"email"`
	PaymentNotices              []PaymentNotice `json:"paymentNotices"`
	ClientID                    ClientID        `json:"clientId"`
	IdempotencyKey              string          `json:"idempotencyKey"`
	PaymentTokenValiditySeconds int             `json:"paymentTokenValiditySeconds"`
}

type AuthorizationRequestedData struct {
	AuthorizationRequestID string      `json:"authorizationRequestId"`
	Fee                    int64       `json:"fee"`
	PaymentInstrumentID    string      `json:"paymentInstrumentId"`
	PspID                  string      `json:"pspId"`
	PaymentTypeCode        string      `json:"paymentTypeCode"`
	BrokerName             string      `json:"brokerName"`
	PspChannelCode         string      `json:"pspChannelCode"`
	PaymentMethodName      string      `json:"paymentMethodName"`
	Gateway                GatewayKind `json:"gateway"`
	SessionID              string      `json:"sessionId,omitempty"`
	Brand                  string      `json:"brand,omitempty"`
	ContextualOnboard      bool        `json:"contextualOnboard"`
}

type AuthorizationCompletedData struct {
	AuthorizationCode string          `json:"authorizationCode,omitempty"`
	OperationResult   OperationResult `json:"operationResult"`
	ErrorCode         string          `json:"errorCode,omitempty"`
}

type ClosureRequestedData struct{}

type ClosedData struct {
	Outcome ClosePaymentOutcome `json:"outcome"`
}

type ClosureFailedData struct {
	Outcome ClosePaymentOutcome `json:"outcome"`
}

type UserReceiptRequestedData struct {
	PaymentTokens []string `json:"paymentTokens"`
	Language      string   `json:"language,omitempty"`
}

type UserReceiptAddedOKData struct{}

type UserReceiptAddedKOData struct{}

type UserCanceledData struct{}

type ExpiredData struct {
	StatusBeforeExpiration TransactionStatus `json:"statusBeforeExpiration"`
}

type RefundRequestedData struct {
	Reason string `json:"reason,omitempty"`
}

func (ActivatedData) eventCode() EventCode              { return EventActivated }
func (AuthorizationRequestedData) eventCode() EventCode { return EventAuthorizationRequested }
func (AuthorizationCompletedData) eventCode() EventCode { return EventAuthorizationCompleted }
func (ClosureRequestedData) eventCode() EventCode       { return EventClosureRequested }
func (ClosedData) eventCode() EventCode                 { return EventClosed }
func (ClosureFailedData) eventCode() EventCode          { return EventClosureFailed }
func (UserReceiptRequestedData) eventCode() EventCode   { return EventUserReceiptRequested }
func (UserReceiptAddedOKData) eventCode() EventCode     { return EventUserReceiptAddedOK }
func (UserReceiptAddedKOData) eventCode() EventCode     { return EventUserReceiptAddedKO }
func (UserCanceledData) eventCode() EventCode           { return EventUserCanceled }
func (ExpiredData) eventCode() EventCode                { return EventExpired }
func (RefundRequestedData) eventCode() EventCode        { return EventRefundRequested }

// Code returns the event code matching an EventData payload.
func Code(data EventData) EventCode {
	return data.eventCode()
}
