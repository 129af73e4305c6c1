package domain

type TransactionStatus string

const (
	StatusNotFound               TransactionStatus = "NOT_FOUND"
	StatusActivated              TransactionStatus = "ACTIVATED"
	StatusAuthorizationRequested TransactionStatus = "AUTHORIZATION_REQUESTED"
	StatusAuthorizationCompleted TransactionStatus = "AUTHORIZATION_COMPLETED"
	StatusClosureRequested       TransactionStatus = "CLOSURE_REQUESTED"
	StatusClosed                 TransactionStatus = "CLOSED"
	StatusClosureFailed          TransactionStatus = "CLOSURE_FAILED"
	StatusNotificationRequested  TransactionStatus = "NOTIFICATION_REQUESTED"
	StatusNotified               TransactionStatus = "NOTIFIED"
	StatusNotifiedFailed         TransactionStatus = "NOTIFIED_FAILED"
	StatusCanceled               TransactionStatus = "CANCELED"
	StatusExpired                TransactionStatus = "EXPIRED"
	StatusRefundRequested        TransactionStatus = "REFUND_REQUESTED"
)

// IsTerminal reports whether no further command may advance the transaction.
func (s TransactionStatus) IsTerminal() bool {
	switch s {
	case StatusNotified, StatusNotifiedFailed, StatusCanceled, StatusRefundRequested:
		return true
	}
	return false
}

type ClientID string

const (
	ClientCheckout ClientID = "CHECKOUT"
	ClientIO       ClientID = "IO"
)

// PaymentNotice is a single creditor position paid by the transaction.
// The notice set is fixed at activation (cart support: one or more notices).
type PaymentNotice struct {
	RptID               string
	PaymentToken        string
	Amount              int64 // minor units
	Description         string
	CreditorReferenceID string
	CompanyName         string
	TransferList        []Transfer
	AllCCP              bool
}

type Transfer struct {
	PaFiscalCode     string
	TransferAmount   int64
	TransferCategory string
	DigitalStamp     bool
}

// ReducedTransaction is the fold of a transaction's ordered event stream.
// It is a value computed on demand and never stored as the system of record.
type ReducedTransaction struct {
	TransactionID  string
	Status         TransactionStatus
	ClientID       ClientID
	Email          string
	PaymentNotices []PaymentNotice

	AuthorizationRequest   *AuthorizationRequestedData
	AuthorizationCompleted *AuthorizationCompletedData
	ClosureOutcome         *ClosePaymentOutcome

	// StatusBeforeExpiration keeps the last non-expired status so that
	// receipt delivery can still be decided for expired transactions.
	StatusBeforeExpiration TransactionStatus
}

// TotalAmount sums the notice amounts in minor units.
func (t *ReducedTransaction) TotalAmount() int64 {
	var total int64
	for _, n := range t.PaymentNotices {
		total += n.Amount
	}
	return total
}
