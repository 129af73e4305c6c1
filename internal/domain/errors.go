package domain

import (
	"errors"
	"fmt"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrUnsupportedGateway  = errors.New("unsupported gateway/method combination")
)

// AlreadyProcessedError is the state-guard rejection: the transaction already
// advanced past the command's admissible source states. It is the primary
// idempotency mechanism, not an exceptional path.
type AlreadyProcessedError struct {
	TransactionID string
	Status        TransactionStatus
}

func (e *AlreadyProcessedError) Error() string {
	return fmt.Sprintf("transaction %s already processed: current status %s", e.TransactionID, e.Status)
}

// LockNotAcquiredError means a concurrent invocation holds the lease; no
// external call was made.
type LockNotAcquiredError struct {
	LockID string
}

func (e *LockNotAcquiredError) Error() string {
	return fmt.Sprintf("lock %s not acquired", e.LockID)
}

type InvalidRequestError struct {
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return "invalid request: " + e.Reason
}

// BadGatewayError marks a gateway response whose shape contradicts its
// declared workflow state. Never retried: a malformed reply stays malformed.
type BadGatewayError struct {
	Detail string
}

func (e *BadGatewayError) Error() string {
	return "bad gateway: " + e.Detail
}

// PublishError reports a queue delivery failure for an event that was already
// durably appended. The caller must treat the command as committed but not
// yet propagated.
type PublishError struct {
	TransactionID string
	Code          EventCode
	Err           error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("event %s for transaction %s appended but not published: %v", e.Code, e.TransactionID, e.Err)
}

func (e *PublishError) Unwrap() error { return e.Err }
