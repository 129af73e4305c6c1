package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ev(transactionID string, data EventData) *Event {
	return &Event{
		ID:            "ev-" + string(Code(data)),
		TransactionID: transactionID,
		Code:          Code(data),
		CreationDate:  time.Now(),
		Data:          data,
	}
}

func happyPathEvents(transactionID string) []*Event {
	return []*Event{
		ev(transactionID, &ActivatedData{
			Email:    "user@example.org",
			ClientID: ClientCheckout,
			PaymentNotices: []PaymentNotice{
				{RptID: "rpt-1", PaymentToken: "tok-1", Amount: 100},
				{RptID: "rpt-2", PaymentToken: "tok-2", Amount: 250},
			},
		}),
		ev(transactionID, &AuthorizationRequestedData{AuthorizationRequestID: "order-1", Fee: 10, Gateway: GatewayNPG}),
		ev(transactionID, &AuthorizationCompletedData{AuthorizationCode: "00", OperationResult: OperationResultExecuted}),
		ev(transactionID, &ClosureRequestedData{}),
		ev(transactionID, &ClosedData{Outcome: ClosePaymentOutcomeOK}),
		ev(transactionID, &UserReceiptRequestedData{PaymentTokens: []string{"tok-1", "tok-2"}}),
		ev(transactionID, &UserReceiptAddedOKData{}),
	}
}

func TestReduceEmptyStreamIsNotFound(t *testing.T) {
	tx := Reduce(nil)
	assert.Equal(t, StatusNotFound, tx.Status)
	assert.Empty(t, tx.TransactionID)
}

func TestReduceHappyPathPrefixes(t *testing.T) {
	events := happyPathEvents("tx-1")

	expected := []TransactionStatus{
		StatusActivated,
		StatusAuthorizationRequested,
		StatusAuthorizationCompleted,
		StatusClosureRequested,
		StatusClosed,
		StatusNotificationRequested,
		StatusNotified,
	}

	// Every prefix of a valid stream lands on a state reachable through
	// the declared transition graph.
	for i := range events {
		tx := Reduce(events[:i+1])
		assert.Equal(t, expected[i], tx.Status, "prefix of %d events", i+1)
	}

	// Replaying the same sequence twice yields the same result.
	again := Reduce(events)
	assert.Equal(t, StatusNotified, again.Status)
	assert.Equal(t, "tx-1", again.TransactionID)
}

func TestReduceAccumulatesData(t *testing.T) {
	tx := Reduce(happyPathEvents("tx-1")[:5])

	require.NotNil(t, tx.AuthorizationRequest)
	assert.Equal(t, int64(10), tx.AuthorizationRequest.Fee)
	require.NotNil(t, tx.AuthorizationCompleted)
	assert.Equal(t, OperationResultExecuted, tx.AuthorizationCompleted.OperationResult)
	require.NotNil(t, tx.ClosureOutcome)
	assert.Equal(t, ClosePaymentOutcomeOK, *tx.ClosureOutcome)
	assert.Equal(t, int64(350), tx.TotalAmount())
	assert.Len(t, tx.PaymentNotices, 2)
}

func TestReduceUserCanceled(t *testing.T) {
	events := []*Event{
		ev("tx-2", &ActivatedData{ClientID: ClientIO}),
		ev("tx-2", &UserCanceledData{}),
	}

	tx := Reduce(events)
	assert.Equal(t, StatusCanceled, tx.Status)
	assert.True(t, tx.Status.IsTerminal())
}

func TestReduceClosureFailed(t *testing.T) {
	events := happyPathEvents("tx-3")[:4]
	events = append(events, ev("tx-3", &ClosureFailedData{Outcome: ClosePaymentOutcomeKO}))

	tx := Reduce(events)
	assert.Equal(t, StatusClosureFailed, tx.Status)
	require.NotNil(t, tx.ClosureOutcome)
	assert.Equal(t, ClosePaymentOutcomeKO, *tx.ClosureOutcome)
}

func TestReduceExpiredKeepsPriorStatus(t *testing.T) {
	events := happyPathEvents("tx-4")[:5]
	events = append(events, ev("tx-4", &ExpiredData{StatusBeforeExpiration: StatusClosed}))

	tx := Reduce(events)
	assert.Equal(t, StatusExpired, tx.Status)
	assert.Equal(t, StatusClosed, tx.StatusBeforeExpiration)
	require.NotNil(t, tx.ClosureOutcome)
}

func TestReduceReceiptKO(t *testing.T) {
	events := happyPathEvents("tx-5")[:6]
	events = append(events, ev("tx-5", &UserReceiptAddedKOData{}))

	tx := Reduce(events)
	assert.Equal(t, StatusNotifiedFailed, tx.Status)
	assert.True(t, tx.Status.IsTerminal())
}

func TestReduceRefundRequested(t *testing.T) {
	events := happyPathEvents("tx-6")[:4]
	events = append(events,
		ev("tx-6", &ClosureFailedData{Outcome: ClosePaymentOutcomeKO}),
		ev("tx-6", &RefundRequestedData{Reason: "closure failed"}),
	)

	tx := Reduce(events)
	assert.Equal(t, StatusRefundRequested, tx.Status)
	assert.True(t, tx.Status.IsTerminal())
}
