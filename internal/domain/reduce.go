package domain

// Reduce folds an ordered event sequence into the current transaction state.
// It is pure and total over any prefix of a valid ordered stream: zero events
// yield the NOT_FOUND sentinel, and replaying the same sequence always yields
// the same result. Ordering is guaranteed by the store and is not re-checked
// here.
func Reduce(events []*Event) *ReducedTransaction {
	tx := &ReducedTransaction{Status: StatusNotFound}

	for _, ev := range events {
		apply(tx, ev)
	}

	return tx
}

func apply(tx *ReducedTransaction, ev *Event) {
	switch data := ev.Data.(type) {
	case *ActivatedData:
		tx.TransactionID = ev.TransactionID
		tx.Status = StatusActivated
		tx.Email = data.Email
		tx.ClientID = data.ClientID
		tx.PaymentNotices = data.PaymentNotices

	case *AuthorizationRequestedData:
		tx.Status = StatusAuthorizationRequested
		tx.AuthorizationRequest = data

	case *AuthorizationCompletedData:
		tx.Status = StatusAuthorizationCompleted
		tx.AuthorizationCompleted = data

	case *ClosureRequestedData:
		tx.Status = StatusClosureRequested

	case *ClosedData:
		tx.Status = StatusClosed
		outcome := data.Outcome
		tx.ClosureOutcome = &outcome

	case *ClosureFailedData:
		tx.Status = StatusClosureFailed
		outcome := data.Outcome
		tx.ClosureOutcome = &outcome

	case *UserReceiptRequestedData:
		tx.Status = StatusNotificationRequested

	case *UserReceiptAddedOKData:
		tx.Status = StatusNotified

	case *UserReceiptAddedKOData:
		tx.Status = StatusNotifiedFailed

	case *UserCanceledData:
		tx.Status = StatusCanceled

	case *ExpiredData:
		tx.StatusBeforeExpiration = data.StatusBeforeExpiration
		tx.Status = StatusExpired

	case *RefundRequestedData:
		tx.Status = StatusRefundRequested
	}
}
