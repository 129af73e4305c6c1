package usecase

import (
	"context"

	"github.com/halvora/transaction-service/internal/domain"
	txdto "github.com/halvora/transaction-service/internal/usecase/dto/transaction"
)

// SendClosureRequest settles the authorization outcome with the closing
// backend. A gateway-reported KO is a legitimate business result and commits
// CLOSURE_FAILED; only transport failures surface as errors.
//
// CLOSURE_REQUESTED is an admissible source state so that a command
// interrupted between its two appends can be retried.
func (uc *DefaultTransactionUsecase) SendClosureRequest(ctx context.Context, transactionID string) (_ *txdto.ClosureOutput, err error) {
	defer func() { uc.recordCommand("send_closure_request", err) }()

	events, tx, err := uc.replay(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if err := guard(tx,
		domain.StatusAuthorizationRequested,
		domain.StatusAuthorizationCompleted,
		domain.StatusClosureRequested,
	); err != nil {
		return nil, err
	}

	authRequest := findAuthorizationRequest(events)
	if authRequest == nil {
		return nil, &domain.InvalidRequestError{Reason: "no authorization request event in stream"}
	}

	if tx.Status != domain.StatusClosureRequested {
		requested, err := uc.appendEvent(ctx, tx.TransactionID, events, &domain.ClosureRequestedData{})
		if err != nil {
			return nil, err
		}
		events = append(events, requested)
	}

	req := buildClosePaymentRequest(tx, authRequest)
	resp, err := uc.Gateway.ClosePayment(ctx, req)
	if err != nil {
		return nil, err
	}

	var (
		data   domain.EventData
		status domain.TransactionStatus
	)
	if resp.Outcome == domain.ClosePaymentOutcomeOK {
		data = &domain.ClosedData{Outcome: resp.Outcome}
		status = domain.StatusClosed
	} else {
		data = &domain.ClosureFailedData{Outcome: resp.Outcome}
		status = domain.StatusClosureFailed
	}

	event, err := uc.appendEvent(ctx, tx.TransactionID, events, data)
	if err != nil {
		return nil, err
	}
	if err := uc.publish(ctx, event, 0); err != nil {
		return nil, err
	}

	return &txdto.ClosureOutput{
		TransactionID: tx.TransactionID,
		Status:        status,
		Outcome:       resp.Outcome,
	}, nil
}

// findAuthorizationRequest scans the ordered stream for the authorization
// request event the closure must be built from.
func findAuthorizationRequest(events []*domain.Event) *domain.AuthorizationRequestedData {
	for _, ev := range events {
		if data, ok := ev.Data.(*domain.AuthorizationRequestedData); ok {
			return data
		}
	}
	return nil
}

func buildClosePaymentRequest(tx *domain.ReducedTransaction, authRequest *domain.AuthorizationRequestedData) *domain.ClosePaymentRequest {
	outcome := domain.ClosePaymentOutcomeKO
	authorizationCode := ""
	if tx.AuthorizationCompleted != nil {
		authorizationCode = tx.AuthorizationCompleted.AuthorizationCode
		if tx.AuthorizationCompleted.OperationResult == domain.OperationResultExecuted {
			outcome = domain.ClosePaymentOutcomeOK
		}
	}

	tokens := make([]string, 0, len(tx.PaymentNotices))
	for _, n := range tx.PaymentNotices {
		tokens = append(tokens, n.PaymentToken)
	}

	return &domain.ClosePaymentRequest{
		TransactionID:     tx.TransactionID,
		PaymentTokens:     tokens,
		Outcome:           outcome,
		AuthorizationCode: authorizationCode,
		Fee:               authRequest.Fee,
		TotalAmount:       tx.TotalAmount() + authRequest.Fee,
		PspID:             authRequest.PspID,
		BrokerName:        authRequest.BrokerName,
		PspChannelCode:    authRequest.PspChannelCode,
		PaymentTypeCode:   authRequest.PaymentTypeCode,
	}
}
