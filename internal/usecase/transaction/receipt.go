package usecase

import (
	"context"

	"github.com/halvora/transaction-service/internal/domain"
	txdto "github.com/halvora/transaction-service/internal/usecase/dto/transaction"
)

// RequestUserReceipt asks downstream notification to deliver the payment
// receipt. Only successfully closed transactions qualify; an expired
// transaction whose closure succeeded before expiring qualifies too when the
// feature flag permits it.
func (uc *DefaultTransactionUsecase) RequestUserReceipt(ctx context.Context, input *txdto.UserReceiptInput) (_ *txdto.UserReceiptOutput, err error) {
	defer func() { uc.recordCommand("request_user_receipt", err) }()

	events, tx, err := uc.replay(ctx, input.TransactionID)
	if err != nil {
		return nil, err
	}

	switch tx.Status {
	case domain.StatusClosed:
	case domain.StatusExpired:
		if !uc.Cfg.Features.SendPaymentResultForTxExpired || tx.StatusBeforeExpiration != domain.StatusClosed {
			return nil, &domain.AlreadyProcessedError{TransactionID: tx.TransactionID, Status: tx.Status}
		}
	default:
		return nil, &domain.AlreadyProcessedError{TransactionID: tx.TransactionID, Status: tx.Status}
	}

	if tx.ClosureOutcome == nil || *tx.ClosureOutcome != domain.ClosePaymentOutcomeOK {
		return nil, &domain.InvalidRequestError{Reason: "closure outcome is KO"}
	}

	if !tokenSetMatches(input.PaymentTokens, tx.PaymentNotices) {
		return nil, &domain.InvalidRequestError{Reason: "payment token set does not match transaction notices"}
	}

	data := &domain.UserReceiptRequestedData{
		PaymentTokens: input.PaymentTokens,
		Language:      input.Language,
	}

	event, err := uc.appendEvent(ctx, tx.TransactionID, events, data)
	if err != nil {
		return nil, err
	}
	if err := uc.publish(ctx, event, 0); err != nil {
		return nil, err
	}

	return &txdto.UserReceiptOutput{
		TransactionID: tx.TransactionID,
		Status:        domain.StatusNotificationRequested,
	}, nil
}

// tokenSetMatches checks that the requested token set is exactly the
// transaction's notice set, regardless of order.
func tokenSetMatches(requested []string, notices []domain.PaymentNotice) bool {
	if len(requested) != len(notices) {
		return false
	}

	expected := make(map[string]bool, len(notices))
	for _, n := range notices {
		expected[n.PaymentToken] = true
	}
	for _, token := range requested {
		if !expected[token] {
			return false
		}
		delete(expected, token)
	}
	return len(expected) == 0
}
