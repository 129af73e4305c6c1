package usecase

import (
	"context"

	"github.com/halvora/transaction-service/internal/domain"
	txdto "github.com/halvora/transaction-service/internal/usecase/dto/transaction"
)

// RequestAuthorization starts the gateway authorization for an ACTIVATED
// transaction. The lease lock is the only mechanism preventing two concurrent
// invocations from both passing the state guard and both reaching the
// gateway; it is never explicitly released.
func (uc *DefaultTransactionUsecase) RequestAuthorization(ctx context.Context, input *txdto.RequestAuthorizationInput) (_ *txdto.RequestAuthorizationOutput, err error) {
	defer func() { uc.recordCommand("request_authorization", err) }()

	events, tx, err := uc.replay(ctx, input.TransactionID)
	if err != nil {
		return nil, err
	}
	if err := guard(tx, domain.StatusActivated); err != nil {
		return nil, err
	}

	lock := domain.NewOperationLock("POST", "auth-request", tx.TransactionID, "transaction-service")
	acquired, err := uc.Locks.SaveIfAbsent(ctx, lock, uc.paymentTokenValidity())
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, &domain.LockNotAcquiredError{LockID: lock.ID}
	}

	data := input.AuthData

	// Authorization data built for one transaction must never be replayed
	// against another: a mismatching id drops the contextual-onboard flag.
	contextualOnboard := data.ContextualOnboard
	if data.TransactionID != tx.TransactionID {
		contextualOnboard = false
	}
	data.ContextualOnboard = contextualOnboard

	outcome, err := uc.authorize(ctx, tx, data, input.Language, input.UserID)
	if err != nil {
		return nil, err
	}

	eventData := &domain.AuthorizationRequestedData{
		AuthorizationRequestID: outcome.AuthorizationRequestID,
		Fee:                    data.Fee,
		PaymentInstrumentID:    data.PaymentInstrumentID,
		PspID:                  data.PspID,
		PaymentTypeCode:        data.PaymentTypeCode,
		BrokerName:             data.BrokerName,
		PspChannelCode:         data.PspChannelCode,
		PaymentMethodName:      data.PaymentMethodName,
		Gateway:                data.Gateway,
		SessionID:              data.SessionID,
		Brand:                  data.Brand,
		ContextualOnboard:      contextualOnboard,
	}

	event, err := uc.appendEvent(ctx, tx.TransactionID, events, eventData)
	if err != nil {
		return nil, err
	}
	if err := uc.publish(ctx, event, 0); err != nil {
		return nil, err
	}

	return &txdto.RequestAuthorizationOutput{
		AuthorizationRequestID: outcome.AuthorizationRequestID,
		AuthorizationURL:       outcome.AuthorizationURL,
	}, nil
}
