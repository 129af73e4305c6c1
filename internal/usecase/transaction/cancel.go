package usecase

import (
	"context"

	"github.com/halvora/transaction-service/internal/domain"
)

// UserCancel aborts a transaction the user walked away from. Only possible
// before any authorization was requested; the cancellation is settled
// downstream by the closure consumer.
func (uc *DefaultTransactionUsecase) UserCancel(ctx context.Context, transactionID string) (err error) {
	defer func() { uc.recordCommand("user_cancel", err) }()

	events, tx, err := uc.replay(ctx, transactionID)
	if err != nil {
		return err
	}
	if err := guard(tx, domain.StatusActivated); err != nil {
		return err
	}

	event, err := uc.appendEvent(ctx, tx.TransactionID, events, &domain.UserCanceledData{})
	if err != nil {
		return err
	}

	return uc.publish(ctx, event, 0)
}
