package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/halvora/transaction-service/internal/domain"
)

// Expire closes the books on a transaction nothing will advance anymore. Any
// non-terminal status may expire; the status before expiration is kept so a
// receipt can still be decided for transactions that had already closed.
func (uc *DefaultTransactionUsecase) Expire(ctx context.Context, transactionID string) (err error) {
	defer func() { uc.recordCommand("expire", err) }()

	events, tx, err := uc.replay(ctx, transactionID)
	if err != nil {
		return err
	}
	if tx.Status.IsTerminal() || tx.Status == domain.StatusExpired {
		return &domain.AlreadyProcessedError{TransactionID: tx.TransactionID, Status: tx.Status}
	}

	data := &domain.ExpiredData{StatusBeforeExpiration: tx.Status}
	event, err := uc.appendEvent(ctx, tx.TransactionID, events, data)
	if err != nil {
		return err
	}

	return uc.publish(ctx, event, 0)
}

// ExpireStaleTransactions sweeps transactions whose last event is older than
// the payment-token validity window and expires them one by one. Meant to run
// on a ticker.
func (uc *DefaultTransactionUsecase) ExpireStaleTransactions(ctx context.Context) error {
	cutoff := time.Now().Add(-uc.paymentTokenValidity())
	ids, err := uc.Events.FindStaleTransactionIDs(ctx, cutoff)
	if err != nil {
		return err
	}

	for _, id := range ids {
		if err := uc.Expire(ctx, id); err != nil {
			slog.Error("failed to expire stale transaction", "transaction_id", id, "error", err.Error())
			continue
		}
		slog.Info("transaction expired due to timeout", "transaction_id", id)
	}

	return nil
}
