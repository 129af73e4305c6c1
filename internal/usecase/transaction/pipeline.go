package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/halvora/transaction-service/internal/domain"
)

// replay loads the ordered event stream and folds it into the current state.
func (uc *DefaultTransactionUsecase) replay(ctx context.Context, transactionID string) ([]*domain.Event, *domain.ReducedTransaction, error) {
	events, err := uc.Events.FindOrdered(ctx, transactionID)
	if err != nil {
		return nil, nil, err
	}
	if len(events) == 0 {
		return nil, nil, domain.ErrTransactionNotFound
	}

	return events, domain.Reduce(events), nil
}

// guard is the state check that makes every command idempotent against
// retries and duplicate delivery.
func guard(tx *domain.ReducedTransaction, allowed ...domain.TransactionStatus) error {
	for _, s := range allowed {
		if tx.Status == s {
			return nil
		}
	}
	return &domain.AlreadyProcessedError{TransactionID: tx.TransactionID, Status: tx.Status}
}

// appendEvent builds and durably appends the next event for the transaction,
// then mirrors the new reduced state into the projection. Projection failure
// is logged, not surfaced: the view is a cache, the log is the record.
func (uc *DefaultTransactionUsecase) appendEvent(ctx context.Context, transactionID string, prior []*domain.Event, data domain.EventData) (*domain.Event, error) {
	event := &domain.Event{
		ID:            uuid.NewString(),
		TransactionID: transactionID,
		Code:          domain.Code(data),
		CreationDate:  time.Now(),
		Data:          data,
	}

	saved, err := uc.Events.Append(ctx, event)
	if err != nil {
		return nil, err
	}
	uc.Metrics.EventsAppendedTotal.WithLabelValues(string(event.Code)).Inc()

	reduced := domain.Reduce(append(prior[:len(prior):len(prior)], saved))
	if _, err := uc.Projections.Save(ctx, reduced); err != nil {
		slog.Error("failed to update transactions view",
			"transaction_id", transactionID,
			"event_code", string(event.Code),
			"error", err.Error())
	}

	return saved, nil
}

// publish hands the appended event to the outbound queue. A failure here is
// wrapped as PublishError so the caller can tell "committed but not yet
// propagated" apart from a failed command.
func (uc *DefaultTransactionUsecase) publish(ctx context.Context, event *domain.Event, visibilityDelay time.Duration) error {
	msg := domain.QueueMessage{
		Event:           event,
		TTL:             time.Duration(uc.Cfg.Queues.TTLSeconds) * time.Second,
		VisibilityDelay: visibilityDelay,
	}

	if _, err := uc.Publisher.SendWithResponse(ctx, msg); err != nil {
		uc.Metrics.QueuePublishErrorsTotal.WithLabelValues(string(event.Code)).Inc()
		return &domain.PublishError{TransactionID: event.TransactionID, Code: event.Code, Err: err}
	}

	return nil
}

func (uc *DefaultTransactionUsecase) paymentTokenValidity() time.Duration {
	return time.Duration(uc.Cfg.Payment.TokenValiditySeconds) * time.Second
}

func (uc *DefaultTransactionUsecase) recordCommand(command string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	uc.Metrics.CommandsProcessedTotal.WithLabelValues(command, outcome).Inc()
}
