package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/halvora/transaction-service/internal/domain"
	"github.com/halvora/transaction-service/internal/infrastructure/postgres/mappers"
	"github.com/halvora/transaction-service/internal/infrastructure/postgres/models"
)

type DefaultEventRepository struct {
	DB *gorm.DB
}

func NewDefaultEventRepository(db *gorm.DB) *DefaultEventRepository {
	return &DefaultEventRepository{DB: db}
}

func (r *DefaultEventRepository) Append(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	model, err := mappers.ToGORMEvent(event)
	if err != nil {
		return nil, err
	}
	if err := r.DB.WithContext(ctx).Create(model).Error; err != nil {
		return nil, err
	}
	return event, nil
}

func (r *DefaultEventRepository) FindOrdered(ctx context.Context, transactionID string) ([]*domain.Event, error) {
	var eventModels []models.TransactionEventModel
	err := r.DB.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		Order("creation_date ASC").
		Find(&eventModels).Error
	if err != nil {
		return nil, err
	}

	events := make([]*domain.Event, 0, len(eventModels))
	for i := range eventModels {
		event, err := mappers.ToDomainEvent(&eventModels[i])
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, nil
}

// terminalEventCodes mark transactions the expiration sweep must skip.
var terminalEventCodes = []string{
	string(domain.EventUserCanceled),
	string(domain.EventUserReceiptAddedOK),
	string(domain.EventUserReceiptAddedKO),
	string(domain.EventExpired),
	string(domain.EventRefundRequested),
}

func (r *DefaultEventRepository) FindStaleTransactionIDs(ctx context.Context, cutoff time.Time) ([]string, error) {
	var ids []string
	err := r.DB.WithContext(ctx).
		Model(&models.TransactionEventModel{}).
		Select("transaction_id").
		Group("transaction_id").
		Having("MAX(creation_date) < ? AND NOT bool_or(code IN ?)", cutoff, terminalEventCodes).
		Pluck("transaction_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
