package repository

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/halvora/transaction-service/internal/domain"
	"github.com/halvora/transaction-service/internal/infrastructure/postgres/models"
)

// DefaultTransactionViewRepository mirrors reduced state into the
// transactions_view table. With updates disabled it is a pure pass-through
// returning the in-memory value unsaved.
type DefaultTransactionViewRepository struct {
	DB      *gorm.DB
	Enabled bool
}

func NewDefaultTransactionViewRepository(db *gorm.DB, enabled bool) *DefaultTransactionViewRepository {
	return &DefaultTransactionViewRepository{DB: db, Enabled: enabled}
}

func (r *DefaultTransactionViewRepository) Save(ctx context.Context, tx *domain.ReducedTransaction) (*domain.ReducedTransaction, error) {
	if !r.Enabled {
		return tx, nil
	}

	noticesJSON, err := json.Marshal(tx.PaymentNotices)
	if err != nil {
		return nil, err
	}

	model := models.TransactionViewModel{
		TransactionID: tx.TransactionID,
		Status:        string(tx.Status),
		ClientID:      string(tx.ClientID),
		Email:         tx.Email,
		Amount:        tx.TotalAmount(),
		NoticesJSON:   noticesJSON,
		UpdatedAt:     time.Now(),
	}
	if tx.AuthorizationRequest != nil {
		model.Fee = tx.AuthorizationRequest.Fee
	}
	if tx.AuthorizationCompleted != nil {
		model.OperationResult = string(tx.AuthorizationCompleted.OperationResult)
	}
	if tx.ClosureOutcome != nil {
		model.ClosureOutcome = string(*tx.ClosureOutcome)
	}

	err = r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "transaction_id"}},
			UpdateAll: true,
		}).
		Create(&model).Error
	if err != nil {
		return nil, err
	}

	return tx, nil
}
