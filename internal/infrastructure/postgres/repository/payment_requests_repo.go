package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/halvora/transaction-service/internal/domain"
	"github.com/halvora/transaction-service/internal/infrastructure/postgres/models"
)

type DefaultPaymentRequestsRepository struct {
	DB *gorm.DB
}

func NewDefaultPaymentRequestsRepository(db *gorm.DB) *DefaultPaymentRequestsRepository {
	return &DefaultPaymentRequestsRepository{DB: db}
}

// FindByCreditorReference returns nil without error on a cache miss.
func (r *DefaultPaymentRequestsRepository) FindByCreditorReference(ctx context.Context, creditorReferenceID string) (*domain.PaymentRequestInfo, error) {
	var model models.PaymentRequestInfoModel
	err := r.DB.WithContext(ctx).
		First(&model, "creditor_reference_id = ?", creditorReferenceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &domain.PaymentRequestInfo{
		CreditorReferenceID: model.CreditorReferenceID,
		RptID:               model.RptID,
		PaymentToken:        model.PaymentToken,
		IdempotencyKey:      model.IdempotencyKey,
		Amount:              model.Amount,
		Description:         model.Description,
		CompanyName:         model.CompanyName,
		CreatedAt:           model.CreatedAt,
	}, nil
}

func (r *DefaultPaymentRequestsRepository) Save(ctx context.Context, info *domain.PaymentRequestInfo) error {
	model := models.PaymentRequestInfoModel{
		CreditorReferenceID: info.CreditorReferenceID,
		RptID:               info.RptID,
		PaymentToken:        info.PaymentToken,
		IdempotencyKey:      info.IdempotencyKey,
		Amount:              info.Amount,
		Description:         info.Description,
		CompanyName:         info.CompanyName,
		CreatedAt:           info.CreatedAt,
	}

	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "creditor_reference_id"}},
			UpdateAll: true,
		}).
		Create(&model).Error
}
