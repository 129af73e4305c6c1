package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"

	"github.com/halvora/transaction-service/internal/domain"
	txdto "github.com/halvora/transaction-service/internal/usecase/dto/transaction"
)

const idempotencyKeyAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// Activate creates a new transaction: it activates every payment notice at
// the creditor side (or reuses a fresh cached activation on retry) and
// appends the first event of the stream.
func (uc *DefaultTransactionUsecase) Activate(ctx context.Context, input *txdto.NewTransactionInput) (_ *txdto.TransactionOutput, err error) {
	defer func() { uc.recordCommand("activate", err) }()

	if len(input.Notices) == 0 {
		return nil, &domain.InvalidRequestError{Reason: "at least one payment notice is required"}
	}

	transactionID := uuid.NewString()
	freshness := time.Duration(uc.Cfg.Payment.RequestsCacheFreshnessSecs) * time.Second

	notices := make([]domain.PaymentNotice, 0, len(input.Notices))
	idempotencyKey := ""
	for _, n := range input.Notices {
		info, err := uc.resolvePaymentRequest(ctx, n, freshness)
		if err != nil {
			return nil, err
		}
		if idempotencyKey == "" {
			idempotencyKey = info.IdempotencyKey
		}

		notices = append(notices, domain.PaymentNotice{
			RptID:               n.RptID,
			PaymentToken:        info.PaymentToken,
			Amount:              n.Amount,
			Description:         n.Description,
			CreditorReferenceID: n.CreditorReferenceID,
			CompanyName:         n.CompanyName,
			TransferList:        n.TransferList,
			AllCCP:              n.AllCCP,
		})
	}

	data := &domain.ActivatedData{
		Email:                       input.Email,
		PaymentNotices:              notices,
		ClientID:                    input.ClientID,
		IdempotencyKey:              idempotencyKey,
		PaymentTokenValiditySeconds: uc.Cfg.Payment.TokenValiditySeconds,
	}

	event, err := uc.appendEvent(ctx, transactionID, nil, data)
	if err != nil {
		return nil, err
	}

	// The activation event feeds the expiration sweep downstream, so it
	// stays invisible for the whole payment-token validity window.
	delay := time.Duration(uc.Cfg.Queues.ExpirationVisibilityDelaySeconds) * time.Second
	if err := uc.publish(ctx, event, delay); err != nil {
		return nil, err
	}

	return &txdto.TransactionOutput{
		TransactionID:  transactionID,
		Status:         domain.StatusActivated,
		ClientID:       input.ClientID,
		PaymentNotices: notices,
		IdempotencyKey: idempotencyKey,
	}, nil
}

// resolvePaymentRequest returns the cached activation for the notice when it
// is still fresh, otherwise calls the external notice service and caches the
// result. A cache hit skips the external call entirely.
func (uc *DefaultTransactionUsecase) resolvePaymentRequest(ctx context.Context, n txdto.NoticeRequest, freshness time.Duration) (*domain.PaymentRequestInfo, error) {
	cached, err := uc.PaymentRequests.FindByCreditorReference(ctx, n.CreditorReferenceID)
	if err != nil {
		return nil, err
	}
	if cached != nil && cached.PaymentToken != "" && time.Since(cached.CreatedAt) < freshness {
		uc.Metrics.PaymentRequestsCacheHitsTotal.Inc()
		slog.Info("payment request served from cache",
			"creditor_reference_id", n.CreditorReferenceID,
			"idempotency_key", cached.IdempotencyKey)
		return cached, nil
	}
	uc.Metrics.PaymentRequestsCacheMissesTotal.Inc()

	key, err := uc.newIdempotencyKey()
	if err != nil {
		return nil, err
	}

	info, err := uc.Notices.ActivatePaymentNotice(ctx, n.RptID, n.Amount, key)
	if err != nil {
		return nil, err
	}
	info.CreditorReferenceID = n.CreditorReferenceID
	info.IdempotencyKey = key
	info.CreatedAt = time.Now()

	// The cache is best effort: a write failure only costs one extra
	// external call on retry.
	if err := uc.PaymentRequests.Save(ctx, info); err != nil {
		slog.Warn("failed to cache payment request info",
			"creditor_reference_id", n.CreditorReferenceID,
			"error", err.Error())
	}

	return info, nil
}

func (uc *DefaultTransactionUsecase) newIdempotencyKey() (string, error) {
	gen, err := nanoid.CustomASCII(idempotencyKeyAlphabet, 10)
	if err != nil {
		return "", fmt.Errorf("building idempotency key generator: %w", err)
	}
	return fmt.Sprintf("%s_%s", uc.Cfg.NodeService.FiscalCode, gen()), nil
}
