package usecase

import (
	"context"

	"github.com/halvora/transaction-service/internal/config"
	"github.com/halvora/transaction-service/internal/domain"
	"github.com/halvora/transaction-service/internal/infrastructure/metrics"
	txdto "github.com/halvora/transaction-service/internal/usecase/dto/transaction"
)

type TransactionUsecase interface {
	Activate(ctx context.Context, input *txdto.NewTransactionInput) (*txdto.TransactionOutput, error)
	RequestAuthorization(ctx context.Context, input *txdto.RequestAuthorizationInput) (*txdto.RequestAuthorizationOutput, error)
	UpdateAuthorization(ctx context.Context, input *txdto.UpdateAuthorizationInput) (*txdto.UpdateAuthorizationOutput, error)
	SendClosureRequest(ctx context.Context, transactionID string) (*txdto.ClosureOutput, error)
	RequestUserReceipt(ctx context.Context, input *txdto.UserReceiptInput) (*txdto.UserReceiptOutput, error)
	UserCancel(ctx context.Context, transactionID string) error

	Expire(ctx context.Context, transactionID string) error
	ExpireStaleTransactions(ctx context.Context) error
}

// DefaultTransactionUsecase orchestrates every command through the same
// pipeline: replay the event stream, guard the current status, perform the
// command side effect, append the new event and hand it to the outbound
// queue. The append is the only durability boundary.
type DefaultTransactionUsecase struct {
	Events          domain.EventRepository
	Locks           domain.LockStore
	Gateway         domain.GatewayAdapter
	Publisher       domain.QueuePublisher
	Projections     domain.ProjectionWriter
	Tokens          domain.TokenIssuer
	Sessions        domain.SessionRegistry
	WalletCache     domain.WalletSessionCache
	Notices         domain.NoticeService
	PaymentRequests domain.PaymentRequestsInfoRepository
	Metrics         *metrics.TransactionMetrics
	Cfg             *config.TransactionConfig
}

func NewDefaultTransactionUsecase(
	events domain.EventRepository,
	locks domain.LockStore,
	gateway domain.GatewayAdapter,
	publisher domain.QueuePublisher,
	projections domain.ProjectionWriter,
	tokens domain.TokenIssuer,
	sessions domain.SessionRegistry,
	walletCache domain.WalletSessionCache,
	notices domain.NoticeService,
	paymentRequests domain.PaymentRequestsInfoRepository,
	txMetrics *metrics.TransactionMetrics,
	cfg *config.TransactionConfig,
) *DefaultTransactionUsecase {
	return &DefaultTransactionUsecase{
		Events:          events,
		Locks:           locks,
		Gateway:         gateway,
		Publisher:       publisher,
		Projections:     projections,
		Tokens:          tokens,
		Sessions:        sessions,
		WalletCache:     walletCache,
		Notices:         notices,
		PaymentRequests: paymentRequests,
		Metrics:         txMetrics,
		Cfg:             cfg,
	}
}
