package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/halvora/transaction-service/internal/config"
	"github.com/halvora/transaction-service/internal/domain"
	"github.com/halvora/transaction-service/internal/infrastructure/metrics"
)

// Prometheus collectors register globally, so the whole package shares one
// metrics instance.
var testMetrics = metrics.NewTransactionMetrics()

type fakeEventRepo struct {
	events    []*domain.Event
	appendErr error
	findErr   error
	appends   int
	staleIDs  []string
}

func (r *fakeEventRepo) Append(_ context.Context, event *domain.Event) (*domain.Event, error) {
	if r.appendErr != nil {
		return nil, r.appendErr
	}
	r.appends++
	r.events = append(r.events, event)
	return event, nil
}

func (r *fakeEventRepo) FindOrdered(_ context.Context, transactionID string) ([]*domain.Event, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	var out []*domain.Event
	for _, ev := range r.events {
		if ev.TransactionID == transactionID {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) FindStaleTransactionIDs(_ context.Context, _ time.Time) ([]string, error) {
	return r.staleIDs, nil
}

func (r *fakeEventRepo) lastEvent() *domain.Event {
	if len(r.events) == 0 {
		return nil
	}
	return r.events[len(r.events)-1]
}

type lockCall struct {
	lock  domain.Lock
	lease time.Duration
}

type fakeLockStore struct {
	acquired bool
	err      error
	calls    []lockCall
}

func (s *fakeLockStore) SaveIfAbsent(_ context.Context, lock domain.Lock, lease time.Duration) (bool, error) {
	s.calls = append(s.calls, lockCall{lock: lock, lease: lease})
	if s.err != nil {
		return false, s.err
	}
	return s.acquired, nil
}

type fakeGateway struct {
	cardsResp    *domain.WorkflowStateResponse
	cardsErr     error
	cardsCalls   int
	lastAuthData *domain.AuthorizationRequestData

	buildResp  *domain.BuildSessionResponse
	buildErr   error
	buildCalls int

	apmResp  *domain.BuildSessionResponse
	apmErr   error
	apmCalls int

	redirectResp  *domain.RedirectResponse
	redirectErr   error
	redirectCalls int

	closeResp  *domain.ClosePaymentResponse
	closeErr   error
	closeCalls int
	lastClose  *domain.ClosePaymentRequest
}

func (g *fakeGateway) RequestCardsAuthorization(_ context.Context, data *domain.AuthorizationRequestData, _ string) (*domain.WorkflowStateResponse, error) {
	g.cardsCalls++
	g.lastAuthData = data
	return g.cardsResp, g.cardsErr
}

func (g *fakeGateway) RequestBuildSession(_ context.Context, data *domain.AuthorizationRequestData, _ string, _ bool, _ domain.ClientID, _, _ string) (*domain.BuildSessionResponse, error) {
	g.buildCalls++
	g.lastAuthData = data
	return g.buildResp, g.buildErr
}

func (g *fakeGateway) RequestBuildApmPayment(_ context.Context, data *domain.AuthorizationRequestData, _ string, _ domain.ClientID, _, _ string) (*domain.BuildSessionResponse, error) {
	g.apmCalls++
	g.lastAuthData = data
	return g.apmResp, g.apmErr
}

func (g *fakeGateway) RequestRedirectAuthorization(_ context.Context, data *domain.AuthorizationRequestData, _ string, _ domain.ClientID) (*domain.RedirectResponse, error) {
	g.redirectCalls++
	g.lastAuthData = data
	return g.redirectResp, g.redirectErr
}

func (g *fakeGateway) ClosePayment(_ context.Context, req *domain.ClosePaymentRequest) (*domain.ClosePaymentResponse, error) {
	g.closeCalls++
	g.lastClose = req
	return g.closeResp, g.closeErr
}

func (g *fakeGateway) totalCalls() int {
	return g.cardsCalls + g.buildCalls + g.apmCalls + g.redirectCalls + g.closeCalls
}

type fakePublisher struct {
	err      error
	messages []domain.QueueMessage
}

func (p *fakePublisher) SendWithResponse(_ context.Context, msg domain.QueueMessage) (*domain.DeliveryReceipt, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.messages = append(p.messages, msg)
	return &domain.DeliveryReceipt{MessageID: msg.Event.ID, SentAt: time.Now()}, nil
}

type fakeProjection struct {
	err   error
	saved []*domain.ReducedTransaction
}

func (p *fakeProjection) Save(_ context.Context, tx *domain.ReducedTransaction) (*domain.ReducedTransaction, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.saved = append(p.saved, tx)
	return tx, nil
}

type fakeTokenIssuer struct {
	token string
	err   error
	calls int
}

func (t *fakeTokenIssuer) CreateToken(_ context.Context, _ map[string]string, _ string, _ time.Duration) (string, error) {
	t.calls++
	return t.token, t.err
}

type fakeSessionRegistry struct {
	err   error
	calls int
}

func (s *fakeSessionRegistry) UpdateSession(_ context.Context, _, _, _ string) error {
	s.calls++
	return s.err
}

type fakeWalletCache struct {
	err   error
	saved map[string]domain.WalletPaymentInfo
}

func (c *fakeWalletCache) Save(_ context.Context, transactionID string, info domain.WalletPaymentInfo) error {
	if c.err != nil {
		return c.err
	}
	if c.saved == nil {
		c.saved = map[string]domain.WalletPaymentInfo{}
	}
	c.saved[transactionID] = info
	return nil
}

type fakeNoticeService struct {
	info  *domain.PaymentRequestInfo
	err   error
	calls int
}

func (n *fakeNoticeService) ActivatePaymentNotice(_ context.Context, rptID string, amount int64, _ string) (*domain.PaymentRequestInfo, error) {
	n.calls++
	if n.err != nil {
		return nil, n.err
	}
	if n.info != nil {
		info := *n.info
		return &info, nil
	}
	return &domain.PaymentRequestInfo{RptID: rptID, PaymentToken: "token-" + rptID, Amount: amount}, nil
}

type fakePaymentRequests struct {
	cached  map[string]*domain.PaymentRequestInfo
	findErr error
	saveErr error
	saved   []*domain.PaymentRequestInfo
}

func (r *fakePaymentRequests) FindByCreditorReference(_ context.Context, creditorReferenceID string) (*domain.PaymentRequestInfo, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.cached[creditorReferenceID], nil
}

func (r *fakePaymentRequests) Save(_ context.Context, info *domain.PaymentRequestInfo) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = append(r.saved, info)
	return nil
}

func testConfig() *config.TransactionConfig {
	return &config.TransactionConfig{
		NodeService: config.NodeService{FiscalCode: "77777777777"},
		Payment: config.Payment{
			TokenValiditySeconds:       900,
			RequestsCacheFreshnessSecs: 600,
		},
		Queues: config.Queues{
			TTLSeconds:                       30,
			ExpirationVisibilityDelaySeconds: 900,
		},
		Checkout: config.Checkout{
			BasePath:        "https://checkout.example.org",
			OutcomePath:     "/esito",
			AppOutcomePath:  "/app/esito",
			GdiCheckPath:    "/gdi-check",
			AppGdiCheckPath: "/app/gdi-check",
		},
		Features: config.Features{TransactionsViewUpdateEnabled: true},
	}
}

type testEnv struct {
	uc              *DefaultTransactionUsecase
	events          *fakeEventRepo
	locks           *fakeLockStore
	gateway         *fakeGateway
	publisher       *fakePublisher
	projections     *fakeProjection
	tokens          *fakeTokenIssuer
	sessions        *fakeSessionRegistry
	walletCache     *fakeWalletCache
	notices         *fakeNoticeService
	paymentRequests *fakePaymentRequests
	cfg             *config.TransactionConfig
}

func newTestEnv() *testEnv {
	env := &testEnv{
		events:          &fakeEventRepo{},
		locks:           &fakeLockStore{acquired: true},
		gateway:         &fakeGateway{},
		publisher:       &fakePublisher{},
		projections:     &fakeProjection{},
		tokens:          &fakeTokenIssuer{token: "session-token"},
		sessions:        &fakeSessionRegistry{},
		walletCache:     &fakeWalletCache{},
		notices:         &fakeNoticeService{},
		paymentRequests: &fakePaymentRequests{cached: map[string]*domain.PaymentRequestInfo{}},
		cfg:             testConfig(),
	}

	env.uc = NewDefaultTransactionUsecase(
		env.events,
		env.locks,
		env.gateway,
		env.publisher,
		env.projections,
		env.tokens,
		env.sessions,
		env.walletCache,
		env.notices,
		env.paymentRequests,
		testMetrics,
		env.cfg,
	)
	return env
}

// event stream builders

func newEvent(transactionID string, data domain.EventData) *domain.Event {
	return &domain.Event{
		ID:            uuid.NewString(),
		TransactionID: transactionID,
		Code:          domain.Code(data),
		CreationDate:  time.Now(),
		Data:          data,
	}
}

func activatedEvent(transactionID string, notices ...domain.PaymentNotice) *domain.Event {
	if len(notices) == 0 {
		notices = []domain.PaymentNotice{{
			RptID:               "77777777777302000100000009424",
			PaymentToken:        "paymentToken",
			Amount:              100,
			CreditorReferenceID: "302000100000009424",
		}}
	}
	return newEvent(transactionID, &domain.ActivatedData{
		Email:          "user@example.org",
		ClientID:       domain.ClientCheckout,
		PaymentNotices: notices,
	})
}

func authRequestedEvent(transactionID string, fee int64) *domain.Event {
	return newEvent(transactionID, &domain.AuthorizationRequestedData{
		AuthorizationRequestID: "order-1",
		Fee:                    fee,
		PspID:                  "psp-1",
		PaymentTypeCode:        "CP",
		BrokerName:             "broker",
		PspChannelCode:         "channel",
		Gateway:                domain.GatewayNPG,
	})
}

func authCompletedEvent(transactionID string, result domain.OperationResult) *domain.Event {
	return newEvent(transactionID, &domain.AuthorizationCompletedData{
		AuthorizationCode: "auth-code",
		OperationResult:   result,
	})
}

func closedEvent(transactionID string) *domain.Event {
	return newEvent(transactionID, &domain.ClosedData{Outcome: domain.ClosePaymentOutcomeOK})
}

func strPtr(s string) *string { return &s }

func statePtr(s domain.WorkflowState) *domain.WorkflowState { return &s }
