package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halvora/transaction-service/internal/domain"
	txdto "github.com/halvora/transaction-service/internal/usecase/dto/transaction"
)

func cardAuthInput(transactionID string) *txdto.RequestAuthorizationInput {
	return &txdto.RequestAuthorizationInput{
		TransactionID: transactionID,
		AuthData: &domain.AuthorizationRequestData{
			TransactionID:       transactionID,
			Fee:                 10,
			PaymentInstrumentID: "instrument-1",
			PspID:               "psp-1",
			PaymentTypeCode:     "CP",
			BrokerName:          "broker",
			PspChannelCode:      "channel",
			PaymentMethodName:   "CARDS",
			Gateway:             domain.GatewayNPG,
			Brand:               "VISA",
			Details:             domain.CardDetails{OrderID: "order-7"},
			ContextualOnboard:   true,
		},
		Language: "it-IT",
	}
}

func redirected(url string) *domain.WorkflowStateResponse {
	return &domain.WorkflowStateResponse{
		State: statePtr(domain.StateRedirectedToExternalDomain),
		URL:   strPtr(url),
	}
}

func TestRequestAuthorizationCardHappyPath(t *testing.T) {
	env := newTestEnv()
	env.events.events = []*domain.Event{activatedEvent("tx-1")}
	env.gateway.cardsResp = redirected("https://psp.example.org/pay")

	out, err := env.uc.RequestAuthorization(context.Background(), cardAuthInput("tx-1"))
	require.NoError(t, err)

	assert.Equal(t, "order-7", out.AuthorizationRequestID)
	assert.Equal(t, "https://psp.example.org/pay", out.AuthorizationURL)

	// Lock keyed by operation and transaction, leased for the token window.
	require.Len(t, env.locks.calls, 1)
	assert.Equal(t, "POST-auth-request-tx-1", env.locks.calls[0].lock.ID)
	assert.Equal(t, 900*time.Second, env.locks.calls[0].lease)

	assert.Equal(t, 1, env.sessions.calls)
	assert.Equal(t, 1, env.gateway.cardsCalls)

	require.Equal(t, 1, env.events.appends)
	last := env.events.lastEvent()
	assert.Equal(t, domain.EventAuthorizationRequested, last.Code)
	data := last.Data.(*domain.AuthorizationRequestedData)
	assert.Equal(t, "order-7", data.AuthorizationRequestID)
	assert.True(t, data.ContextualOnboard)
	assert.Len(t, env.publisher.messages, 1)
}

func TestRequestAuthorizationLockContention(t *testing.T) {
	env := newTestEnv()
	env.events.events = []*domain.Event{activatedEvent("tx-1")}
	env.locks.acquired = false

	_, err := env.uc.RequestAuthorization(context.Background(), cardAuthInput("tx-1"))

	var lockErr *domain.LockNotAcquiredError
	require.ErrorAs(t, err, &lockErr)
	assert.Equal(t, "POST-auth-request-tx-1", lockErr.LockID)

	// Losing the race means zero gateway interaction and zero appends.
	assert.Zero(t, env.gateway.totalCalls())
	assert.Zero(t, env.sessions.calls)
	assert.Zero(t, env.events.appends)
	assert.Empty(t, env.publisher.messages)
}

func TestRequestAuthorizationAlreadyProcessed(t *testing.T) {
	env := newTestEnv()
	env.events.events = []*domain.Event{
		activatedEvent("tx-1"),
		authRequestedEvent("tx-1", 10),
	}

	_, err := env.uc.RequestAuthorization(context.Background(), cardAuthInput("tx-1"))

	var already *domain.AlreadyProcessedError
	require.ErrorAs(t, err, &already)
	assert.Equal(t, domain.StatusAuthorizationRequested, already.Status)

	// The guard fires before the lock and the gateway.
	assert.Empty(t, env.locks.calls)
	assert.Zero(t, env.gateway.totalCalls())
	assert.Equal(t, 0, env.events.appends)
}

func TestRequestAuthorizationUnknownTransaction(t *testing.T) {
	env := newTestEnv()

	_, err := env.uc.RequestAuthorization(context.Background(), cardAuthInput("tx-missing"))

	require.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestRequestAuthorizationForeignDataDropsContextualOnboard(t *testing.T) {
	env := newTestEnv()
	env.events.events = []*domain.Event{activatedEvent("tx-1")}
	env.gateway.cardsResp = redirected("https://psp.example.org/pay")

	input := cardAuthInput("tx-1")
	input.AuthData.TransactionID = "tx-other"

	_, err := env.uc.RequestAuthorization(context.Background(), input)
	require.NoError(t, err)

	data := env.events.lastEvent().Data.(*domain.AuthorizationRequestedData)
	assert.False(t, data.ContextualOnboard)
}

func TestRequestAuthorizationUpdateSessionFailurePropagates(t *testing.T) {
	env := newTestEnv()
	env.events.events = []*domain.Event{activatedEvent("tx-1")}
	env.sessions.err = errors.New("session service down")

	_, err := env.uc.RequestAuthorization(context.Background(), cardAuthInput("tx-1"))

	require.ErrorContains(t, err, "session service down")
	assert.Zero(t, env.gateway.cardsCalls)
	assert.Zero(t, env.events.appends)
}

func TestRequestAuthorizationWalletBuildsSessionFirst(t *testing.T) {
	env := newTestEnv()
	env.events.events = []*domain.Event{activatedEvent("tx-1")}
	env.gateway.buildResp = &domain.BuildSessionResponse{
		OrderID:       "order-9",
		SessionID:     "session-9",
		SecurityToken: "sec-9",
	}
	env.gateway.cardsResp = redirected("https://psp.example.org/wallet")

	input := cardAuthInput("tx-1")
	input.AuthData.Details = domain.WalletDetails{WalletID: "wallet-1"}

	out, err := env.uc.RequestAuthorization(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 1, env.gateway.buildCalls)
	assert.Equal(t, 1, env.gateway.cardsCalls)
	assert.Equal(t, "order-9", out.AuthorizationRequestID)

	// Session id merged into the authorization data before the confirm call.
	assert.Equal(t, "session-9", env.gateway.lastAuthData.SessionID)

	// Correlation info persisted for the redirect callback.
	saved, ok := env.walletCache.saved["tx-1"]
	require.True(t, ok)
	assert.Equal(t, domain.WalletPaymentInfo{OrderID: "order-9", SessionID: "session-9", SecurityToken: "sec-9"}, saved)

	data := env.events.lastEvent().Data.(*domain.AuthorizationRequestedData)
	assert.Equal(t, "session-9", data.SessionID)
}

func TestRequestAuthorizationApmBuildsPayment(t *testing.T) {
	env := newTestEnv()
	env.events.events = []*domain.Event{activatedEvent("tx-1")}
	env.gateway.apmResp = &domain.BuildSessionResponse{OrderID: "order-3", SessionID: "session-3", SecurityToken: "sec-3"}
	env.gateway.cardsResp = redirected("https://psp.example.org/apm")

	input := cardAuthInput("tx-1")
	input.AuthData.Details = domain.ApmDetails{}

	out, err := env.uc.RequestAuthorization(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 1, env.gateway.apmCalls)
	assert.Zero(t, env.gateway.buildCalls)
	assert.Equal(t, "order-3", out.AuthorizationRequestID)
}

func TestRequestAuthorizationRedirectMethod(t *testing.T) {
	env := newTestEnv()
	env.events.events = []*domain.Event{activatedEvent("tx-1")}
	env.gateway.redirectResp = &domain.RedirectResponse{
		URL:              "https://redirect.example.org/pay",
		PSPTransactionID: "psp-tx-5",
		Amount:           110,
		TimeoutMillis:    600000,
	}

	input := cardAuthInput("tx-1")
	input.AuthData.Gateway = domain.GatewayRedirect
	input.AuthData.Details = domain.RedirectDetails{}

	out, err := env.uc.RequestAuthorization(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, "psp-tx-5", out.AuthorizationRequestID)
	assert.Equal(t, "https://redirect.example.org/pay", out.AuthorizationURL)
	data := env.events.lastEvent().Data.(*domain.AuthorizationRequestedData)
	assert.Equal(t, domain.GatewayRedirect, data.Gateway)
}

func TestRequestAuthorizationGatewayMethodMismatch(t *testing.T) {
	env := newTestEnv()
	env.events.events = []*domain.Event{activatedEvent("tx-1")}

	input := cardAuthInput("tx-1")
	input.AuthData.Gateway = domain.GatewayRedirect // cards on the redirect gateway

	_, err := env.uc.RequestAuthorization(context.Background(), input)

	var invalid *domain.InvalidRequestError
	require.ErrorAs(t, err, &invalid)
	assert.Zero(t, env.events.appends)
}
