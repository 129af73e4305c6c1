package usecase

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/halvora/transaction-service/internal/domain"
)

// authorizationOutcome is the single outward contract of the gateway
// authorization sub-flow, whatever response shape the gateway produced.
type authorizationOutcome struct {
	AuthorizationRequestID string
	AuthorizationURL       string
}

// authorize dispatches the method-specific gateway sequence on the
// AuthDetails variant: cards link the instrument session and authorize,
// wallet/APM build a gateway session first, redirect methods go straight to
// the redirect backend.
func (uc *DefaultTransactionUsecase) authorize(ctx context.Context, tx *domain.ReducedTransaction, data *domain.AuthorizationRequestData, language, userID string) (*authorizationOutcome, error) {
	correlationID := uuid.NewString()

	started := time.Now()
	defer func() {
		uc.Metrics.GatewayAuthorizationDuration.WithLabelValues(string(data.Gateway)).Observe(time.Since(started).Seconds())
	}()

	switch details := data.Details.(type) {
	case domain.CardDetails:
		if data.Gateway != domain.GatewayNPG {
			return nil, &domain.InvalidRequestError{Reason: fmt.Sprintf("cards not supported on gateway %s", data.Gateway)}
		}

		if err := uc.Sessions.UpdateSession(ctx, data.PaymentInstrumentID, details.OrderID, tx.TransactionID); err != nil {
			return nil, err
		}

		resp, err := uc.Gateway.RequestCardsAuthorization(ctx, data, correlationID)
		if err != nil {
			uc.Metrics.GatewayErrorsTotal.WithLabelValues(string(data.Gateway), "transport").Inc()
			return nil, err
		}

		url, err := uc.interpretState(ctx, tx, resp)
		if err != nil {
			return nil, err
		}
		return &authorizationOutcome{AuthorizationRequestID: details.OrderID, AuthorizationURL: url}, nil

	case domain.WalletDetails:
		return uc.authorizeWithSession(ctx, tx, data, correlationID, language, userID, false)

	case domain.ApmDetails:
		return uc.authorizeWithSession(ctx, tx, data, correlationID, language, userID, true)

	case domain.RedirectDetails:
		if data.Gateway != domain.GatewayRedirect {
			return nil, &domain.InvalidRequestError{Reason: fmt.Sprintf("redirect method not supported on gateway %s", data.Gateway)}
		}

		resp, err := uc.Gateway.RequestRedirectAuthorization(ctx, data, touchpoint(tx.ClientID), tx.ClientID)
		if err != nil {
			uc.Metrics.GatewayErrorsTotal.WithLabelValues(string(data.Gateway), "transport").Inc()
			return nil, err
		}
		if resp.URL == "" {
			uc.Metrics.GatewayErrorsTotal.WithLabelValues(string(data.Gateway), "malformed").Inc()
			return nil, &domain.BadGatewayError{Detail: "response.url is null"}
		}
		return &authorizationOutcome{AuthorizationRequestID: resp.PSPTransactionID, AuthorizationURL: resp.URL}, nil

	default:
		return nil, domain.ErrUnsupportedGateway
	}
}

// authorizeWithSession runs the wallet/APM flow: build a gateway session,
// merge the session id into the authorization data, persist the correlation
// info for the redirect callback, then perform the state-interpreting call.
func (uc *DefaultTransactionUsecase) authorizeWithSession(ctx context.Context, tx *domain.ReducedTransaction, data *domain.AuthorizationRequestData, correlationID, language, userID string, apm bool) (*authorizationOutcome, error) {
	if data.Gateway != domain.GatewayNPG {
		return nil, &domain.InvalidRequestError{Reason: fmt.Sprintf("wallet/apm not supported on gateway %s", data.Gateway)}
	}

	var (
		session *domain.BuildSessionResponse
		err     error
	)
	if apm {
		session, err = uc.Gateway.RequestBuildApmPayment(ctx, data, correlationID, tx.ClientID, language, userID)
	} else {
		session, err = uc.Gateway.RequestBuildSession(ctx, data, correlationID, data.ContextualOnboard, tx.ClientID, language, userID)
	}
	if err != nil {
		uc.Metrics.GatewayErrorsTotal.WithLabelValues(string(data.Gateway), "build_session").Inc()
		return nil, err
	}

	data.SessionID = session.SessionID

	info := domain.WalletPaymentInfo{
		OrderID:       session.OrderID,
		SessionID:     session.SessionID,
		SecurityToken: session.SecurityToken,
	}
	if err := uc.WalletCache.Save(ctx, tx.TransactionID, info); err != nil {
		return nil, err
	}

	resp, err := uc.Gateway.RequestCardsAuthorization(ctx, data, correlationID)
	if err != nil {
		uc.Metrics.GatewayErrorsTotal.WithLabelValues(string(data.Gateway), "transport").Inc()
		return nil, err
	}

	url, err := uc.interpretState(ctx, tx, resp)
	if err != nil {
		return nil, err
	}
	return &authorizationOutcome{AuthorizationRequestID: session.OrderID, AuthorizationURL: url}, nil
}

// interpretState maps the gateway workflow state onto the authorization URL
// returned to the client. Any shape inconsistent with the declared state is a
// BadGatewayError and aborts the command before anything durable happens.
func (uc *DefaultTransactionUsecase) interpretState(ctx context.Context, tx *domain.ReducedTransaction, resp *domain.WorkflowStateResponse) (string, error) {
	if resp == nil || resp.State == nil {
		return "", &domain.BadGatewayError{Detail: "state response null"}
	}

	switch *resp.State {
	case domain.StateRedirectedToExternalDomain:
		if resp.URL == nil || *resp.URL == "" {
			return "", &domain.BadGatewayError{Detail: "response.url is null"}
		}
		return *resp.URL, nil

	case domain.StatePaymentComplete:
		if !hasFieldWithSrc(resp.FieldSet) {
			return "", &domain.BadGatewayError{Detail: "no fieldSet.field with src received"}
		}
		return uc.outcomeURL(ctx, tx)

	case domain.StateGdiVerification:
		if resp.FieldSet == nil || len(resp.FieldSet.Fields) == 0 {
			return "", &domain.BadGatewayError{Detail: "no fieldSet.field received, expected 1"}
		}
		field := resp.FieldSet.Fields[0]
		if field.Src == nil {
			return "", &domain.BadGatewayError{Detail: "fieldSet.field[0].src is null"}
		}
		return uc.gdiCheckURL(tx, *field.Src), nil

	default:
		return "", &domain.BadGatewayError{Detail: fmt.Sprintf("unexpected workflow state %s", *resp.State)}
	}
}

// outcomeURL builds the client-specific landing page of an already completed
// payment. The app client gets a short-lived bearer token appended so it can
// fetch the final transaction outcome.
func (uc *DefaultTransactionUsecase) outcomeURL(ctx context.Context, tx *domain.ReducedTransaction) (string, error) {
	if tx.ClientID != domain.ClientIO {
		return fmt.Sprintf("%s%s?transactionId=%s", uc.Cfg.Checkout.BasePath, uc.Cfg.Checkout.OutcomePath, tx.TransactionID), nil
	}

	claims := map[string]string{"transactionId": tx.TransactionID}
	token, err := uc.Tokens.CreateToken(ctx, claims, "app-outcome", 5*time.Minute)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%s#sessionToken=%s", uc.Cfg.Checkout.BasePath, uc.Cfg.Checkout.AppOutcomePath, token), nil
}

// gdiCheckURL embeds the gateway verification iframe source, base64url
// encoded, into the fragment of the fixed verification page.
func (uc *DefaultTransactionUsecase) gdiCheckURL(tx *domain.ReducedTransaction, src string) string {
	encoded := base64.URLEncoding.EncodeToString([]byte(src))
	path := uc.Cfg.Checkout.GdiCheckPath
	if tx.ClientID == domain.ClientIO {
		path = uc.Cfg.Checkout.AppGdiCheckPath
	}
	return fmt.Sprintf("%s%s#gdiIframeUrl=%s", uc.Cfg.Checkout.BasePath, path, encoded)
}

func hasFieldWithSrc(fs *domain.FieldSet) bool {
	if fs == nil {
		return false
	}
	for _, f := range fs.Fields {
		if f.Src != nil && *f.Src != "" {
			return true
		}
	}
	return false
}

func touchpoint(client domain.ClientID) string {
	if client == domain.ClientIO {
		return "IO"
	}
	return "CHECKOUT"
}
