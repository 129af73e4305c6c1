package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/halvora/transaction-service/internal/domain"
)

// HTTPGatewayClient talks JSON over HTTP to the payment gateway facade. It
// implements domain.GatewayAdapter; the response-shape interpretation lives
// in the usecase layer, this client only moves bytes.
type HTTPGatewayClient struct {
	Address string
	APIKey  string
	client  *http.Client
}

func NewHTTPGatewayClient(address, apiKey string) *HTTPGatewayClient {
	return &HTTPGatewayClient{
		Address: address,
		APIKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type workflowStateResponseBody struct {
	State    *string          `json:"state"`
	URL      *string          `json:"url"`
	FieldSet *domain.FieldSet `json:"fieldSet"`
}

func (b *workflowStateResponseBody) toDomain() *domain.WorkflowStateResponse {
	resp := &domain.WorkflowStateResponse{URL: b.URL, FieldSet: b.FieldSet}
	if b.State != nil {
		state := domain.WorkflowState(*b.State)
		resp.State = &state
	}
	return resp
}

type buildSessionResponseBody struct {
	OrderID       string `json:"orderId"`
	SessionID     string `json:"sessionId"`
	SecurityToken string `json:"securityToken"`
}

func (c *HTTPGatewayClient) RequestCardsAuthorization(ctx context.Context, data *domain.AuthorizationRequestData, correlationID string) (*domain.WorkflowStateResponse, error) {
	body := map[string]any{
		"transactionId":   data.TransactionID,
		"sessionId":       data.SessionID,
		"amount":          totalWithFee(data),
		"pspId":           data.PspID,
		"paymentTypeCode": data.PaymentTypeCode,
	}

	var resp workflowStateResponseBody
	if err := c.postJSON(ctx, "/authorizations/cards", correlationID, body, &resp); err != nil {
		return nil, err
	}
	return resp.toDomain(), nil
}

func (c *HTTPGatewayClient) RequestBuildSession(ctx context.Context, data *domain.AuthorizationRequestData, correlationID string, isContextual bool, clientID domain.ClientID, language, userID string) (*domain.BuildSessionResponse, error) {
	body := map[string]any{
		"transactionId":     data.TransactionID,
		"contractId":        data.ContractID,
		"contextualOnboard": isContextual,
		"clientId":          string(clientID),
		"language":          language,
		"userId":            userID,
	}

	var resp buildSessionResponseBody
	if err := c.postJSON(ctx, "/authorizations/sessions", correlationID, body, &resp); err != nil {
		return nil, err
	}
	return &domain.BuildSessionResponse{OrderID: resp.OrderID, SessionID: resp.SessionID, SecurityToken: resp.SecurityToken}, nil
}

func (c *HTTPGatewayClient) RequestBuildApmPayment(ctx context.Context, data *domain.AuthorizationRequestData, correlationID string, clientID domain.ClientID, language, userID string) (*domain.BuildSessionResponse, error) {
	body := map[string]any{
		"transactionId":   data.TransactionID,
		"amount":          totalWithFee(data),
		"paymentTypeCode": data.PaymentTypeCode,
		"clientId":        string(clientID),
		"language":        language,
		"userId":          userID,
	}

	var resp buildSessionResponseBody
	if err := c.postJSON(ctx, "/authorizations/apm", correlationID, body, &resp); err != nil {
		return nil, err
	}
	return &domain.BuildSessionResponse{OrderID: resp.OrderID, SessionID: resp.SessionID, SecurityToken: resp.SecurityToken}, nil
}

func (c *HTTPGatewayClient) RequestRedirectAuthorization(ctx context.Context, data *domain.AuthorizationRequestData, touchpoint string, clientID domain.ClientID) (*domain.RedirectResponse, error) {
	body := map[string]any{
		"transactionId":   data.TransactionID,
		"amount":          totalWithFee(data),
		"pspId":           data.PspID,
		"paymentTypeCode": data.PaymentTypeCode,
		"touchpoint":      touchpoint,
		"clientId":        string(clientID),
	}

	var resp struct {
		URL              string `json:"url"`
		PSPTransactionID string `json:"pspTransactionId"`
		Amount           int64  `json:"amount"`
		TimeoutMillis    int64  `json:"timeout"`
	}
	if err := c.postJSON(ctx, "/authorizations/redirect", "", body, &resp); err != nil {
		return nil, err
	}
	return &domain.RedirectResponse{
		URL:              resp.URL,
		PSPTransactionID: resp.PSPTransactionID,
		Amount:           resp.Amount,
		TimeoutMillis:    resp.TimeoutMillis,
	}, nil
}

func (c *HTTPGatewayClient) ClosePayment(ctx context.Context, req *domain.ClosePaymentRequest) (*domain.ClosePaymentResponse, error) {
	var resp struct {
		Outcome string `json:"outcome"`
	}
	if err := c.postJSON(ctx, "/close-payment", "", req, &resp); err != nil {
		return nil, err
	}
	return &domain.ClosePaymentResponse{Outcome: domain.ClosePaymentOutcome(resp.Outcome)}, nil
}

func (c *HTTPGatewayClient) UpdateSession(ctx context.Context, paymentInstrumentID, orderID, transactionID string) error {
	body := map[string]any{
		"paymentInstrumentId": paymentInstrumentID,
		"orderId":             orderID,
		"transactionId":       transactionID,
	}
	return c.postJSON(ctx, "/sessions/update", "", body, nil)
}

func (c *HTTPGatewayClient) postJSON(ctx context.Context, path, correlationID string, body, out any) error {
	requestBodyBytes, err := json.Marshal(body)
	if err != nil {
		return err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Address+path, bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("X-Api-Key", c.APIKey)
	if correlationID != "" {
		request.Header.Set("X-Correlation-Id", correlationID)
	}

	response, err := c.client.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("gateway %s returned status %d: %s", path, response.StatusCode, responseBodyBytes)
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(responseBodyBytes, out)
}

func totalWithFee(data *domain.AuthorizationRequestData) int64 {
	var total int64
	for _, n := range data.PaymentNotices {
		total += n.Amount
	}
	return total + data.Fee
}
