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

// HTTPNodeClient activates payment notices at the creditor-side node.
type HTTPNodeClient struct {
	Address string
	client  *http.Client
}

func NewHTTPNodeClient(address string) *HTTPNodeClient {
	return &HTTPNodeClient{
		Address: address,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *HTTPNodeClient) ActivatePaymentNotice(ctx context.Context, rptID string, amount int64, idempotencyKey string) (*domain.PaymentRequestInfo, error) {
	requestBodyBytes, err := json.Marshal(map[string]any{
		"rptId":          rptID,
		"amount":         amount,
		"idempotencyKey": idempotencyKey,
	})
	if err != nil {
		return nil, err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Address+"/payment-notices/activate", bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := c.client.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, fmt.Errorf("notice activation for %s returned status %d: %s", rptID, response.StatusCode, responseBodyBytes)
	}

	var body struct {
		PaymentToken string `json:"paymentToken"`
		Description  string `json:"description"`
		CompanyName  string `json:"companyName"`
		Amount       int64  `json:"amount"`
	}
	if err := json.Unmarshal(responseBodyBytes, &body); err != nil {
		return nil, err
	}

	return &domain.PaymentRequestInfo{
		RptID:        rptID,
		PaymentToken: body.PaymentToken,
		Description:  body.Description,
		CompanyName:  body.CompanyName,
		Amount:       body.Amount,
	}, nil
}

// HTTPTokenClient asks the token issuer for short-lived bearer tokens.
type HTTPTokenClient struct {
	Address string
	client  *http.Client
}

func NewHTTPTokenClient(address string) *HTTPTokenClient {
	return &HTTPTokenClient{
		Address: address,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *HTTPTokenClient) CreateToken(ctx context.Context, claims map[string]string, audience string, duration time.Duration) (string, error) {
	requestBodyBytes, err := json.Marshal(map[string]any{
		"claims":   claims,
		"audience": audience,
		"duration": int(duration.Seconds()),
	})
	if err != nil {
		return "", err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Address+"/tokens", bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return "", err
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := c.client.Do(request)
	if err != nil {
		return "", err
	}
	defer response.Body.Close()

	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return "", err
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return "", fmt.Errorf("token issuer returned status %d: %s", response.StatusCode, responseBodyBytes)
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(responseBodyBytes, &body); err != nil {
		return "", err
	}
	return body.Token, nil
}
