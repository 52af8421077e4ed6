package payments

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/pixelforge-studio/studio-api/internal/config"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// GatewayClient talks to the external payment processor. The core never
// stores card data or tracks completion here; confirmations arrive
// asynchronously on the billing queue.
type GatewayClient struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

func NewGatewayClient(cfg *config.Config, log *zap.Logger) *GatewayClient {
	return &GatewayClient{
		BaseURL: cfg.Payments.BaseURL,
		APIKey:  cfg.Payments.APIKey,
		HTTPClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		Logger: log,
	}
}

type CreateIntentRequest struct {
	Amount         int64             `json:"amount"`
	Currency       string            `json:"currency"`
	IdempotencyKey string            `json:"idempotency_key"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

// Intent is the gateway's opaque client-usable payment handle.
type Intent struct {
	Reference    string `json:"reference"`
	ClientSecret string `json:"client_secret"`
}

// CreateIntent registers a payment intent for amount (minor units) on the
// given package and returns the handle the browser completes payment with.
func (c *GatewayClient) CreateIntent(ctx context.Context, amount int64, currency, packageID, packageName string) (*Intent, error) {
	endpoint := fmt.Sprintf("%s/v1/payment_intents", c.BaseURL)

	reqBody := CreateIntentRequest{
		Amount:         amount,
		Currency:       currency,
		IdempotencyKey: uuid.NewString(),
		Metadata: map[string]string{
			"package_id":   packageID,
			"package_name": packageName,
		},
	}
	body, err := sonic.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		c.Logger.Error("create_intent request failed",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(respBody)))
		return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var result Intent
	if err := sonic.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	return &result, nil
}
