package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Payment intent terminal and in-flight statuses reported by the provider
const (
	IntentStatusSucceeded      = "succeeded"
	IntentStatusProcessing     = "processing"
	IntentStatusRequiresMethod = "requires_payment_method"
	IntentStatusErrored        = "errored"
)

// PaymentClient defines the interface for the managed payment provider
type PaymentClient interface {
	// CreateIntent registers an amount to collect and returns the opaque
	// client secret used to complete payment client-side
	CreateIntent(ctx context.Context, req CreateIntentRequest) (*PaymentIntent, error)
	// GetIntent fetches the current status of an intent
	GetIntent(ctx context.Context, intentID string) (*PaymentIntent, error)
}

// CreateIntentRequest represents a request to create a payment intent
type CreateIntentRequest struct {
	Amount   float64           `json:"amount"`
	Currency string            `json:"currency"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// PaymentIntent represents a payment intent from the provider. Metadata
// echoes back whatever was attached at creation time.
type PaymentIntent struct {
	ID           string            `json:"id"`
	ClientSecret string            `json:"clientSecret"`
	Amount       float64           `json:"amount"`
	Currency     string            `json:"currency"`
	Status       string            `json:"status"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

type paymentClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewPaymentClient creates a new payment provider client
func NewPaymentClient(baseURL, apiKey string) PaymentClient {
	return &paymentClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second, // Longer timeout for payment operations
		},
	}
}

// CreateIntent registers an amount to collect with the provider
func (c *paymentClient) CreateIntent(ctx context.Context, req CreateIntentRequest) (*PaymentIntent, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal intent request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/payment_intents", c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	return c.doIntentRequest(httpReq)
}

// GetIntent fetches the current status of an intent
func (c *paymentClient) GetIntent(ctx context.Context, intentID string) (*PaymentIntent, error) {
	url := fmt.Sprintf("%s/v1/payment_intents/%s", c.baseURL, intentID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	return c.doIntentRequest(httpReq)
}

func (c *paymentClient) doIntentRequest(req *http.Request) (*PaymentIntent, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call payment provider: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read payment response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("payment provider returned %d: %s", resp.StatusCode, string(body))
	}

	var intent PaymentIntent
	if err := json.Unmarshal(body, &intent); err != nil {
		return nil, fmt.Errorf("failed to decode payment response: %w", err)
	}
	return &intent, nil
}
