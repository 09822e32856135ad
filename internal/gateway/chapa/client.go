// Package chapa is a thin HTTP adapter for the Chapa payment gateway's
// transaction initialize and verify endpoints.
package chapa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"travelapp/internal/config"
)

// DefaultTimeout bounds a single gateway round-trip when the config does not
// override it. Calls are single-attempt; a timeout is a transport failure.
const DefaultTimeout = 10 * time.Second

// Client talks to the Chapa HTTP API.
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

// NewClient creates a Chapa client from gateway configuration.
func NewClient(cfg config.ChapaConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:   cfg.BaseURL,
		secretKey: cfg.SecretKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Customization carries the checkout page title and description.
type Customization struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// InitializeRequest is the payload for POST /transaction/initialize.
type InitializeRequest struct {
	Amount        string        `json:"amount"`
	Currency      string        `json:"currency"`
	Email         string        `json:"email"`
	FirstName     string        `json:"first_name"`
	LastName      string        `json:"last_name"`
	PhoneNumber   string        `json:"phone_number"`
	TxRef         string        `json:"tx_ref"`
	CallbackURL   string        `json:"callback_url"`
	ReturnURL     string        `json:"return_url"`
	Customization Customization `json:"customization"`
}

// InitializeResult is the successful outcome of an initialize call.
type InitializeResult struct {
	CheckoutURL string
	GatewayTxID string
}

// VerifyResult is the successful outcome of a verify call. GatewayStatus is
// the gateway's own vocabulary ("success", "failed", or anything else).
type VerifyResult struct {
	GatewayStatus string
}

// RejectedError means the gateway was reached but rejected the call: either
// a non-200 HTTP response or a top-level status other than "success".
// Transport failures are returned as ordinary wrapped errors instead.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	return "gateway rejected request: " + e.Message
}

// apiResponse is the top-level envelope every Chapa endpoint returns.
type apiResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Initialize starts a transaction with the gateway. A single attempt, no
// retries.
func (c *Client) Initialize(ctx context.Context, req InitializeRequest) (*InitializeResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode initialize payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/transaction/initialize", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build initialize request: %w", err)
	}
	c.setHeaders(httpReq)

	apiResp, err := c.do(httpReq)
	if err != nil {
		return nil, err
	}

	var data struct {
		CheckoutURL string `json:"checkout_url"`
		TxRef       string `json:"tx_ref"`
	}
	if len(apiResp.Data) > 0 {
		if err := json.Unmarshal(apiResp.Data, &data); err != nil {
			return nil, fmt.Errorf("decode initialize data: %w", err)
		}
	}

	return &InitializeResult{
		CheckoutURL: data.CheckoutURL,
		GatewayTxID: data.TxRef,
	}, nil
}

// Verify fetches the gateway's view of a transaction by reference.
func (c *Client) Verify(ctx context.Context, txRef string) (*VerifyResult, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/transaction/verify/"+txRef, nil)
	if err != nil {
		return nil, fmt.Errorf("build verify request: %w", err)
	}
	c.setHeaders(httpReq)

	apiResp, err := c.do(httpReq)
	if err != nil {
		return nil, err
	}

	var data struct {
		Status string `json:"status"`
	}
	if len(apiResp.Data) > 0 {
		if err := json.Unmarshal(apiResp.Data, &data); err != nil {
			return nil, fmt.Errorf("decode verify data: %w", err)
		}
	}

	return &VerifyResult{GatewayStatus: data.Status}, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")
}

// do executes the request and unwraps the Chapa envelope. Non-200 responses
// and non-"success" envelope statuses both become *RejectedError; anything
// that prevents reaching or reading the gateway stays a plain error.
func (c *Client) do(req *http.Request) (*apiResponse, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, &RejectedError{Message: fmt.Sprintf("gateway returned HTTP %d", resp.StatusCode)}
		}
		return nil, fmt.Errorf("decode gateway response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || apiResp.Status != "success" {
		message := apiResp.Message
		if message == "" {
			message = fmt.Sprintf("gateway returned HTTP %d", resp.StatusCode)
		}
		return nil, &RejectedError{Message: message}
	}

	return &apiResp, nil
}
