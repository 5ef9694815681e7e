// Package sms dispatches transactional text messages through a hosted
// SMS provider's REST API.
//
// The provider is an optional dependency: bootstrap only constructs a
// Client when an API key is configured, and callers hold a nil-able
// Sender checked at the call site.
package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Sender dispatches a text message to a normalized phone number.
type Sender interface {
	Send(ctx context.Context, phone, message string) error
}

// Config holds provider settings.
type Config struct {
	// APIKey authenticates against the provider. Required.
	APIKey string
	// From is the sender name shown on the message.
	From string
	// BaseURL overrides the provider endpoint (useful for testing).
	BaseURL string
	// HTTPClient overrides the HTTP client. Defaults to a 10 s client.
	HTTPClient *http.Client
}

const defaultBaseURL = "https://api.smsprovider.example/v1/messages"

// Client is an HTTP Sender.
type Client struct {
	apiKey  string
	from    string
	baseURL string
	httpc   *http.Client
	log     *zap.Logger
}

// NewClient builds a Client from cfg.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("sms api key is empty")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpc := cfg.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		apiKey:  cfg.APIKey,
		from:    cfg.From,
		baseURL: baseURL,
		httpc:   httpc,
		log:     logger,
	}, nil
}

type sendRequest struct {
	To      string `json:"to"`
	From    string `json:"from,omitempty"`
	Message string `json:"message"`
}

// Send implements Sender. Any non-2xx response is an error; the caller
// decides whether delivery failure is fatal for its flow.
func (c *Client) Send(ctx context.Context, phone, message string) error {
	body, err := json.Marshal(sendRequest{To: phone, From: c.from, Message: message})
	if err != nil {
		return fmt.Errorf("marshal sms request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("sms dispatch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sms provider returned %d", resp.StatusCode)
	}

	c.log.Info("sms dispatched", zap.String("to", phone))
	return nil
}
