package sms_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/nexohub/internal/app/system/sms"
	"go.uber.org/zap"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := sms.NewClient(sms.Config{}, zap.NewNop()); err == nil {
		t.Fatal("NewClient accepted empty api key")
	}
}

func TestSend(t *testing.T) {
	var got struct {
		To      string `json:"to"`
		From    string `json:"from"`
		Message string `json:"message"`
	}
	var auth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, err := sms.NewClient(sms.Config{
		APIKey:  "test-key",
		From:    "NexoHub",
		BaseURL: srv.URL,
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	if err := c.Send(context.Background(), "5712345678", "Tu código es 123456"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if auth != "Bearer test-key" {
		t.Errorf("Authorization = %q", auth)
	}
	if got.To != "5712345678" || got.From != "NexoHub" || got.Message != "Tu código es 123456" {
		t.Errorf("request body = %+v", got)
	}
}

func TestSendProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c, err := sms.NewClient(sms.Config{APIKey: "k", BaseURL: srv.URL}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if err := c.Send(context.Background(), "5712345678", "hola"); err == nil {
		t.Error("Send succeeded on provider 502")
	}
}
