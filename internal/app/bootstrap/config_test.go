package bootstrap

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func validAppConfig() AppConfig {
	return AppConfig{
		PostgresDSN:        "postgres://localhost:5432/nexohub",
		SessionSecret:      "0123456789abcdef0123456789abcdef",
		SessionTTL:         30 * 24 * time.Hour,
		DefaultOrgSlug:     "nexo",
		DefaultCountryCode: "57",
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *AppConfig)
		wantErr bool
	}{
		{"valid", func(c *AppConfig) {}, false},
		{"optional deps absent", func(c *AppConfig) { c.KVURL = ""; c.SMSAPIKey = "" }, false},
		{"missing dsn", func(c *AppConfig) { c.PostgresDSN = "" }, true},
		{"missing secret", func(c *AppConfig) { c.SessionSecret = "" }, true},
		{"zero ttl", func(c *AppConfig) { c.SessionTTL = 0 }, true},
		{"missing default slug", func(c *AppConfig) { c.DefaultOrgSlug = "" }, true},
		{"non-digit country code", func(c *AppConfig) { c.DefaultCountryCode = "5a" }, true},
		{"overlong country code", func(c *AppConfig) { c.DefaultCountryCode = "12345678" }, true},
		{"empty country code ok", func(c *AppConfig) { c.DefaultCountryCode = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validAppConfig()
			tt.mutate(&cfg)
			err := ValidateConfig(nil, cfg, zap.NewNop())
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
