// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/dalemusser/nexohub/internal/app/system/normalize"
)

// appConfigKeys defines the configuration keys for NexoHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: postgres_dsn, session_secret, etc.
//   - Environment variables: NEXOHUB_POSTGRES_DSN, NEXOHUB_SESSION_SECRET, etc.
//   - Command-line flags: --postgres_dsn, --session_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "postgres_dsn", Default: "postgres://localhost:5432/nexohub", Desc: "Postgres connection string"},

	{Name: "session_secret", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session token signing secret (must be strong in production)"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_ttl", Default: "720h", Desc: "Session lifetime (e.g., 720h, 24h)"},

	{Name: "kv_url", Default: "", Desc: "Key-value store URL for OTP codes and rate limiting (blank disables)"},
	{Name: "kv_token", Default: "", Desc: "Key-value store auth token (overrides password in kv_url)"},

	{Name: "sms_api_key", Default: "", Desc: "SMS provider API key (blank logs codes instead of sending)"},
	{Name: "sms_from", Default: "NexoHub", Desc: "SMS sender id"},
	{Name: "sms_base_url", Default: "", Desc: "SMS provider endpoint override (blank uses provider default)"},

	{Name: "default_org_slug", Default: "nexo", Desc: "Organization slug used for localhost and unmatched hosts"},
	{Name: "default_country_code", Default: "57", Desc: "Country code prepended to 10-digit national phone numbers"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env and config files,
// NEXOHUB_* environment variables, and command-line flags, merging with
// precedence: flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "NEXOHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		PostgresDSN: appValues.String("postgres_dsn"),

		SessionSecret: appValues.String("session_secret"),
		SessionDomain: appValues.String("session_domain"),
		SessionTTL:    appValues.Duration("session_ttl", 30*24*time.Hour),

		KVURL:   appValues.String("kv_url"),
		KVToken: appValues.String("kv_token"),

		SMSAPIKey:  appValues.String("sms_api_key"),
		SMSFrom:    appValues.String("sms_from"),
		SMSBaseURL: appValues.String("sms_base_url"),

		DefaultOrgSlug:     appValues.String("default_org_slug"),
		DefaultCountryCode: appValues.String("default_country_code"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig enforces required fields and invariants before any
// backend is touched.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if appCfg.PostgresDSN == "" {
		return fmt.Errorf("postgres_dsn is required")
	}
	if appCfg.SessionSecret == "" {
		return fmt.Errorf("session_secret is required")
	}
	if appCfg.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be positive, got %s", appCfg.SessionTTL)
	}
	if appCfg.DefaultOrgSlug == "" {
		return fmt.Errorf("default_org_slug is required")
	}
	for _, r := range appCfg.DefaultCountryCode {
		if r < '0' || r > '9' {
			return fmt.Errorf("default_country_code must be digits, got %q", appCfg.DefaultCountryCode)
		}
	}
	if len(appCfg.DefaultCountryCode) >= normalize.MinPhoneDigits {
		return fmt.Errorf("default_country_code %q is implausibly long", appCfg.DefaultCountryCode)
	}

	if appCfg.KVURL == "" {
		logger.Warn("kv_url not set: OTP login will be unavailable and rate limiting disabled")
	}
	if appCfg.SMSAPIKey == "" {
		logger.Warn("sms_api_key not set: codes will be logged, not dispatched")
	}
	return nil
}
