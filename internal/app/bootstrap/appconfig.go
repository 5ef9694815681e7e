// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, request limits); AppConfig is everything specific to
// NexoHub. It is loaded once in LoadConfig and immutable afterward.
// Optional dependencies (Redis, SMS provider) are represented by empty
// values here and become typed present-or-absent handles in ConnectDB.
type AppConfig struct {
	// Postgres connection string for the privileged store.
	PostgresDSN string

	// Session token signing and cookie placement.
	SessionSecret string
	SessionDomain string // blank means current host
	SessionTTL    time.Duration

	// External key-value store for OTP codes and rate-limit windows.
	// Blank URL means not configured: OTP login is unavailable (fails
	// closed) and rate limiting is disabled (fails open).
	KVURL   string
	KVToken string

	// Transactional SMS provider. Blank API key means codes are logged
	// instead of dispatched (local development only).
	SMSAPIKey  string
	SMSFrom    string
	SMSBaseURL string

	// Tenancy defaults.
	DefaultOrgSlug string

	// Country code prepended to bare national phone numbers.
	DefaultCountryCode string
}
