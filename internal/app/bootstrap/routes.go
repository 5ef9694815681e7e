// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	authflowfeature "github.com/dalemusser/nexohub/internal/app/features/authflow"
	contactfeature "github.com/dalemusser/nexohub/internal/app/features/contact"
	eventsfeature "github.com/dalemusser/nexohub/internal/app/features/events"
	healthfeature "github.com/dalemusser/nexohub/internal/app/features/health"
	membersfeature "github.com/dalemusser/nexohub/internal/app/features/members"
	connectionstore "github.com/dalemusser/nexohub/internal/app/store/connections"
	eventstore "github.com/dalemusser/nexohub/internal/app/store/events"
	leadstore "github.com/dalemusser/nexohub/internal/app/store/leads"
	memberstore "github.com/dalemusser/nexohub/internal/app/store/members"
	orgstore "github.com/dalemusser/nexohub/internal/app/store/orgs"
	"github.com/dalemusser/nexohub/internal/app/system/auth"
	"github.com/dalemusser/nexohub/internal/app/system/kv"
	"github.com/dalemusser/nexohub/internal/app/system/otp"
	"github.com/dalemusser/nexohub/internal/app/system/ratelimit"
	"github.com/dalemusser/nexohub/internal/app/system/session"
	"github.com/dalemusser/nexohub/internal/app/system/tenant"
)

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and Startup have completed. It builds the session manager, the
// stores, and the per-feature handlers, then mounts the feature routers
// behind the tenant-resolution middleware.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"
	sessions, err := session.NewManager(session.Config{
		Secret: appCfg.SessionSecret,
		Domain: appCfg.SessionDomain,
		Secure: secure,
		TTL:    appCfg.SessionTTL,
	}, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	orgs := orgstore.New(deps.Pool)
	members := memberstore.New(deps.Pool)
	connections := connectionstore.New(deps.Pool)
	events := eventstore.New(deps.Pool)
	leads := leadstore.New(deps.Pool)

	// When Redis is absent, OTP storage fails closed and the rate
	// limiter window stays nil (fails open).
	var otpStore kv.Store = kv.Unavailable{}
	var window kv.Window
	if deps.KV != nil {
		otpStore = deps.KV
		window = deps.KV
	}
	issuer := otp.NewIssuer(otpStore, logger)
	limiter := ratelimit.NewLoginLimiter(window, logger)

	guard := auth.NewGuard(sessions, members, logger)

	r := chi.NewRouter()

	// Tenant resolution runs on every request; handlers read the
	// resolved organization from the context.
	r.Use(tenant.Middleware(orgs, appCfg.DefaultOrgSlug, logger))

	var kvPinger healthfeature.Pinger
	if deps.KV != nil {
		kvPinger = deps.KV
	}
	healthHandler := healthfeature.NewHandler(deps.Pool, kvPinger, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	authHandler := authflowfeature.NewHandler(members, issuer, limiter, sessions,
		deps.SMS, appCfg.DefaultCountryCode, logger)
	r.Mount("/auth", authflowfeature.Routes(authHandler, guard))

	eventsHandler := eventsfeature.NewHandler(events, logger)
	r.Mount("/events", eventsfeature.Routes(eventsHandler, guard))

	membersHandler := membersfeature.NewHandler(members, connections, logger)
	r.Mount("/members", membersfeature.Routes(membersHandler, guard))

	contactHandler := contactfeature.NewHandler(leads, appCfg.DefaultCountryCode, logger)
	r.Mount("/contact", contactfeature.Routes(contactHandler))

	return r, nil
}
