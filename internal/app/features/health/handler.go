// Package health reports service and dependency status.
package health

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/dalemusser/nexohub/internal/app/features/shared"
	"github.com/dalemusser/nexohub/internal/app/system/timeouts"
)

// Pinger is anything with a connectivity check. Both pgxpool.Pool and
// the Redis client satisfy it.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	DB  Pinger
	KV  Pinger // nil when Redis is not configured
	Log *zap.Logger
}

func NewHandler(db, kv Pinger, logger *zap.Logger) *Handler {
	return &Handler{DB: db, KV: kv, Log: logger}
}

type status struct {
	Status   string `json:"status"`
	Postgres string `json:"postgres"`
	Redis    string `json:"redis"`
}

func (h *Handler) check(ctx context.Context, name string, p Pinger) string {
	if p == nil {
		return "unconfigured"
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()
	if err := p.Ping(pingCtx); err != nil {
		h.Log.Warn("health check failed", zap.String("dependency", name), zap.Error(err))
		return "down"
	}
	return "ok"
}

// Serve reports dependency connectivity. Postgres down makes the
// service unhealthy; Redis down degrades it (auth still mostly works,
// rate limiting fails open).
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	s := status{
		Postgres: h.check(r.Context(), "postgres", h.DB),
		Redis:    h.check(r.Context(), "redis", h.KV),
	}

	code := http.StatusOK
	switch {
	case s.Postgres != "ok":
		s.Status = "unhealthy"
		code = http.StatusServiceUnavailable
	case s.Redis == "down":
		s.Status = "degraded"
	default:
		s.Status = "ok"
	}
	shared.JSON(w, code, s)
}
