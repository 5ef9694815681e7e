// Package ratelimit bounds login attempts per client address using a
// sliding window kept in the external KV store.
//
// The limiter fails open: when the backing store is unreachable or not
// configured, requests are allowed. Availability wins over strict abuse
// prevention when the dependency is down, the opposite of the OTP and
// session checks, which fail closed.
package ratelimit

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/nexohub/internal/app/system/kv"
	"go.uber.org/zap"
)

// Login attempt budget: 5 accepted attempts per 15 minutes per address.
const (
	DefaultLimit  = 5
	DefaultWindow = 15 * time.Minute

	keyPrefix = "ratelimit:"
)

// Limiter counts accepted attempts per identifier in a trailing window.
type Limiter struct {
	win    kv.Window
	limit  int
	window time.Duration
	log    *zap.Logger
}

// New creates a limiter. win may be nil when no KV store is configured;
// the limiter then never blocks.
func New(win kv.Window, limit int, window time.Duration, logger *zap.Logger) *Limiter {
	return &Limiter{win: win, limit: limit, window: window, log: logger}
}

// NewLoginLimiter creates a limiter with the login defaults.
func NewLoginLimiter(win kv.Window, logger *zap.Logger) *Limiter {
	return New(win, DefaultLimit, DefaultWindow, logger)
}

// ShouldBlock reports whether the attempt from identifier should be
// rejected. An allowed attempt is recorded; a blocked one is not, so
// the budget counts accepted attempts only.
func (l *Limiter) ShouldBlock(ctx context.Context, identifier string) bool {
	if l.win == nil {
		return false
	}

	key := keyPrefix + identifier
	now := time.Now()

	count, err := l.win.WindowCount(ctx, key, l.window)
	if err != nil {
		l.log.Warn("rate limit store unreachable, allowing", zap.Error(err))
		return false
	}
	if count >= int64(l.limit) {
		return true
	}

	if err := l.win.WindowAdd(ctx, key, now, l.window); err != nil {
		l.log.Warn("rate limit record failed, allowing", zap.Error(err))
	}
	return false
}

// ClientIP extracts the client address from a request, preferring the
// proxy headers set by the hosting edge.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := strings.TrimSpace(strings.Split(xff, ",")[0]); ip != "" {
			return ip
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
