package ratelimit_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/nexohub/internal/app/system/ratelimit"
	"github.com/dalemusser/nexohub/internal/testutil"
	"go.uber.org/zap"
)

func TestShouldBlockOnSixthAttempt(t *testing.T) {
	fake := testutil.NewFakeKV()
	l := ratelimit.NewLoginLimiter(fake, zap.NewNop())
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		if l.ShouldBlock(ctx, "1.2.3.4") {
			t.Fatalf("attempt %d blocked, want allowed", i)
		}
	}
	if !l.ShouldBlock(ctx, "1.2.3.4") {
		t.Fatal("6th attempt allowed, want blocked")
	}
	// Still blocked while the window holds.
	if !l.ShouldBlock(ctx, "1.2.3.4") {
		t.Fatal("7th attempt allowed, want blocked")
	}
}

func TestIdentifiersAreIndependent(t *testing.T) {
	fake := testutil.NewFakeKV()
	l := ratelimit.NewLoginLimiter(fake, zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		l.ShouldBlock(ctx, "1.2.3.4")
	}
	if l.ShouldBlock(ctx, "5.6.7.8") {
		t.Error("different identifier blocked by another's attempts")
	}
}

func TestResetsAfterWindowElapses(t *testing.T) {
	fake := testutil.NewFakeKV()
	l := ratelimit.NewLoginLimiter(fake, zap.NewNop())
	ctx := context.Background()

	// Seed a full budget of attempts just past the window boundary.
	stale := time.Now().Add(-ratelimit.DefaultWindow - time.Minute)
	for i := 0; i < 5; i++ {
		if err := fake.WindowAdd(ctx, "ratelimit:1.2.3.4", stale, ratelimit.DefaultWindow); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	if l.ShouldBlock(ctx, "1.2.3.4") {
		t.Error("blocked after window elapsed, want allowed")
	}
}

func TestFailsOpenWhenStoreUnreachable(t *testing.T) {
	fake := testutil.NewFakeKV()
	fake.Err = errors.New("connection refused")
	l := ratelimit.NewLoginLimiter(fake, zap.NewNop())

	if l.ShouldBlock(context.Background(), "1.2.3.4") {
		t.Error("blocked while store down, want fail-open allow")
	}
}

func TestFailsOpenWhenUnconfigured(t *testing.T) {
	l := ratelimit.NewLoginLimiter(nil, zap.NewNop())
	if l.ShouldBlock(context.Background(), "1.2.3.4") {
		t.Error("blocked with no store configured, want allow")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name   string
		xff    string
		xri    string
		remote string
		want   string
	}{
		{name: "x-forwarded-for first entry", xff: "9.9.9.9, 10.0.0.1", remote: "10.0.0.2:1234", want: "9.9.9.9"},
		{name: "x-real-ip", xri: "8.8.8.8", remote: "10.0.0.2:1234", want: "8.8.8.8"},
		{name: "remote addr strips port", remote: "7.7.7.7:5555", want: "7.7.7.7"},
		{name: "remote addr without port", remote: "7.7.7.7", want: "7.7.7.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/auth/send-code", nil)
			r.RemoteAddr = tt.remote
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				r.Header.Set("X-Real-IP", tt.xri)
			}
			if got := ratelimit.ClientIP(r); got != tt.want {
				t.Errorf("ClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}
