package health_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/dalemusser/nexohub/internal/app/features/health"
	"github.com/dalemusser/nexohub/internal/testutil"
)

type fakePinger struct {
	err error
}

func (f *fakePinger) Ping(context.Context) error { return f.err }

func TestServe(t *testing.T) {
	down := errors.New("connection refused")

	tests := []struct {
		name         string
		db, kv       health.Pinger
		wantCode     int
		wantStatus   string
		wantPostgres string
		wantRedis    string
	}{
		{
			name: "all healthy",
			db:   &fakePinger{}, kv: &fakePinger{},
			wantCode: http.StatusOK, wantStatus: "ok",
			wantPostgres: "ok", wantRedis: "ok",
		},
		{
			name: "postgres down",
			db:   &fakePinger{err: down}, kv: &fakePinger{},
			wantCode: http.StatusServiceUnavailable, wantStatus: "unhealthy",
			wantPostgres: "down", wantRedis: "ok",
		},
		{
			name: "redis down degrades",
			db:   &fakePinger{}, kv: &fakePinger{err: down},
			wantCode: http.StatusOK, wantStatus: "degraded",
			wantPostgres: "ok", wantRedis: "down",
		},
		{
			name: "redis unconfigured",
			db:   &fakePinger{}, kv: nil,
			wantCode: http.StatusOK, wantStatus: "ok",
			wantPostgres: "ok", wantRedis: "unconfigured",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := health.NewHandler(tt.db, tt.kv, zap.NewNop())

			req := httptest.NewRequest("GET", "/health", nil)
			rec := httptest.NewRecorder()
			h.Serve(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("status code = %d, want %d", rec.Code, tt.wantCode)
			}
			var body struct {
				Status   string `json:"status"`
				Postgres string `json:"postgres"`
				Redis    string `json:"redis"`
			}
			testutil.DecodeJSON(t, rec, &body)
			if body.Status != tt.wantStatus || body.Postgres != tt.wantPostgres || body.Redis != tt.wantRedis {
				t.Errorf("body = %+v, want {%s %s %s}", body, tt.wantStatus, tt.wantPostgres, tt.wantRedis)
			}
		})
	}
}
