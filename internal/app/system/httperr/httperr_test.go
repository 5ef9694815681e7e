package httperr_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/nexohub/internal/app/system/httperr"
	"go.uber.org/zap"
)

func TestKindStatus(t *testing.T) {
	tests := []struct {
		kind httperr.Kind
		want int
	}{
		{httperr.KindValidation, 400},
		{httperr.KindUnauthenticated, 401},
		{httperr.KindRateLimited, 429},
		{httperr.KindUnavailable, 503},
		{httperr.KindInternal, 500},
	}
	for _, tt := range tests {
		if got := tt.kind.Status(); got != tt.want {
			t.Errorf("Status(%d) = %d, want %d", tt.kind, got, tt.want)
		}
	}
}

func TestErrorLoggerWritesGenericMessage(t *testing.T) {
	el := httperr.NewErrorLogger(zap.NewNop())

	cause := errors.New("pq: connection refused on 10.0.0.7")
	err := httperr.Unavailable("Servicio no disponible", cause)

	req := httptest.NewRequest("POST", "/auth/send-code", nil)
	rec := httptest.NewRecorder()
	el.Write(rec, req, err)

	if rec.Code != 503 {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	var body struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.OK {
		t.Error("ok = true, want false")
	}
	if body.Error != "Servicio no disponible" {
		t.Errorf("error = %q, want generic message", body.Error)
	}
	// The internal cause must never leak into the response.
	if got := rec.Body.String(); len(got) > 0 && containsSubstr(got, "10.0.0.7") {
		t.Errorf("response leaked internal detail: %s", got)
	}
}

func TestErrorLoggerUnclassifiedIsInternal(t *testing.T) {
	el := httperr.NewErrorLogger(zap.NewNop())

	req := httptest.NewRequest("GET", "/events", nil)
	rec := httptest.NewRecorder()
	el.Write(rec, req, fmt.Errorf("scan row: %w", errors.New("boom")))

	if rec.Code != 500 {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	err := httperr.Internal("Error interno del servidor", cause)
	if !errors.Is(err, cause) {
		t.Error("errors.Is failed to find wrapped cause")
	}
}

func containsSubstr(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}
