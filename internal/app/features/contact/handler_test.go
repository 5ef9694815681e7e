package contact_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/dalemusser/nexohub/internal/app/features/contact"
	"github.com/dalemusser/nexohub/internal/app/system/tenant"
	"github.com/dalemusser/nexohub/internal/domain/models"
	"github.com/dalemusser/nexohub/internal/testutil"
)

type fakeLeads struct {
	created []models.Lead
	err     error
}

func (f *fakeLeads) Create(_ context.Context, l *models.Lead) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, *l)
	return nil
}

func validBody() map[string]string {
	return map[string]string{
		"nombre":   "Laura Gómez",
		"email":    "Laura@Example.com",
		"telefono": "(300) 123-4567",
		"empresa":  "Gómez & Cía",
		"mensaje":  "Quiero saber más sobre los eventos.",
	}
}

func TestServeContact_CreatesSanitizedLead(t *testing.T) {
	org := testutil.Org("acme")
	fl := &fakeLeads{}
	h := contact.NewHandler(fl, "57", zap.NewNop())

	body := validBody()
	body["mensaje"] = "Hola<script>alert('x')</script>"
	req := testutil.JSONRequest(t, "POST", "/contact", body)
	req = tenant.WithTestOrg(req, org)
	rec := httptest.NewRecorder()
	h.ServeContact(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if len(fl.created) != 1 {
		t.Fatalf("created %d leads, want 1", len(fl.created))
	}

	lead := fl.created[0]
	if lead.OrganizationID != org.ID {
		t.Errorf("lead org = %s, want %s", lead.OrganizationID, org.ID)
	}
	if lead.Email != "laura@example.com" {
		t.Errorf("email = %q, want lowercased", lead.Email)
	}
	if lead.Telefono != "573001234567" {
		t.Errorf("telefono = %q, want normalized with country code", lead.Telefono)
	}
	if strings.Contains(lead.Mensaje, "<") || strings.Contains(lead.Mensaje, "script") {
		t.Errorf("mensaje = %q, want markup stripped", lead.Mensaje)
	}
}

func TestServeContact_Failures(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(body map[string]string)
		noTenant bool
		wantCode int
	}{
		{
			name:     "missing nombre",
			mutate:   func(b map[string]string) { b["nombre"] = "" },
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing email",
			mutate:   func(b map[string]string) { b["email"] = "" },
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "markup-only mensaje",
			mutate:   func(b map[string]string) { b["mensaje"] = "<p></p>" },
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "no tenant resolved",
			mutate:   func(b map[string]string) {},
			noTenant: true,
			wantCode: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fl := &fakeLeads{}
			h := contact.NewHandler(fl, "57", zap.NewNop())

			body := validBody()
			tt.mutate(body)
			req := testutil.JSONRequest(t, "POST", "/contact", body)
			if !tt.noTenant {
				req = tenant.WithTestOrg(req, testutil.Org("acme"))
			}
			rec := httptest.NewRecorder()
			h.ServeContact(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantCode, rec.Body.String())
			}
			if len(fl.created) != 0 {
				t.Errorf("created %d leads, want 0", len(fl.created))
			}
		})
	}
}
