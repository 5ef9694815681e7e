package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/nexohub/internal/app/system/auth"
	"github.com/dalemusser/nexohub/internal/app/system/session"
	"github.com/dalemusser/nexohub/internal/domain/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type fakeMembers struct {
	members map[uuid.UUID]*models.Member
	err     error
}

func (f *fakeMembers) GetByID(_ context.Context, id uuid.UUID) (*models.Member, error) {
	if f.err != nil {
		return nil, f.err
	}
	m, ok := f.members[id]
	if !ok {
		return nil, errors.New("member not found")
	}
	return m, nil
}

func newGuard(t *testing.T, members *fakeMembers) (*auth.Guard, *session.Manager) {
	t.Helper()
	mgr, err := session.NewManager(session.Config{
		Secret: "0123456789abcdef0123456789abcdef",
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return auth.NewGuard(mgr, members, zap.NewNop()), mgr
}

func serveGuarded(guard *auth.Guard, req *http.Request) (*httptest.ResponseRecorder, *models.Member) {
	var got *models.Member
	h := guard.RequireMember(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.CurrentMember(r)
		w.WriteHeader(http.StatusOK)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec, got
}

func TestRequireMemberHappyPath(t *testing.T) {
	member := &models.Member{ID: uuid.New(), Phone: "5712345678", Nombre: "Ana"}
	members := &fakeMembers{members: map[uuid.UUID]*models.Member{member.ID: member}}
	guard, mgr := newGuard(t, members)

	token, err := mgr.Issue(member.ID, member.Phone)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	req := httptest.NewRequest("GET", "/auth/session", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})

	rec, got := serveGuarded(guard, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got == nil || got.ID != member.ID {
		t.Error("member not injected into context")
	}
}

func TestRequireMemberNoCookie(t *testing.T) {
	guard, _ := newGuard(t, &fakeMembers{})
	rec, _ := serveGuarded(guard, httptest.NewRequest("GET", "/auth/session", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireMemberMalformedToken(t *testing.T) {
	guard, _ := newGuard(t, &fakeMembers{})
	req := httptest.NewRequest("GET", "/auth/session", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "not-a-token"})
	rec, _ := serveGuarded(guard, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireMemberDeletedMember(t *testing.T) {
	members := &fakeMembers{members: map[uuid.UUID]*models.Member{}}
	guard, mgr := newGuard(t, members)

	// Valid token for a member whose row is gone.
	token, err := mgr.Issue(uuid.New(), "5712345678")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	req := httptest.NewRequest("GET", "/auth/session", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})

	rec, _ := serveGuarded(guard, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireMemberStoreDownFailsClosed(t *testing.T) {
	member := &models.Member{ID: uuid.New(), Phone: "5712345678"}
	members := &fakeMembers{err: errors.New("connection refused")}
	guard, mgr := newGuard(t, members)

	token, err := mgr.Issue(member.ID, member.Phone)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	req := httptest.NewRequest("GET", "/auth/session", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})

	rec, _ := serveGuarded(guard, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 (fail closed)", rec.Code)
	}
}
