// Package auth provides the member authentication guard.
//
// Every member-facing endpoint composes RequireMember as its first
// step and performs no business logic before it succeeds. The guard
// runs the full cryptographic session validation (never the cheap
// shape check) and then confirms the member row still exists.
package auth

import (
	"context"
	"net/http"

	"github.com/dalemusser/nexohub/internal/app/system/httperr"
	"github.com/dalemusser/nexohub/internal/app/system/session"
	"github.com/dalemusser/nexohub/internal/app/system/timeouts"
	"github.com/dalemusser/nexohub/internal/domain/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MsgUnauthorized is the generic 401 body for member endpoints.
const MsgUnauthorized = "No autorizado"

type ctxKey string

const currentMemberKey ctxKey = "currentMember"

// MemberLookup resolves a member id to a row.
type MemberLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Member, error)
}

// Guard validates the session cookie and loads the member.
type Guard struct {
	sessions *session.Manager
	members  MemberLookup
	log      *zap.Logger
}

// NewGuard builds a Guard.
func NewGuard(sessions *session.Manager, members MemberLookup, logger *zap.Logger) *Guard {
	return &Guard{sessions: sessions, members: members, log: logger}
}

// CurrentMember returns the authenticated member placed in the request
// context by RequireMember.
func CurrentMember(r *http.Request) (*models.Member, bool) {
	m, ok := r.Context().Value(currentMemberKey).(*models.Member)
	return m, ok
}

// RequireMember rejects the request with 401 unless the session cookie
// fully verifies and the member still resolves to a row.
func (g *Guard) RequireMember(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := session.ReadCookie(r)
		if !ok {
			httperr.WriteJSON(w, http.StatusUnauthorized, MsgUnauthorized)
			return
		}

		claims, err := g.sessions.Verify(token)
		if err != nil {
			g.log.Debug("session rejected", zap.Error(err))
			httperr.WriteJSON(w, http.StatusUnauthorized, MsgUnauthorized)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		member, err := g.members.GetByID(ctx, claims.MemberID)
		cancel()
		if err != nil {
			g.log.Debug("session member no longer resolves",
				zap.String("member_id", claims.MemberID.String()),
				zap.Error(err))
			httperr.WriteJSON(w, http.StatusUnauthorized, MsgUnauthorized)
			return
		}

		next.ServeHTTP(w, withMember(r, member))
	})
}

func withMember(r *http.Request, m *models.Member) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentMemberKey, m))
}

// WithTestMember injects a member into a request's context, bypassing
// the guard. Test helper only.
func WithTestMember(r *http.Request, m *models.Member) *http.Request {
	return withMember(r, m)
}
