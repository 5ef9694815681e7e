// Package members serves the member directory and cafecito invitations.
package members

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dalemusser/nexohub/internal/app/features/shared"
	"github.com/dalemusser/nexohub/internal/app/store"
	"github.com/dalemusser/nexohub/internal/app/system/auth"
	"github.com/dalemusser/nexohub/internal/app/system/httperr"
	"github.com/dalemusser/nexohub/internal/app/system/paging"
	"github.com/dalemusser/nexohub/internal/app/system/tenant"
	"github.com/dalemusser/nexohub/internal/app/system/timeouts"
	"github.com/dalemusser/nexohub/internal/domain/models"
)

const (
	MsgSelfInvite    = "No puedes invitarte a ti mismo"
	MsgInvalidMember = "Miembro no válido"
)

// MemberStore is the directory slice of the member store.
type MemberStore interface {
	List(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]models.Member, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Member, error)
}

// ConnectionStore records and reads cafecito edges.
type ConnectionStore interface {
	Upsert(ctx context.Context, orgID uuid.UUID, c *models.Connection) error
	ListForMember(ctx context.Context, orgID, memberID uuid.UUID) ([]models.Connection, error)
}

type Handler struct {
	Members     MemberStore
	Connections ConnectionStore
	Log         *zap.Logger
	ErrLog      *httperr.ErrorLogger

	now func() time.Time
}

func NewHandler(members MemberStore, connections ConnectionStore, logger *zap.Logger) *Handler {
	return &Handler{
		Members:     members,
		Connections: connections,
		Log:         logger,
		ErrLog:      httperr.NewErrorLogger(logger),
		now:         time.Now,
	}
}

type listResponse struct {
	Members []models.PublicMember `json:"members"`
	Page    int                   `json:"page"`
}

// ServeList returns one page of the directory projection of the
// organization's members. Phones and referral chains are never exposed.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	page := paging.FromRequest(r)

	org, ok := tenant.OrgFromRequest(r)
	if !ok {
		shared.JSON(w, http.StatusOK, listResponse{Members: []models.PublicMember{}, Page: page.Number})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	members, err := h.Members.List(ctx, org.ID, page.Limit, page.Offset)
	if err != nil {
		h.ErrLog.Write(w, r, httperr.Internal("Error interno del servidor", err))
		return
	}

	out := make([]models.PublicMember, 0, len(members))
	for _, m := range members {
		out = append(out, m.Public())
	}
	shared.JSON(w, http.StatusOK, listResponse{Members: out, Page: page.Number})
}

type connectionsResponse struct {
	Connections []models.Connection `json:"connections"`
}

// ServeConnections returns the cafecitos the authenticated member has
// initiated, newest first.
func (h *Handler) ServeConnections(w http.ResponseWriter, r *http.Request) {
	member, ok := auth.CurrentMember(r)
	if !ok {
		h.ErrLog.Write(w, r, httperr.Unauthenticated(auth.MsgUnauthorized))
		return
	}
	org, ok := tenant.OrgFromRequest(r)
	if !ok {
		shared.JSON(w, http.StatusOK, connectionsResponse{Connections: []models.Connection{}})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	conns, err := h.Connections.ListForMember(ctx, org.ID, member.ID)
	if err != nil {
		h.ErrLog.Write(w, r, httperr.Internal("Error interno del servidor", err))
		return
	}
	if conns == nil {
		conns = []models.Connection{}
	}
	shared.JSON(w, http.StatusOK, connectionsResponse{Connections: conns})
}

type inviteRequest struct {
	ConnectedMemberID string `json:"connectedMemberId"`
}

// ServeInviteCafe records a cafecito invitation from the authenticated
// member to another member of the same organization. Re-inviting the
// same member refreshes the existing edge.
func (h *Handler) ServeInviteCafe(w http.ResponseWriter, r *http.Request) {
	member, ok := auth.CurrentMember(r)
	if !ok {
		h.ErrLog.Write(w, r, httperr.Unauthenticated(auth.MsgUnauthorized))
		return
	}
	org, ok := tenant.OrgFromRequest(r)
	if !ok {
		h.ErrLog.Write(w, r, httperr.Validation(MsgInvalidMember))
		return
	}

	var req inviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.Write(w, r, httperr.Validation(MsgInvalidMember))
		return
	}
	targetID, err := uuid.Parse(req.ConnectedMemberID)
	if err != nil {
		h.ErrLog.Write(w, r, httperr.Validation(MsgInvalidMember))
		return
	}
	if targetID == member.ID {
		h.ErrLog.Write(w, r, httperr.Validation(MsgSelfInvite))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	target, err := h.Members.GetByID(ctx, targetID)
	if errors.Is(err, store.ErrNotFound) {
		h.ErrLog.Write(w, r, httperr.Validation(MsgInvalidMember))
		return
	}
	if err != nil {
		h.ErrLog.Write(w, r, httperr.Internal("Error interno del servidor", err))
		return
	}
	if target.OrganizationID != org.ID {
		h.ErrLog.Write(w, r, httperr.Validation(MsgInvalidMember))
		return
	}

	conn := &models.Connection{
		MemberID:          member.ID,
		ConnectedMemberID: target.ID,
		Tipo:              models.ConnectionInvitado,
		CreatedAt:         h.now().UTC(),
	}
	if err := h.Connections.Upsert(ctx, org.ID, conn); err != nil {
		h.ErrLog.Write(w, r, httperr.Internal("Error interno del servidor", err))
		return
	}

	h.Log.Info("cafecito invitation",
		zap.String("member_id", member.ID.String()),
		zap.String("connected_member_id", target.ID.String()))
	shared.JSON(w, http.StatusOK, shared.OK{Ok: true})
}
