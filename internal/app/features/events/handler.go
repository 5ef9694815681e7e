// Package events serves the organization's event calendar and
// inscription endpoint.
package events

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dalemusser/nexohub/internal/app/features/shared"
	"github.com/dalemusser/nexohub/internal/app/store"
	"github.com/dalemusser/nexohub/internal/app/system/auth"
	"github.com/dalemusser/nexohub/internal/app/system/httperr"
	"github.com/dalemusser/nexohub/internal/app/system/tenant"
	"github.com/dalemusser/nexohub/internal/app/system/timeouts"
	"github.com/dalemusser/nexohub/internal/domain/models"
)

const MsgInvalidEvent = "Evento no válido"

// EventStore is the slice of the event store the handler needs.
type EventStore interface {
	ListUpcoming(ctx context.Context, orgID uuid.UUID, now time.Time) ([]models.Event, error)
	GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Event, error)
	Register(ctx context.Context, a *models.EventAttendance) error
}

type Handler struct {
	Events EventStore
	Log    *zap.Logger
	ErrLog *httperr.ErrorLogger

	now func() time.Time
}

func NewHandler(events EventStore, logger *zap.Logger) *Handler {
	return &Handler{
		Events: events,
		Log:    logger,
		ErrLog: httperr.NewErrorLogger(logger),
		now:    time.Now,
	}
}

type listResponse struct {
	Events []models.Event `json:"events"`
}

type getResponse struct {
	Event *models.Event `json:"event"`
}

// ServeList returns the organization's upcoming events. An unresolved
// tenant degrades to an empty list.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	org, ok := tenant.OrgFromRequest(r)
	if !ok {
		shared.JSON(w, http.StatusOK, listResponse{Events: []models.Event{}})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	events, err := h.Events.ListUpcoming(ctx, org.ID, h.now().UTC())
	if err != nil {
		h.ErrLog.Write(w, r, httperr.Internal("Error interno del servidor", err))
		return
	}
	if events == nil {
		events = []models.Event{}
	}
	shared.JSON(w, http.StatusOK, listResponse{Events: events})
}

// ServeGet returns one event, or a null event when it does not exist
// for this organization.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	org, ok := tenant.OrgFromRequest(r)
	if !ok {
		shared.JSON(w, http.StatusOK, getResponse{})
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Write(w, r, httperr.Validation(MsgInvalidEvent))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	event, err := h.Events.GetByID(ctx, org.ID, id)
	if errors.Is(err, store.ErrNotFound) {
		shared.JSON(w, http.StatusOK, getResponse{})
		return
	}
	if err != nil {
		h.ErrLog.Write(w, r, httperr.Internal("Error interno del servidor", err))
		return
	}
	shared.JSON(w, http.StatusOK, getResponse{Event: event})
}

// ServeRegister records the authenticated member's inscription to an
// event of their organization. Registering twice is idempotent.
func (h *Handler) ServeRegister(w http.ResponseWriter, r *http.Request) {
	member, ok := auth.CurrentMember(r)
	if !ok {
		h.ErrLog.Write(w, r, httperr.Unauthenticated(auth.MsgUnauthorized))
		return
	}
	org, ok := tenant.OrgFromRequest(r)
	if !ok {
		h.ErrLog.Write(w, r, httperr.Validation(MsgInvalidEvent))
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Write(w, r, httperr.Validation(MsgInvalidEvent))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Events.GetByID(ctx, org.ID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.ErrLog.Write(w, r, httperr.Validation(MsgInvalidEvent))
			return
		}
		h.ErrLog.Write(w, r, httperr.Internal("Error interno del servidor", err))
		return
	}

	att := &models.EventAttendance{
		EventID:   id,
		MemberID:  member.ID,
		CreatedAt: h.now().UTC(),
	}
	if err := h.Events.Register(ctx, att); err != nil {
		h.ErrLog.Write(w, r, httperr.Internal("Error interno del servidor", err))
		return
	}

	h.Log.Info("event registration",
		zap.String("event_id", id.String()),
		zap.String("member_id", member.ID.String()))
	shared.JSON(w, http.StatusOK, shared.OK{Ok: true})
}
