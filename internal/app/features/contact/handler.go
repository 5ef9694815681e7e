// Package contact captures leads from the public contact form. No
// session is required; every free-text field is sanitized to plain
// text before it reaches the store.
package contact

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dalemusser/nexohub/internal/app/features/shared"
	"github.com/dalemusser/nexohub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/nexohub/internal/app/system/httperr"
	"github.com/dalemusser/nexohub/internal/app/system/normalize"
	"github.com/dalemusser/nexohub/internal/app/system/tenant"
	"github.com/dalemusser/nexohub/internal/app/system/timeouts"
	"github.com/dalemusser/nexohub/internal/domain/models"
)

const (
	MsgInvalidLead = "Datos de contacto inválidos"
	MsgReceived    = "Mensaje recibido"
	MsgUnavailable = "Servicio no disponible"
)

// LeadStore persists contact submissions.
type LeadStore interface {
	Create(ctx context.Context, l *models.Lead) error
}

type Handler struct {
	Leads       LeadStore
	CountryCode string
	Log         *zap.Logger
	ErrLog      *httperr.ErrorLogger

	now func() time.Time
}

func NewHandler(leads LeadStore, countryCode string, logger *zap.Logger) *Handler {
	return &Handler{
		Leads:       leads,
		CountryCode: countryCode,
		Log:         logger,
		ErrLog:      httperr.NewErrorLogger(logger),
		now:         time.Now,
	}
}

type contactRequest struct {
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Telefono string `json:"telefono"`
	Empresa  string `json:"empresa"`
	Mensaje  string `json:"mensaje"`
}

// ServeContact validates, sanitizes, and stores a lead for the resolved
// organization.
func (h *Handler) ServeContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.Write(w, r, httperr.Validation(MsgInvalidLead))
		return
	}

	lead := models.Lead{
		ID:        uuid.New(),
		Nombre:    htmlsanitize.Strict(req.Nombre),
		Email:     normalize.Email(htmlsanitize.Strict(req.Email)),
		Telefono:  normalize.Phone(req.Telefono, h.CountryCode),
		Empresa:   htmlsanitize.Strict(req.Empresa),
		Mensaje:   htmlsanitize.Strict(req.Mensaje),
		CreatedAt: h.now().UTC(),
	}
	if lead.Nombre == "" || lead.Email == "" || lead.Mensaje == "" {
		h.ErrLog.Write(w, r, httperr.Validation(MsgInvalidLead))
		return
	}

	org, ok := tenant.OrgFromRequest(r)
	if !ok {
		h.ErrLog.Write(w, r, httperr.Unavailable(MsgUnavailable, nil))
		return
	}
	lead.OrganizationID = org.ID

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Leads.Create(ctx, &lead); err != nil {
		h.ErrLog.Write(w, r, httperr.Internal("Error interno del servidor", err))
		return
	}

	h.Log.Info("lead captured",
		zap.String("org", org.Slug),
		zap.String("lead_id", lead.ID.String()))
	shared.JSON(w, http.StatusOK, shared.OK{Ok: true, Message: MsgReceived})
}
