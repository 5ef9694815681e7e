// Package authflow implements phone-OTP login: request a code, exchange
// it for a session cookie, inspect or end the session.
package authflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dalemusser/nexohub/internal/app/store"
	"github.com/dalemusser/nexohub/internal/app/system/auth"
	"github.com/dalemusser/nexohub/internal/app/system/httperr"
	"github.com/dalemusser/nexohub/internal/app/system/normalize"
	"github.com/dalemusser/nexohub/internal/app/system/otp"
	"github.com/dalemusser/nexohub/internal/app/system/ratelimit"
	"github.com/dalemusser/nexohub/internal/app/system/session"
	"github.com/dalemusser/nexohub/internal/app/system/sms"
	"github.com/dalemusser/nexohub/internal/app/system/tenant"
	"github.com/dalemusser/nexohub/internal/app/system/timeouts"
	"github.com/dalemusser/nexohub/internal/domain/models"
	"github.com/dalemusser/nexohub/internal/app/features/shared"
)

// User-facing messages. Internal failure detail never reaches the
// client; these are all it ever sees.
const (
	MsgInvalidPhone    = "Teléfono inválido"
	MsgInvalidCode     = "Código inválido"
	MsgUnregistered    = "Usuario no registrado"
	MsgCodeSent        = "Código enviado"
	MsgTooManyRequests = "Demasiados intentos. Intenta de nuevo más tarde."
	MsgUnavailable     = "Servicio no disponible"
)

// MemberByPhone resolves a normalized phone to a member within one
// organization.
type MemberByPhone interface {
	GetByPhone(ctx context.Context, orgID uuid.UUID, phone string) (*models.Member, error)
}

type Handler struct {
	Members     MemberByPhone
	OTP         *otp.Issuer
	Limiter     *ratelimit.Limiter
	Sessions    *session.Manager
	SMS         sms.Sender // nil when no provider is configured
	CountryCode string
	Log         *zap.Logger
	ErrLog      *httperr.ErrorLogger
}

func NewHandler(members MemberByPhone, issuer *otp.Issuer, limiter *ratelimit.Limiter,
	sessions *session.Manager, sender sms.Sender, countryCode string, logger *zap.Logger) *Handler {
	return &Handler{
		Members:     members,
		OTP:         issuer,
		Limiter:     limiter,
		Sessions:    sessions,
		SMS:         sender,
		CountryCode: countryCode,
		Log:         logger,
		ErrLog:      httperr.NewErrorLogger(logger),
	}
}

type sendCodeRequest struct {
	Phone string `json:"phone"`
}

type loginRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

// ServeSendCode validates the phone, rate-limits by client IP, confirms
// the phone belongs to a registered member, stores a fresh OTP, and
// dispatches it over SMS.
func (h *Handler) ServeSendCode(w http.ResponseWriter, r *http.Request) {
	var req sendCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.Write(w, r, httperr.Validation(MsgInvalidPhone))
		return
	}

	phone := normalize.Phone(req.Phone, h.CountryCode)
	if len(phone) < normalize.MinPhoneDigits {
		h.ErrLog.Write(w, r, httperr.Validation(MsgInvalidPhone))
		return
	}

	org, ok := tenant.OrgFromRequest(r)
	if !ok {
		h.ErrLog.Write(w, r, httperr.Unavailable(MsgUnavailable, errors.New("no organization resolved")))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if h.Limiter.ShouldBlock(ctx, ratelimit.ClientIP(r)) {
		h.ErrLog.Write(w, r, httperr.RateLimited(MsgTooManyRequests))
		return
	}

	member, err := h.Members.GetByPhone(ctx, org.ID, phone)
	if errors.Is(err, store.ErrNotFound) {
		h.ErrLog.Write(w, r, httperr.Unauthenticated(MsgUnregistered))
		return
	}
	if err != nil {
		h.ErrLog.Write(w, r, httperr.Unavailable(MsgUnavailable, err))
		return
	}

	code, err := h.OTP.Issue(ctx, phone)
	if err != nil {
		h.ErrLog.Write(w, r, httperr.Unavailable(MsgUnavailable, err))
		return
	}

	if h.SMS == nil {
		// No provider configured; only useful in local development.
		h.Log.Warn("sms provider not configured, code not dispatched",
			zap.String("phone", phone))
	} else if err := h.SMS.Send(ctx, phone, fmt.Sprintf("Tu código de acceso es %s", code)); err != nil {
		h.ErrLog.Write(w, r, httperr.Unavailable(MsgUnavailable, err))
		return
	}

	h.Log.Info("otp dispatched",
		zap.String("org", org.Slug),
		zap.String("member_id", member.ID.String()))
	shared.JSON(w, http.StatusOK, shared.OK{Ok: true, Message: MsgCodeSent})
}

// ServeLogin verifies phone+code and, on success, issues the session
// cookie. Verification is single use: a consumed code cannot log in
// twice.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.Write(w, r, httperr.Validation(MsgInvalidPhone))
		return
	}

	phone := normalize.Phone(req.Phone, h.CountryCode)
	if len(phone) < normalize.MinPhoneDigits {
		h.ErrLog.Write(w, r, httperr.Validation(MsgInvalidPhone))
		return
	}
	if len(req.Code) != otp.CodeLength {
		h.ErrLog.Write(w, r, httperr.Validation(MsgInvalidCode))
		return
	}

	org, ok := tenant.OrgFromRequest(r)
	if !ok {
		h.ErrLog.Write(w, r, httperr.Unavailable(MsgUnavailable, errors.New("no organization resolved")))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	member, err := h.Members.GetByPhone(ctx, org.ID, phone)
	if errors.Is(err, store.ErrNotFound) {
		h.ErrLog.Write(w, r, httperr.Unauthenticated(MsgUnregistered))
		return
	}
	if err != nil {
		h.ErrLog.Write(w, r, httperr.Unavailable(MsgUnavailable, err))
		return
	}

	if !h.OTP.Verify(ctx, phone, req.Code) {
		h.ErrLog.Write(w, r, httperr.Unauthenticated(MsgInvalidCode))
		return
	}

	token, err := h.Sessions.Issue(member.ID, member.Phone)
	if err != nil {
		h.ErrLog.Write(w, r, httperr.Internal("Error interno del servidor", err))
		return
	}
	h.Sessions.SetCookie(w, token)

	h.Log.Info("member logged in",
		zap.String("org", org.Slug),
		zap.String("member_id", member.ID.String()))
	shared.JSON(w, http.StatusOK, shared.Redirect{Ok: true, Redirect: "/"})
}

// ServeLogout clears the session cookie. The token itself stays valid
// until its embedded expiry; there is no server-side revocation list.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Clear(w)
	shared.JSON(w, http.StatusOK, shared.Redirect{Ok: true, Redirect: "/"})
}

// ServeSession returns the authenticated member. Mounted behind the
// guard, so the member is always present here.
func (h *Handler) ServeSession(w http.ResponseWriter, r *http.Request) {
	member, ok := auth.CurrentMember(r)
	if !ok {
		h.ErrLog.Write(w, r, httperr.Unauthenticated(auth.MsgUnauthorized))
		return
	}
	shared.JSON(w, http.StatusOK, member)
}
