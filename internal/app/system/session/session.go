// Package session issues and validates the signed member session token.
//
// A token is self-contained: base64(JSON payload) + "." + hex HMAC-SHA256
// signature over the payload bytes. Nothing is persisted server-side, so
// logout only clears the cookie; a captured token stays cryptographically
// valid until its natural expiry. That tradeoff is accepted; there is no
// revocation list.
//
// Two validation strengths exist and they return distinct types on
// purpose:
//
//   - CheckShape → Shape: a cheap format check, safe to run on every
//     request at the edge. It proves well-formedness, never authenticity,
//     and therefore carries no identity fields.
//   - Manager.Verify → Claims: full cryptographic verification, done once
//     at the authenticated-endpoint boundary. Only Claims exposes the
//     member identity.
package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// CookieName is the fixed session cookie name.
	CookieName = "nexohub_session"

	// DefaultTTL is the session lifetime embedded in the payload and
	// mirrored on the cookie.
	DefaultTTL = 30 * 24 * time.Hour

	// signatureHexLen is the exact length of the hex HMAC-SHA256 part.
	signatureHexLen = 64

	// minEncodedLen is the minimum plausible length of the base64
	// payload part. The smallest real payload is far longer.
	minEncodedLen = 32
)

var (
	// ErrInvalidToken means the token is malformed or its signature does
	// not verify.
	ErrInvalidToken = errors.New("session: invalid token")
	// ErrExpired means the token verified but its lifetime has passed.
	ErrExpired = errors.New("session: token expired")
)

// payload is the signed token body.
type payload struct {
	MemberID string `json:"member_id"`
	Phone    string `json:"phone"`
	IssuedAt int64  `json:"issued_at"`
}

// Config holds session manager settings.
type Config struct {
	// Secret signs tokens. Required; 32+ bytes recommended.
	Secret string
	// Domain scopes the cookie. Blank means current host.
	Domain string
	// Secure marks the cookie Secure (production).
	Secure bool
	// TTL overrides DefaultTTL when positive.
	TTL time.Duration
}

// Manager issues and verifies session tokens and manages the cookie.
type Manager struct {
	secret []byte
	domain string
	secure bool
	ttl    time.Duration
	log    *zap.Logger
}

// NewManager validates cfg and builds a Manager.
func NewManager(cfg Config, logger *zap.Logger) (*Manager, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("session secret is empty; provide 32+ random chars")
	}
	if len(cfg.Secret) < 32 {
		logger.Warn("session secret is short; 32+ chars recommended",
			zap.Int("length", len(cfg.Secret)))
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		secret: []byte(cfg.Secret),
		domain: cfg.Domain,
		secure: cfg.Secure,
		ttl:    ttl,
		log:    logger,
	}, nil
}

// TTL returns the configured session lifetime.
func (m *Manager) TTL() time.Duration { return m.ttl }

// Issue creates a token for a verified member identity.
func (m *Manager) Issue(memberID uuid.UUID, phone string) (string, error) {
	raw, err := json.Marshal(payload{
		MemberID: memberID.String(),
		Phone:    phone,
		IssuedAt: time.Now().Unix(),
	})
	if err != nil {
		return "", fmt.Errorf("marshal session payload: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw) + "." + m.sign(raw), nil
}

func (m *Manager) sign(raw []byte) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write(raw)
	return hex.EncodeToString(mac.Sum(nil))
}

// Shape is the result of the cheap format check. It intentionally
// exposes nothing: holding a Shape proves a token is well-formed, not
// that it is authentic.
type Shape struct {
	encoded   string
	signature string
}

// CheckShape splits token into its two dot-separated parts and checks
// their lengths. It never touches the secret.
func CheckShape(token string) (Shape, bool) {
	parts := strings.Split(token, ".")
	if len(parts) != 2 {
		return Shape{}, false
	}
	encoded, signature := parts[0], parts[1]
	if len(encoded) < minEncodedLen || len(signature) != signatureHexLen {
		return Shape{}, false
	}
	return Shape{encoded: encoded, signature: signature}, true
}

// Claims is a fully verified member identity extracted from a token.
type Claims struct {
	MemberID  uuid.UUID
	Phone     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Verify performs full validation: format, constant-time signature
// comparison, and expiry. On success it returns the decoded Claims.
func (m *Manager) Verify(token string) (Claims, error) {
	shape, ok := CheckShape(token)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	raw, err := base64.RawURLEncoding.DecodeString(shape.encoded)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}
	sig, err := hex.DecodeString(shape.signature)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	mac := hmac.New(sha256.New, m.secret)
	mac.Write(raw)
	if !hmac.Equal(sig, mac.Sum(nil)) {
		return Claims{}, ErrInvalidToken
	}

	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Claims{}, ErrInvalidToken
	}
	memberID, err := uuid.Parse(p.MemberID)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	issuedAt := time.Unix(p.IssuedAt, 0)
	expiresAt := issuedAt.Add(m.ttl)
	if time.Now().After(expiresAt) {
		return Claims{}, ErrExpired
	}

	return Claims{
		MemberID:  memberID,
		Phone:     p.Phone,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}

// SetCookie writes the session cookie for token, mirroring the token's
// expiry on the cookie MaxAge.
func (m *Manager) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Domain:   m.domain,
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear revokes the session by deleting the cookie.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Domain:   m.domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ReadCookie extracts the session token from a request, if present.
func ReadCookie(r *http.Request) (string, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}
