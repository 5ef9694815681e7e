// internal/domain/models/member.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Member represents a community member within one organization.
//
// Phone is the authentication identifier. It is always stored normalized
// to digits only (see system/normalize.Phone); lookups must normalize
// before comparing.
type Member struct {
	ID             uuid.UUID  `json:"id"`
	OrganizationID uuid.UUID  `json:"organization_id"`
	Phone          string     `json:"phone"`
	Nombre         string     `json:"nombre"`
	Email          string     `json:"email,omitempty"`
	Empresa        string     `json:"empresa,omitempty"`
	Ciudad         string     `json:"ciudad,omitempty"`
	ReferidoPorID  *uuid.UUID `json:"referido_por_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Public returns the projection of a member that is safe to expose to
// other members in the directory (no phone, no referral chain).
func (m Member) Public() PublicMember {
	return PublicMember{
		ID:      m.ID,
		Nombre:  m.Nombre,
		Empresa: m.Empresa,
		Ciudad:  m.Ciudad,
	}
}

// PublicMember is the member directory projection.
type PublicMember struct {
	ID      uuid.UUID `json:"id"`
	Nombre  string    `json:"nombre"`
	Empresa string    `json:"empresa,omitempty"`
	Ciudad  string    `json:"ciudad,omitempty"`
}
