// internal/domain/models/connection.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Connection types. A cafecito starts as "invitado" when one member
// invites another and becomes "aceptado" when the invite is accepted.
const (
	ConnectionInvitado = "invitado"
	ConnectionAceptado = "aceptado"
)

// Connection is a directional edge between two members of the same
// organization. Uniqueness is enforced per (member_id, connected_member_id);
// re-inviting the same member updates the existing edge instead of
// creating a duplicate.
type Connection struct {
	MemberID          uuid.UUID `json:"member_id"`
	ConnectedMemberID uuid.UUID `json:"connected_member_id"`
	Tipo              string    `json:"tipo"`
	CreatedAt         time.Time `json:"created_at"`
}

// IsValidConnectionTipo reports whether tipo is a known connection marker.
func IsValidConnectionTipo(tipo string) bool {
	return tipo == ConnectionInvitado || tipo == ConnectionAceptado
}
