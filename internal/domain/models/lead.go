// internal/domain/models/lead.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Lead is a contact-form submission captured for an organization.
// Leads are created without a session; free-text fields are sanitized
// before storage.
type Lead struct {
	ID             uuid.UUID `json:"id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Nombre         string    `json:"nombre"`
	Email          string    `json:"email"`
	Telefono       string    `json:"telefono,omitempty"`
	Empresa        string    `json:"empresa,omitempty"`
	Mensaje        string    `json:"mensaje"`
	CreatedAt      time.Time `json:"created_at"`
}
