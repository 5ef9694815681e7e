// internal/domain/models/event.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Event is a community event owned by one organization.
type Event struct {
	ID             uuid.UUID `json:"id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Titulo         string    `json:"titulo"`
	Descripcion    string    `json:"descripcion,omitempty"`
	Lugar          string    `json:"lugar,omitempty"`
	StartsAt       time.Time `json:"starts_at"`
	CreatedAt      time.Time `json:"created_at"`
}

// EventAttendance records a member's inscription to an event.
// One row per (event_id, member_id); registering twice is idempotent.
type EventAttendance struct {
	EventID   uuid.UUID `json:"event_id"`
	MemberID  uuid.UUID `json:"member_id"`
	CreatedAt time.Time `json:"created_at"`
}
