// internal/domain/models/organization.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Organization is a tenant: an isolated community identified by a slug.
// The slug is globally unique and immutable after creation; it is what
// tenant resolution derives from the request host (e.g. "acme" for
// app.acme.example.com).
//
// All major entities (members, events, connections, leads) belong to
// exactly one organization via their organization_id column.
type Organization struct {
	ID        uuid.UUID `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
