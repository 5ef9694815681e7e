package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/dalemusser/nexohub/internal/domain/models"
)

// Org returns an organization fixture with a fresh id.
func Org(slug string) *models.Organization {
	return &models.Organization{
		ID:        uuid.New(),
		Slug:      slug,
		Name:      slug,
		CreatedAt: time.Now().UTC(),
	}
}

// Member returns a member fixture belonging to orgID.
func Member(orgID uuid.UUID, phone string) *models.Member {
	return &models.Member{
		ID:             uuid.New(),
		OrganizationID: orgID,
		Phone:          phone,
		Nombre:         "Ana Pérez",
		Email:          "ana@example.com",
		Empresa:        "Acme",
		Ciudad:         "Bogotá",
		CreatedAt:      time.Now().UTC(),
	}
}
