// Package leadstore persists contact-form leads.
package leadstore

import (
	"context"
	"fmt"

	"github.com/dalemusser/nexohub/internal/app/store"
	"github.com/dalemusser/nexohub/internal/domain/models"
)

type Store struct {
	db store.Querier
}

func New(db store.Querier) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, l *models.Lead) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO leads (id, organization_id, nombre, email, telefono, empresa, mensaje, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		l.ID, l.OrganizationID, l.Nombre, l.Email, l.Telefono, l.Empresa, l.Mensaje, l.CreatedAt)
	if err != nil {
		return fmt.Errorf("create lead: %w", err)
	}
	return nil
}
