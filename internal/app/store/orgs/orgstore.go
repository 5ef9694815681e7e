// Package orgstore reads organizations, the tenant roots every other
// store scopes by.
package orgstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dalemusser/nexohub/internal/app/store"
	"github.com/dalemusser/nexohub/internal/domain/models"
)

type Store struct {
	db store.Querier
}

func New(db store.Querier) *Store {
	return &Store{db: db}
}

// GetBySlug resolves an organization by its host slug.
func (s *Store) GetBySlug(ctx context.Context, slug string) (*models.Organization, error) {
	var org models.Organization
	err := s.db.QueryRow(ctx, `
		SELECT id, slug, name, created_at
		FROM organizations
		WHERE slug = $1`, slug).
		Scan(&org.ID, &org.Slug, &org.Name, &org.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get organization by slug: %w", err)
	}
	return &org, nil
}

func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	var org models.Organization
	err := s.db.QueryRow(ctx, `
		SELECT id, slug, name, created_at
		FROM organizations
		WHERE id = $1`, id).
		Scan(&org.ID, &org.Slug, &org.Name, &org.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get organization by id: %w", err)
	}
	return &org, nil
}
