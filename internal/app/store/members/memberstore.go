// Package memberstore reads and writes community members. Lookups by
// phone and listings are scoped to one organization; lookups by id use
// the global primary key, which already names a single tenant's row.
package memberstore

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

const memberColumns = `id, organization_id, phone, nombre, email, empresa, ciudad, referido_por_id, created_at`

func scanMember(row pgx.Row) (*models.Member, error) {
	var m models.Member
	err := row.Scan(&m.ID, &m.OrganizationID, &m.Phone, &m.Nombre, &m.Email,
		&m.Empresa, &m.Ciudad, &m.ReferidoPorID, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*models.Member, error) {
	m, err := scanMember(s.db.QueryRow(ctx, `
		SELECT `+memberColumns+`
		FROM members
		WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get member by id: %w", err)
	}
	return m, nil
}

// GetByPhone looks up a member by normalized phone within one
// organization. The same phone may belong to members of different
// organizations.
func (s *Store) GetByPhone(ctx context.Context, orgID uuid.UUID, phone string) (*models.Member, error) {
	m, err := scanMember(s.db.QueryRow(ctx, `
		SELECT `+memberColumns+`
		FROM members
		WHERE organization_id = $1 AND phone = $2`, orgID, phone))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get member by phone: %w", err)
	}
	return m, nil
}

// List returns one page of the organization's members ordered by name.
func (s *Store) List(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]models.Member, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+memberColumns+`
		FROM members
		WHERE organization_id = $1
		ORDER BY nombre, id
		LIMIT $2 OFFSET $3`, orgID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.OrganizationID, &m.Phone, &m.Nombre, &m.Email,
			&m.Empresa, &m.Ciudad, &m.ReferidoPorID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

func (s *Store) Create(ctx context.Context, m *models.Member) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO members (id, organization_id, phone, nombre, email, empresa, ciudad, referido_por_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		m.ID, m.OrganizationID, m.Phone, m.Nombre, m.Email, m.Empresa, m.Ciudad, m.ReferidoPorID, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("create member: %w", err)
	}
	return nil
}
