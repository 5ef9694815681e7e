// Package connectionstore persists cafecito connections between
// members of the same organization.
package connectionstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dalemusser/nexohub/internal/app/store"
	"github.com/dalemusser/nexohub/internal/domain/models"
)

type Store struct {
	db store.Querier
}

func New(db store.Querier) *Store {
	return &Store{db: db}
}

// Upsert records a connection from one member to another. Re-inviting
// the same member refreshes the state and timestamp instead of adding
// a second row.
func (s *Store) Upsert(ctx context.Context, orgID uuid.UUID, c *models.Connection) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO connections (organization_id, member_id, connected_member_id, tipo, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (member_id, connected_member_id)
		DO UPDATE SET tipo = EXCLUDED.tipo, created_at = EXCLUDED.created_at`,
		orgID, c.MemberID, c.ConnectedMemberID, c.Tipo, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert connection: %w", err)
	}
	return nil
}

// ListForMember returns the connections a member has initiated.
func (s *Store) ListForMember(ctx context.Context, orgID, memberID uuid.UUID) ([]models.Connection, error) {
	rows, err := s.db.Query(ctx, `
		SELECT member_id, connected_member_id, tipo, created_at
		FROM connections
		WHERE organization_id = $1 AND member_id = $2
		ORDER BY created_at DESC`, orgID, memberID)
	if err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}
	defer rows.Close()

	var conns []models.Connection
	for rows.Next() {
		var c models.Connection
		if err := rows.Scan(&c.MemberID, &c.ConnectedMemberID, &c.Tipo, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan connection: %w", err)
		}
		conns = append(conns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}
	return conns, nil
}
