// Package eventstore reads events and records inscriptions.
package eventstore

import (
	"context"
	"errors"
	"fmt"
	"time"

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

const eventColumns = `id, organization_id, titulo, descripcion, lugar, starts_at, created_at`

// ListUpcoming returns the organization's events starting at or after
// now, soonest first.
func (s *Store) ListUpcoming(ctx context.Context, orgID uuid.UUID, now time.Time) ([]models.Event, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+eventColumns+`
		FROM events
		WHERE organization_id = $1 AND starts_at >= $2
		ORDER BY starts_at`, orgID, now)
	if err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.ID, &e.OrganizationID, &e.Titulo, &e.Descripcion,
			&e.Lugar, &e.StartsAt, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}
	return events, nil
}

// GetByID fetches one event, scoped to the organization so an id from
// another tenant reads as absent.
func (s *Store) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Event, error) {
	var e models.Event
	err := s.db.QueryRow(ctx, `
		SELECT `+eventColumns+`
		FROM events
		WHERE organization_id = $1 AND id = $2`, orgID, id).
		Scan(&e.ID, &e.OrganizationID, &e.Titulo, &e.Descripcion,
			&e.Lugar, &e.StartsAt, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get event by id: %w", err)
	}
	return &e, nil
}

// Register records a member's inscription. Registering twice leaves
// the original row untouched.
func (s *Store) Register(ctx context.Context, a *models.EventAttendance) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO event_attendances (event_id, member_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (event_id, member_id) DO NOTHING`,
		a.EventID, a.MemberID, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("register attendance: %w", err)
	}
	return nil
}
