// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// schema is applied on every startup. Statements are idempotent;
// anything beyond additive changes goes through a real migration.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS organizations (
		id         UUID PRIMARY KEY,
		slug       TEXT NOT NULL UNIQUE,
		name       TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS members (
		id              UUID PRIMARY KEY,
		organization_id UUID NOT NULL REFERENCES organizations(id),
		phone           TEXT NOT NULL,
		nombre          TEXT NOT NULL,
		email           TEXT NOT NULL DEFAULT '',
		empresa         TEXT NOT NULL DEFAULT '',
		ciudad          TEXT NOT NULL DEFAULT '',
		referido_por_id UUID REFERENCES members(id),
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (organization_id, phone)
	)`,
	`CREATE TABLE IF NOT EXISTS connections (
		organization_id     UUID NOT NULL REFERENCES organizations(id),
		member_id           UUID NOT NULL REFERENCES members(id),
		connected_member_id UUID NOT NULL REFERENCES members(id),
		tipo                TEXT NOT NULL,
		created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (member_id, connected_member_id)
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id              UUID PRIMARY KEY,
		organization_id UUID NOT NULL REFERENCES organizations(id),
		titulo          TEXT NOT NULL,
		descripcion     TEXT NOT NULL DEFAULT '',
		lugar           TEXT NOT NULL DEFAULT '',
		starts_at       TIMESTAMPTZ NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS events_org_starts_at
		ON events (organization_id, starts_at)`,
	`CREATE TABLE IF NOT EXISTS event_attendances (
		event_id   UUID NOT NULL REFERENCES events(id),
		member_id  UUID NOT NULL REFERENCES members(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (event_id, member_id)
	)`,
	`CREATE TABLE IF NOT EXISTS leads (
		id              UUID PRIMARY KEY,
		organization_id UUID NOT NULL REFERENCES organizations(id),
		nombre          TEXT NOT NULL,
		email           TEXT NOT NULL,
		telefono        TEXT NOT NULL DEFAULT '',
		empresa         TEXT NOT NULL DEFAULT '',
		mensaje         TEXT NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// EnsureSchema creates the relational schema if it does not exist yet.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	for _, stmt := range schema {
		if _, err := deps.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	logger.Info("schema ensured")
	return nil
}
