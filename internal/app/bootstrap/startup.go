// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Startup runs one-time initialization after connections and schema
// setup, before the HTTP handler is built. It guarantees the default
// organization exists so localhost and unmatched hosts resolve to a
// real tenant.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	tag, err := deps.Pool.Exec(ctx, `
		INSERT INTO organizations (id, slug, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (slug) DO NOTHING`,
		uuid.New(), appCfg.DefaultOrgSlug, appCfg.DefaultOrgSlug)
	if err != nil {
		return fmt.Errorf("ensure default organization: %w", err)
	}
	if tag.RowsAffected() > 0 {
		logger.Info("default organization created", zap.String("slug", appCfg.DefaultOrgSlug))
	}
	return nil
}
