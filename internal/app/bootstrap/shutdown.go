// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown cleanly tears down backend connections.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.KV != nil {
		logger.Info("closing key-value store client")
		if err := deps.KV.Close(); err != nil {
			logger.Error("key-value store close failed", zap.Error(err))
		}
	}
	if deps.Pool != nil {
		logger.Info("closing postgres pool")
		deps.Pool.Close()
	}
	return nil
}
