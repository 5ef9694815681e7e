// internal/app/bootstrap/connect.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/dalemusser/nexohub/internal/app/store"
	"github.com/dalemusser/nexohub/internal/app/system/kv"
	"github.com/dalemusser/nexohub/internal/app/system/sms"
)

// ConnectDB establishes backend connections. Postgres is required; the
// key-value store and SMS provider are optional and left nil when not
// configured, with the degraded behavior logged here once rather than
// checked inline everywhere.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	pool, err := store.Connect(ctx, appCfg.PostgresDSN)
	if err != nil {
		return DBDeps{}, err
	}
	logger.Info("postgres connected")

	deps := DBDeps{Pool: pool}

	if appCfg.KVURL != "" {
		rdb, err := kv.NewRedis(ctx, appCfg.KVURL, appCfg.KVToken)
		if err != nil {
			pool.Close()
			return DBDeps{}, err
		}
		deps.KV = rdb
		logger.Info("key-value store connected")
	}

	if appCfg.SMSAPIKey != "" {
		client, err := sms.NewClient(sms.Config{
			APIKey:  appCfg.SMSAPIKey,
			From:    appCfg.SMSFrom,
			BaseURL: appCfg.SMSBaseURL,
		}, logger)
		if err != nil {
			if deps.KV != nil {
				_ = deps.KV.Close()
			}
			pool.Close()
			return DBDeps{}, err
		}
		deps.SMS = client
	}

	return deps, nil
}
