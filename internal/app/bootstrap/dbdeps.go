// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dalemusser/nexohub/internal/app/system/kv"
	"github.com/dalemusser/nexohub/internal/app/system/sms"
)

// DBDeps holds backend dependencies for the app. Pool is always
// present; KV and SMS are nil when not configured.
type DBDeps struct {
	Pool *pgxpool.Pool
	KV   *kv.Redis
	SMS  sms.Sender
}
