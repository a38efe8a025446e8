package infra

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5/pgxpool"
)

const maxPoolConnections = 50

// NewPostgresConnectionPool opens the shared pgx pool. The pool is sized for
// the worker and scheduler processes sharing one database role.
func NewPostgresConnectionPool(ctx context.Context, connectionString string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(connectionString)
	if err != nil {
		return nil, errors.Wrap(err, "parse postgres connection string")
	}
	cfg.MaxConns = maxPoolConnections

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "create postgres connection pool")
	}
	return pool, nil
}
