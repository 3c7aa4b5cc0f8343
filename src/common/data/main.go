package data

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// pgConn is the subset of *pgxpool.Pool the archive uses.
type pgConn interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type routeCache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

type DataClient struct {
	pg     pgConn
	rdb    routeCache
	logger *zap.SugaredLogger
}

// NewDataClient builds the archive client. rdb may be nil, which disables the route cache.
func NewDataClient(db *pgxpool.Pool, rdb *redis.Client, logger *zap.SugaredLogger) *DataClient {
	dc := &DataClient{
		pg:     db,
		logger: logger,
	}
	if rdb != nil {
		dc.rdb = rdb
	}
	return dc
}
