package api

import (
	"context"
	"time"

	"github.com/jack-barr3tt/erail-engine/src/common/data"
	"github.com/jack-barr3tt/erail-engine/src/common/erail"
	"github.com/jack-barr3tt/erail-engine/src/common/events"
	"github.com/jack-barr3tt/erail-engine/src/common/types"
	"github.com/jack-barr3tt/erail-engine/src/common/utils"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type LookupStore interface {
	GetRecentTrains(ctx context.Context, limit int) ([]types.ArchivedTrain, error)
	GetArchivedRoute(ctx context.Context, trainNo string) ([]types.RouteStop, error)
}

type APIServer struct {
	DB       *pgxpool.Pool
	Redis    *redis.Client
	Logger   *zap.SugaredLogger
	Data     LookupStore
	Upstream erail.Fetcher
	Events   events.Publisher
	Config   utils.Config
	Clock    func() time.Time
}

func NewServer(ctx context.Context, cfg utils.Config) (*APIServer, error) {
	logger := utils.GetLogger()

	db, err := utils.NewPostgresConnection(ctx)
	if err != nil {
		logger.Errorw("failed to connect to database", "error", err)
		return nil, err
	}

	rdb := utils.NewRedisClient()

	dataClient := data.NewDataClient(db, rdb, logger)
	if err := dataClient.EnsureSchema(ctx); err != nil {
		logger.Errorw("failed to prepare database", "error", err)
		db.Close()
		return nil, multierr.Append(err, rdb.Close())
	}

	publisher, err := events.NewPublisher(cfg.EventsBroker)
	if err != nil {
		logger.Errorw("failed to connect to events broker", "broker", cfg.EventsBroker, "error", err)
		db.Close()
		return nil, multierr.Append(err, rdb.Close())
	}

	return &APIServer{
		DB:       db,
		Redis:    rdb,
		Logger:   logger,
		Data:     dataClient,
		Upstream: erail.NewClient(cfg, rdb, logger),
		Events:   publisher,
		Config:   cfg,
		Clock:    time.Now,
	}, nil
}

func (s *APIServer) Close() error {
	err := s.Events.Close()
	if s.Redis != nil {
		err = multierr.Append(err, s.Redis.Close())
	}
	if s.DB != nil {
		s.DB.Close()
	}
	return err
}

func (s *APIServer) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock()
}
