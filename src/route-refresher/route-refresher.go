package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jack-barr3tt/erail-engine/src/common/data"
	"github.com/jack-barr3tt/erail-engine/src/common/erail"
	"github.com/jack-barr3tt/erail-engine/src/common/events"
	"github.com/jack-barr3tt/erail-engine/src/common/types"
	"github.com/jack-barr3tt/erail-engine/src/common/utils"
	"go.uber.org/zap"
)

type routeArchive interface {
	GetStaleTrains(ctx context.Context) ([]string, error)
	SaveLookup(ctx context.Context, event types.LookupEvent) error
}

type refresher struct {
	archive  routeArchive
	upstream erail.Fetcher
	logger   *zap.SugaredLogger
	now      func() time.Time
}

// refreshTrain re-fetches one train's route and archives it.
// It reports false when upstream no longer knows the train.
func (r *refresher) refreshTrain(ctx context.Context, trainNo string) (bool, error) {
	now := r.now()

	lookup, err := erail.LookupRoute(ctx, r.upstream, trainNo, now)
	if err != nil {
		return false, err
	}
	if !lookup.Found() {
		reason := lookup.Info.Message
		if lookup.Info.Success {
			reason = lookup.Route.Message
		}
		r.logger.Warnw("route not refreshed", "train_no", trainNo, "reason", reason)
		return false, nil
	}

	event := events.NewLookupEvent(lookup.Info.Data, lookup.Route.Data, now)
	if err := r.archive.SaveLookup(ctx, event); err != nil {
		return false, fmt.Errorf("failed to archive train %s: %w", trainNo, err)
	}

	return true, nil
}

// refreshStale refreshes every stale train and returns how many were updated.
func (r *refresher) refreshStale(ctx context.Context) (int, error) {
	trains, err := r.archive.GetStaleTrains(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, trainNo := range trains {
		if ctx.Err() != nil {
			return updated, ctx.Err()
		}

		ok, err := r.refreshTrain(ctx, trainNo)
		if err != nil {
			r.logger.Errorw("error refreshing route", "train_no", trainNo, "error", err)
			continue
		}
		if ok {
			updated++
		}
	}

	return updated, nil
}

func main() {
	utils.InitLogger()
	defer utils.SyncLogger()
	logger := utils.GetLogger()

	cfg, err := utils.LoadConfig()
	if err != nil {
		logger.Fatalw("failed to load config", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := utils.NewPostgresConnection(ctx)
	if err != nil {
		logger.Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	rdb := utils.NewRedisClient()
	defer rdb.Close()

	archive := data.NewDataClient(db, rdb, logger)
	if err := archive.EnsureSchema(ctx); err != nil {
		logger.Fatalw("failed to prepare database", "error", err)
	}

	r := &refresher{
		archive:  archive,
		upstream: erail.NewClient(cfg, rdb, logger),
		logger:   logger,
		now:      time.Now,
	}

	ticker := time.NewTicker(cfg.RouteRefreshInterval)
	defer ticker.Stop()

	for {
		logger.Infow("refreshing stale routes")
		updated, err := r.refreshStale(ctx)
		if err != nil {
			logger.Errorw("error refreshing stale routes", "error", err)
		} else {
			logger.Infow("stale routes refreshed", "updated", updated)
		}

		select {
		case <-ctx.Done():
			logger.Infow("shutting down route refresher")
			return
		case <-ticker.C:
		}
	}
}
