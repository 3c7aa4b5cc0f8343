package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jack-barr3tt/erail-engine/src/common/types"
	"github.com/jackc/pgx/v5"
)

const routeCacheTTL = 24 * time.Hour

func BuildArchivedRouteKey(trainNo string) string {
	return fmt.Sprintf("route:%s", trainNo)
}

// SaveLookup archives a train and its route. Events already stored are skipped,
// so redelivered messages are harmless, and an event older than the archived
// route is recorded without replacing it.
func (dc *DataClient) SaveLookup(ctx context.Context, event types.LookupEvent) error {
	tx, err := dc.pg.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		INSERT INTO lookup_event (id, train_no, looked_up_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO NOTHING
	`, event.ID, event.Train.TrainNo, event.LookedUpAt)
	if err != nil {
		return fmt.Errorf("error inserting lookup event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		dc.logger.Debugw("lookup event already archived", "id", event.ID)
		return nil
	}

	var lastFetched time.Time
	err = tx.QueryRow(ctx, `SELECT last_fetched FROM train WHERE train_no = $1 FOR UPDATE`, event.Train.TrainNo).Scan(&lastFetched)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
	case err != nil:
		return fmt.Errorf("error reading train: %w", err)
	case event.LookedUpAt.Before(lastFetched):
		dc.logger.Debugw("lookup event older than archived route", "id", event.ID, "train_no", event.Train.TrainNo, "last_fetched", lastFetched)
		return tx.Commit(ctx)
	}

	if err := upsertTrain(ctx, tx, event.Train, event.LookedUpAt); err != nil {
		return fmt.Errorf("error upserting train: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM route_stop WHERE train_no = $1`, event.Train.TrainNo); err != nil {
		return fmt.Errorf("error clearing route: %w", err)
	}
	for i, stop := range event.Stops {
		if err := insertRouteStop(ctx, tx, event.Train.TrainNo, &stop, i+1); err != nil {
			return fmt.Errorf("error inserting route stop: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	dc.cacheRoute(ctx, event.Train.TrainNo, event.Stops)
	return nil
}

func upsertTrain(ctx context.Context, tx pgx.Tx, info types.TrainInfo, fetched time.Time) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO train (
			train_no, train_id, train_name, train_type,
			from_stn_name, from_stn_code, to_stn_name, to_stn_code,
			from_time, to_time, travel_time, running_days,
			distance_from_to, average_speed, last_fetched
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
		)
		ON CONFLICT (train_no) DO UPDATE SET
			train_id = EXCLUDED.train_id,
			train_name = EXCLUDED.train_name,
			train_type = EXCLUDED.train_type,
			from_stn_name = EXCLUDED.from_stn_name,
			from_stn_code = EXCLUDED.from_stn_code,
			to_stn_name = EXCLUDED.to_stn_name,
			to_stn_code = EXCLUDED.to_stn_code,
			from_time = EXCLUDED.from_time,
			to_time = EXCLUDED.to_time,
			travel_time = EXCLUDED.travel_time,
			running_days = EXCLUDED.running_days,
			distance_from_to = EXCLUDED.distance_from_to,
			average_speed = EXCLUDED.average_speed,
			last_fetched = EXCLUDED.last_fetched`,
		info.TrainNo,
		info.TrainID,
		info.TrainName,
		info.Type,
		info.FromStnName,
		info.FromStnCode,
		info.ToStnName,
		info.ToStnCode,
		info.FromTime,
		info.ToTime,
		info.TravelTime,
		info.RunningDays,
		info.DistanceFromTo,
		info.AverageSpeed,
		fetched,
	)
	return err
}

func insertRouteStop(ctx context.Context, tx pgx.Tx, trainNo string, stop *types.RouteStop, order int) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO route_stop (
			train_no, stop_order, stn_code, stn_name, arrive, depart, distance, day, zone
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)`,
		trainNo,
		order,
		stop.SourceStnCode,
		stop.SourceStnName,
		stop.Arrive,
		stop.Depart,
		stop.Distance,
		stop.Day,
		stop.Zone,
	)
	return err
}

func (dc *DataClient) cacheRoute(ctx context.Context, trainNo string, stops []types.RouteStop) {
	if dc.rdb == nil {
		return
	}

	b, err := json.Marshal(stops)
	if err != nil {
		dc.logger.Warnw("failed to encode route for cache", "train_no", trainNo, "error", err)
		return
	}

	key := BuildArchivedRouteKey(trainNo)
	if err := dc.rdb.Set(ctx, key, b, routeCacheTTL).Err(); err != nil {
		dc.logger.Warnw("failed to write route to redis", "key", key, "error", err)
		return
	}
	dc.logger.Debugw("wrote route to redis", "key", key)
}

// GetArchivedRoute reads a route written by SaveLookup, falling back to Postgres on a cache miss.
func (dc *DataClient) GetArchivedRoute(ctx context.Context, trainNo string) ([]types.RouteStop, error) {
	if dc.rdb != nil {
		var stops []types.RouteStop
		if b, err := dc.rdb.Get(ctx, BuildArchivedRouteKey(trainNo)).Bytes(); err == nil && json.Unmarshal(b, &stops) == nil {
			return stops, nil
		}
	}

	rows, err := dc.pg.Query(ctx, `
		SELECT stn_code, stn_name, arrive, depart, distance, day, zone
		FROM route_stop
		WHERE train_no = $1
		ORDER BY stop_order
	`, trainNo)
	if err != nil {
		return nil, fmt.Errorf("failed to query route: %w", err)
	}

	stops, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (types.RouteStop, error) {
		var stop types.RouteStop
		err := row.Scan(&stop.SourceStnCode, &stop.SourceStnName, &stop.Arrive, &stop.Depart, &stop.Distance, &stop.Day, &stop.Zone)
		return stop, err
	})
	if err != nil {
		return nil, err
	}

	if len(stops) > 0 {
		dc.cacheRoute(ctx, trainNo, stops)
	}
	return stops, nil
}

func (dc *DataClient) GetRecentTrains(ctx context.Context, limit int) ([]types.ArchivedTrain, error) {
	rows, err := dc.pg.Query(ctx, `
		SELECT t.train_no, t.train_id, t.train_name, COALESCE(t.train_type, ''),
			   COALESCE(t.from_stn_name, ''), COALESCE(t.from_stn_code, ''),
			   COALESCE(t.to_stn_name, ''), COALESCE(t.to_stn_code, ''),
			   COALESCE(t.from_time, ''), COALESCE(t.to_time, ''), COALESCE(t.travel_time, ''),
			   COALESCE(t.running_days, ''), COALESCE(t.distance_from_to, ''), COALESCE(t.average_speed, ''),
			   t.last_fetched, COUNT(rs.stop_order)
		FROM train t
		LEFT JOIN route_stop rs ON rs.train_no = t.train_no
		GROUP BY t.train_no
		ORDER BY t.last_fetched DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent trains: %w", err)
	}

	trains, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (types.ArchivedTrain, error) {
		var t types.ArchivedTrain
		err := row.Scan(
			&t.TrainNo,
			&t.TrainID,
			&t.TrainName,
			&t.Type,
			&t.FromStnName,
			&t.FromStnCode,
			&t.ToStnName,
			&t.ToStnCode,
			&t.FromTime,
			&t.ToTime,
			&t.TravelTime,
			&t.RunningDays,
			&t.DistanceFromTo,
			&t.AverageSpeed,
			&t.LastFetched,
			&t.StopCount,
		)
		return t, err
	})
	if err != nil {
		return nil, err
	}

	return trains, nil
}

// GetStaleTrains lists archived trains whose last fetch is older than their max age.
func (dc *DataClient) GetStaleTrains(ctx context.Context) ([]string, error) {
	rows, err := dc.pg.Query(ctx, `
		SELECT train_no FROM train
		WHERE last_fetched + max_age < NOW()
		ORDER BY last_fetched
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query stale trains: %w", err)
	}

	return pgx.CollectRows(rows, pgx.RowTo[string])
}
