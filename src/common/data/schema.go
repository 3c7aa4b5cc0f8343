package data

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS train (
		train_no         TEXT PRIMARY KEY,
		train_id         TEXT NOT NULL,
		train_name       TEXT NOT NULL,
		train_type       TEXT,
		from_stn_name    TEXT,
		from_stn_code    TEXT,
		to_stn_name      TEXT,
		to_stn_code      TEXT,
		from_time        TEXT,
		to_time          TEXT,
		travel_time      TEXT,
		running_days     TEXT,
		distance_from_to TEXT,
		average_speed    TEXT,
		last_fetched     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		max_age          INTERVAL NOT NULL DEFAULT INTERVAL '1 day'
	)`,
	`CREATE TABLE IF NOT EXISTS route_stop (
		train_no   TEXT NOT NULL REFERENCES train (train_no) ON DELETE CASCADE,
		stop_order INT NOT NULL,
		stn_code   TEXT NOT NULL,
		stn_name   TEXT NOT NULL,
		arrive     TEXT,
		depart     TEXT,
		distance   INT NOT NULL,
		day        INT NOT NULL,
		zone       TEXT,
		PRIMARY KEY (train_no, stop_order)
	)`,
	`CREATE TABLE IF NOT EXISTS lookup_event (
		id           UUID PRIMARY KEY,
		train_no     TEXT NOT NULL,
		looked_up_at TIMESTAMPTZ NOT NULL
	)`,
}

func (dc *DataClient) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := dc.pg.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
