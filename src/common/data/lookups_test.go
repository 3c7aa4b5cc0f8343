package data

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jack-barr3tt/erail-engine/src/common/types"
	"github.com/jack-barr3tt/erail-engine/src/common/utils"
	"go.uber.org/zap"
)

func setupTestClient(t *testing.T) *DataClient {
	if os.Getenv("POSTGRES_HOST") == "" {
		t.Skip("POSTGRES_HOST not set - skipping integration test")
	}

	ctx := context.Background()
	pg, err := utils.NewPostgresConnection(ctx)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	t.Cleanup(pg.Close)

	dc := NewDataClient(pg, nil, zap.NewNop().Sugar())
	if err := dc.EnsureSchema(ctx); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}
	return dc
}

func testEvent(trainNo string) types.LookupEvent {
	return types.LookupEvent{
		ID: uuid.NewString(),
		Train: types.TrainInfo{
			TrainNo:     trainNo,
			TrainID:     "4411",
			TrainName:   "Integration Express",
			RunningDays: "1111111",
		},
		Stops: []types.RouteStop{
			{SourceStnCode: "MMCT", SourceStnName: "Mumbai Central", Arrive: types.RouteSourceMarker, Depart: "16.55", Distance: 0, Day: 1, Zone: "WR"},
			{SourceStnCode: "NDLS", SourceStnName: "New Delhi", Arrive: "08.35", Depart: types.RouteDestinationMarker, Distance: 1384, Day: 2, Zone: "NR"},
		},
		LookedUpAt: time.Now().UTC(),
	}
}

func TestSaveLookup(t *testing.T) {
	dc := setupTestClient(t)
	ctx := context.Background()

	trainNo := "T" + uuid.NewString()[:5]
	event := testEvent(trainNo)

	if err := dc.SaveLookup(ctx, event); err != nil {
		t.Fatalf("SaveLookup failed: %v", err)
	}
	// redelivery of the same event is a no-op
	if err := dc.SaveLookup(ctx, event); err != nil {
		t.Fatalf("SaveLookup redelivery failed: %v", err)
	}

	stops, err := dc.GetArchivedRoute(ctx, trainNo)
	if err != nil {
		t.Fatalf("GetArchivedRoute failed: %v", err)
	}
	if len(stops) != 2 || stops[1].SourceStnCode != "NDLS" || stops[1].Distance != 1384 {
		t.Errorf("unexpected route: %+v", stops)
	}

	trains, err := dc.GetRecentTrains(ctx, 50)
	if err != nil {
		t.Fatalf("GetRecentTrains failed: %v", err)
	}
	found := false
	for _, train := range trains {
		if train.TrainNo == trainNo {
			found = true
			if train.StopCount != 2 {
				t.Errorf("stop count = %d, want 2", train.StopCount)
			}
		}
	}
	if !found {
		t.Errorf("train %s not in recent trains", trainNo)
	}

	if _, err := dc.GetStaleTrains(ctx); err != nil {
		t.Errorf("GetStaleTrains failed: %v", err)
	}
}
