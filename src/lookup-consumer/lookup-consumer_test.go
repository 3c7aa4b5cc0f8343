package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jack-barr3tt/erail-engine/src/common/events"
	"github.com/jack-barr3tt/erail-engine/src/common/types"
	"go.uber.org/zap"
)

type fakeArchive struct {
	saved []types.LookupEvent
	err   error
}

func (f *fakeArchive) SaveLookup(ctx context.Context, event types.LookupEvent) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, event)
	return nil
}

func encodedEvent(t *testing.T) []byte {
	t.Helper()
	event := events.NewLookupEvent(
		types.TrainInfo{TrainNo: "12951", TrainName: "Mumbai Rajdhani", TrainID: "4411"},
		[]types.RouteStop{
			{SourceStnCode: "MMCT", Arrive: types.RouteSourceMarker, Depart: "16.55", Day: 1},
			{SourceStnCode: "NDLS", Arrive: "08.35", Depart: types.RouteDestinationMarker, Distance: 1384, Day: 2},
		},
		time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC),
	)
	body, err := events.Encode(event)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return body
}

func TestProcessLookup(t *testing.T) {
	archive := &fakeArchive{}

	if err := processLookup(context.Background(), archive, zap.NewNop().Sugar(), encodedEvent(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(archive.saved) != 1 {
		t.Fatalf("expected 1 saved event, got %d", len(archive.saved))
	}
	saved := archive.saved[0]
	if saved.Train.TrainNo != "12951" || len(saved.Stops) != 2 {
		t.Errorf("unexpected saved event: %+v", saved)
	}
	if saved.Stops[1].Distance != 1384 {
		t.Errorf("expected distance 1384, got %d", saved.Stops[1].Distance)
	}
}

func TestProcessLookupRejectsMalformedBody(t *testing.T) {
	archive := &fakeArchive{}

	for _, body := range []string{"not json", `{"id":"abc","train":{"train_no":"12951"}}`, `{}`} {
		if err := processLookup(context.Background(), archive, zap.NewNop().Sugar(), []byte(body)); err == nil {
			t.Errorf("expected error for %q", body)
		}
	}
	if len(archive.saved) != 0 {
		t.Errorf("nothing should be saved, got %d", len(archive.saved))
	}
}

func TestProcessLookupArchiveError(t *testing.T) {
	archive := &fakeArchive{err: errors.New("db down")}

	err := processLookup(context.Background(), archive, zap.NewNop().Sugar(), encodedEvent(t))
	if err == nil || err.Error() != "db down" {
		t.Fatalf("expected archive error, got %v", err)
	}
}
