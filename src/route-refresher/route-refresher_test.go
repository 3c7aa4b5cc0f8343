package main

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jack-barr3tt/erail-engine/src/common/types"
	"go.uber.org/zap"
)

type fakeArchive struct {
	stale []string
	saved []types.LookupEvent
}

func (f *fakeArchive) GetStaleTrains(ctx context.Context) ([]string, error) {
	return f.stale, nil
}

func (f *fakeArchive) SaveLookup(ctx context.Context, event types.LookupEvent) error {
	f.saved = append(f.saved, event)
	return nil
}

type fakeUpstream struct {
	infos map[string]string
	err   error
}

func (f *fakeUpstream) FetchStationPair(ctx context.Context, from, to string) (types.RawResponse, error) {
	return types.RawResponse{}, errors.New("not used")
}

func (f *fakeUpstream) FetchTrainInfo(ctx context.Context, trainNo string) (types.RawResponse, error) {
	if f.err != nil {
		return types.RawResponse{}, f.err
	}
	return types.RawResponse{Body: f.infos[trainNo]}, nil
}

func (f *fakeUpstream) FetchRoute(ctx context.Context, trainID string) (types.RawResponse, error) {
	return types.RawResponse{Body: "~1~MMCT~Mumbai Central~First~16.55~5~0~1~1~WR~^~2~NDLS~New Delhi~08.35~Last~5~1384~2~1~NR"}, nil
}

func (f *fakeUpstream) FetchFarePage(ctx context.Context, q types.FareQuery) (types.RawResponse, error) {
	return types.RawResponse{}, errors.New("not used")
}

func (f *fakeUpstream) FetchPnrPage(ctx context.Context, pnr string) (types.RawResponse, error) {
	return types.RawResponse{}, errors.New("not used")
}

func infoFeed(trainNo string) string {
	head := "~~~~~Train~^" + trainNo + "~Mumbai Rajdhani~MUMBAI CENTRAL~MMCT~NEW DELHI~NDLS~a~b~c~d~16.55~08.35~15.40~1111111"
	detail := make([]string, 20)
	for i := range detail {
		detail[i] = "x"
	}
	detail[11], detail[12], detail[18], detail[19] = "RAJ", "4411", "1384", "89"
	return head + "~~~~~~~~" + strings.Join(detail, "~")
}

func newTestRefresher(archive *fakeArchive, upstream *fakeUpstream) *refresher {
	return &refresher{
		archive:  archive,
		upstream: upstream,
		logger:   zap.NewNop().Sugar(),
		now: func() time.Time {
			return time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)
		},
	}
}

func TestRefreshStale(t *testing.T) {
	archive := &fakeArchive{stale: []string{"12951", "99999"}}
	upstream := &fakeUpstream{infos: map[string]string{
		"12951": infoFeed("12951"),
		"99999": "~~~~~Please try again after some time.",
	}}

	updated, err := newTestRefresher(archive, upstream).refreshStale(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated != 1 {
		t.Errorf("expected 1 refreshed train, got %d", updated)
	}
	if len(archive.saved) != 1 {
		t.Fatalf("expected 1 saved event, got %d", len(archive.saved))
	}

	event := archive.saved[0]
	if event.Train.TrainNo != "12951" || event.Train.TrainID != "4411" {
		t.Errorf("unexpected train: %+v", event.Train)
	}
	if len(event.Stops) != 2 || event.Stops[0].Arrive != types.RouteSourceMarker {
		t.Errorf("unexpected stops: %+v", event.Stops)
	}
	if !event.LookedUpAt.Equal(time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected lookup time %s", event.LookedUpAt)
	}
}

func TestRefreshTrainTransportError(t *testing.T) {
	archive := &fakeArchive{}
	upstream := &fakeUpstream{err: errors.New("timeout")}

	ok, err := newTestRefresher(archive, upstream).refreshTrain(context.Background(), "12951")
	if err == nil || ok {
		t.Fatalf("expected transport error, got ok=%v err=%v", ok, err)
	}
	if len(archive.saved) != 0 {
		t.Errorf("nothing should be archived")
	}
}
