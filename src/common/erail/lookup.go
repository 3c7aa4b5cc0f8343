package erail

import (
	"context"
	"fmt"
	"time"

	"github.com/jack-barr3tt/erail-engine/src/common/parser"
	"github.com/jack-barr3tt/erail-engine/src/common/types"
)

type RouteLookup struct {
	Info  types.Result[types.TrainInfo]
	Route types.Result[[]types.RouteStop]
}

func (l RouteLookup) Found() bool {
	return l.Info.Success && l.Route.Success
}

// LookupRoute resolves a train number to its upstream id and fetches the route.
// Route is left zero when the train itself could not be resolved.
func LookupRoute(ctx context.Context, f Fetcher, trainNo string, now time.Time) (RouteLookup, error) {
	var lookup RouteLookup

	raw, err := f.FetchTrainInfo(ctx, trainNo)
	if err != nil {
		return lookup, fmt.Errorf("train %s: %w", trainNo, err)
	}
	lookup.Info = parser.ParseTrainInfo(raw.Body, now)
	if !lookup.Info.Success {
		return lookup, nil
	}

	raw, err = f.FetchRoute(ctx, lookup.Info.Data.TrainID)
	if err != nil {
		return lookup, fmt.Errorf("route %s: %w", lookup.Info.Data.TrainID, err)
	}
	lookup.Route = parser.ParseRoute(raw.Body, now)

	return lookup, nil
}
