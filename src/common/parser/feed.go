package parser

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jack-barr3tt/erail-engine/src/common/types"
)

// Offsets into a train-listing record, after empty fields are dropped.
const (
	listTrainNo = iota
	listTrainName
	listSourceStnName
	listSourceStnCode
	listDstnStnName
	listDstnStnCode
	listFromStnName
	listFromStnCode
	listToStnName
	listToStnCode
	listFromTime
	listToTime
	listTravelTime
	listRunningDays
)

// Offsets into the first section of a single-train feed.
const (
	infoTrainNo     = 1
	infoTrainName   = 2
	infoFromStnName = 3
	infoFromStnCode = 4
	infoToStnName   = 5
	infoToStnCode   = 6
	infoFromTime    = 11
	infoToTime      = 12
	infoTravelTime  = 13
	infoRunningDays = 14

	// a leading field longer than this is a prefix, not the train number
	infoTrainNoMaxLen = 6
)

// Offsets into the second section of a single-train feed.
const (
	detailType           = 11
	detailTrainID        = 12
	detailDistanceFromTo = 18
	detailAverageSpeed   = 19
)

// Offsets into a route record.
const (
	routeStnCode  = 1
	routeStnName  = 2
	routeArrive   = 3
	routeDepart   = 4
	routeDistance = 6
	routeDay      = 7
	routeZone     = 9

	routeMinFields = 10
)

const (
	msgTrainParse = "Error parsing train data"
	msgRouteParse = "Error parsing route data"
	msgNoRoute    = "Route not found"
)

var ErrDistanceDecreasing = errors.New("route distance decreases")

func ParseStationPair(raw string, now time.Time) types.Result[[]types.TrainSummary] {
	if sentinel, rejected := Classify(raw); rejected {
		return types.Fail[[]types.TrainSummary](types.UpstreamRejected, sentinel, nil, now)
	}

	trains := make([]types.TrainSummary, 0)
	sections := strings.Split(raw, sectionSep)
	// the first section is the query header
	for _, section := range nonEmpty(sections[1:]) {
		parts := strings.Split(section, recordSep)
		if len(parts) != 2 {
			continue
		}

		train, err := decodeTrainSummary(splitFields(parts[1]))
		if err != nil {
			return types.Fail[[]types.TrainSummary](types.MalformedUpstream, msgTrainParse, err, now)
		}
		trains = append(trains, train)
	}

	return types.Ok(trains, now)
}

func decodeTrainSummary(fields []string) (types.TrainSummary, error) {
	d := newDecoder(fields)
	train := types.TrainSummary{
		TrainNo:       d.str(listTrainNo, "train_no"),
		TrainName:     d.str(listTrainName, "train_name"),
		SourceStnName: d.str(listSourceStnName, "source_stn_name"),
		SourceStnCode: d.str(listSourceStnCode, "source_stn_code"),
		DstnStnName:   d.str(listDstnStnName, "dstn_stn_name"),
		DstnStnCode:   d.str(listDstnStnCode, "dstn_stn_code"),
		FromStnName:   d.str(listFromStnName, "from_stn_name"),
		FromStnCode:   d.str(listFromStnCode, "from_stn_code"),
		ToStnName:     d.str(listToStnName, "to_stn_name"),
		ToStnCode:     d.str(listToStnCode, "to_stn_code"),
		FromTime:      d.str(listFromTime, "from_time"),
		ToTime:        d.str(listToTime, "to_time"),
		TravelTime:    d.str(listTravelTime, "travel_time"),
		RunningDays:   d.runningDays(listRunningDays),
	}
	if d.err != nil {
		return types.TrainSummary{}, d.err
	}
	return train, nil
}

func ParseTrainInfo(raw string, now time.Time) types.Result[types.TrainInfo] {
	if sentinel, rejected := Classify(raw); rejected {
		return types.Fail[types.TrainInfo](types.UpstreamRejected, sentinel, nil, now)
	}

	info, err := decodeTrainInfo(strings.Split(raw, sectionSep))
	if err != nil {
		return types.Fail[types.TrainInfo](types.MalformedUpstream, msgTrainParse, err, now)
	}

	return types.Ok(info, now)
}

func decodeTrainInfo(sections []string) (types.TrainInfo, error) {
	if len(sections) < 2 {
		return types.TrainInfo{}, fmt.Errorf("train info has %d sections: %w", len(sections), ErrShortRecord)
	}

	head := splitFields(sections[0])
	if len(head) > infoTrainNo && len(head[infoTrainNo]) > infoTrainNoMaxLen {
		head = head[1:]
	}
	h := newDecoder(head)
	detail := newDecoder(splitFields(sections[1]))

	info := types.TrainInfo{
		TrainNo:        strings.Replace(h.str(infoTrainNo, "train_no"), "^", "", 1),
		TrainName:      h.str(infoTrainName, "train_name"),
		FromStnName:    h.str(infoFromStnName, "from_stn_name"),
		FromStnCode:    h.str(infoFromStnCode, "from_stn_code"),
		ToStnName:      h.str(infoToStnName, "to_stn_name"),
		ToStnCode:      h.str(infoToStnCode, "to_stn_code"),
		FromTime:       h.str(infoFromTime, "from_time"),
		ToTime:         h.str(infoToTime, "to_time"),
		TravelTime:     h.str(infoTravelTime, "travel_time"),
		RunningDays:    h.runningDays(infoRunningDays),
		Type:           detail.str(detailType, "type"),
		TrainID:        detail.str(detailTrainID, "train_id"),
		DistanceFromTo: detail.str(detailDistanceFromTo, "distance_from_to"),
		AverageSpeed:   detail.str(detailAverageSpeed, "average_speed"),
	}
	if err := errors.Join(h.err, detail.err); err != nil {
		return types.TrainInfo{}, err
	}
	return info, nil
}

// ParseRoute decodes a route feed. The first stop's arrival and the last stop's
// departure are replaced with the Source and Destination markers.
func ParseRoute(raw string, now time.Time) types.Result[[]types.RouteStop] {
	if sentinel, rejected := Classify(raw); rejected {
		return types.Fail[[]types.RouteStop](types.UpstreamRejected, sentinel, nil, now)
	}

	stops, err := decodeRoute(raw)
	if err != nil {
		return types.Fail[[]types.RouteStop](types.MalformedUpstream, msgRouteParse, err, now)
	}
	if len(stops) == 0 {
		return types.Fail[[]types.RouteStop](types.DataNotFound, msgNoRoute, nil, now)
	}

	stops[0].Arrive = types.RouteSourceMarker
	stops[len(stops)-1].Depart = types.RouteDestinationMarker

	return types.Ok(stops, now)
}

func decodeRoute(raw string) ([]types.RouteStop, error) {
	stops := make([]types.RouteStop, 0)
	for _, record := range strings.Split(raw, recordSep) {
		fields := splitFields(record)
		if len(fields) < routeMinFields {
			continue
		}

		d := newDecoder(fields)
		stop := types.RouteStop{
			SourceStnCode: d.str(routeStnCode, "source_stn_code"),
			SourceStnName: d.str(routeStnName, "source_stn_name"),
			Arrive:        d.str(routeArrive, "arrive"),
			Depart:        d.str(routeDepart, "depart"),
			Distance:      d.num(routeDistance, "distance"),
			Day:           d.num(routeDay, "day"),
			Zone:          d.str(routeZone, "zone"),
		}
		if d.err != nil {
			return nil, fmt.Errorf("stop %d: %w", len(stops)+1, d.err)
		}

		if n := len(stops); n > 0 && stop.Distance < stops[n-1].Distance {
			return nil, fmt.Errorf("%s after %s (%d < %d): %w",
				stop.SourceStnCode, stops[n-1].SourceStnCode, stop.Distance, stops[n-1].Distance, ErrDistanceDecreasing)
		}
		stops = append(stops, stop)
	}
	return stops, nil
}
