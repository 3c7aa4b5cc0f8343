package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jack-barr3tt/erail-engine/src/common/erail"
	"github.com/jack-barr3tt/erail-engine/src/common/parser"
	"github.com/jack-barr3tt/erail-engine/src/common/types"
)

func (s *APIServer) GetTrainsBetweenStations(c *fiber.Ctx) error {
	var params BetweenStationsParams
	if err := bindQuery(c, &params); err != nil {
		return s.badRequest(c, "Both from and to stations are required", err)
	}

	raw, err := s.Upstream.FetchStationPair(c.UserContext(), params.From, params.To)
	if err != nil {
		return s.upstreamFailure(c, "Failed to fetch train data", err)
	}

	return respond(s, c, parser.ParseStationPair(raw.Body, s.now()))
}

func (s *APIServer) GetTrainsOnDate(c *fiber.Ctx) error {
	var params TrainsOnDateParams
	// date binds through openapi_types.Date, so only a malformed date fails parsing here
	if err := c.QueryParser(&params); err != nil {
		return s.badRequest(c, "Date must be in YYYY-MM-DD format", err)
	}
	if err := validate.Struct(params); err != nil || params.Date.IsZero() {
		return s.badRequest(c, "From station, to station, and date are required", err)
	}

	raw, err := s.Upstream.FetchStationPair(c.UserContext(), params.From, params.To)
	if err != nil {
		return s.upstreamFailure(c, "Failed to fetch train data", err)
	}

	now := s.now()
	result := parser.ParseStationPair(raw.Body, now)
	if !result.Success {
		return respond(s, c, result)
	}

	running := parser.FilterByWeekday(result.Data, params.Date.Time, s.Config.RunningDaysAnchor)
	s.Logger.Debugw("filtered trains by running day", "date", params.Date.String(), "listed", len(result.Data), "running", len(running))
	return respond(s, c, types.Ok(running, now))
}

func (s *APIServer) GetTrain(c *fiber.Ctx) error {
	var params TrainParams
	if err := bindQuery(c, &params); err != nil {
		return s.badRequest(c, "Train number is required", err)
	}

	raw, err := s.Upstream.FetchTrainInfo(c.UserContext(), params.TrainNo)
	if err != nil {
		return s.upstreamFailure(c, "Failed to fetch train data", err)
	}

	return respond(s, c, parser.ParseTrainInfo(raw.Body, s.now()))
}

func (s *APIServer) GetRoute(c *fiber.Ctx) error {
	var params TrainParams
	if err := bindQuery(c, &params); err != nil {
		return s.badRequest(c, "Train number is required", err)
	}

	lookup, err := erail.LookupRoute(c.UserContext(), s.Upstream, params.TrainNo, s.now())
	if err != nil {
		return s.upstreamFailure(c, "Failed to fetch route data", err)
	}
	if !lookup.Info.Success {
		return respond(s, c, lookup.Info)
	}

	if lookup.Found() {
		s.publishLookup(c, lookup.Info.Data, lookup.Route.Data)
	}
	return respond(s, c, lookup.Route)
}
