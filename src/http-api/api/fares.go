package api

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jack-barr3tt/erail-engine/src/common/parser"
	"github.com/jack-barr3tt/erail-engine/src/common/types"
)

func (s *APIServer) CalculateFare(c *fiber.Ctx) error {
	params := FareParams{Adult: 1}
	if err := bindQuery(c, &params); err != nil {
		return s.badRequest(c, "Train number, from station, and to station are required", err)
	}

	query := types.FareQuery{
		TrainNo:      params.Train,
		From:         params.From,
		To:           params.To,
		Adult:        params.Adult,
		Child:        params.Child,
		SeniorFemale: params.SeniorFemale,
		SeniorMale:   params.SeniorMale,
	}

	raw, err := s.Upstream.FetchFarePage(c.UserContext(), query)
	if err != nil {
		return s.upstreamFailure(c, fmt.Sprintf("Failed to fetch fare data: %s", err), err)
	}
	query.SourceURL = raw.Source

	return respond(s, c, parser.ParseFarePage(raw.Body, query, s.now()))
}
