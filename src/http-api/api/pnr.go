package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jack-barr3tt/erail-engine/src/common/parser"
)

func (s *APIServer) GetPnrStatus(c *fiber.Ctx) error {
	var params PnrParams
	if err := bindQuery(c, &params); err != nil {
		return s.badRequest(c, "PNR number is required", err)
	}

	raw, err := s.Upstream.FetchPnrPage(c.UserContext(), params.Pnr)
	if err != nil {
		return s.upstreamFailure(c, "Failed to fetch PNR status", err)
	}

	return respond(s, c, parser.ParsePnrPage(raw.Body, s.now()))
}
