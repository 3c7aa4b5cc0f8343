package api

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/jack-barr3tt/erail-engine/src/common/types"
)

const defaultRecentLimit = 20

func (s *APIServer) GetRecentLookups(c *fiber.Ctx) error {
	params := RecentParams{Limit: defaultRecentLimit}
	if err := bindQuery(c, &params); err != nil {
		return s.badRequest(c, "limit must be between 1 and 100", err)
	}

	trains, err := s.Data.GetRecentTrains(c.UserContext(), params.Limit)
	if err != nil {
		s.Logger.Errorw("failed to query recent lookups", "error", err)
		errStr := err.Error()
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "Database error",
			Message: "Failed to retrieve recent lookups",
			Stack:   &errStr,
		})
	}

	if trains == nil {
		trains = []types.ArchivedTrain{}
	}
	return c.JSON(types.Ok(trains, s.now()))
}

// GetArchivedRoute serves the last archived route for a train without contacting upstream.
func (s *APIServer) GetArchivedRoute(c *fiber.Ctx) error {
	var params TrainParams
	if err := bindQuery(c, &params); err != nil {
		return s.badRequest(c, "Train number is required", err)
	}

	stops, err := s.Data.GetArchivedRoute(c.UserContext(), params.TrainNo)
	if err != nil {
		s.Logger.Errorw("failed to query archived route", "train_no", params.TrainNo, "error", err)
		errStr := err.Error()
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "Database error",
			Message: "Failed to retrieve archived route",
			Stack:   &errStr,
		})
	}

	now := s.now()
	if len(stops) == 0 {
		return c.Status(http.StatusNotFound).JSON(types.Fail[[]types.RouteStop](types.DataNotFound, "Route not found", nil, now))
	}
	return c.JSON(types.Ok(stops, now))
}
