package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jack-barr3tt/erail-engine/src/common/events"
	"github.com/jack-barr3tt/erail-engine/src/common/types"
)

var validate = validator.New()

func bindQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return err
	}
	return validate.Struct(out)
}

func (s *APIServer) badRequest(c *fiber.Ctx, message string, err error) error {
	s.Logger.Debugw("rejected request", "path", c.Path(), "error", err)
	return c.Status(http.StatusBadRequest).JSON(types.Failure(message, s.now()))
}

func (s *APIServer) upstreamFailure(c *fiber.Ctx, message string, err error) error {
	s.Logger.Errorw("upstream request failed", "path", c.Path(), "error", err)
	return c.Status(http.StatusInternalServerError).JSON(types.Failure(message, s.now()))
}

// respond writes a parse result. Parse failures are served with 200 and success=false.
func respond[T any](s *APIServer, c *fiber.Ctx, result types.Result[T]) error {
	if !result.Success {
		s.Logger.Warnw("upstream response not usable",
			"path", c.Path(),
			"reason", result.Reason,
			"message", result.Message,
			"error", result.Err,
		)
	}
	return c.JSON(result)
}

func (s *APIServer) publishLookup(c *fiber.Ctx, info types.TrainInfo, stops []types.RouteStop) {
	event := events.NewLookupEvent(info, stops, s.now())
	if err := s.Events.Publish(c.UserContext(), event); err != nil {
		s.Logger.Warnw("failed to publish lookup event", "id", event.ID, "train_no", info.TrainNo, "error", err)
		return
	}
	s.Logger.Debugw("published lookup event", "id", event.ID, "train_no", info.TrainNo)
}
