package api

import "github.com/gofiber/fiber/v2"

func RegisterHandlers(router fiber.Router, s *APIServer) {
	router.Get("/health", s.GetHealth)

	trains := router.Group("/api/trains")
	trains.Get("/betweenStations", s.GetTrainsBetweenStations)
	trains.Get("/getTrainOn", s.GetTrainsOnDate)
	trains.Get("/getTrain", s.GetTrain)
	trains.Get("/getRoute", s.GetRoute)
	trains.Get("/calculateFare", s.CalculateFare)
	trains.Get("/pnrstatus", s.GetPnrStatus)
	trains.Get("/recent", s.GetRecentLookups)
	trains.Get("/archivedRoute", s.GetArchivedRoute)
}
