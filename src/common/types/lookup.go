package types

import "time"

type LookupEvent struct {
	ID         string      `json:"id"`
	Train      TrainInfo   `json:"train"`
	Stops      []RouteStop `json:"stops"`
	LookedUpAt time.Time   `json:"looked_up_at"`
}

type ArchivedTrain struct {
	TrainInfo
	StopCount   int       `json:"stop_count"`
	LastFetched time.Time `json:"last_fetched"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type ErrorResponse struct {
	Error   string  `json:"error"`
	Message string  `json:"message"`
	Stack   *string `json:"stack,omitempty"`
}
