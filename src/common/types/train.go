package types

type TrainSummary struct {
	TrainNo       string `json:"train_no"`
	TrainName     string `json:"train_name"`
	SourceStnName string `json:"source_stn_name"`
	SourceStnCode string `json:"source_stn_code"`
	DstnStnName   string `json:"dstn_stn_name"`
	DstnStnCode   string `json:"dstn_stn_code"`
	FromStnName   string `json:"from_stn_name"`
	FromStnCode   string `json:"from_stn_code"`
	ToStnName     string `json:"to_stn_name"`
	ToStnCode     string `json:"to_stn_code"`
	FromTime      string `json:"from_time"`
	ToTime        string `json:"to_time"`
	TravelTime    string `json:"travel_time"`
	RunningDays   string `json:"running_days"`
}

type TrainInfo struct {
	TrainNo        string `json:"train_no"`
	TrainName      string `json:"train_name"`
	FromStnName    string `json:"from_stn_name"`
	FromStnCode    string `json:"from_stn_code"`
	ToStnName      string `json:"to_stn_name"`
	ToStnCode      string `json:"to_stn_code"`
	FromTime       string `json:"from_time"`
	ToTime         string `json:"to_time"`
	TravelTime     string `json:"travel_time"`
	RunningDays    string `json:"running_days"`
	Type           string `json:"type"`
	TrainID        string `json:"train_id"`
	DistanceFromTo string `json:"distance_from_to"`
	AverageSpeed   string `json:"average_speed"`
}

const (
	RouteSourceMarker      = "Source"
	RouteDestinationMarker = "Destination"
)

type RouteStop struct {
	SourceStnCode string `json:"source_stn_code"`
	SourceStnName string `json:"source_stn_name"`
	Arrive        string `json:"arrive"`
	Depart        string `json:"depart"`
	Distance      int    `json:"distance"`
	Day           int    `json:"day"`
	Zone          string `json:"zone"`
}

// RawResponse is an upstream body together with the URL it was read from.
type RawResponse struct {
	Body   string
	Source string
}
