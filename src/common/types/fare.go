package types

type FareQuery struct {
	TrainNo      string
	From         string
	To           string
	Adult        int
	Child        int
	SeniorFemale int
	SeniorMale   int
	SourceURL    string
}

type TotalFare struct {
	General *int `json:"general"`
	Tatkal  *int `json:"tatkal"`
}

type FareBreakdown struct {
	General      *int `json:"general"`
	Tatkal       *int `json:"tatkal"`
	Child        *int `json:"child"`
	ChildTatkal  *int `json:"childTatkal"`
	SeniorFemale *int `json:"seniorFemale"`
	SeniorMale   *int `json:"seniorMale"`
}

type PassengerCounts struct {
	Adult        int `json:"adult"`
	Child        int `json:"child"`
	SeniorFemale int `json:"seniorFemale"`
	SeniorMale   int `json:"seniorMale"`
	Total        int `json:"total"`
}

type PassengerNotes struct {
	Adult        string `json:"adult"`
	Child        string `json:"child"`
	SeniorFemale string `json:"seniorFemale"`
	SeniorMale   string `json:"seniorMale"`
}

var DefaultPassengerNotes = PassengerNotes{
	Adult:        "12 years and above",
	Child:        "5 to 12 years",
	SeniorFemale: "58 years and above",
	SeniorMale:   "60 years and above",
}

type FareDetails struct {
	TrainNumber     string                   `json:"trainNumber"`
	TrainName       string                   `json:"trainName"`
	From            string                   `json:"from"`
	To              string                   `json:"to"`
	PassengerCounts PassengerCounts          `json:"passengerCounts"`
	IndividualFares map[string]FareBreakdown `json:"individualFares"`
	TotalFares      map[string]TotalFare     `json:"totalFares"`
	Notes           PassengerNotes           `json:"notes"`
	SourceURL       string                   `json:"sourceUrl"`
}

// PnrRecord is the booking object embedded in the PNR page, passed through untouched.
type PnrRecord map[string]any
