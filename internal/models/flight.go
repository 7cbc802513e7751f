package models

// FlightSearchQuery is constructed per request and never persisted.
type FlightSearchQuery struct {
	From       string `json:"from"`
	To         string `json:"to"`
	DepartDate string `json:"departDate"`
	Passengers int    `json:"passengers"`
	Class      string `json:"class"`
}

type FlightEndpoint struct {
	Airport string `json:"airport"`
	City    string `json:"city"`
	Time    string `json:"time"`
}

// FlightOffer is the flat display schema derived from one external offer.
// Ordering of offers follows the external service; no re-sorting happens.
type FlightOffer struct {
	ID           string         `json:"id"`
	Airline      string         `json:"airline"`
	FlightNumber string         `json:"flightNumber"`
	Departure    FlightEndpoint `json:"departure"`
	Arrival      FlightEndpoint `json:"arrival"`
	Duration     string         `json:"duration"`
	Price        float64        `json:"price"`
	Currency     string         `json:"currency"`
	Stops        int            `json:"stops"`
	Class        string         `json:"class"`
	Rating       float64        `json:"rating"`
}

type FlightSearchResponse struct {
	Status  string        `json:"status"`
	Results []FlightOffer `json:"results"`
}
