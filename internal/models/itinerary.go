package models

import "encoding/json"

// ItineraryPlan is the JSON contract the language model output must satisfy.
// The whole structure is serialized into Trip.Itinerary and parsed back on
// every display read.
type ItineraryPlan struct {
	// EstimatedCost is kept raw: models return it as a number or as free
	// text ("$1,200 approx"), and the reconciliation step decides whether
	// it can override the deterministic baseline.
	EstimatedCost json.RawMessage `json:"estimated_cost,omitempty"`
	Currency      string          `json:"currency,omitempty"`
	Days          []DayPlan       `json:"days"`
}

type DayPlan struct {
	Day        int        `json:"day"`
	Title      string     `json:"title"`
	Activities []Activity `json:"activities"`
}

type Activity struct {
	Time        string `json:"time"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Type        string `json:"type"`
	Icon        string `json:"icon"`
	Cost        string `json:"cost"`
}

// Serialize renders the plan to its stored text form.
func (p ItineraryPlan) Serialize() (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ParseItinerary parses a stored payload. An empty payload or a parse
// failure means "no plan available" and is not an error shown to users.
func ParseItinerary(payload string) *ItineraryPlan {
	if payload == "" {
		return nil
	}
	var plan ItineraryPlan
	if err := json.Unmarshal([]byte(payload), &plan); err != nil {
		return nil
	}
	return &plan
}
