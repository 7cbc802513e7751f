package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Shamshod-Xatamov/TravelScout-V2/internal/models"
	"github.com/Shamshod-Xatamov/TravelScout-V2/internal/services"
)

type stubOffersClient struct {
	result services.FlightOffersResult
	err    error
}

func (s *stubOffersClient) SearchOffers(ctx context.Context, params services.FlightOffersParams) (services.FlightOffersResult, error) {
	return s.result, s.err
}

func newFlightHandler(client services.FlightOffersClient) *FlightHandler {
	return &FlightHandler{Service: services.NewFlightService(client, nil)}
}

func TestFlightSearchRejectsGet(t *testing.T) {
	h := newFlightHandler(&stubOffersClient{})

	w := httptest.NewRecorder()
	h.Search(w, httptest.NewRequest(http.MethodGet, "/api/flights/search", nil))

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response was not JSON: %v", err)
	}
	if body["error"] != "Only POST requests allowed" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestFlightSearchMissingFields(t *testing.T) {
	h := newFlightHandler(&stubOffersClient{})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/flights/search",
		strings.NewReader(`{"from": "TAS"}`))
	h.Search(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var body map[string]string
	json.Unmarshal(w.Body.Bytes(), &body)
	if body["error"] != "Please fill all required fields" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestFlightSearchServiceErrorBecomesNoFlightsMessage(t *testing.T) {
	h := newFlightHandler(&stubOffersClient{
		err: &services.FlightSearchError{StatusCode: 400, Detail: "INVALID LOCATION"},
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/flights/search",
		strings.NewReader(`{"from": "XXX", "to": "YYY", "departDate": "2026-10-01"}`))
	h.Search(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var body map[string]string
	json.Unmarshal(w.Body.Bytes(), &body)
	if body["error"] != noFlightsMessage {
		t.Errorf("error = %q, want %q", body["error"], noFlightsMessage)
	}
}

func TestFlightSearchSuccess(t *testing.T) {
	h := newFlightHandler(&stubOffersClient{
		result: services.FlightOffersResult{
			Offers: []services.AmadeusOffer{{
				ID: "1",
				Itineraries: []services.AmadeusItinerary{{
					Duration: "PT3H15M",
					Segments: []services.AmadeusSegment{{
						Departure:   services.AmadeusSegmentPoint{IataCode: "TAS", At: "2026-10-01T08:00:00"},
						Arrival:     services.AmadeusSegmentPoint{IataCode: "IST", At: "2026-10-01T11:15:00"},
						CarrierCode: "HY",
						Number:      "273",
					}},
				}},
				Price: services.AmadeusPrice{Total: "420.00", Currency: "USD"},
			}},
			Carriers: map[string]string{"HY": "UZBEKISTAN AIRWAYS"},
		},
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/flights/search",
		strings.NewReader(`{"from": "TAS", "to": "IST", "departDate": "2026-10-01", "passengers": 2, "class": "economy"}`))
	h.Search(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var resp models.FlightSearchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "success" {
		t.Errorf("status = %q, want success", resp.Status)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("got %d results, want 1", len(resp.Results))
	}
	if resp.Results[0].Airline != "UZBEKISTAN AIRWAYS" {
		t.Errorf("airline = %q", resp.Results[0].Airline)
	}
	if resp.Results[0].FlightNumber != "HY 273" {
		t.Errorf("flightNumber = %q", resp.Results[0].FlightNumber)
	}
}

func TestFlightSearchInvalidJSON(t *testing.T) {
	h := newFlightHandler(&stubOffersClient{})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/flights/search", strings.NewReader("{"))
	h.Search(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
