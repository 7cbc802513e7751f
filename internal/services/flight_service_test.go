package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Shamshod-Xatamov/TravelScout-V2/internal/models"
)

type fakeOffersClient struct {
	result FlightOffersResult
	err    error
	calls  int
	params FlightOffersParams
}

func (f *fakeOffersClient) SearchOffers(ctx context.Context, params FlightOffersParams) (FlightOffersResult, error) {
	f.calls++
	f.params = params
	return f.result, f.err
}

func TestMapCabinClass(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"economy", "ECONOMY"},
		{"premium", "PREMIUM_ECONOMY"},
		{"business", "BUSINESS"},
		{"first", "FIRST"},
		{"Business", "BUSINESS"},
		{" first ", "FIRST"},
		{"", "ECONOMY"},
		{"unknown", "ECONOMY"},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			if got := MapCabinClass(c.in); got != c.want {
				t.Errorf("MapCabinClass(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestSearchValidatesBeforeCalling(t *testing.T) {
	client := &fakeOffersClient{}
	svc := NewFlightService(client, nil)

	queries := []models.FlightSearchQuery{
		{To: "JFK", DepartDate: "2026-10-01"},
		{From: "TAS", DepartDate: "2026-10-01"},
		{From: "TAS", To: "JFK"},
		{From: "  ", To: "JFK", DepartDate: "2026-10-01"},
	}
	for _, q := range queries {
		_, err := svc.Search(context.Background(), q)
		if !errors.Is(err, models.ErrMissingSearchFields) {
			t.Errorf("query %+v: got %v, want ErrMissingSearchFields", q, err)
		}
	}
	if client.calls != 0 {
		t.Errorf("external client was called %d times before validation passed", client.calls)
	}
}

func TestSearchNormalizesOffers(t *testing.T) {
	client := &fakeOffersClient{
		result: FlightOffersResult{
			Offers: []AmadeusOffer{
				{
					ID: "1",
					Itineraries: []AmadeusItinerary{{
						Duration: "PT12H30M",
						Segments: []AmadeusSegment{
							{
								Departure:   AmadeusSegmentPoint{IataCode: "TAS", At: "2026-10-01T06:05:00"},
								Arrival:     AmadeusSegmentPoint{IataCode: "IST", At: "2026-10-01T09:45:00"},
								CarrierCode: "TK",
								Number:      "371",
							},
							{
								Departure:   AmadeusSegmentPoint{IataCode: "IST", At: "2026-10-01T12:00:00"},
								Arrival:     AmadeusSegmentPoint{IataCode: "JFK", At: "2026-10-01T18:35:00"},
								CarrierCode: "TK",
								Number:      "3",
							},
						},
					}},
					Price: AmadeusPrice{Total: "812.40", Currency: "USD"},
				},
				{
					ID: "2",
					Itineraries: []AmadeusItinerary{{
						Duration: "PT4H",
						Segments: []AmadeusSegment{{
							Departure:   AmadeusSegmentPoint{IataCode: "TAS", At: "2026-10-01T23:10:00"},
							Arrival:     AmadeusSegmentPoint{IataCode: "DXB", At: "2026-10-02T01:10:00"},
							CarrierCode: "ZZ",
							Number:      "18",
						}},
					}},
					Price: AmadeusPrice{Total: "199.00", Currency: "USD"},
				},
			},
			Carriers: map[string]string{"TK": "TURKISH AIRLINES"},
		},
	}
	svc := NewFlightService(client, nil)

	offers, err := svc.Search(context.Background(), models.FlightSearchQuery{
		From: "tas", To: "jfk", DepartDate: "2026-10-01", Class: "premium",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(offers) != 2 {
		t.Fatalf("got %d offers, want 2", len(offers))
	}

	first := offers[0]
	if first.Airline != "TURKISH AIRLINES" {
		t.Errorf("airline = %q, want dictionary name", first.Airline)
	}
	if first.FlightNumber != "TK 371" {
		t.Errorf("flightNumber = %q, want %q", first.FlightNumber, "TK 371")
	}
	if first.Departure.Time != "06:05" || first.Arrival.Time != "09:45" {
		t.Errorf("times = %q/%q, want 06:05/09:45", first.Departure.Time, first.Arrival.Time)
	}
	if first.Departure.City != "TAS" || first.Arrival.City != "JFK" {
		t.Errorf("cities = %q/%q, want searched endpoints TAS/JFK", first.Departure.City, first.Arrival.City)
	}
	if first.Duration != "12h30m" {
		t.Errorf("duration = %q, want 12h30m", first.Duration)
	}
	if first.Stops != 1 {
		t.Errorf("stops = %d, want 1", first.Stops)
	}
	if first.Price != 812.40 {
		t.Errorf("price = %v, want 812.40", first.Price)
	}
	if first.Class != "Premium_economy" {
		t.Errorf("class = %q, want Premium_economy", first.Class)
	}
	if first.Rating != 4.5 {
		t.Errorf("rating = %v, want 4.5", first.Rating)
	}

	second := offers[1]
	if second.Airline != "ZZ" {
		t.Errorf("airline = %q, want raw code fallback", second.Airline)
	}
	if second.Stops != 0 {
		t.Errorf("stops = %d, want 0 for direct flight", second.Stops)
	}
	if second.Duration != "4h" {
		t.Errorf("duration = %q, want 4h", second.Duration)
	}
	// A lead segment ending at a connection still reports the searched
	// destination as the city.
	if second.Arrival.Airport != "DXB" || second.Arrival.City != "JFK" {
		t.Errorf("arrival = %q/%q, want airport DXB with city JFK", second.Arrival.Airport, second.Arrival.City)
	}

	if client.params.Origin != "TAS" || client.params.Destination != "JFK" {
		t.Errorf("codes not upper-cased: %+v", client.params)
	}
	if client.params.TravelClass != "PREMIUM_ECONOMY" {
		t.Errorf("travelClass = %q, want PREMIUM_ECONOMY", client.params.TravelClass)
	}
	if client.params.Max != 10 {
		t.Errorf("max = %d, want 10", client.params.Max)
	}
	if client.params.Adults != 1 {
		t.Errorf("adults = %d, want default 1", client.params.Adults)
	}
}

func TestSearchPropagatesServiceError(t *testing.T) {
	client := &fakeOffersClient{err: &FlightSearchError{StatusCode: 400, Detail: "INVALID LOCATION"}}
	svc := NewFlightService(client, nil)

	_, err := svc.Search(context.Background(), models.FlightSearchQuery{
		From: "XXX", To: "YYY", DepartDate: "2026-10-01",
	})
	var searchErr *FlightSearchError
	if !errors.As(err, &searchErr) {
		t.Fatalf("got %v, want FlightSearchError", err)
	}
	if searchErr.StatusCode != 400 {
		t.Errorf("status = %d, want 400", searchErr.StatusCode)
	}
}

func TestSearchSkipsOffersWithoutSegments(t *testing.T) {
	client := &fakeOffersClient{
		result: FlightOffersResult{
			Offers: []AmadeusOffer{
				{ID: "broken"},
				{
					ID: "ok",
					Itineraries: []AmadeusItinerary{{
						Duration: "PT2H",
						Segments: []AmadeusSegment{{
							Departure:   AmadeusSegmentPoint{IataCode: "TAS", At: "2026-10-01T10:00:00"},
							Arrival:     AmadeusSegmentPoint{IataCode: "ALA", At: "2026-10-01T12:00:00"},
							CarrierCode: "HY",
							Number:      "7",
						}},
					}},
					Price: AmadeusPrice{Total: "90.00", Currency: "USD"},
				},
			},
		},
	}
	svc := NewFlightService(client, nil)

	offers, err := svc.Search(context.Background(), models.FlightSearchQuery{
		From: "TAS", To: "ALA", DepartDate: "2026-10-01",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(offers) != 1 || offers[0].ID != "ok" {
		t.Fatalf("got %+v, want only the well-formed offer", offers)
	}
}
