package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestAmadeusClient(t *testing.T, handler http.Handler) (*AmadeusClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewAmadeusClient(server.Client(), "id", "secret", "test")
	client.baseURL = server.URL
	return client, server
}

func TestSearchOffersFetchesTokenOnce(t *testing.T) {
	tokenCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		tokenCalls++
		if r.Method != http.MethodPost {
			t.Errorf("token request method = %s, want POST", r.Method)
		}
		fmt.Fprint(w, `{"access_token": "tok-1", "expires_in": 1799}`)
	})
	mux.HandleFunc("/v2/shopping/flight-offers", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("Authorization = %q, want Bearer tok-1", got)
		}
		if got := r.URL.Query().Get("travelClass"); got != "BUSINESS" {
			t.Errorf("travelClass = %q, want BUSINESS", got)
		}
		fmt.Fprint(w, `{
			"data": [{"id": "1", "itineraries": [], "price": {"total": "100.00", "currency": "USD"}}],
			"dictionaries": {"carriers": {"TK": "TURKISH AIRLINES"}}
		}`)
	})

	client, _ := newTestAmadeusClient(t, mux)
	params := FlightOffersParams{
		Origin: "TAS", Destination: "JFK", DepartureDate: "2026-10-01",
		Adults: 1, TravelClass: "BUSINESS", Max: 10,
	}

	for i := 0; i < 3; i++ {
		result, err := client.SearchOffers(context.Background(), params)
		if err != nil {
			t.Fatalf("search %d failed: %v", i, err)
		}
		if len(result.Offers) != 1 {
			t.Fatalf("got %d offers, want 1", len(result.Offers))
		}
		if result.Carriers["TK"] != "TURKISH AIRLINES" {
			t.Errorf("carriers dictionary missing: %+v", result.Carriers)
		}
	}

	if tokenCalls != 1 {
		t.Errorf("token endpoint hit %d times, want 1 (token should be cached)", tokenCalls)
	}
}

func TestSearchOffersReturnsTypedErrorOnBadStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"access_token": "tok", "expires_in": 1799}`)
	})
	mux.HandleFunc("/v2/shopping/flight-offers", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"errors": [{"title": "INVALID FORMAT"}]}`)
	})

	client, _ := newTestAmadeusClient(t, mux)
	_, err := client.SearchOffers(context.Background(), FlightOffersParams{
		Origin: "BAD", Destination: "JFK", DepartureDate: "2026-10-01", Adults: 1,
	})

	var searchErr *FlightSearchError
	if !errors.As(err, &searchErr) {
		t.Fatalf("got %T (%v), want *FlightSearchError", err, err)
	}
	if searchErr.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", searchErr.StatusCode)
	}
}

func TestSearchOffersUnconfigured(t *testing.T) {
	client := NewAmadeusClient(nil, "", "", "test")
	if _, err := client.SearchOffers(context.Background(), FlightOffersParams{}); err == nil {
		t.Fatal("expected error for unconfigured client")
	}
}
