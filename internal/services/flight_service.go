package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Shamshod-Xatamov/TravelScout-V2/internal/models"
)

const (
	maxFlightOffers     = 10
	defaultFlightRating = 4.5
)

var cabinClassMap = map[string]string{
	"economy":  "ECONOMY",
	"premium":  "PREMIUM_ECONOMY",
	"business": "BUSINESS",
	"first":    "FIRST",
}

// MapCabinClass translates a UI cabin label into the service's travel class.
// Unknown labels fall back to ECONOMY.
func MapCabinClass(class string) string {
	if mapped, ok := cabinClassMap[strings.ToLower(strings.TrimSpace(class))]; ok {
		return mapped
	}
	return "ECONOMY"
}

type FlightService struct {
	Client FlightOffersClient
	Cache  FlightCache
}

func NewFlightService(client FlightOffersClient, cache FlightCache) *FlightService {
	if cache == nil {
		cache = NoOpFlightCache{}
	}
	return &FlightService{Client: client, Cache: cache}
}

// Search validates the query, asks the flight-offers service for up to ten
// offers and flattens each into a card-shaped record. Validation failures are
// returned before any external call is made.
func (s *FlightService) Search(ctx context.Context, query models.FlightSearchQuery) ([]models.FlightOffer, error) {
	query.From = strings.ToUpper(strings.TrimSpace(query.From))
	query.To = strings.ToUpper(strings.TrimSpace(query.To))
	query.DepartDate = strings.TrimSpace(query.DepartDate)
	if query.Passengers <= 0 {
		query.Passengers = 1
	}
	query.Class = MapCabinClass(query.Class)

	if query.From == "" || query.To == "" || query.DepartDate == "" {
		return nil, models.ErrMissingSearchFields
	}

	if offers, ok := s.Cache.Get(ctx, query); ok {
		return offers, nil
	}

	result, err := s.Client.SearchOffers(ctx, FlightOffersParams{
		Origin:        query.From,
		Destination:   query.To,
		DepartureDate: query.DepartDate,
		Adults:        query.Passengers,
		TravelClass:   query.Class,
		Max:           maxFlightOffers,
	})
	if err != nil {
		return nil, err
	}

	offers := normalizeOffers(result, query)
	s.Cache.Set(ctx, query, offers)
	return offers, nil
}

// normalizeOffers takes the first itinerary and its first segment of each
// offer; connections beyond that only contribute to the stop count. City
// fields carry the searched endpoints, not the segment's own airports, so a
// connecting itinerary still displays the requested destination.
func normalizeOffers(result FlightOffersResult, query models.FlightSearchQuery) []models.FlightOffer {
	offers := []models.FlightOffer{}
	for _, raw := range result.Offers {
		if len(raw.Itineraries) == 0 || len(raw.Itineraries[0].Segments) == 0 {
			continue
		}
		itinerary := raw.Itineraries[0]
		segment := itinerary.Segments[0]

		airline := result.Carriers[segment.CarrierCode]
		if airline == "" {
			airline = segment.CarrierCode
		}

		offers = append(offers, models.FlightOffer{
			ID:           raw.ID,
			Airline:      airline,
			FlightNumber: fmt.Sprintf("%s %s", segment.CarrierCode, segment.Number),
			Departure: models.FlightEndpoint{
				Airport: segment.Departure.IataCode,
				City:    query.From,
				Time:    clockTime(segment.Departure.At),
			},
			Arrival: models.FlightEndpoint{
				Airport: segment.Arrival.IataCode,
				City:    query.To,
				Time:    clockTime(segment.Arrival.At),
			},
			Duration: humanDuration(itinerary.Duration),
			Price:    parsePrice(raw.Price.Total),
			Currency: raw.Price.Currency,
			Stops:    len(itinerary.Segments) - 1,
			Class:    classLabel(query.Class),
			Rating:   defaultFlightRating,
		})
	}
	return offers
}

// parsePrice converts the service's decimal-string price. A malformed price
// renders as zero rather than failing the whole search.
func parsePrice(total string) float64 {
	price, err := strconv.ParseFloat(total, 64)
	if err != nil {
		return 0
	}
	return price
}

// clockTime extracts "HH:MM" from an ISO timestamp like
// "2025-10-20T06:05:00". Anything without a time part comes back unchanged.
func clockTime(timestamp string) string {
	_, after, found := strings.Cut(timestamp, "T")
	if !found {
		return timestamp
	}
	if len(after) > 5 {
		return after[:5]
	}
	return after
}

// humanDuration turns an ISO-8601 duration like "PT12H30M" into "12h30m".
func humanDuration(duration string) string {
	return strings.ToLower(strings.TrimPrefix(duration, "PT"))
}

// classLabel renders a travel class like "PREMIUM_ECONOMY" as a display
// label with only the first letter capitalized.
func classLabel(travelClass string) string {
	if travelClass == "" {
		return ""
	}
	lower := strings.ToLower(travelClass)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
