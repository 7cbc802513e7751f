package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Shamshod-Xatamov/TravelScout-V2/internal/models"
)

func TestCreateTripValidation(t *testing.T) {
	// Validation happens before the itinerary generator or the repository
	// are touched, so a zero-value service is enough.
	svc := &TripService{}

	cases := []struct {
		name string
		req  models.TripCreateRequest
		want error
	}{
		{
			"missing destination",
			models.TripCreateRequest{DurationDays: 5, BudgetType: models.BudgetEconomy},
			models.ErrMissingSearchFields,
		},
		{
			"duration too short",
			models.TripCreateRequest{Destination: "Paris", DurationDays: 0, BudgetType: models.BudgetEconomy},
			models.ErrInvalidDuration,
		},
		{
			"duration too long",
			models.TripCreateRequest{Destination: "Paris", DurationDays: 31, BudgetType: models.BudgetEconomy},
			models.ErrInvalidDuration,
		},
		{
			"unknown budget tier",
			models.TripCreateRequest{Destination: "Paris", DurationDays: 5, BudgetType: "Mystery"},
			models.ErrInvalidBudgetType,
		},
		{
			"malformed start date",
			models.TripCreateRequest{Destination: "Paris", DurationDays: 5, BudgetType: models.BudgetStandard, StartDate: "12/31/2026"},
			models.ErrInvalidStartDate,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := svc.CreateTrip(context.Background(), 1, c.req)
			if !errors.Is(err, c.want) {
				t.Errorf("got %v, want %v", err, c.want)
			}
		})
	}
}
