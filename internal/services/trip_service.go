package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Shamshod-Xatamov/TravelScout-V2/internal/models"
	"github.com/Shamshod-Xatamov/TravelScout-V2/internal/repositories"
)

const (
	defaultTripDescription = "A personalized AI travel plan."
	defaultTripInterests   = "Culture, Food"
)

type TripService struct {
	TripRepo  *repositories.TripRepository
	Itinerary *ItineraryService
}

// CreateTrip validates the request, generates a plan and persists the trip.
// A failed generation still creates the trip, with the baseline budget and no
// stored plan.
func (s *TripService) CreateTrip(ctx context.Context, userID int, req models.TripCreateRequest) (models.Trip, error) {
	req.Destination = strings.TrimSpace(req.Destination)
	if req.Destination == "" {
		return models.Trip{}, models.ErrMissingSearchFields
	}
	if req.DurationDays < 1 || req.DurationDays > 30 {
		return models.Trip{}, models.ErrInvalidDuration
	}
	switch req.BudgetType {
	case models.BudgetEconomy, models.BudgetStandard, models.BudgetLuxury:
	default:
		return models.Trip{}, models.ErrInvalidBudgetType
	}

	startDate := time.Now()
	if req.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return models.Trip{}, models.ErrInvalidStartDate
		}
		startDate = parsed
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = defaultTripDescription
	}
	interests := strings.TrimSpace(req.Interests)
	if interests == "" {
		interests = defaultTripInterests
	}

	payload, cost := s.Itinerary.Generate(ctx, req.Destination, req.DurationDays, req.BudgetType, interests)

	trip := models.Trip{
		UserID:       userID,
		Destination:  req.Destination,
		StartDate:    startDate,
		DurationDays: req.DurationDays,
		BudgetType:   req.BudgetType,
		BudgetAmount: cost,
		ShareUUID:    uuid.New().String(),
		Description:  description,
		Interests:    interests,
		Itinerary:    payload,
	}
	return s.TripRepo.CreateTrip(ctx, trip)
}

// ListTrips returns the filtered trips together with the dashboard stats
// computed over the same filter.
func (s *TripService) ListTrips(ctx context.Context, filter models.TripFilter) (models.TripListResponse, error) {
	trips, err := s.TripRepo.GetTripsByUser(ctx, filter)
	if err != nil {
		return models.TripListResponse{}, err
	}
	stats, err := s.TripRepo.GetStats(ctx, filter)
	if err != nil {
		return models.TripListResponse{}, err
	}
	return models.TripListResponse{Trips: trips, Stats: stats}, nil
}

func (s *TripService) GetTrip(ctx context.Context, id, userID int) (models.TripDetailResponse, error) {
	trip, err := s.TripRepo.GetTripByID(ctx, id, userID)
	if err != nil {
		return models.TripDetailResponse{}, err
	}
	return tripDetail(trip), nil
}

// GetSharedTrip resolves a public share link. No ownership check: the UUID is
// the capability.
func (s *TripService) GetSharedTrip(ctx context.Context, shareUUID string) (models.TripDetailResponse, error) {
	trip, err := s.TripRepo.GetTripByShareUUID(ctx, shareUUID)
	if err != nil {
		return models.TripDetailResponse{}, err
	}
	return tripDetail(trip), nil
}

func tripDetail(trip models.Trip) models.TripDetailResponse {
	return models.TripDetailResponse{
		Trip:      trip,
		Itinerary: models.ParseItinerary(trip.Itinerary),
		Interests: trip.InterestsList(),
	}
}

func (s *TripService) DeleteTrip(ctx context.Context, id, userID int) error {
	return s.TripRepo.DeleteTrip(ctx, id, userID)
}

// ToggleFavorite flips the flag and reports the new state along with the
// user's updated favorites total.
func (s *TripService) ToggleFavorite(ctx context.Context, id, userID int) (models.FavoriteToggleResponse, error) {
	isFavorite, err := s.TripRepo.ToggleFavorite(ctx, id, userID)
	if err != nil {
		return models.FavoriteToggleResponse{}, err
	}
	total, err := s.TripRepo.CountFavorites(ctx, userID)
	if err != nil {
		return models.FavoriteToggleResponse{}, err
	}
	return models.FavoriteToggleResponse{
		Status:     "success",
		IsFavorite: isFavorite,
		NewTotal:   total,
	}, nil
}

func (s *TripService) UpdateCoverImage(ctx context.Context, id, userID int, url string) error {
	return s.TripRepo.UpdateCoverImage(ctx, id, userID, url)
}
