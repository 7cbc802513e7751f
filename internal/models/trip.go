package models

import (
	"strings"
	"time"
)

const (
	BudgetEconomy  = "Economy"
	BudgetStandard = "Standard"
	BudgetLuxury   = "Luxury"
)

type Trip struct {
	ID           int       `json:"id"`
	UserID       int       `json:"user_id"`
	Destination  string    `json:"destination"`
	StartDate    time.Time `json:"start_date"`
	DurationDays int       `json:"duration_days"`
	BudgetType   string    `json:"budget_type"`
	BudgetAmount int       `json:"budget_amount"`
	ShareUUID    string    `json:"share_uuid"`
	Description  string    `json:"description"`
	Interests    string    `json:"interests"`
	CoverImage   *string   `json:"cover_image,omitempty"`
	IsFavorite   bool      `json:"is_favorite"`
	// Itinerary is the serialized ItineraryPlan payload, stored as opaque
	// text and re-parsed on every read. Empty means no plan available.
	Itinerary string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// InterestsList splits the comma-separated interests field for display.
func (t Trip) InterestsList() []string {
	if strings.TrimSpace(t.Interests) == "" {
		return nil
	}
	parts := strings.Split(t.Interests, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

type TripCreateRequest struct {
	Destination  string `json:"destination"`
	StartDate    string `json:"start_date"`
	DurationDays int    `json:"duration_days"`
	BudgetType   string `json:"budget_type"`
	Interests    string `json:"interests"`
	Description  string `json:"description"`
}

// TripFilter drives the dashboard listing: substring search on destination
// and an exact budget-tier filter.
type TripFilter struct {
	UserID     int
	Search     string
	BudgetType string
}

type TripStats struct {
	TotalBudget    int    `json:"total_budget"`
	FavoritesCount int    `json:"favorites_count"`
	TopDestination string `json:"top_destination"`
}

type TripListResponse struct {
	Trips []Trip    `json:"trips"`
	Stats TripStats `json:"stats"`
}

type TripDetailResponse struct {
	Trip      Trip           `json:"trip"`
	Itinerary *ItineraryPlan `json:"itinerary"`
	Interests []string       `json:"interests"`
}

type FavoriteToggleResponse struct {
	Status     string `json:"status"`
	IsFavorite bool   `json:"is_favorite"`
	NewTotal   int    `json:"new_total"`
}
