package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Shamshod-Xatamov/TravelScout-V2/internal/models"
	"github.com/Shamshod-Xatamov/TravelScout-V2/internal/services"
)

const noFlightsMessage = "No flights found. Make sure to use IATA codes (e.g. TAS, JFK, IST)."

type FlightHandler struct {
	Service *services.FlightService
}

// Search handles POST /api/flights/search. The frontend relies on the exact
// error strings here, so they stay stable.
func (h *FlightHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonError(w, "Only POST requests allowed", http.StatusMethodNotAllowed)
		return
	}

	var query models.FlightSearchQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		jsonError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	offers, err := h.Service.Search(r.Context(), query)
	if err != nil {
		var searchErr *services.FlightSearchError
		switch {
		case errors.Is(err, models.ErrMissingSearchFields):
			jsonError(w, "Please fill all required fields", http.StatusBadRequest)
		case errors.As(err, &searchErr):
			jsonError(w, noFlightsMessage, http.StatusBadRequest)
		default:
			jsonError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, models.FlightSearchResponse{
		Status:  "success",
		Results: offers,
	})
}
