package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/Shamshod-Xatamov/TravelScout-V2/internal/models"
	"github.com/Shamshod-Xatamov/TravelScout-V2/internal/services"
	"github.com/Shamshod-Xatamov/TravelScout-V2/utils"
)

const maxUploadSize = 10 << 20

type TripHandler struct {
	Service *services.TripService
	Storage *utils.Storage
}

func (h *TripHandler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromRequest(r)

	var req models.TripCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	trip, err := h.Service.CreateTrip(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrMissingSearchFields),
			errors.Is(err, models.ErrInvalidDuration),
			errors.Is(err, models.ErrInvalidBudgetType),
			errors.Is(err, models.ErrInvalidStartDate):
			jsonError(w, err.Error(), http.StatusBadRequest)
		default:
			jsonError(w, "Failed to create trip", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusCreated, models.TripDetailResponse{
		Trip:      trip,
		Itinerary: models.ParseItinerary(trip.Itinerary),
		Interests: trip.InterestsList(),
	})
}

func (h *TripHandler) ListTrips(w http.ResponseWriter, r *http.Request) {
	filter := models.TripFilter{
		UserID:     userIDFromRequest(r),
		Search:     r.URL.Query().Get("q"),
		BudgetType: r.URL.Query().Get("budget"),
	}

	resp, err := h.Service.ListTrips(r.Context(), filter)
	if err != nil {
		jsonError(w, "Failed to load trips", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *TripHandler) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathParamInt(r, "id")
	if err != nil {
		jsonError(w, "Invalid trip id", http.StatusBadRequest)
		return
	}

	detail, err := h.Service.GetTrip(r.Context(), id, userIDFromRequest(r))
	if err != nil {
		if errors.Is(err, models.ErrTripNotFound) {
			jsonError(w, "Trip not found", http.StatusNotFound)
			return
		}
		jsonError(w, "Failed to load trip", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *TripHandler) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathParamInt(r, "id")
	if err != nil {
		jsonError(w, "Invalid trip id", http.StatusBadRequest)
		return
	}

	if err := h.Service.DeleteTrip(r.Context(), id, userIDFromRequest(r)); err != nil {
		if errors.Is(err, models.ErrTripNotFound) {
			jsonError(w, "Trip not found", http.StatusNotFound)
			return
		}
		jsonError(w, "Failed to delete trip", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (h *TripHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := pathParamInt(r, "id")
	if err != nil {
		jsonError(w, "Invalid trip id", http.StatusBadRequest)
		return
	}

	resp, err := h.Service.ToggleFavorite(r.Context(), id, userIDFromRequest(r))
	if err != nil {
		if errors.Is(err, models.ErrTripNotFound) {
			jsonError(w, "Trip not found", http.StatusNotFound)
			return
		}
		jsonError(w, "Failed to update favorite", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// SharedTrip serves public share links without authentication.
func (h *TripHandler) SharedTrip(w http.ResponseWriter, r *http.Request) {
	shareUUID := r.URL.Query().Get(":uuid")

	detail, err := h.Service.GetSharedTrip(r.Context(), shareUUID)
	if err != nil {
		if errors.Is(err, models.ErrTripNotFound) {
			jsonError(w, "Trip not found", http.StatusNotFound)
			return
		}
		jsonError(w, "Failed to load trip", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *TripHandler) UploadCover(w http.ResponseWriter, r *http.Request) {
	id, err := pathParamInt(r, "id")
	if err != nil {
		jsonError(w, "Invalid trip id", http.StatusBadRequest)
		return
	}

	// Confirm ownership before touching S3 so a rejected request cannot
	// leave an orphaned object behind.
	userID := userIDFromRequest(r)
	if _, err := h.Service.GetTrip(r.Context(), id, userID); err != nil {
		if errors.Is(err, models.ErrTripNotFound) {
			jsonError(w, "Trip not found", http.StatusNotFound)
			return
		}
		jsonError(w, "Failed to load trip", http.StatusInternalServerError)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		jsonError(w, "Invalid upload", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("cover_image")
	if err != nil {
		jsonError(w, "cover_image file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		jsonError(w, "Failed to read upload", http.StatusInternalServerError)
		return
	}

	fileName := uuid.New().String() + filepath.Ext(header.Filename)
	url, err := h.Storage.UploadFile(data, fileName, "trip_covers")
	if err != nil {
		jsonError(w, "Failed to store image", http.StatusInternalServerError)
		return
	}

	if err := h.Service.UpdateCoverImage(r.Context(), id, userID, url); err != nil {
		if errors.Is(err, models.ErrTripNotFound) {
			jsonError(w, "Trip not found", http.StatusNotFound)
			return
		}
		jsonError(w, "Failed to update trip", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "url": url})
}
