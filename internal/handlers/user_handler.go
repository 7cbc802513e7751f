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

type UserHandler struct {
	Service *services.UserService
	Storage *utils.Storage
}

func (h *UserHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	user, err := h.Service.SignUp(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrDuplicateEmail):
			jsonError(w, "Email is already registered", http.StatusBadRequest)
		case errors.Is(err, models.ErrDuplicateUsername):
			jsonError(w, "Username is already taken", http.StatusBadRequest)
		case errors.Is(err, models.ErrWeakPassword):
			jsonError(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, models.ErrInvalidCredentials):
			jsonError(w, "Username, email and password are required", http.StatusBadRequest)
		default:
			jsonError(w, "Failed to create account", http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	tokens, err := h.Service.SignIn(r.Context(), req)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			jsonError(w, "Invalid email or password", http.StatusUnauthorized)
			return
		}
		jsonError(w, "Failed to sign in", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, tokens)
}

func (h *UserHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	tokens, err := h.Service.RefreshTokens(r.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			jsonError(w, "Invalid or expired refresh token", http.StatusUnauthorized)
			return
		}
		jsonError(w, "Failed to refresh session", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, tokens)
}

func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Logout(r.Context(), userIDFromRequest(r)); err != nil {
		jsonError(w, "Failed to log out", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Service.GetProfile(r.Context(), userIDFromRequest(r))
	if err != nil {
		jsonError(w, "Failed to load profile", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// UpdateProfile accepts a multipart form: username, email and an optional
// "profile_picture" file.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromRequest(r)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		jsonError(w, "Invalid upload", http.StatusBadRequest)
		return
	}

	if file, header, err := r.FormFile("profile_picture"); err == nil {
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			jsonError(w, "Failed to read upload", http.StatusInternalServerError)
			return
		}
		fileName := uuid.New().String() + filepath.Ext(header.Filename)
		url, err := h.Storage.UploadFile(data, fileName, "profile_pics")
		if err != nil {
			jsonError(w, "Failed to store image", http.StatusInternalServerError)
			return
		}
		if err := h.Service.UpdateProfilePicture(r.Context(), userID, url); err != nil {
			jsonError(w, "Failed to update profile", http.StatusInternalServerError)
			return
		}
	}

	profile, err := h.Service.UpdateProfile(r.Context(), userID, models.UpdateProfileRequest{
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrDuplicateEmail):
			jsonError(w, "Email is already registered", http.StatusBadRequest)
		case errors.Is(err, models.ErrDuplicateUsername):
			jsonError(w, "Username is already taken", http.StatusBadRequest)
		case errors.Is(err, models.ErrInvalidCredentials):
			jsonError(w, "Username and email are required", http.StatusBadRequest)
		default:
			jsonError(w, "Failed to update profile", http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// ChangePassword reports failures per field so the form can highlight the
// offending input.
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req models.UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	err := h.Service.UpdatePassword(r.Context(), userIDFromRequest(r), req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidPassword):
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{
				"status": "error",
				"errors": map[string]string{"old_password": "Current password is incorrect"},
			})
		case errors.Is(err, models.ErrWeakPassword):
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{
				"status": "error",
				"errors": map[string]string{"new_password": err.Error()},
			})
		default:
			jsonError(w, "Failed to change password", http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
