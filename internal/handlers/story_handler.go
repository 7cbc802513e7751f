package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/Shamshod-Xatamov/TravelScout-V2/internal/models"
	"github.com/Shamshod-Xatamov/TravelScout-V2/internal/services"
	"github.com/Shamshod-Xatamov/TravelScout-V2/utils"
)

type StoryHandler struct {
	Service *services.StoryService
	Storage *utils.Storage
}

func (h *StoryHandler) Feed(w http.ResponseWriter, r *http.Request) {
	feed, err := h.Service.Feed(r.Context(), userIDFromRequest(r))
	if err != nil {
		jsonError(w, "Failed to load stories", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"stories": feed})
}

// CreateStory accepts a multipart form: title, location, content and any
// number of files under "images".
func (h *StoryHandler) CreateStory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		jsonError(w, "Invalid upload", http.StatusBadRequest)
		return
	}

	req := models.StoryCreateRequest{
		Title:    r.FormValue("title"),
		Location: r.FormValue("location"),
		Content:  r.FormValue("content"),
	}

	story, err := h.Service.CreateStory(r.Context(), userIDFromRequest(r), req)
	if err != nil {
		if errors.Is(err, models.ErrMissingSearchFields) {
			jsonError(w, "Title and content are required", http.StatusBadRequest)
			return
		}
		jsonError(w, "Failed to create story", http.StatusInternalServerError)
		return
	}

	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["images"] {
			url, err := h.uploadStoryImage(header)
			if err != nil {
				jsonError(w, "Failed to store image", http.StatusInternalServerError)
				return
			}
			if err := h.Service.AttachImage(r.Context(), story.ID, url); err != nil {
				jsonError(w, "Failed to save image", http.StatusInternalServerError)
				return
			}
		}
	}

	writeJSON(w, http.StatusCreated, story)
}

func (h *StoryHandler) uploadStoryImage(header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	fileName := uuid.New().String() + filepath.Ext(header.Filename)
	return h.Storage.UploadFile(data, fileName, "story_images")
}

// UpdateStory accepts the same multipart form as CreateStory. Uploading new
// images replaces the story's existing image set.
func (h *StoryHandler) UpdateStory(w http.ResponseWriter, r *http.Request) {
	id, err := pathParamInt(r, "id")
	if err != nil {
		jsonError(w, "Invalid story id", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		jsonError(w, "Invalid upload", http.StatusBadRequest)
		return
	}
	req := models.StoryCreateRequest{
		Title:    r.FormValue("title"),
		Location: r.FormValue("location"),
		Content:  r.FormValue("content"),
	}

	if err := h.Service.UpdateStory(r.Context(), userIDFromRequest(r), id, req); err != nil {
		switch {
		case errors.Is(err, models.ErrMissingSearchFields):
			jsonError(w, "Title and content are required", http.StatusBadRequest)
		case errors.Is(err, models.ErrStoryNotFound):
			jsonError(w, "Story not found", http.StatusNotFound)
		default:
			jsonError(w, "Failed to update story", http.StatusInternalServerError)
		}
		return
	}

	if r.MultipartForm != nil && len(r.MultipartForm.File["images"]) > 0 {
		urls := make([]string, 0, len(r.MultipartForm.File["images"]))
		for _, header := range r.MultipartForm.File["images"] {
			url, err := h.uploadStoryImage(header)
			if err != nil {
				jsonError(w, "Failed to store image", http.StatusInternalServerError)
				return
			}
			urls = append(urls, url)
		}
		if err := h.Service.ReplaceImages(r.Context(), id, urls); err != nil {
			jsonError(w, "Failed to save images", http.StatusInternalServerError)
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (h *StoryHandler) DeleteStory(w http.ResponseWriter, r *http.Request) {
	id, err := pathParamInt(r, "id")
	if err != nil {
		jsonError(w, "Invalid story id", http.StatusBadRequest)
		return
	}

	if err := h.Service.DeleteStory(r.Context(), userIDFromRequest(r), id); err != nil {
		if errors.Is(err, models.ErrStoryNotFound) {
			jsonError(w, "Story not found", http.StatusNotFound)
			return
		}
		jsonError(w, "Failed to delete story", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (h *StoryHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	id, err := pathParamInt(r, "id")
	if err != nil {
		jsonError(w, "Invalid story id", http.StatusBadRequest)
		return
	}

	resp, err := h.Service.ToggleLike(r.Context(), id, userIDFromRequest(r))
	if err != nil {
		if errors.Is(err, models.ErrStoryNotFound) {
			jsonError(w, "Story not found", http.StatusNotFound)
			return
		}
		jsonError(w, "Failed to update like", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *StoryHandler) ToggleSave(w http.ResponseWriter, r *http.Request) {
	id, err := pathParamInt(r, "id")
	if err != nil {
		jsonError(w, "Invalid story id", http.StatusBadRequest)
		return
	}

	resp, err := h.Service.ToggleSave(r.Context(), id, userIDFromRequest(r))
	if err != nil {
		if errors.Is(err, models.ErrStoryNotFound) {
			jsonError(w, "Story not found", http.StatusNotFound)
			return
		}
		jsonError(w, "Failed to update save", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *StoryHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathParamInt(r, "id")
	if err != nil {
		jsonError(w, "Invalid story id", http.StatusBadRequest)
		return
	}

	var req models.CommentCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	comment, err := h.Service.AddComment(r.Context(), id, userIDFromRequest(r), req.Text)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrEmptyComment):
			jsonError(w, "Comment text is required", http.StatusBadRequest)
		case errors.Is(err, models.ErrStoryNotFound):
			jsonError(w, "Story not found", http.StatusNotFound)
		default:
			jsonError(w, "Failed to add comment", http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

// SharedStory serves public share links without authentication. Views are
// deduplicated per viewer address.
func (h *StoryHandler) SharedStory(w http.ResponseWriter, r *http.Request) {
	shareUUID := r.URL.Query().Get(":uuid")

	view, err := h.Service.SharedStory(r.Context(), shareUUID, clientIP(r))
	if err != nil {
		if errors.Is(err, models.ErrStoryNotFound) {
			jsonError(w, "Story not found", http.StatusNotFound)
			return
		}
		jsonError(w, "Failed to load story", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
