package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/Shamshod-Xatamov/TravelScout-V2/internal/models"
)

type SupportHandler struct {
	InfoLog *log.Logger
}

// Submit validates the contact form. Requests are currently logged for the
// operations inbox; there is no outbound mail channel yet.
func (h *SupportHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.SupportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	fieldErrors := map[string]string{}
	if strings.TrimSpace(req.Name) == "" {
		fieldErrors["name"] = "Name is required"
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		fieldErrors["email"] = "Email is required"
	} else if !strings.Contains(email, "@") {
		fieldErrors["email"] = "Enter a valid email address"
	}
	if strings.TrimSpace(req.Subject) == "" {
		fieldErrors["subject"] = "Subject is required"
	}
	if strings.TrimSpace(req.Message) == "" {
		fieldErrors["message"] = "Message is required"
	}

	if len(fieldErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"status": "error",
			"errors": fieldErrors,
		})
		return
	}

	if h.InfoLog != nil {
		h.InfoLog.Printf("support request from %s <%s>: %s", req.Name, email, req.Subject)
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Message sent successfully!",
	})
}
