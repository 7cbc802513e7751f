package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSupportSubmitValidation(t *testing.T) {
	h := &SupportHandler{}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/support",
		strings.NewReader(`{"name": "", "email": "not-an-email", "subject": "Help", "message": ""}`))
	h.Submit(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var body struct {
		Status string            `json:"status"`
		Errors map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Status != "error" {
		t.Errorf("status = %q, want error", body.Status)
	}
	for _, field := range []string{"name", "email", "message"} {
		if body.Errors[field] == "" {
			t.Errorf("missing error for field %q: %+v", field, body.Errors)
		}
	}
	if _, ok := body.Errors["subject"]; ok {
		t.Errorf("subject was provided but flagged: %+v", body.Errors)
	}
}

func TestSupportSubmitSuccess(t *testing.T) {
	h := &SupportHandler{}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/support",
		strings.NewReader(`{"name": "Aziz", "email": "aziz@example.com", "subject": "Feedback", "message": "Great app"}`))
	h.Submit(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body map[string]string
	json.Unmarshal(w.Body.Bytes(), &body)
	if body["status"] != "success" {
		t.Errorf("status = %q, want success", body["status"])
	}
}
