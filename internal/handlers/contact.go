package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"landing-api/internal/api"
	"landing-api/internal/validate"
)

type ContactHandler struct {
	store Store
	log   *zap.Logger
}

func NewContactHandler(store Store, log *zap.Logger) *ContactHandler {
	return &ContactHandler{store: store, log: log}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Submit validates and persists a contact form submission.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, validate.CodeValidationError, "All fields are required")
		return
	}

	if fieldErr := validate.Contact(req.Name, req.Email, req.Message); fieldErr != nil {
		api.Error(w, http.StatusBadRequest, fieldErr.Code, fieldErr.Message)
		return
	}

	sub, err := h.store.CreateContactSubmission(
		r.Context(),
		strings.TrimSpace(req.Name),
		validate.NormalizeEmail(req.Email),
		strings.TrimSpace(req.Message),
	)
	if err != nil {
		h.log.Error("contact submission failed", zap.Error(err))
		api.Error(w, http.StatusInternalServerError, api.CodeInternalError, "Internal server error. Please try again later.")
		return
	}

	api.OK(w, map[string]string{
		"id":      sub.ID,
		"message": "Contact form submitted successfully",
	})
}
