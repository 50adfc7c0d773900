package handler

import (
	"net/http"
	"time"

	"github.com/tempohq/tempo/backend/internal/domain"
)

func (h *Handler) ListTimeEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.repository.TimeEntries.GetAll()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{"timeEntries": entries})
}

func (h *Handler) CreateTimeEntry(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		h.respondError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		ProjectID   string    `json:"projectId" validate:"required"`
		Date        time.Time `json:"date" validate:"required"`
		Hours       float64   `json:"hours" validate:"required,gt=0,lte=24"`
		Description string    `json:"description"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// Entries are always booked against the caller, never a user from the body.
	entry := &domain.TimeEntry{
		UserID:      claims.Subject,
		ProjectID:   req.ProjectID,
		Date:        req.Date,
		Hours:       req.Hours,
		Description: req.Description,
	}
	if err := h.repository.TimeEntries.Create(entry); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, map[string]any{"timeEntry": entry})
}
