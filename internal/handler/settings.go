package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/tempohq/tempo/backend/internal/domain"
)

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	user, err := h.sessionUser(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if user == nil {
		h.respondError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	settings, err := h.repository.Settings.GetByUserID(user.ID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			h.internalServerError(w, r, err)
			return
		}
		settings = domain.DefaultSettings(user.ID)
		if err := h.repository.Settings.Create(settings); err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{"settings": settings})
}

func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	user, err := h.sessionUser(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if user == nil {
		h.respondError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Theme              string  `json:"theme" validate:"required,oneof=light dark system"`
		Language           string  `json:"language" validate:"required"`
		EmailNotifications bool    `json:"emailNotifications"`
		PushNotifications  bool    `json:"pushNotifications"`
		WeeklyDigest       bool    `json:"weeklyDigest"`
		DefaultProjectID   *string `json:"defaultProjectId"`
		WorkingHours       int     `json:"workingHours" validate:"required,gte=1,lte=24"`
		TimeZone           string  `json:"timeZone" validate:"required"`
		DateFormat         string  `json:"dateFormat" validate:"required"`
		TimeFormat         string  `json:"timeFormat" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// Employees can only pin projects they belong to. Admins and managers see
	// every project anyway.
	if req.DefaultProjectID != nil && user.Role == domain.RoleEmployee {
		member, err := h.repository.Projects.IsMember(*req.DefaultProjectID, user.ID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		if !member {
			h.respondError(w, r, http.StatusBadRequest, "Invalid default project")
			return
		}
	}

	settings, err := h.repository.Settings.GetByUserID(user.ID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			h.internalServerError(w, r, err)
			return
		}
		settings = domain.DefaultSettings(user.ID)
		if err := h.repository.Settings.Create(settings); err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	settings.Theme = req.Theme
	settings.Language = req.Language
	settings.EmailNotifications = req.EmailNotifications
	settings.PushNotifications = req.PushNotifications
	settings.WeeklyDigest = req.WeeklyDigest
	settings.DefaultProjectID = req.DefaultProjectID
	settings.WorkingHours = req.WorkingHours
	settings.TimeZone = req.TimeZone
	settings.DateFormat = req.DateFormat
	settings.TimeFormat = req.TimeFormat

	if err := h.repository.Settings.Update(settings); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{"settings": settings})
}
