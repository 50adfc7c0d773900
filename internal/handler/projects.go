package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/tempohq/tempo/backend/internal/domain"
	"github.com/tempohq/tempo/backend/internal/utils"
)

type projectRequest struct {
	ID          string     `json:"id"`
	Name        string     `json:"name" validate:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status" validate:"required"`
	StartDate   time.Time  `json:"startDate" validate:"required"`
	EndDate     *time.Time `json:"endDate"`
	MemberIDs   []string   `json:"memberIds"`
}

func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.repository.Projects.GetAll()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{"projects": projects})
}

// AvailableProjects lists the projects the caller belongs to, e.g. as
// candidates for the default-project setting.
func (h *Handler) AvailableProjects(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		h.respondError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	projects, err := h.repository.Projects.GetAvailableForUser(claims.Subject)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{"projects": projects})
}

func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	status := domain.ProjectStatus(req.Status)
	if !status.Valid() {
		h.respondError(w, r, http.StatusBadRequest, "Invalid status")
		return
	}

	project := &domain.Project{
		Name:        req.Name,
		Description: req.Description,
		Status:      status,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if err := utils.ValidateProjectDates(project); err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.repository.Projects.Create(project, req.MemberIDs); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, map[string]any{"project": project})
}

func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if req.ID == "" {
		h.respondError(w, r, http.StatusBadRequest, "Project ID is required")
		return
	}

	status := domain.ProjectStatus(req.Status)
	if !status.Valid() {
		h.respondError(w, r, http.StatusBadRequest, "Invalid status")
		return
	}

	project := &domain.Project{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Status:      status,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if err := utils.ValidateProjectDates(project); err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.repository.Projects.Update(project, req.MemberIDs); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.respondError(w, r, http.StatusNotFound, "Project not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{"project": project})
}

func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		h.respondError(w, r, http.StatusBadRequest, "Project ID is required")
		return
	}

	if err := h.repository.Projects.Delete(id); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{"success": true})
}
