package handler

import (
	"net/http"
	"time"

	"github.com/tempohq/tempo/backend/internal/domain"
)

func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.repository.Expenses.GetAll()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{"expenses": expenses})
}

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		h.respondError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		ProjectID   string    `json:"projectId" validate:"required"`
		Amount      float64   `json:"amount" validate:"required,gt=0"`
		Description string    `json:"description" validate:"required"`
		Date        time.Time `json:"date" validate:"required"`
		Status      string    `json:"status"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	status := domain.ExpenseStatusPending
	if req.Status != "" {
		status = domain.ExpenseStatus(req.Status)
		if !status.Valid() {
			h.respondError(w, r, http.StatusBadRequest, "Invalid status")
			return
		}
	}

	expense := &domain.Expense{
		UserID:      claims.Subject,
		ProjectID:   req.ProjectID,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        req.Date,
		Status:      status,
	}
	if err := h.repository.Expenses.Create(expense); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, map[string]any{"expense": expense})
}
