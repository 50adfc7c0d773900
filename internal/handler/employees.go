package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tempohq/tempo/backend/internal/auth"
	"github.com/tempohq/tempo/backend/internal/domain"
	"github.com/tempohq/tempo/backend/internal/utils"
)

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.repository.Users.GetAll()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{"employees": employees})
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	employee := employeeFromContext(r.Context())
	h.writeJSON(w, r, http.StatusOK, map[string]any{"employee": employee})
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string      `json:"name" validate:"required,min=2"`
		Email    string      `json:"email" validate:"required,email"`
		Role     domain.Role `json:"role" validate:"required"`
		Password string      `json:"password" validate:"omitempty,min=6"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if !req.Role.Valid() {
		h.respondError(w, r, http.StatusBadRequest, "Invalid role")
		return
	}

	exists, err := h.repository.Users.EmailExists(req.Email)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if exists {
		h.respondError(w, r, http.StatusBadRequest, "Email already exists")
		return
	}

	// Without an explicit password the account gets a generated one, which is
	// only ever disclosed through the welcome email.
	password := req.Password
	if password == "" {
		password = utils.GenerateRandomPassword(h.config.NewUser.PasswordLength)
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	employee := &domain.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         req.Role,
	}
	if err := h.repository.Users.Create(employee); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// The account exists at this point; a queue failure must not undo it.
	if err := h.publishMail(domain.MailMessage{
		Type: "welcome",
		To:   employee.Email,
		Data: domain.WelcomeMailData{
			Name:     employee.Name,
			Email:    employee.Email,
			Password: password,
		},
	}); err != nil {
		slog.Error("failed to queue welcome email", "email", employee.Email, "error", err)
	}

	h.writeJSON(w, r, http.StatusCreated, map[string]any{"employee": employee})
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	employee := employeeFromContext(r.Context())

	var req struct {
		Name     string      `json:"name" validate:"required,min=2"`
		Email    string      `json:"email" validate:"required,email"`
		Role     domain.Role `json:"role" validate:"required"`
		Password string      `json:"password" validate:"omitempty,min=6"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if !req.Role.Valid() {
		h.respondError(w, r, http.StatusBadRequest, "Invalid role")
		return
	}

	if req.Email != employee.Email {
		exists, err := h.repository.Users.EmailExists(req.Email)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		if exists {
			h.respondError(w, r, http.StatusBadRequest, "Email already exists")
			return
		}
	}

	employee.Name = req.Name
	employee.Email = req.Email
	employee.Role = req.Role

	if req.Password != "" {
		passwordHash, err := auth.HashPassword(req.Password)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		employee.PasswordHash = passwordHash
	}

	if err := h.repository.Users.Update(employee); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "users_email_key":
			h.respondError(w, r, http.StatusBadRequest, "Email already exists")
		case errors.Is(err, sql.ErrNoRows):
			// Stale version, the record changed under us.
			h.respondError(w, r, http.StatusConflict, "Employee was modified concurrently, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{"employee": employee})
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	employee := employeeFromContext(r.Context())

	if err := h.repository.Users.Delete(employee.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{"success": true})
}
