package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tempohq/tempo/backend/internal/auth"
	"github.com/tempohq/tempo/backend/internal/domain"
	"github.com/tempohq/tempo/backend/internal/utils"
)

func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// The same response for an unknown email and a wrong password, to avoid
	// leaking which accounts exist.
	user, err := h.repository.Users.GetByEmail(req.Email)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.respondError(w, r, http.StatusUnauthorized, "Invalid credentials")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := auth.ComparePassword(user.PasswordHash, req.Password); err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			h.respondError(w, r, http.StatusUnauthorized, "Invalid credentials")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	token, _, err := h.tokens.Issue(user)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	http.SetCookie(w, h.sessionCookie(token))

	h.writeJSON(w, r, http.StatusOK, map[string]any{
		"success": true,
		"user":    user,
	})
}

func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name" validate:"required,min=2"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	exists, err := h.repository.Users.EmailExists(req.Email)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if exists {
		h.respondError(w, r, http.StatusBadRequest, "User with this email already exists")
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// Self-registration always lands on the lowest privilege level.
	user := &domain.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         domain.RoleEmployee,
	}
	if err := h.repository.Users.Create(user); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{"user": user})
}

func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.expiredSessionCookie())

	h.writeJSON(w, r, http.StatusOK, map[string]any{"success": true})
}

// Me returns the authenticated user together with their settings, creating
// the default settings record on first access.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		h.respondError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.repository.Users.GetByID(claims.Subject)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.respondError(w, r, http.StatusNotFound, "User not found")
		default:
			h.internalServerError(w, r, err)
		}
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

	h.writeJSON(w, r, http.StatusOK, map[string]any{
		"user": struct {
			*domain.User
			Settings *domain.UserSettings `json:"settings"`
		}{user, settings},
	})
}

func (h *Handler) RequireResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email" validate:"required,email"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	const sentMessage = "If the account exists, a reset code has been sent by email"

	user, err := h.repository.Users.GetByEmail(req.Email)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// Claim success for unknown accounts too, to prevent enumeration.
			h.writeJSON(w, r, http.StatusOK, map[string]any{"success": true, "message": sentMessage})
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	otp := utils.GenerateRandomOTP()

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	key := fmt.Sprintf("otp_reset_password_%s", user.Email)
	if err := h.redisClient.Set(ctx, key, otp, time.Duration(h.config.OTP.Expiration)*time.Second).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.publishMail(domain.MailMessage{
		Type: "reset_password",
		To:   user.Email,
		Data: domain.ResetPasswordMailData{
			Name:       user.Name,
			OTP:        otp,
			Expiration: h.config.OTP.Expiration / 60, // minutes in the mail body
		},
	}); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{"success": true, "message": sentMessage})
}

func (h *Handler) ConfirmResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		OTP      string `json:"otp" validate:"required"`
		Password string `json:"password" validate:"required,min=6"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	key := fmt.Sprintf("otp_reset_password_%s", req.Email)
	otp, err := h.redisClient.Get(ctx, key).Result()
	if err != nil || otp != req.OTP {
		h.respondError(w, r, http.StatusBadRequest, "Invalid or expired code")
		return
	}

	user, err := h.repository.Users.GetByEmail(req.Email)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	user.PasswordHash = passwordHash
	if err := h.repository.Users.Update(user); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.redisClient.Del(ctx, key).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{"success": true})
}
