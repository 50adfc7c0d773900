package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/tempohq/tempo/backend/internal/auth"
	"github.com/tempohq/tempo/backend/internal/domain"
)

// sessionUser resolves the request's cookie to a persisted user record.
// Anonymous access is a valid outcome, not an error: a missing cookie, an
// invalid or expired token, and a deleted account all yield (nil, nil).
func (h *Handler) sessionUser(r *http.Request) (*domain.User, error) {
	cookie, err := r.Cookie(auth.CookieName)
	if err != nil {
		return nil, nil
	}

	claims, err := h.tokens.Parse(cookie.Value)
	if err != nil {
		slog.Debug("session token rejected", "path", r.URL.Path, "error", err)
		return nil, nil
	}

	user, err := h.repository.Users.GetByID(claims.Subject)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return user, nil
}

// sessionCookie builds the cookie carrying a freshly issued token. Its
// max-age (7 days) deliberately exceeds the token lifetime (1 day); once the
// token expires the cookie still arrives but verification fails and the
// session degrades to unauthenticated.
func (h *Handler) sessionCookie(token string) *http.Cookie {
	cookie := &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   h.config.Auth.CookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	if h.config.Environment == "production" {
		cookie.Secure = true
	}

	return cookie
}

func (h *Handler) expiredSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:    auth.CookieName,
		Value:   "",
		Path:    "/",
		MaxAge:  -1,
		Expires: time.Now().Add(-time.Hour),
	}
}
