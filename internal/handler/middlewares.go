package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tempohq/tempo/backend/internal/auth"
	"github.com/tempohq/tempo/backend/internal/domain"
)

// Paths reachable without a session. Matched by prefix so the API variants
// cover their sub-routes as well.
var publicPaths = []string{
	"/auth/signin",
	"/auth/signup",
	"/api/auth/signin",
	"/api/auth/signup",
	"/api/auth/reset-password",
}

const signInPath = "/auth/signin"
const landingPath = "/dashboard"

func isPublicPath(path string) bool {
	for _, p := range publicPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.StatusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &ResponseWriter{ResponseWriter: w}
		next.ServeHTTP(rw, r)
		duration := time.Since(start)
		slog.Info("request handled", "status", rw.StatusCode, "ip", r.RemoteAddr, "method", r.Method, "path", r.URL.Path, "duration", duration)
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.internalServerError(w, r, fmt.Errorf("panic: %v", err))
				// slog mangles multi-line stack traces
				fmt.Print(string(debug.Stack()))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// gate enforces the public/protected boundary for every request. API routes
// get machine-readable 401s; page routes get redirects. Verification failures
// never escape: an invalid token is treated exactly like a missing one.
func (h *Handler) gate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		public := isPublicPath(path)
		isAPI := strings.HasPrefix(path, "/api/")

		var claims *auth.Claims
		if cookie, err := r.Cookie(auth.CookieName); err == nil {
			claims, err = h.tokens.Parse(cookie.Value)
			if err != nil {
				slog.Debug("session token rejected", "path", path, "error", err)
				claims = nil
			}
		}

		if isAPI {
			// Public API endpoints stay reachable even with a live session,
			// so that re-authentication works.
			if public {
				next.ServeHTTP(w, r)
				return
			}
			if claims == nil {
				h.respondError(w, r, http.StatusUnauthorized, "Unauthorized")
				return
			}
			r.Header.Set("X-User-Id", claims.Subject)
			r.Header.Set("X-User-Role", string(claims.Role))
			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
			return
		}

		if public {
			if claims != nil {
				http.Redirect(w, r, landingPath, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		if claims == nil {
			q := url.Values{}
			q.Set("callbackUrl", path)
			http.Redirect(w, r, signInPath+"?"+q.Encode(), http.StatusFound)
			return
		}

		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

// requireRole is the handler-local guard for endpoints needing a narrower
// role set than "any authenticated user". It consumes the claims the gate
// verified (the token is not parsed a second time), resolves the subject once
// and leaves the record in the request context for the handler.
func (h *Handler) requireRole(roles ...domain.Role) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := claimsFromContext(r.Context())
			if !ok {
				h.respondError(w, r, http.StatusUnauthorized, "Unauthorized")
				return
			}

			user, err := h.repository.Users.GetByID(claims.Subject)
			if err != nil {
				switch {
				case errors.Is(err, sql.ErrNoRows):
					// The token outlived the account.
					h.respondError(w, r, http.StatusNotFound, "User not found")
				default:
					h.internalServerError(w, r, err)
				}
				return
			}

			// The persisted role wins over the token's role claim, so role
			// changes apply without waiting for token expiry.
			if !domain.IsAuthorized(user.Role, roles) {
				h.respondError(w, r, http.StatusForbidden, "Forbidden - Insufficient permissions")
				return
			}

			next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), user)))
		})
	}
}

// employee loads the {id} route parameter's user record into the context.
func (h *Handler) employee(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		user, err := h.repository.Users.GetByID(id)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.respondError(w, r, http.StatusNotFound, "Employee not found")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		next.ServeHTTP(w, r.WithContext(withEmployee(r.Context(), user)))
	})
}
