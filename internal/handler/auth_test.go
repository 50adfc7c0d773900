package handler_test

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tempohq/tempo/backend/internal/auth"
	"github.com/tempohq/tempo/backend/internal/domain"
	"github.com/tempohq/tempo/backend/internal/repository"
)

func TestSignIn(t *testing.T) {
	user := employeeUser()
	user.PasswordHash = testPasswordHash(t)
	h, _ := newTestHandler(t, &repository.Repository{Users: userStoreWith(user)})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signin",
		strings.NewReader(`{"email":"eve@example.com","password":"`+testPassword+`"}`))
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	cookie := responseCookie(rec, auth.CookieName)
	if cookie == nil {
		t.Fatal("no session cookie set")
	}
	if cookie.Value == "" {
		t.Error("session cookie is empty")
	}
	if !cookie.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("SameSite = %v, want Lax", cookie.SameSite)
	}
	if cookie.Secure {
		t.Error("cookie must not be Secure outside production")
	}

	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Errorf("success = %v, want true", body["success"])
	}
	if _, ok := body["user"].(map[string]any); !ok {
		t.Errorf("missing user in response: %v", body)
	}
}

func TestSignInWrongPassword(t *testing.T) {
	user := employeeUser()
	user.PasswordHash = testPasswordHash(t)
	h, _ := newTestHandler(t, &repository.Repository{Users: userStoreWith(user)})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signin",
		strings.NewReader(`{"email":"eve@example.com","password":"wrong"}`))
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "Invalid credentials" {
		t.Errorf("error = %q, want Invalid credentials", body["error"])
	}
	if responseCookie(rec, auth.CookieName) != nil {
		t.Error("no cookie must be set on failed signin")
	}
}

func TestSignInUnknownEmail(t *testing.T) {
	h, _ := newTestHandler(t, &repository.Repository{Users: userStoreWith()})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signin",
		strings.NewReader(`{"email":"nobody@example.com","password":"irrelevant"}`))
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	// Same message as a wrong password, so the two cases are indistinguishable.
	if body := decodeBody(t, rec); body["error"] != "Invalid credentials" {
		t.Errorf("error = %q, want Invalid credentials", body["error"])
	}
}

func TestSignInValidatesInput(t *testing.T) {
	h, _ := newTestHandler(t, &repository.Repository{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signin",
		strings.NewReader(`{"email":"not-an-email","password":"x"}`))
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSignUpForcesEmployeeRole(t *testing.T) {
	var created *domain.User
	users := &mockUserStore{
		EmailExistsFunc: func(email string) (bool, error) { return false, nil },
		CreateFunc: func(user *domain.User) error {
			created = user
			return nil
		},
	}
	h, _ := newTestHandler(t, &repository.Repository{Users: users})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup",
		strings.NewReader(`{"name":"New User","email":"new@example.com","password":"secret123","role":"ADMIN"}`))
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if created == nil {
		t.Fatal("user was not created")
	}
	if created.Role != domain.RoleEmployee {
		t.Errorf("role = %q, self-registration must always yield EMPLOYEE", created.Role)
	}
	if created.PasswordHash == "secret123" {
		t.Error("password stored in plaintext")
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	users := &mockUserStore{
		EmailExistsFunc: func(email string) (bool, error) { return true, nil },
	}
	h, _ := newTestHandler(t, &repository.Repository{Users: users})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup",
		strings.NewReader(`{"name":"New User","email":"taken@example.com","password":"secret123"}`))
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "User with this email already exists" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestSignOutClearsCookie(t *testing.T) {
	h, tokens := newTestHandler(t, &repository.Repository{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signout", nil)
	req.AddCookie(sessionCookie(t, tokens, employeeUser()))
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	cookie := responseCookie(rec, auth.CookieName)
	if cookie == nil {
		t.Fatal("no cookie set")
	}
	if cookie.Value != "" || cookie.MaxAge >= 0 {
		t.Errorf("cookie not cleared: value=%q maxAge=%d", cookie.Value, cookie.MaxAge)
	}
}

func TestMeCreatesDefaultSettings(t *testing.T) {
	user := employeeUser()

	var created *domain.UserSettings
	settings := &mockSettingsStore{
		GetByUserIDFunc: func(userID string) (*domain.UserSettings, error) {
			return nil, sql.ErrNoRows
		},
		CreateFunc: func(s *domain.UserSettings) error {
			created = s
			return nil
		},
	}
	h, tokens := newTestHandler(t, &repository.Repository{
		Users:    userStoreWith(user),
		Settings: settings,
	})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(sessionCookie(t, tokens, user))
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if created == nil {
		t.Fatal("default settings were not created")
	}
	if created.UserID != user.ID {
		t.Errorf("settings userID = %q, want %q", created.UserID, user.ID)
	}
	if created.Theme != "system" || created.WorkingHours != 8 {
		t.Errorf("unexpected defaults: %+v", created)
	}

	body := decodeBody(t, rec)
	me, ok := body["user"].(map[string]any)
	if !ok {
		t.Fatalf("missing user in response: %v", body)
	}
	if me["id"] != user.ID {
		t.Errorf("id = %v, want %s", me["id"], user.ID)
	}
	if _, ok := me["settings"].(map[string]any); !ok {
		t.Errorf("missing settings in response: %v", me)
	}
}

func TestMeDeletedUser(t *testing.T) {
	h, tokens := newTestHandler(t, &repository.Repository{Users: userStoreWith()})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(sessionCookie(t, tokens, employeeUser()))
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestRequireResetPasswordHidesUnknownAccounts(t *testing.T) {
	// Unknown email still reports success and never touches redis or the
	// mail queue (both are nil here, so reaching them would panic into a 500).
	h, _ := newTestHandler(t, &repository.Repository{Users: userStoreWith()})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/reset-password/require",
		strings.NewReader(`{"email":"nobody@example.com"}`))
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body := decodeBody(t, rec); body["success"] != true {
		t.Errorf("success = %v, want true", body["success"])
	}
}
