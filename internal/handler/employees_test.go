package handler_test

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tempohq/tempo/backend/internal/domain"
	"github.com/tempohq/tempo/backend/internal/repository"
)

func TestCreateEmployeeRejectsInvalidRole(t *testing.T) {
	admin := adminUser()
	h, tokens := newTestHandler(t, &repository.Repository{Users: userStoreWith(admin)})

	req := httptest.NewRequest(http.MethodPost, "/api/employees", strings.NewReader(
		`{"name":"New Hire","email":"hire@example.com","role":"SUPERUSER"}`))
	req.AddCookie(sessionCookie(t, tokens, admin))
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "Invalid role" {
		t.Errorf("error = %q, want Invalid role", body["error"])
	}
}

func TestCreateEmployeeRejectsDuplicateEmail(t *testing.T) {
	admin := adminUser()
	users := userStoreWith(admin)
	users.EmailExistsFunc = func(email string) (bool, error) { return true, nil }
	h, tokens := newTestHandler(t, &repository.Repository{Users: users})

	req := httptest.NewRequest(http.MethodPost, "/api/employees", strings.NewReader(
		`{"name":"New Hire","email":"taken@example.com","role":"EMPLOYEE"}`))
	req.AddCookie(sessionCookie(t, tokens, admin))
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "Email already exists" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestUpdateEmployeeVersionConflict(t *testing.T) {
	admin := adminUser()
	target := employeeUser()
	users := userStoreWith(admin, target)
	users.EmailExistsFunc = func(email string) (bool, error) { return false, nil }
	users.UpdateFunc = func(user *domain.User) error { return sql.ErrNoRows }
	h, tokens := newTestHandler(t, &repository.Repository{Users: users})

	req := httptest.NewRequest(http.MethodPut, "/api/employees/"+target.ID, strings.NewReader(
		`{"name":"Eve Renamed","email":"eve@example.com","role":"EMPLOYEE"}`))
	req.AddCookie(sessionCookie(t, tokens, admin))
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409 on a stale version", rec.Code)
	}
}

func TestDeleteEmployee(t *testing.T) {
	admin := adminUser()
	target := employeeUser()
	users := userStoreWith(admin, target)

	var deletedID string
	users.DeleteFunc = func(id string) error {
		deletedID = id
		return nil
	}
	h, tokens := newTestHandler(t, &repository.Repository{Users: users})

	req := httptest.NewRequest(http.MethodDelete, "/api/employees/"+target.ID, nil)
	req.AddCookie(sessionCookie(t, tokens, admin))
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if deletedID != target.ID {
		t.Errorf("deleted id = %q, want %q", deletedID, target.ID)
	}
}
