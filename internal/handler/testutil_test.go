package handler_test

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tempohq/tempo/backend/internal/auth"
	"github.com/tempohq/tempo/backend/internal/config"
	"github.com/tempohq/tempo/backend/internal/domain"
	"github.com/tempohq/tempo/backend/internal/handler"
	"github.com/tempohq/tempo/backend/internal/repository"
)

const (
	testSecret   = "0123456789abcdef0123456789abcdef"
	testPassword = "password123"
)

func adminUser() *domain.User {
	return &domain.User{ID: "admin-1", Name: "Alice Admin", Email: "alice@example.com", Role: domain.RoleAdmin}
}

func managerUser() *domain.User {
	return &domain.User{ID: "manager-1", Name: "Mark Manager", Email: "mark@example.com", Role: domain.RoleManager}
}

func employeeUser() *domain.User {
	return &domain.User{ID: "employee-1", Name: "Eve Employee", Email: "eve@example.com", Role: domain.RoleEmployee}
}

var (
	hashOnce     sync.Once
	passwordHash string
)

// testPasswordHash hashes testPassword once per test binary; bcrypt at the
// production cost is too slow to redo per test.
func testPasswordHash(t *testing.T) string {
	t.Helper()
	hashOnce.Do(func() {
		hash, err := auth.HashPassword(testPassword)
		if err != nil {
			t.Fatalf("HashPassword: %v", err)
		}
		passwordHash = hash
	})
	return passwordHash
}

func newTestHandler(t *testing.T, repo *repository.Repository) (*handler.Handler, *auth.TokenManager) {
	t.Helper()

	cfg := &config.Config{Environment: "development"}
	cfg.Auth.Secret = testSecret
	cfg.Auth.TokenExpiration = 3600
	cfg.Auth.CookieMaxAge = 604800
	cfg.NewUser.PasswordLength = 12

	tokens := auth.NewTokenManager(testSecret, cfg.Auth.TokenExpiration)

	h, err := handler.NewHandler(cfg, repo, tokens, nil, nil)
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	h.RegisterRoutes()

	return h, tokens
}

func sessionCookie(t *testing.T, tokens *auth.TokenManager, user *domain.User) *http.Cookie {
	t.Helper()

	token, _, err := tokens.Issue(user)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return &http.Cookie{Name: auth.CookieName, Value: token}
}

// expiredSessionCookie signs a token that is already past its expiry.
func expiredSessionCookie(t *testing.T, user *domain.User) *http.Cookie {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	ss, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return &http.Cookie{Name: auth.CookieName, Value: ss}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	body := map[string]any{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return body
}

func responseCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

type mockUserStore struct {
	CreateFunc      func(user *domain.User) error
	GetByIDFunc     func(id string) (*domain.User, error)
	GetByEmailFunc  func(email string) (*domain.User, error)
	GetAllFunc      func() ([]*domain.User, error)
	UpdateFunc      func(user *domain.User) error
	DeleteFunc      func(id string) error
	EmailExistsFunc func(email string) (bool, error)
}

func (m *mockUserStore) Create(user *domain.User) error                 { return m.CreateFunc(user) }
func (m *mockUserStore) GetByID(id string) (*domain.User, error)        { return m.GetByIDFunc(id) }
func (m *mockUserStore) GetByEmail(email string) (*domain.User, error)  { return m.GetByEmailFunc(email) }
func (m *mockUserStore) GetAll() ([]*domain.User, error)                { return m.GetAllFunc() }
func (m *mockUserStore) Update(user *domain.User) error                 { return m.UpdateFunc(user) }
func (m *mockUserStore) Delete(id string) error                         { return m.DeleteFunc(id) }
func (m *mockUserStore) EmailExists(email string) (bool, error)         { return m.EmailExistsFunc(email) }

// userStoreWith returns a store resolving exactly the given users by id and
// email, and sql.ErrNoRows for everything else.
func userStoreWith(users ...*domain.User) *mockUserStore {
	return &mockUserStore{
		GetByIDFunc: func(id string) (*domain.User, error) {
			for _, u := range users {
				if u.ID == id {
					copied := *u
					return &copied, nil
				}
			}
			return nil, sql.ErrNoRows
		},
		GetByEmailFunc: func(email string) (*domain.User, error) {
			for _, u := range users {
				if u.Email == email {
					copied := *u
					return &copied, nil
				}
			}
			return nil, sql.ErrNoRows
		},
	}
}

type mockProjectStore struct {
	CreateFunc              func(project *domain.Project, memberIDs []string) error
	GetByIDFunc             func(id string) (*domain.Project, error)
	GetAllFunc              func() ([]*domain.Project, error)
	GetAvailableForUserFunc func(userID string) ([]*domain.Project, error)
	IsMemberFunc            func(projectID, userID string) (bool, error)
	UpdateFunc              func(project *domain.Project, memberIDs []string) error
	DeleteFunc              func(id string) error
}

func (m *mockProjectStore) Create(project *domain.Project, memberIDs []string) error {
	return m.CreateFunc(project, memberIDs)
}
func (m *mockProjectStore) GetByID(id string) (*domain.Project, error) { return m.GetByIDFunc(id) }
func (m *mockProjectStore) GetAll() ([]*domain.Project, error)         { return m.GetAllFunc() }
func (m *mockProjectStore) GetAvailableForUser(userID string) ([]*domain.Project, error) {
	return m.GetAvailableForUserFunc(userID)
}
func (m *mockProjectStore) IsMember(projectID, userID string) (bool, error) {
	return m.IsMemberFunc(projectID, userID)
}
func (m *mockProjectStore) Update(project *domain.Project, memberIDs []string) error {
	return m.UpdateFunc(project, memberIDs)
}
func (m *mockProjectStore) Delete(id string) error { return m.DeleteFunc(id) }

type mockTimeEntryStore struct {
	CreateFunc func(entry *domain.TimeEntry) error
	GetAllFunc func() ([]*domain.TimeEntry, error)
}

func (m *mockTimeEntryStore) Create(entry *domain.TimeEntry) error { return m.CreateFunc(entry) }
func (m *mockTimeEntryStore) GetAll() ([]*domain.TimeEntry, error) { return m.GetAllFunc() }

type mockExpenseStore struct {
	CreateFunc func(expense *domain.Expense) error
	GetAllFunc func() ([]*domain.Expense, error)
}

func (m *mockExpenseStore) Create(expense *domain.Expense) error { return m.CreateFunc(expense) }
func (m *mockExpenseStore) GetAll() ([]*domain.Expense, error)   { return m.GetAllFunc() }

type mockSettingsStore struct {
	GetByUserIDFunc func(userID string) (*domain.UserSettings, error)
	CreateFunc      func(settings *domain.UserSettings) error
	UpdateFunc      func(settings *domain.UserSettings) error
}

func (m *mockSettingsStore) GetByUserID(userID string) (*domain.UserSettings, error) {
	return m.GetByUserIDFunc(userID)
}
func (m *mockSettingsStore) Create(settings *domain.UserSettings) error {
	return m.CreateFunc(settings)
}
func (m *mockSettingsStore) Update(settings *domain.UserSettings) error {
	return m.UpdateFunc(settings)
}

type mockStatsStore struct {
	SummaryFunc func() (*domain.DashboardSummary, error)
}

func (m *mockStatsStore) Summary() (*domain.DashboardSummary, error) { return m.SummaryFunc() }
