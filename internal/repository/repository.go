package repository

import (
	"database/sql"
	"time"

	"github.com/tempohq/tempo/backend/internal/config"
	"github.com/tempohq/tempo/backend/internal/domain"
)

// UserStore defines persistence access for user accounts.
type UserStore interface {
	Create(user *domain.User) error
	GetByID(id string) (*domain.User, error)
	GetByEmail(email string) (*domain.User, error)
	GetAll() ([]*domain.User, error)
	Update(user *domain.User) error
	Delete(id string) error
	EmailExists(email string) (bool, error)
}

// ProjectStore defines persistence access for projects and their members.
type ProjectStore interface {
	Create(project *domain.Project, memberIDs []string) error
	GetByID(id string) (*domain.Project, error)
	GetAll() ([]*domain.Project, error)
	GetAvailableForUser(userID string) ([]*domain.Project, error)
	IsMember(projectID, userID string) (bool, error)
	Update(project *domain.Project, memberIDs []string) error
	Delete(id string) error
}

type TimeEntryStore interface {
	Create(entry *domain.TimeEntry) error
	GetAll() ([]*domain.TimeEntry, error)
}

type ExpenseStore interface {
	Create(expense *domain.Expense) error
	GetAll() ([]*domain.Expense, error)
}

type SettingsStore interface {
	GetByUserID(userID string) (*domain.UserSettings, error)
	Create(settings *domain.UserSettings) error
	Update(settings *domain.UserSettings) error
}

type StatsStore interface {
	Summary() (*domain.DashboardSummary, error)
}

// Repository aggregates the per-entity stores. Handlers depend on the
// interface fields, which keeps them testable without a database.
type Repository struct {
	Users       UserStore
	Projects    ProjectStore
	TimeEntries TimeEntryStore
	Expenses    ExpenseStore
	Settings    SettingsStore
	Stats       StatsStore
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		Users:       &userStore{cfg: cfg, dbpool: dbpool},
		Projects:    &projectStore{cfg: cfg, dbpool: dbpool},
		TimeEntries: &timeEntryStore{cfg: cfg, dbpool: dbpool},
		Expenses:    &expenseStore{cfg: cfg, dbpool: dbpool},
		Settings:    &settingsStore{cfg: cfg, dbpool: dbpool},
		Stats:       &statsStore{cfg: cfg, dbpool: dbpool},
	}
}

func queryTimeout(cfg *config.Config) time.Duration {
	return time.Duration(cfg.Database.QueryTimeout) * time.Second
}
