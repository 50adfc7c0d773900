package seed

import (
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tempohq/tempo/backend/internal/domain"
	"github.com/tempohq/tempo/backend/internal/repository"
)

// SeedDemoData inserts a small, fixed dataset useful for demos and manual
// testing: two named accounts, two projects with members, and a handful of
// time entries and expenses. All accounts share the given password.
func SeedDemoData(r *repository.Repository, password string) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("failed to hash seed password", "error", err)
		return
	}

	manager := &domain.User{
		Name:         "John Doe",
		Email:        "john@example.com",
		PasswordHash: string(passwordHash),
		Role:         domain.RoleManager,
	}
	employee := &domain.User{
		Name:         "Jane Smith",
		Email:        "jane@example.com",
		PasswordHash: string(passwordHash),
		Role:         domain.RoleEmployee,
	}
	for _, user := range []*domain.User{manager, employee} {
		if err := r.Users.Create(user); err != nil {
			slog.Error("failed to insert seed user", "email", user.Email, "error", err)
			return
		}
	}

	now := time.Now()
	redesignEnd := now.AddDate(0, 2, 0)

	redesign := &domain.Project{
		Name:        "Website Redesign",
		Description: "Complete overhaul of the company website",
		Status:      domain.ProjectStatusActive,
		StartDate:   now.AddDate(0, -1, 0),
		EndDate:     &redesignEnd,
	}
	mobileApp := &domain.Project{
		Name:        "Mobile App Development",
		Description: "New mobile application for customers",
		Status:      domain.ProjectStatusPlanning,
		StartDate:   now.AddDate(0, 0, 14),
	}

	if err := r.Projects.Create(redesign, []string{manager.ID, employee.ID}); err != nil {
		slog.Error("failed to insert seed project", "name", redesign.Name, "error", err)
		return
	}
	if err := r.Projects.Create(mobileApp, []string{employee.ID}); err != nil {
		slog.Error("failed to insert seed project", "name", mobileApp.Name, "error", err)
		return
	}

	entries := []*domain.TimeEntry{
		{
			UserID:      employee.ID,
			ProjectID:   redesign.ID,
			Date:        now.AddDate(0, 0, -2),
			Hours:       8,
			Description: "Homepage layout implementation",
		},
		{
			UserID:      manager.ID,
			ProjectID:   redesign.ID,
			Date:        now.AddDate(0, 0, -1),
			Hours:       4,
			Description: "Design review and planning",
		},
	}
	for _, entry := range entries {
		if err := r.TimeEntries.Create(entry); err != nil {
			slog.Error("failed to insert seed time entry", "error", err)
			return
		}
	}

	expenses := []*domain.Expense{
		{
			UserID:      employee.ID,
			ProjectID:   redesign.ID,
			Amount:      49.99,
			Description: "Stock photography license",
			Date:        now.AddDate(0, 0, -3),
			Status:      domain.ExpenseStatusApproved,
		},
		{
			UserID:      manager.ID,
			ProjectID:   redesign.ID,
			Amount:      120.00,
			Description: "Client lunch meeting",
			Date:        now.AddDate(0, 0, -1),
			Status:      domain.ExpenseStatusPending,
		},
	}
	for _, expense := range expenses {
		if err := r.Expenses.Create(expense); err != nil {
			slog.Error("failed to insert seed expense", "error", err)
			return
		}
	}

	slog.Info("demo data inserted",
		slog.Int("users", 2),
		slog.Int("projects", 2),
		slog.Int("timeEntries", len(entries)),
		slog.Int("expenses", len(expenses)),
	)
}
