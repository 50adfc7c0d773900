package repository

import (
	"context"
	"database/sql"

	"github.com/tempohq/tempo/backend/internal/config"
	"github.com/tempohq/tempo/backend/internal/domain"
)

type statsStore struct {
	cfg    *config.Config
	dbpool *sql.DB
}

// Summary computes the dashboard aggregates in one round trip.
func (s *statsStore) Summary() (*domain.DashboardSummary, error) {
	query := `
		SELECT
			(SELECT count(*) FROM users),
			(SELECT count(*) FROM projects),
			(SELECT count(*) FROM projects WHERE status = 'ACTIVE'),
			(SELECT coalesce(sum(hours), 0) FROM time_entries WHERE date >= date_trunc('month', now())),
			(SELECT coalesce(sum(amount), 0) FROM expenses WHERE status = 'PENDING')
	`

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout(s.cfg))
	defer cancel()

	summary := &domain.DashboardSummary{}
	dst := []any{&summary.Employees, &summary.Projects, &summary.ActiveProjects, &summary.HoursThisMonth, &summary.PendingExpenses}
	if err := s.dbpool.QueryRowContext(ctx, query).Scan(dst...); err != nil {
		return nil, err
	}

	return summary, nil
}
