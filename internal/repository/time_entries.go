package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/tempohq/tempo/backend/internal/config"
	"github.com/tempohq/tempo/backend/internal/domain"
)

type timeEntryStore struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func (s *timeEntryStore) Create(entry *domain.TimeEntry) error {
	query := `
		INSERT INTO time_entries (id, user_id, project_id, date, hours, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout(s.cfg))
	defer cancel()

	entry.ID = uuid.NewString()

	args := []any{entry.ID, entry.UserID, entry.ProjectID, entry.Date, entry.Hours, entry.Description}
	if err := s.dbpool.QueryRowContext(ctx, query, args...).Scan(&entry.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (s *timeEntryStore) GetAll() ([]*domain.TimeEntry, error) {
	query := `
		SELECT t.id, t.user_id, t.project_id, t.date, t.hours, t.description, t.created_at, u.name, p.name
		FROM time_entries t
		JOIN users u ON u.id = t.user_id
		JOIN projects p ON p.id = t.project_id
		ORDER BY t.date DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout(s.cfg))
	defer cancel()

	rows, err := s.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*domain.TimeEntry, 0)
	for rows.Next() {
		entry := &domain.TimeEntry{}
		dst := []any{&entry.ID, &entry.UserID, &entry.ProjectID, &entry.Date, &entry.Hours, &entry.Description, &entry.CreatedAt, &entry.UserName, &entry.ProjectName}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
