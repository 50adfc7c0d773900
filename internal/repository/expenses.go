package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/tempohq/tempo/backend/internal/config"
	"github.com/tempohq/tempo/backend/internal/domain"
)

type expenseStore struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func (s *expenseStore) Create(expense *domain.Expense) error {
	query := `
		INSERT INTO expenses (id, user_id, project_id, amount, description, date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout(s.cfg))
	defer cancel()

	expense.ID = uuid.NewString()

	args := []any{expense.ID, expense.UserID, expense.ProjectID, expense.Amount, expense.Description, expense.Date, expense.Status}
	if err := s.dbpool.QueryRowContext(ctx, query, args...).Scan(&expense.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (s *expenseStore) GetAll() ([]*domain.Expense, error) {
	query := `
		SELECT e.id, e.user_id, e.project_id, e.amount, e.description, e.date, e.status, e.created_at, u.name, p.name
		FROM expenses e
		JOIN users u ON u.id = e.user_id
		JOIN projects p ON p.id = e.project_id
		ORDER BY e.date DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout(s.cfg))
	defer cancel()

	rows, err := s.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := make([]*domain.Expense, 0)
	for rows.Next() {
		expense := &domain.Expense{}
		dst := []any{&expense.ID, &expense.UserID, &expense.ProjectID, &expense.Amount, &expense.Description, &expense.Date, &expense.Status, &expense.CreatedAt, &expense.UserName, &expense.ProjectName}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return expenses, nil
}
