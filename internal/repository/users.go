package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/tempohq/tempo/backend/internal/config"
	"github.com/tempohq/tempo/backend/internal/domain"
)

type userStore struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func (s *userStore) Create(user *domain.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout(s.cfg))
	defer cancel()

	user.ID = uuid.NewString()

	args := []any{user.ID, user.Name, user.Email, user.PasswordHash, user.Role}
	if err := s.dbpool.QueryRowContext(ctx, query, args...).Scan(&user.CreatedAt, &user.UpdatedAt, &user.Version); err != nil {
		return err
	}

	return nil
}

func (s *userStore) GetByID(id string) (*domain.User, error) {
	query := `
		SELECT name, email, password_hash, role, created_at, updated_at, version
		FROM users WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout(s.cfg))
	defer cancel()

	user := &domain.User{
		ID: id,
	}

	dst := []any{&user.Name, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt, &user.UpdatedAt, &user.Version}
	if err := s.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userStore) GetByEmail(email string) (*domain.User, error) {
	query := `
		SELECT id, name, password_hash, role, created_at, updated_at, version
		FROM users WHERE email = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout(s.cfg))
	defer cancel()

	user := &domain.User{
		Email: email,
	}

	dst := []any{&user.ID, &user.Name, &user.PasswordHash, &user.Role, &user.CreatedAt, &user.UpdatedAt, &user.Version}
	if err := s.dbpool.QueryRowContext(ctx, query, email).Scan(dst...); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userStore) GetAll() ([]*domain.User, error) {
	query := `
		SELECT id, name, email, password_hash, role, created_at, updated_at, version
		FROM users ORDER BY name ASC
	`

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout(s.cfg))
	defer cancel()

	rows, err := s.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user := &domain.User{}
		dst := []any{&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt, &user.UpdatedAt, &user.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (s *userStore) Update(user *domain.User) error {
	query := `
		UPDATE users
		SET
			name = $1,
			email = $2,
			password_hash = $3,
			role = $4,
			updated_at = now(),
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING created_at, updated_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout(s.cfg))
	defer cancel()

	args := []any{user.Name, user.Email, user.PasswordHash, user.Role, user.ID, user.Version}
	if err := s.dbpool.QueryRowContext(ctx, query, args...).Scan(&user.CreatedAt, &user.UpdatedAt, &user.Version); err != nil {
		return err
	}

	return nil
}

func (s *userStore) Delete(id string) error {
	query := `
		DELETE FROM users WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout(s.cfg))
	defer cancel()

	if _, err := s.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

func (s *userStore) EmailExists(email string) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)
	`

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout(s.cfg))
	defer cancel()

	exists := false
	if err := s.dbpool.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}
