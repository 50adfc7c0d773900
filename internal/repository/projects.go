package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/tempohq/tempo/backend/internal/config"
	"github.com/tempohq/tempo/backend/internal/domain"
)

type projectStore struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func (s *projectStore) Create(project *domain.Project, memberIDs []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout(s.cfg))
	defer cancel()

	tx, err := s.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	project.ID = uuid.NewString()

	query := `
		INSERT INTO projects (id, name, description, status, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	args := []any{project.ID, project.Name, project.Description, project.Status, project.StartDate, project.EndDate}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&project.CreatedAt, &project.UpdatedAt); err != nil {
		return err
	}

	if err := replaceMembers(ctx, tx, project.ID, memberIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return s.loadMembers(ctx, project)
}

func (s *projectStore) Update(project *domain.Project, memberIDs []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout(s.cfg))
	defer cancel()

	tx, err := s.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		UPDATE projects
		SET
			name = $1,
			description = $2,
			status = $3,
			start_date = $4,
			end_date = $5,
			updated_at = now()
		WHERE id = $6
		RETURNING created_at, updated_at
	`

	args := []any{project.Name, project.Description, project.Status, project.StartDate, project.EndDate, project.ID}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&project.CreatedAt, &project.UpdatedAt); err != nil {
		return err
	}

	if err := replaceMembers(ctx, tx, project.ID, memberIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return s.loadMembers(ctx, project)
}

func replaceMembers(ctx context.Context, tx *sql.Tx, projectID string, memberIDs []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM project_members WHERE project_id = $1`, projectID); err != nil {
		return err
	}

	for _, userID := range memberIDs {
		query := `
			INSERT INTO project_members (project_id, user_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`
		if _, err := tx.ExecContext(ctx, query, projectID, userID); err != nil {
			return err
		}
	}

	return nil
}

func (s *projectStore) GetByID(id string) (*domain.Project, error) {
	query := `
		SELECT name, description, status, start_date, end_date, created_at, updated_at
		FROM projects WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout(s.cfg))
	defer cancel()

	project := &domain.Project{
		ID: id,
	}

	dst := []any{&project.Name, &project.Description, &project.Status, &project.StartDate, &project.EndDate, &project.CreatedAt, &project.UpdatedAt}
	if err := s.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	if err := s.loadMembers(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}

func (s *projectStore) GetAll() ([]*domain.Project, error) {
	query := `
		SELECT id, name, description, status, start_date, end_date, created_at, updated_at
		FROM projects ORDER BY start_date DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout(s.cfg))
	defer cancel()

	return s.queryProjects(ctx, query)
}

// GetAvailableForUser returns projects the user belongs to.
func (s *projectStore) GetAvailableForUser(userID string) ([]*domain.Project, error) {
	query := `
		SELECT p.id, p.name, p.description, p.status, p.start_date, p.end_date, p.created_at, p.updated_at
		FROM projects p
		JOIN project_members pm ON pm.project_id = p.id
		WHERE pm.user_id = $1
		ORDER BY p.start_date DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout(s.cfg))
	defer cancel()

	return s.queryProjects(ctx, query, userID)
}

func (s *projectStore) IsMember(projectID, userID string) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM project_members WHERE project_id = $1 AND user_id = $2)
	`

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout(s.cfg))
	defer cancel()

	isMember := false
	if err := s.dbpool.QueryRowContext(ctx, query, projectID, userID).Scan(&isMember); err != nil {
		return false, err
	}

	return isMember, nil
}

func (s *projectStore) Delete(id string) error {
	query := `
		DELETE FROM projects WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout(s.cfg))
	defer cancel()

	if _, err := s.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

func (s *projectStore) queryProjects(ctx context.Context, query string, args ...any) ([]*domain.Project, error) {
	rows, err := s.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := make([]*domain.Project, 0)
	for rows.Next() {
		project := &domain.Project{}
		dst := []any{&project.ID, &project.Name, &project.Description, &project.Status, &project.StartDate, &project.EndDate, &project.CreatedAt, &project.UpdatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, project := range projects {
		if err := s.loadMembers(ctx, project); err != nil {
			return nil, err
		}
	}

	return projects, nil
}

func (s *projectStore) loadMembers(ctx context.Context, project *domain.Project) error {
	query := `
		SELECT u.id, u.name, u.role
		FROM users u
		JOIN project_members pm ON pm.user_id = u.id
		WHERE pm.project_id = $1
		ORDER BY u.name ASC
	`

	rows, err := s.dbpool.QueryContext(ctx, query, project.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	project.Members = make([]domain.ProjectMember, 0)
	for rows.Next() {
		member := domain.ProjectMember{}
		if err := rows.Scan(&member.ID, &member.Name, &member.Role); err != nil {
			return err
		}
		project.Members = append(project.Members, member)
	}

	return rows.Err()
}
