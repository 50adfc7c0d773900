package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/tempohq/tempo/backend/internal/config"
	"github.com/tempohq/tempo/backend/internal/domain"
)

type settingsStore struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func (s *settingsStore) GetByUserID(userID string) (*domain.UserSettings, error) {
	query := `
		SELECT id, theme, language, email_notifications, push_notifications, weekly_digest,
			default_project_id, working_hours, time_zone, date_format, time_format, created_at, updated_at
		FROM user_settings WHERE user_id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout(s.cfg))
	defer cancel()

	settings := &domain.UserSettings{
		UserID: userID,
	}

	dst := []any{
		&settings.ID, &settings.Theme, &settings.Language, &settings.EmailNotifications,
		&settings.PushNotifications, &settings.WeeklyDigest, &settings.DefaultProjectID,
		&settings.WorkingHours, &settings.TimeZone, &settings.DateFormat, &settings.TimeFormat,
		&settings.CreatedAt, &settings.UpdatedAt,
	}
	if err := s.dbpool.QueryRowContext(ctx, query, userID).Scan(dst...); err != nil {
		return nil, err
	}

	return settings, nil
}

func (s *settingsStore) Create(settings *domain.UserSettings) error {
	query := `
		INSERT INTO user_settings (id, user_id, theme, language, email_notifications, push_notifications,
			weekly_digest, default_project_id, working_hours, time_zone, date_format, time_format)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout(s.cfg))
	defer cancel()

	settings.ID = uuid.NewString()

	args := []any{
		settings.ID, settings.UserID, settings.Theme, settings.Language, settings.EmailNotifications,
		settings.PushNotifications, settings.WeeklyDigest, settings.DefaultProjectID,
		settings.WorkingHours, settings.TimeZone, settings.DateFormat, settings.TimeFormat,
	}
	if err := s.dbpool.QueryRowContext(ctx, query, args...).Scan(&settings.CreatedAt, &settings.UpdatedAt); err != nil {
		return err
	}

	return nil
}

func (s *settingsStore) Update(settings *domain.UserSettings) error {
	query := `
		UPDATE user_settings
		SET
			theme = $1,
			language = $2,
			email_notifications = $3,
			push_notifications = $4,
			weekly_digest = $5,
			default_project_id = $6,
			working_hours = $7,
			time_zone = $8,
			date_format = $9,
			time_format = $10,
			updated_at = now()
		WHERE user_id = $11
		RETURNING id, created_at, updated_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout(s.cfg))
	defer cancel()

	args := []any{
		settings.Theme, settings.Language, settings.EmailNotifications, settings.PushNotifications,
		settings.WeeklyDigest, settings.DefaultProjectID, settings.WorkingHours, settings.TimeZone,
		settings.DateFormat, settings.TimeFormat, settings.UserID,
	}
	if err := s.dbpool.QueryRowContext(ctx, query, args...).Scan(&settings.ID, &settings.CreatedAt, &settings.UpdatedAt); err != nil {
		return err
	}

	return nil
}
