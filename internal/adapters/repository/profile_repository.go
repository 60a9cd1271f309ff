package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pacemaker/core/internal/domain/entities"
	"github.com/pacemaker/core/internal/infrastructure/database"
	"github.com/pacemaker/core/internal/ports"
)

// ProfileRepositoryImpl implements the ProfileRepository interface
type ProfileRepositoryImpl struct {
	db *database.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *database.DB) ports.ProfileRepository {
	return &ProfileRepositoryImpl{db: db}
}

func (r *ProfileRepositoryImpl) Load(ctx context.Context, userID string) (*entities.UserProfile, error) {
	query := `
		SELECT user_id, email, name, personality_type, pacing_multiplier,
			notifications_enabled, notification_method, notification_time,
			streak, last_login_date, created_at, updated_at
		FROM profiles
		WHERE user_id = $1`

	var row profileRow
	err := r.db.DB.GetContext(ctx, &row, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrProfileNotFound
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}

	return row.toEntity(), nil
}

func (r *ProfileRepositoryImpl) Save(ctx context.Context, profile *entities.UserProfile) error {
	query := `
		INSERT INTO profiles (user_id, email, name, personality_type, pacing_multiplier,
			notifications_enabled, notification_method, notification_time,
			streak, last_login_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (user_id) DO UPDATE SET
			email = EXCLUDED.email,
			name = EXCLUDED.name,
			notifications_enabled = EXCLUDED.notifications_enabled,
			notification_method = EXCLUDED.notification_method,
			notification_time = EXCLUDED.notification_time,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.DB.ExecContext(ctx, query,
		profile.UserID, profile.Email, profile.Name,
		profile.PersonalityType, profile.PacingMultiplier,
		profile.Notifications.Enabled, profile.Notifications.Method, profile.Notifications.Time,
		profile.Streak, profile.LastLoginDate,
		profile.CreatedAt, profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}

	return nil
}

func (r *ProfileRepositoryImpl) UpdateStreak(ctx context.Context, userID string, streak int, lastLoginDate string) error {
	query := `
		UPDATE profiles
		SET streak = $2, last_login_date = $3, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $1`

	result, err := r.db.DB.ExecContext(ctx, query, userID, streak, lastLoginDate)
	if err != nil {
		return fmt.Errorf("update streak: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entities.ErrProfileNotFound
	}

	return nil
}

// profileRow flattens the nested notification preferences for sqlx scanning.
type profileRow struct {
	UserID               string                      `db:"user_id"`
	Email                string                      `db:"email"`
	Name                 string                      `db:"name"`
	PersonalityType      entities.PersonalityType    `db:"personality_type"`
	PacingMultiplier     float64                     `db:"pacing_multiplier"`
	NotificationsEnabled bool                        `db:"notifications_enabled"`
	NotificationMethod   entities.NotificationMethod `db:"notification_method"`
	NotificationTime     string                      `db:"notification_time"`
	Streak               int                         `db:"streak"`
	LastLoginDate        string                      `db:"last_login_date"`
	CreatedAt            time.Time                   `db:"created_at"`
	UpdatedAt            time.Time                   `db:"updated_at"`
}

func (row *profileRow) toEntity() *entities.UserProfile {
	return &entities.UserProfile{
		UserID:           row.UserID,
		Email:            row.Email,
		Name:             row.Name,
		PersonalityType:  row.PersonalityType,
		PacingMultiplier: row.PacingMultiplier,
		Notifications: entities.NotificationPrefs{
			Enabled: row.NotificationsEnabled,
			Method:  row.NotificationMethod,
			Time:    row.NotificationTime,
		},
		Streak:        row.Streak,
		LastLoginDate: row.LastLoginDate,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}
