package services

import (
	"context"
	"fmt"
	"time"

	"github.com/pacemaker/core/internal/domain/entities"
	"github.com/pacemaker/core/internal/infrastructure/logger"
	"github.com/pacemaker/core/internal/ports"
)

const defaultNotificationTime = "09:00"

// ProfileService handles profile setup, edits and the daily streak check
type ProfileService struct {
	profileRepo ports.ProfileRepository
	logger      *logger.Logger
	now         func() time.Time
}

// NewProfileService creates a new profile service
func NewProfileService(profileRepo ports.ProfileRepository, logger *logger.Logger) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// SetupProfile creates the profile from the setup questionnaire. Personality
// type and pacing multiplier are derived here once and never recomputed.
func (s *ProfileService) SetupProfile(ctx context.Context, userID, email string, req ports.SetupProfileRequest) (*entities.UserProfile, error) {
	personality, multiplier := derivePersonality(req.HomeworkStyle)

	notifyTime := req.NotificationTime
	if notifyTime == "" {
		notifyTime = defaultNotificationTime
	}

	now := s.now()
	profile := &entities.UserProfile{
		UserID:           userID,
		Email:            email,
		Name:             req.Name,
		PersonalityType:  personality,
		PacingMultiplier: multiplier,
		Notifications: entities.NotificationPrefs{
			Enabled: req.NotificationMethod != entities.NotifyNone,
			Method:  req.NotificationMethod,
			Time:    notifyTime,
		},
		Streak:        1,
		LastLoginDate: now.Format(entities.DateOnly),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	s.logger.Infow("Profile created",
		"user_id", userID,
		"personality", personality,
		"pacing_multiplier", multiplier,
	)

	return profile, nil
}

// GetProfile loads a user profile.
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*entities.UserProfile, error) {
	profile, err := s.profileRepo.Load(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	return profile, nil
}

// UpdateProfile applies partial edits to the profile. Personality fields are
// not editable.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, req ports.UpdateProfileRequest) (*entities.UserProfile, error) {
	profile, err := s.profileRepo.Load(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.NotificationMethod != nil {
		profile.Notifications.Method = *req.NotificationMethod
		profile.Notifications.Enabled = *req.NotificationMethod != entities.NotifyNone
	}
	if req.NotificationTime != nil {
		profile.Notifications.Time = *req.NotificationTime
	}
	profile.UpdatedAt = s.now()

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	return profile, nil
}

// TrackLogin runs the daily streak check. It is a no-op when the profile has
// already been seen today, so reloading a session never counts twice.
func (s *ProfileService) TrackLogin(ctx context.Context, userID string, today time.Time) (*entities.UserProfile, error) {
	profile, err := s.profileRepo.Load(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	todayStr := today.Format(entities.DateOnly)
	if profile.LastLoginDate == todayStr {
		return profile, nil
	}

	diff := calendarDaysBetween(profile.LastLoginDate, today)
	switch {
	case diff == 1:
		profile.Streak++
	case diff > 1:
		profile.Streak = 1
	default:
		// Same day or missing last-login record; only floor an unset
		// streak.
		if profile.Streak == 0 {
			profile.Streak = 1
		}
	}
	profile.LastLoginDate = todayStr

	if err := s.profileRepo.UpdateStreak(ctx, userID, profile.Streak, profile.LastLoginDate); err != nil {
		return nil, fmt.Errorf("failed to update streak: %w", err)
	}

	s.logger.Infow("Streak updated",
		"user_id", userID,
		"streak", profile.Streak,
		"last_login_date", profile.LastLoginDate,
	)

	return profile, nil
}

// derivePersonality maps the setup questionnaire answer to a personality
// type and pacing multiplier (>1 back-loads effort, <1 front-loads).
func derivePersonality(homeworkStyle string) (entities.PersonalityType, float64) {
	switch homeworkStyle {
	case "last_minute":
		return entities.PersonalityProcrastinator, 1.5
	case "front_load":
		return entities.PersonalitySprinter, 0.8
	default:
		return entities.PersonalitySteady, 1.0
	}
}

// calendarDaysBetween returns the whole-day difference between the stored
// last-login date and today. A missing or malformed stored date counts as
// today, yielding zero.
func calendarDaysBetween(lastLoginDate string, today time.Time) int {
	last, err := time.Parse(entities.DateOnly, lastLoginDate)
	if err != nil {
		return 0
	}
	todayMidnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return int(todayMidnight.Sub(last).Hours() / 24)
}
