package services

import (
	"context"
	"fmt"

	"github.com/pacemaker/core/internal/infrastructure/logger"
	"github.com/pacemaker/core/internal/ports"
)

// NotificationService sends progress update emails through the mailer port
type NotificationService struct {
	goalRepo    ports.GoalRepository
	profileRepo ports.ProfileRepository
	mailer      ports.Mailer
	logger      *logger.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(goalRepo ports.GoalRepository, profileRepo ports.ProfileRepository, mailer ports.Mailer, logger *logger.Logger) *NotificationService {
	return &NotificationService{
		goalRepo:    goalRepo,
		profileRepo: profileRepo,
		mailer:      mailer,
		logger:      logger,
	}
}

// SendProgressUpdate mails the user a summary of their active goal. Progress
// is read from the saved goal, never recomputed here.
func (s *NotificationService) SendProgressUpdate(ctx context.Context, userID string, req ports.SendUpdateRequest) error {
	profile, err := s.profileRepo.Load(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	if !profile.Notifications.Enabled {
		s.logger.Debugw("Notifications disabled, skipping update", "user_id", userID)
		return nil
	}

	goal, err := s.goalRepo.LoadLatest(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load goal: %w", err)
	}

	update := ports.ProgressUpdate{
		Email:           profile.Email,
		Username:        profile.Name,
		GoalTitle:       goal.Title,
		Message:         req.Message,
		ProgressPercent: goal.Progress,
	}

	if err := s.mailer.Send(ctx, update); err != nil {
		return fmt.Errorf("failed to send progress update: %w", err)
	}

	s.logger.Infow("Progress update sent",
		"user_id", userID,
		"goal_id", goal.ID,
		"progress", goal.Progress,
	)

	return nil
}
