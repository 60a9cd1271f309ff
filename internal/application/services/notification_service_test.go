package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pacemaker/core/internal/domain/entities"
	"github.com/pacemaker/core/internal/infrastructure/logger"
	"github.com/pacemaker/core/internal/ports"
)

func TestSendProgressUpdate(t *testing.T) {
	goalRepo := &fakeGoalRepo{}
	seedGoal(goalRepo,
		completed("11111111-1111-4111-8111-111111111111", 3),
		pending("22222222-2222-4222-8222-222222222222", 10),
	)
	profileRepo := newFakeProfileRepo()
	seedProfile(profileRepo, 3, "2026-03-09")
	mail := &fakeMailer{}

	svc := NewNotificationService(goalRepo, profileRepo, mail, logger.NewNop())

	err := svc.SendProgressUpdate(context.Background(), testUserID, ports.SendUpdateRequest{
		Message: "Keep pushing forward!",
	})
	require.NoError(t, err)

	require.Len(t, mail.updates, 1)
	update := mail.updates[0]
	assert.Equal(t, "hero@example.com", update.Email)
	assert.Equal(t, "Hero", update.Username)
	assert.Equal(t, "Learn Go", update.GoalTitle)
	assert.Equal(t, "Keep pushing forward!", update.Message)
	assert.Equal(t, 50, update.ProgressPercent)
}

func TestSendProgressUpdate_DisabledNotifications(t *testing.T) {
	goalRepo := &fakeGoalRepo{}
	seedGoal(goalRepo, pending("22222222-2222-4222-8222-222222222222", 10))
	profileRepo := newFakeProfileRepo()
	seedProfile(profileRepo, 1, "2026-03-09")
	profileRepo.profiles[testUserID].Notifications.Enabled = false
	mail := &fakeMailer{}

	svc := NewNotificationService(goalRepo, profileRepo, mail, logger.NewNop())

	err := svc.SendProgressUpdate(context.Background(), testUserID, ports.SendUpdateRequest{Message: "hi"})
	require.NoError(t, err)
	assert.Empty(t, mail.updates)
}

func TestSendProgressUpdate_NoGoal(t *testing.T) {
	profileRepo := newFakeProfileRepo()
	seedProfile(profileRepo, 1, "2026-03-09")

	svc := NewNotificationService(&fakeGoalRepo{}, profileRepo, &fakeMailer{}, logger.NewNop())

	err := svc.SendProgressUpdate(context.Background(), testUserID, ports.SendUpdateRequest{Message: "hi"})
	assert.ErrorIs(t, err, entities.ErrGoalNotFound)
}
