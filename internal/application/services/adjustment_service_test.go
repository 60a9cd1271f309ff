package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pacemaker/core/internal/adapters/i18n"
	"github.com/pacemaker/core/internal/domain/entities"
	"github.com/pacemaker/core/internal/infrastructure/config"
	"github.com/pacemaker/core/internal/infrastructure/logger"
	"github.com/pacemaker/core/internal/ports"
)

const (
	msDone   = "11111111-1111-4111-8111-111111111111"
	msLate   = "22222222-2222-4222-8222-222222222222"
	msFuture = "33333333-3333-4333-8333-333333333333"
)

func newAdjustmentService(repo *fakeGoalRepo, now time.Time) *AdjustmentService {
	svc := NewAdjustmentService(repo, i18n.New(), config.AdjustmentConfig{ShiftDays: 5}, logger.NewNop())
	svc.now = func() time.Time { return now }
	return svc
}

func seedAdjustableGoal(repo *fakeGoalRepo) {
	// Stored order: done (day 3), late pending (day 10), future pending (day 20).
	seedGoal(repo,
		completed(msDone, 3),
		pending(msLate, 10),
		pending(msFuture, 20),
	)
}

func TestAdjust_Extend(t *testing.T) {
	repo := &fakeGoalRepo{}
	seedAdjustableGoal(repo)
	svc := newAdjustmentService(repo, day(12))

	goal, err := svc.Adjust(context.Background(), testUserID, ports.AdjustRequest{
		MilestoneID: msLate,
		Mode:        ports.AdjustModeExtend,
	})
	require.NoError(t, err)

	// Trigger and everything after it shift by 5 days
	assert.True(t, goal.Milestones[goal.MilestoneIndex(msLate)].TargetDate.Equal(day(15)))
	assert.True(t, goal.Milestones[goal.MilestoneIndex(msFuture)].TargetDate.Equal(day(25)))
	// Milestones before the trigger keep their dates
	assert.True(t, goal.Milestones[goal.MilestoneIndex(msDone)].TargetDate.Equal(day(3)))
	// Deadline moves with the schedule
	assert.True(t, goal.Deadline.Equal(day(35)))

	// Trigger is actionable again and no longer late at the new date
	trigger := goal.Milestones[goal.MilestoneIndex(msLate)]
	assert.Equal(t, entities.MilestoneStatusPending, trigger.Status)
	assert.False(t, trigger.IsLate(day(12)))
}

func TestAdjust_ExtendTwiceIsCumulative(t *testing.T) {
	repo := &fakeGoalRepo{}
	seedAdjustableGoal(repo)
	svc := newAdjustmentService(repo, day(25))

	_, err := svc.Adjust(context.Background(), testUserID, ports.AdjustRequest{MilestoneID: msLate, Mode: ports.AdjustModeExtend})
	require.NoError(t, err)

	goal, err := svc.Adjust(context.Background(), testUserID, ports.AdjustRequest{MilestoneID: msLate, Mode: ports.AdjustModeExtend})
	require.NoError(t, err)

	assert.True(t, goal.Milestones[goal.MilestoneIndex(msLate)].TargetDate.Equal(day(20)))
	assert.True(t, goal.Deadline.Equal(day(40)))
}

func TestAdjust_Squeeze(t *testing.T) {
	repo := &fakeGoalRepo{}
	seedAdjustableGoal(repo)
	repo.goal.Milestones[1].Difficulty = entities.DifficultyMicro
	repo.goal.Milestones[1].Description = "Read chapter 3"
	svc := newAdjustmentService(repo, day(12))

	goal, err := svc.Adjust(context.Background(), testUserID, ports.AdjustRequest{
		MilestoneID: msLate,
		Mode:        ports.AdjustModeSqueeze,
		Lang:        "en",
	})
	require.NoError(t, err)

	target := goal.Milestones[goal.MilestoneIndex(msLate)]
	assert.Equal(t, entities.DifficultyLarge, target.Difficulty)
	assert.Equal(t, "Read chapter 3 (INTENSIFIED: Schedule compressed!)", target.Description)

	// Dates and statuses untouched
	assert.True(t, target.TargetDate.Equal(day(10)))
	assert.Equal(t, entities.MilestoneStatusPending, target.Status)
	assert.True(t, goal.Deadline.Equal(day(30)))
}

func TestAdjust_SqueezeJapanese(t *testing.T) {
	repo := &fakeGoalRepo{}
	seedAdjustableGoal(repo)
	svc := newAdjustmentService(repo, day(12))

	goal, err := svc.Adjust(context.Background(), testUserID, ports.AdjustRequest{
		MilestoneID: msLate,
		Mode:        ports.AdjustModeSqueeze,
		Lang:        "ja",
	})
	require.NoError(t, err)

	target := goal.Milestones[goal.MilestoneIndex(msLate)]
	assert.Equal(t, " 【強化】スケジュール圧縮！", target.Description)
}

func TestAdjust_SqueezeTwiceAppendsTwice(t *testing.T) {
	repo := &fakeGoalRepo{}
	seedAdjustableGoal(repo)
	svc := newAdjustmentService(repo, day(12))

	_, err := svc.Adjust(context.Background(), testUserID, ports.AdjustRequest{MilestoneID: msLate, Mode: ports.AdjustModeSqueeze, Lang: "en"})
	require.NoError(t, err)

	goal, err := svc.Adjust(context.Background(), testUserID, ports.AdjustRequest{MilestoneID: msLate, Mode: ports.AdjustModeSqueeze, Lang: "en"})
	require.NoError(t, err)

	target := goal.Milestones[goal.MilestoneIndex(msLate)]
	assert.Equal(t, " (INTENSIFIED: Schedule compressed!) (INTENSIFIED: Schedule compressed!)", target.Description)
}

func TestAdjust_Preconditions(t *testing.T) {
	tests := []struct {
		name        string
		milestoneID string
		now         time.Time
		wantErr     error
	}{
		{
			name:        "unknown milestone",
			milestoneID: "99999999-9999-4999-8999-999999999999",
			now:         day(12),
			wantErr:     entities.ErrMilestoneNotFound,
		},
		{
			name:        "completed milestone cannot be adjusted",
			milestoneID: msDone,
			now:         day(12),
			wantErr:     entities.ErrMilestoneCompleted,
		},
		{
			name:        "milestone not yet late",
			milestoneID: msFuture,
			now:         day(12),
			wantErr:     entities.ErrMilestoneNotLate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeGoalRepo{}
			seedAdjustableGoal(repo)
			svc := newAdjustmentService(repo, tt.now)

			_, err := svc.Adjust(context.Background(), testUserID, ports.AdjustRequest{
				MilestoneID: tt.milestoneID,
				Mode:        ports.AdjustModeExtend,
			})
			assert.ErrorIs(t, err, tt.wantErr)

			// Failed preconditions leave the stored goal untouched
			assert.Equal(t, 0, repo.saves)
			assert.True(t, repo.goal.Deadline.Equal(day(30)))
		})
	}
}
