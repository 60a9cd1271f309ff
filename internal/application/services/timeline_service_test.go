package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pacemaker/core/internal/domain/entities"
	"github.com/pacemaker/core/internal/infrastructure/logger"
)

func day(d int) time.Time {
	return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestSortByTargetDate(t *testing.T) {
	milestones := []entities.Milestone{
		{ID: "c", TargetDate: day(20)},
		{ID: "a", TargetDate: day(5)},
		{ID: "b1", TargetDate: day(10)},
		{ID: "b2", TargetDate: day(10)},
	}

	sorted := SortByTargetDate(milestones)

	assert.Equal(t, []string{"a", "b1", "b2", "c"}, ids(sorted))
	// Original slice untouched
	assert.Equal(t, "c", milestones[0].ID)

	// Re-sorting a sorted slice changes nothing
	again := SortByTargetDate(sorted)
	assert.Equal(t, ids(sorted), ids(again))
}

func TestSortByTargetDate_TiesKeepOriginalOrder(t *testing.T) {
	milestones := []entities.Milestone{
		{ID: "second", TargetDate: day(10)},
		{ID: "first", TargetDate: day(10)},
	}

	sorted := SortByTargetDate(milestones)

	assert.Equal(t, []string{"second", "first"}, ids(sorted))
}

func TestFindCurrent(t *testing.T) {
	tests := []struct {
		name       string
		milestones []entities.Milestone
		wantID     string
		wantNil    bool
	}{
		{
			name: "first pending in date order",
			milestones: []entities.Milestone{
				{ID: "late-pending", TargetDate: day(15), Status: entities.MilestoneStatusPending},
				{ID: "done", TargetDate: day(5), Status: entities.MilestoneStatusCompleted},
			},
			wantID: "late-pending",
		},
		{
			name: "completed milestones are skipped even when earlier",
			milestones: []entities.Milestone{
				{ID: "p", TargetDate: day(20), Status: entities.MilestoneStatusPending},
				{ID: "c", TargetDate: day(1), Status: entities.MilestoneStatusCompleted},
				{ID: "m", TargetDate: day(2), Status: entities.MilestoneStatusMissed},
			},
			wantID: "p",
		},
		{
			name: "no pending milestones",
			milestones: []entities.Milestone{
				{ID: "c", TargetDate: day(1), Status: entities.MilestoneStatusCompleted},
				{ID: "m", TargetDate: day(2), Status: entities.MilestoneStatusMissed},
			},
			wantNil: true,
		},
		{
			name:       "empty set",
			milestones: nil,
			wantNil:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current := FindCurrent(tt.milestones)
			if tt.wantNil {
				assert.Nil(t, current)
				return
			}
			require.NotNil(t, current)
			assert.Equal(t, tt.wantID, current.ID)
		})
	}
}

// A late pending milestone stays the current focus item; lateness never
// advances the pointer past it.
func TestBuildTimeline_LateMilestoneStaysCurrent(t *testing.T) {
	now := day(12)
	goal := &entities.Goal{
		StartDate: day(1),
		Deadline:  day(30),
		Milestones: []entities.Milestone{
			{ID: "m1", TargetDate: day(5), Status: entities.MilestoneStatusCompleted},
			{ID: "m2", TargetDate: day(10), Status: entities.MilestoneStatusPending},
			{ID: "m3", TargetDate: day(20), Status: entities.MilestoneStatusPending},
		},
	}

	svc := NewTimelineService(logger.NewNop())
	view := svc.BuildTimeline(goal, now)

	require.Len(t, view.Items, 3)
	assert.Equal(t, "m2", view.CurrentID)

	assert.False(t, view.Items[0].Late, "completed milestone is never late")
	assert.True(t, view.Items[1].Late, "pending milestone past its date is late")
	assert.True(t, view.Items[1].Current)
	assert.False(t, view.Items[2].Late)
	assert.False(t, view.Items[2].Current)
}

func TestBuildTimeline_AllCompleted(t *testing.T) {
	goal := &entities.Goal{
		StartDate: day(1),
		Deadline:  day(30),
		Milestones: []entities.Milestone{
			{ID: "m1", TargetDate: day(5), Status: entities.MilestoneStatusCompleted},
			{ID: "m2", TargetDate: day(10), Status: entities.MilestoneStatusCompleted},
		},
	}

	svc := NewTimelineService(logger.NewNop())
	view := svc.BuildTimeline(goal, day(15))

	assert.Empty(t, view.CurrentID)
	for _, item := range view.Items {
		assert.False(t, item.Current)
	}
}

func ids(milestones []entities.Milestone) []string {
	out := make([]string, len(milestones))
	for i, m := range milestones {
		out[i] = m.ID
	}
	return out
}
