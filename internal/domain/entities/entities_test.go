package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(d int) time.Time {
	return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestMilestoneIsLate(t *testing.T) {
	tests := []struct {
		name   string
		status MilestoneStatus
		target time.Time
		now    time.Time
		want   bool
	}{
		{"pending past target", MilestoneStatusPending, date(10), date(12), true},
		{"pending before target", MilestoneStatusPending, date(10), date(8), false},
		{"pending exactly at target", MilestoneStatusPending, date(10), date(10), false},
		{"completed past target", MilestoneStatusCompleted, date(10), date(12), false},
		{"missed past target", MilestoneStatusMissed, date(10), date(12), true},
		{"adjusted past target", MilestoneStatusAdjusted, date(10), date(12), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Milestone{TargetDate: tt.target, Status: tt.status}
			assert.Equal(t, tt.want, m.IsLate(tt.now))
		})
	}
}

func TestMilestoneComplete(t *testing.T) {
	m := Milestone{Status: MilestoneStatusPending, Progress: 40}
	now := date(15)

	m.Complete(now)

	assert.Equal(t, MilestoneStatusCompleted, m.Status)
	assert.Equal(t, 100, m.Progress)
	require.NotNil(t, m.CompletedDate)
	assert.True(t, m.CompletedDate.Equal(now))
}

func TestRecalculateProgress(t *testing.T) {
	tests := []struct {
		name     string
		statuses []MilestoneStatus
		want     int
	}{
		{"empty goal", nil, 0},
		{"none complete", []MilestoneStatus{MilestoneStatusPending, MilestoneStatusPending}, 0},
		{"one of three rounds to 33", []MilestoneStatus{MilestoneStatusCompleted, MilestoneStatusPending, MilestoneStatusPending}, 33},
		{"two of three rounds to 67", []MilestoneStatus{MilestoneStatusCompleted, MilestoneStatusCompleted, MilestoneStatusPending}, 67},
		{"all complete", []MilestoneStatus{MilestoneStatusCompleted, MilestoneStatusCompleted}, 100},
		{"missed counts as incomplete", []MilestoneStatus{MilestoneStatusCompleted, MilestoneStatusMissed}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Goal{}
			for _, s := range tt.statuses {
				g.Milestones = append(g.Milestones, Milestone{Status: s})
			}
			g.RecalculateProgress()
			assert.Equal(t, tt.want, g.Progress)
		})
	}
}

func TestMilestoneIndex(t *testing.T) {
	g := Goal{Milestones: []Milestone{{ID: "a"}, {ID: "b"}}}

	assert.Equal(t, 0, g.MilestoneIndex("a"))
	assert.Equal(t, 1, g.MilestoneIndex("b"))
	assert.Equal(t, -1, g.MilestoneIndex("missing"))
}

func TestGoalClone(t *testing.T) {
	done := date(5)
	g := &Goal{
		ID: "g1",
		Milestones: []Milestone{
			{ID: "a", Status: MilestoneStatusCompleted, CompletedDate: &done},
			{ID: "b", Status: MilestoneStatusPending},
		},
	}

	clone := g.Clone()
	clone.Milestones[0].Status = MilestoneStatusPending
	*clone.Milestones[0].CompletedDate = date(20)
	clone.Milestones = append(clone.Milestones, Milestone{ID: "c"})

	assert.Equal(t, MilestoneStatusCompleted, g.Milestones[0].Status)
	assert.True(t, g.Milestones[0].CompletedDate.Equal(date(5)))
	assert.Len(t, g.Milestones, 2)
}

func TestIsDurableID(t *testing.T) {
	assert.True(t, IsDurableID("a1b2c3d4-e5f6-4a7b-8c9d-0e1f2a3b4c5d"))
	assert.False(t, IsDurableID("temp-1712345678901"))
	assert.False(t, IsDurableID(""))
	assert.False(t, IsDurableID("A1B2C3D4-E5F6-4A7B-8C9D-0E1F2A3B4C5D"))
	assert.False(t, IsDurableID("a1b2c3d4e5f64a7b8c9d0e1f2a3b4c5d"))
}

func TestColorForCategory(t *testing.T) {
	assert.Equal(t, "hsl(220, 80%, 60%)", ColorForCategory(CategoryWork))
	assert.Equal(t, "hsl(280, 70%, 60%)", ColorForCategory(CategoryStudy))
	assert.Equal(t, "hsl(140, 70%, 50%)", ColorForCategory(CategoryHealth))
	assert.Equal(t, "hsl(250, 80%, 60%)", ColorForCategory(CategoryHobby))
	assert.Equal(t, "hsl(250, 80%, 60%)", ColorForCategory(CategoryOther))
}

func TestIsOverdue(t *testing.T) {
	g := Goal{Deadline: date(10), Progress: 80}
	assert.True(t, g.IsOverdue(date(12)))
	assert.False(t, g.IsOverdue(date(8)))

	g.Progress = 100
	assert.False(t, g.IsOverdue(date(12)))
}
