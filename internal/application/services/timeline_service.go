package services

import (
	"sort"
	"time"

	"github.com/pacemaker/core/internal/domain/entities"
	"github.com/pacemaker/core/internal/infrastructure/logger"
	"github.com/pacemaker/core/internal/ports"
)

// TimelineService produces the display-order projection of a goal. Stored
// milestone order is persistence-dependent; everything user-facing goes
// through the sort here.
type TimelineService struct {
	logger *logger.Logger
}

// NewTimelineService creates a new timeline service
func NewTimelineService(logger *logger.Logger) *TimelineService {
	return &TimelineService{logger: logger}
}

// SortByTargetDate returns a copy of the milestones sorted ascending by
// target date. The sort is stable, so milestones sharing a date keep their
// original relative order, and re-sorting a sorted slice is a fixed point.
func SortByTargetDate(milestones []entities.Milestone) []entities.Milestone {
	sorted := make([]entities.Milestone, len(milestones))
	copy(sorted, milestones)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TargetDate.Before(sorted[j].TargetDate)
	})
	return sorted
}

// FindCurrent locates today's focus item: the first pending milestone in
// target-date order. Returns nil when every milestone is completed, missed
// or adjusted, or when the set is empty.
func FindCurrent(milestones []entities.Milestone) *entities.Milestone {
	sorted := SortByTargetDate(milestones)
	for i := range sorted {
		if sorted[i].Status == entities.MilestoneStatusPending {
			current := sorted[i]
			return &current
		}
	}
	return nil
}

// BuildTimeline classifies a goal's milestones for rendering: sorted order,
// per-item lateness and the current focus item.
func (s *TimelineService) BuildTimeline(goal *entities.Goal, now time.Time) *ports.TimelineView {
	view := &ports.TimelineView{
		StartDate: goal.StartDate,
		Deadline:  goal.Deadline,
		Items:     make([]ports.TimelineItem, 0, len(goal.Milestones)),
	}

	current := FindCurrent(goal.Milestones)
	if current != nil {
		view.CurrentID = current.ID
	}

	for _, m := range SortByTargetDate(goal.Milestones) {
		view.Items = append(view.Items, ports.TimelineItem{
			Milestone: m,
			Late:      m.IsLate(now),
			Current:   current != nil && m.ID == current.ID,
		})
	}

	return view
}
