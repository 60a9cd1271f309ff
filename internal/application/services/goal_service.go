package services

import (
	"context"
	"fmt"
	"time"

	"github.com/pacemaker/core/internal/domain/entities"
	"github.com/pacemaker/core/internal/infrastructure/logger"
	"github.com/pacemaker/core/internal/ports"
)

// GoalService handles goal authoring, loading and milestone completion
type GoalService struct {
	goalRepo ports.GoalRepository
	logger   *logger.Logger
	now      func() time.Time
}

// NewGoalService creates a new goal service
func NewGoalService(goalRepo ports.GoalRepository, logger *logger.Logger) *GoalService {
	return &GoalService{
		goalRepo: goalRepo,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateGoal builds and persists a new goal from the authoring form. The
// milestone set is stored sorted by target date, matching the order the
// authoring screen previews.
func (s *GoalService) CreateGoal(ctx context.Context, userID string, req ports.CreateGoalRequest) (*entities.Goal, error) {
	if req.Deadline.Before(req.StartDate) {
		return nil, fmt.Errorf("%w: %s", entities.ErrValidation, entities.ErrInvalidDateRange)
	}

	now := s.now()
	goal := &entities.Goal{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		StartDate:   req.StartDate,
		Deadline:    req.Deadline,
		Color:       entities.ColorForCategory(req.Category),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	milestones := make([]entities.Milestone, 0, len(req.Milestones))
	for _, input := range req.Milestones {
		milestones = append(milestones, entities.Milestone{
			Title:       input.Title,
			Description: input.Description,
			TargetDate:  input.TargetDate,
			Status:      entities.MilestoneStatusPending,
			Difficulty:  input.Difficulty,
			Progress:    0,
		})
	}
	goal.Milestones = SortByTargetDate(milestones)
	goal.RecalculateProgress()

	saved, err := s.goalRepo.Save(ctx, goal)
	if err != nil {
		return nil, fmt.Errorf("failed to save goal: %w", err)
	}

	s.logger.Infow("Goal created",
		"goal_id", saved.ID,
		"user_id", userID,
		"title", saved.Title,
		"milestones", len(saved.Milestones),
	)

	return saved, nil
}

// GetCurrentGoal loads the user's active goal.
func (s *GoalService) GetCurrentGoal(ctx context.Context, userID string) (*entities.Goal, error) {
	goal, err := s.goalRepo.LoadLatest(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load goal: %w", err)
	}

	return goal, nil
}

// CompleteMilestone marks a milestone done and recomputes the goal's derived
// progress. Completing an already-completed milestone is a no-op, so the
// completion date of the first call is preserved.
func (s *GoalService) CompleteMilestone(ctx context.Context, userID, milestoneID string) (*entities.Goal, error) {
	goal, err := s.goalRepo.LoadLatest(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load goal: %w", err)
	}

	idx := goal.MilestoneIndex(milestoneID)
	if idx < 0 {
		return nil, fmt.Errorf("complete milestone %s: %w", milestoneID, entities.ErrMilestoneNotFound)
	}

	if goal.Milestones[idx].Status == entities.MilestoneStatusCompleted {
		return goal, nil
	}

	updated := goal.Clone()
	updated.Milestones[idx].Complete(s.now())
	updated.RecalculateProgress()
	updated.UpdatedAt = s.now()

	saved, err := s.goalRepo.Save(ctx, updated)
	if err != nil {
		return nil, fmt.Errorf("failed to save goal: %w", err)
	}

	s.logger.Infow("Milestone completed",
		"goal_id", saved.ID,
		"milestone_id", milestoneID,
		"progress", saved.Progress,
	)

	return saved, nil
}
