package services

import (
	"context"
	"fmt"
	"time"

	"github.com/pacemaker/core/internal/domain/entities"
	"github.com/pacemaker/core/internal/infrastructure/config"
	"github.com/pacemaker/core/internal/infrastructure/logger"
	"github.com/pacemaker/core/internal/ports"
)

// intensifiedKey is the translation key for the squeeze annotation.
const intensifiedKey = "adjust.intensified"

// AdjustmentService implements the two re-planning modes applied to a
// milestone that has fallen behind schedule. Either the whole transformation
// commits to the saved goal or nothing does.
type AdjustmentService struct {
	goalRepo   ports.GoalRepository
	translator ports.Translator
	shiftDays  int
	logger     *logger.Logger
	now        func() time.Time
}

// NewAdjustmentService creates a new adjustment service
func NewAdjustmentService(goalRepo ports.GoalRepository, translator ports.Translator, cfg config.AdjustmentConfig, logger *logger.Logger) *AdjustmentService {
	return &AdjustmentService{
		goalRepo:   goalRepo,
		translator: translator,
		shiftDays:  cfg.ShiftDays,
		logger:     logger,
		now:        time.Now,
	}
}

// Adjust applies the selected re-planning mode to the trigger milestone.
// Both modes are deliberately cumulative: a second extend shifts dates again
// and a second squeeze appends the annotation again.
func (s *AdjustmentService) Adjust(ctx context.Context, userID string, req ports.AdjustRequest) (*entities.Goal, error) {
	goal, err := s.goalRepo.LoadLatest(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load goal: %w", err)
	}

	idx := goal.MilestoneIndex(req.MilestoneID)
	if idx < 0 {
		return nil, fmt.Errorf("adjust milestone %s: %w", req.MilestoneID, entities.ErrMilestoneNotFound)
	}

	target := &goal.Milestones[idx]
	if target.Status == entities.MilestoneStatusCompleted {
		return nil, entities.ErrMilestoneCompleted
	}
	if !target.IsLate(s.now()) {
		return nil, entities.ErrMilestoneNotLate
	}

	updated := goal.Clone()
	switch req.Mode {
	case ports.AdjustModeExtend:
		s.extend(updated, idx)
	case ports.AdjustModeSqueeze:
		s.squeeze(updated, idx, req.Lang)
	default:
		return nil, fmt.Errorf("%w: unknown adjustment mode %q", entities.ErrValidation, req.Mode)
	}
	updated.UpdatedAt = s.now()

	saved, err := s.goalRepo.Save(ctx, updated)
	if err != nil {
		return nil, fmt.Errorf("failed to save goal: %w", err)
	}

	s.logger.Infow("Schedule adjusted",
		"goal_id", saved.ID,
		"milestone_id", req.MilestoneID,
		"mode", req.Mode,
		"deadline", saved.Deadline,
	)

	return saved, nil
}

// extend shifts the trigger milestone and everything after it in the stored
// milestone order, then moves the goal deadline by the same amount. The
// stored order is used as-is, not re-sorted: which milestones shift depends
// on how the collection is persisted, and that is intentional.
func (s *AdjustmentService) extend(goal *entities.Goal, idx int) {
	for i := idx; i < len(goal.Milestones); i++ {
		m := &goal.Milestones[i]
		m.TargetDate = m.TargetDate.AddDate(0, 0, s.shiftDays)
		if i == idx && m.Status != entities.MilestoneStatusCompleted {
			// The late trigger becomes actionable again; later
			// milestones keep whatever status they had.
			m.Status = entities.MilestoneStatusPending
		}
	}
	goal.Deadline = goal.Deadline.AddDate(0, 0, s.shiftDays)
}

// squeeze escalates the trigger milestone to the maximum effort tier and
// appends the localized intensified annotation. No dates or statuses change,
// and the escalation is never automatically undone.
func (s *AdjustmentService) squeeze(goal *entities.Goal, idx int, lang string) {
	m := &goal.Milestones[idx]
	m.Difficulty = entities.DifficultyLarge
	m.Description += s.translator.Translate(lang, intensifiedKey)
}
