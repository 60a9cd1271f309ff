package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/pacemaker/core/internal/domain/entities"
	"github.com/pacemaker/core/internal/infrastructure/database"
	"github.com/pacemaker/core/internal/ports"
)

// GoalRepositoryImpl implements the GoalRepository interface
type GoalRepositoryImpl struct {
	db *database.DB
}

// NewGoalRepository creates a new goal repository
func NewGoalRepository(db *database.DB) ports.GoalRepository {
	return &GoalRepositoryImpl{db: db}
}

// LoadLatest returns the user's most recently updated goal with its milestone
// set in stored position order.
func (r *GoalRepositoryImpl) LoadLatest(ctx context.Context, userID string) (*entities.Goal, error) {
	query := `
		SELECT id, user_id, title, description, category, start_date, deadline,
			progress, color, created_at, updated_at
		FROM goals
		WHERE user_id = $1
		ORDER BY updated_at DESC
		LIMIT 1`

	var goal entities.Goal
	err := r.db.DB.GetContext(ctx, &goal, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrGoalNotFound
		}
		return nil, fmt.Errorf("load latest goal: %w", err)
	}

	milestones, err := r.loadMilestones(ctx, goal.ID)
	if err != nil {
		return nil, err
	}
	goal.Milestones = milestones

	return &goal, nil
}

// Save persists the goal and fully replaces its milestone set inside one
// transaction, so a partially written milestone list can never be observed.
func (r *GoalRepositoryImpl) Save(ctx context.Context, goal *entities.Goal) (*entities.Goal, error) {
	if !entities.IsDurableID(goal.ID) {
		goal.ID = uuid.New().String()
	}

	err := r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO goals (id, user_id, title, description, category, start_date,
				deadline, progress, color, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (id) DO UPDATE SET
				title = EXCLUDED.title,
				description = EXCLUDED.description,
				category = EXCLUDED.category,
				start_date = EXCLUDED.start_date,
				deadline = EXCLUDED.deadline,
				progress = EXCLUDED.progress,
				color = EXCLUDED.color,
				updated_at = EXCLUDED.updated_at`

		_, err := tx.ExecContext(ctx, query,
			goal.ID, goal.UserID, goal.Title, goal.Description, goal.Category,
			goal.StartDate, goal.Deadline, goal.Progress, goal.Color,
			goal.CreatedAt, goal.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("save goal: %w", err)
		}

		if err := deleteMilestonesTx(ctx, tx, goal.ID); err != nil {
			return err
		}
		return insertMilestonesTx(ctx, tx, goal.ID, goal.Milestones)
	})
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// DeleteMilestones removes every milestone of a goal.
func (r *GoalRepositoryImpl) DeleteMilestones(ctx context.Context, goalID string) error {
	return r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		return deleteMilestonesTx(ctx, tx, goalID)
	})
}

// InsertMilestones appends milestones to a goal, assigning durable ids where
// the caller passed client temp ids.
func (r *GoalRepositoryImpl) InsertMilestones(ctx context.Context, goalID string, milestones []entities.Milestone) error {
	return r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		return insertMilestonesTx(ctx, tx, goalID, milestones)
	})
}

func (r *GoalRepositoryImpl) loadMilestones(ctx context.Context, goalID string) ([]entities.Milestone, error) {
	query := `
		SELECT id, goal_id, title, description, target_date, completed_date,
			status, difficulty, progress, position
		FROM milestones
		WHERE goal_id = $1
		ORDER BY position`

	var milestones []entities.Milestone
	err := r.db.DB.SelectContext(ctx, &milestones, query, goalID)
	if err != nil {
		return nil, fmt.Errorf("load milestones: %w", err)
	}

	return milestones, nil
}

func deleteMilestonesTx(ctx context.Context, tx *sqlx.Tx, goalID string) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM milestones WHERE goal_id = $1`, goalID)
	if err != nil {
		return fmt.Errorf("delete milestones: %w", err)
	}
	return nil
}

func insertMilestonesTx(ctx context.Context, tx *sqlx.Tx, goalID string, milestones []entities.Milestone) error {
	query := `
		INSERT INTO milestones (id, goal_id, title, description, target_date,
			completed_date, status, difficulty, progress, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	for i := range milestones {
		m := &milestones[i]
		if !entities.IsDurableID(m.ID) {
			m.ID = uuid.New().String()
		}
		m.GoalID = goalID
		m.Position = i

		_, err := tx.ExecContext(ctx, query,
			m.ID, m.GoalID, m.Title, m.Description, m.TargetDate,
			m.CompletedDate, m.Status, m.Difficulty, m.Progress, m.Position,
		)
		if err != nil {
			return fmt.Errorf("insert milestone: %w", err)
		}
	}

	return nil
}
