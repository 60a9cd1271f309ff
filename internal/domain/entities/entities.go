package entities

import (
	"errors"
	"math"
	"regexp"
	"time"
)

// Common errors
var (
	ErrGoalNotFound       = errors.New("goal not found")
	ErrMilestoneNotFound  = errors.New("milestone not found")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrLoginTokenInvalid  = errors.New("login token is invalid or expired")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidDateRange   = errors.New("start date must not be after deadline")
	ErrMilestoneCompleted = errors.New("milestone is already completed")
	ErrMilestoneNotLate   = errors.New("milestone is not behind schedule")
)

// Enums and types
type MilestoneStatus string

const (
	MilestoneStatusPending   MilestoneStatus = "pending"
	MilestoneStatusCompleted MilestoneStatus = "completed"
	MilestoneStatusMissed    MilestoneStatus = "missed"
	MilestoneStatusAdjusted  MilestoneStatus = "adjusted"
)

type Difficulty string

const (
	DifficultyMicro  Difficulty = "micro"
	DifficultySmall  Difficulty = "small"
	DifficultyMedium Difficulty = "medium"
	DifficultyLarge  Difficulty = "large"
)

type GoalCategory string

const (
	CategoryWork    GoalCategory = "WORK"
	CategoryStudy   GoalCategory = "STUDY"
	CategoryHobby   GoalCategory = "HOBBY"
	CategoryHealth  GoalCategory = "HEALTH"
	CategoryFinance GoalCategory = "FINANCE"
	CategoryOther   GoalCategory = "OTHER"
)

type PersonalityType string

const (
	PersonalitySteady         PersonalityType = "STEADY"
	PersonalitySprinter       PersonalityType = "SPRINTER"
	PersonalityProcrastinator PersonalityType = "PROCRASTINATOR"
)

type NotificationMethod string

const (
	NotifyBrowser NotificationMethod = "BROWSER"
	NotifyEmail   NotificationMethod = "EMAIL"
	NotifyLine    NotificationMethod = "LINE"
	NotifyNone    NotificationMethod = "NONE"
)

// DateOnly is the storage format for day-granularity dates (lastLoginDate).
const DateOnly = "2006-01-02"

// durableIDPattern matches the version-4 style identifiers handed out by the
// persistence layer. Anything else (client temp ids like "temp-1712...") means
// the record has never been saved.
var durableIDPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// IsDurableID reports whether id was assigned by the repository.
func IsDurableID(id string) bool {
	return durableIDPattern.MatchString(id)
}

// Milestone is a dated sub-task of a Goal.
type Milestone struct {
	ID            string          `json:"id" db:"id"`
	GoalID        string          `json:"-" db:"goal_id"`
	Title         string          `json:"title" db:"title"`
	Description   string          `json:"description" db:"description"`
	TargetDate    time.Time       `json:"target_date" db:"target_date"`
	CompletedDate *time.Time      `json:"completed_date,omitempty" db:"completed_date"`
	Status        MilestoneStatus `json:"status" db:"status"`
	Difficulty    Difficulty      `json:"difficulty" db:"difficulty"`
	Progress      int             `json:"progress" db:"progress"`
	Position      int             `json:"-" db:"position"`
}

// Goal is a top-level user objective with a deadline and a milestone set.
// Milestones keep their stored order; display order is always derived by
// sorting on target date, never by insertion order.
type Goal struct {
	ID          string       `json:"id" db:"id"`
	UserID      string       `json:"user_id" db:"user_id"`
	Title       string       `json:"title" db:"title"`
	Description string       `json:"description" db:"description"`
	Category    GoalCategory `json:"category" db:"category"`
	StartDate   time.Time    `json:"start_date" db:"start_date"`
	Deadline    time.Time    `json:"deadline" db:"deadline"`
	Milestones  []Milestone  `json:"milestones"`
	Progress    int          `json:"progress" db:"progress"`
	Color       string       `json:"color" db:"color"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
}

// NotificationPrefs holds a user's reminder preferences.
type NotificationPrefs struct {
	Enabled bool               `json:"enabled" db:"notifications_enabled"`
	Method  NotificationMethod `json:"method" db:"notification_method"`
	Time    string             `json:"time" db:"notification_time"`
}

// UserProfile is created once at setup and mutated once per calendar day
// (streak) or on profile edits. PersonalityType and PacingMultiplier are
// derived from the setup questionnaire and never recomputed.
type UserProfile struct {
	UserID           string            `json:"user_id" db:"user_id"`
	Email            string            `json:"email" db:"email"`
	Name             string            `json:"name" db:"name"`
	PersonalityType  PersonalityType   `json:"personality_type" db:"personality_type"`
	PacingMultiplier float64           `json:"pacing_multiplier" db:"pacing_multiplier"`
	Notifications    NotificationPrefs `json:"notifications"`
	Streak           int               `json:"streak" db:"streak"`
	LastLoginDate    string            `json:"last_login_date" db:"last_login_date"`
	CreatedAt        time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at" db:"updated_at"`
}

// Business logic methods for Milestone

// IsLate reports whether the milestone should display as behind schedule.
// This is a derived fact layered on top of Status: a milestone can be
// pending and late at the same time. Nothing here ever commits a transition
// to missed; that decision belongs to the caller.
func (m *Milestone) IsLate(now time.Time) bool {
	return now.After(m.TargetDate) && m.Status != MilestoneStatusCompleted
}

// Complete marks the milestone done at the given instant. Completion always
// forces progress to 100, keeping progress and status coupled.
func (m *Milestone) Complete(now time.Time) {
	m.Status = MilestoneStatusCompleted
	m.CompletedDate = &now
	m.Progress = 100
}

// Business logic methods for Goal

// MilestoneIndex returns the position of the milestone in the stored order,
// or -1 when the id does not belong to this goal.
func (g *Goal) MilestoneIndex(milestoneID string) int {
	for i := range g.Milestones {
		if g.Milestones[i].ID == milestoneID {
			return i
		}
	}
	return -1
}

// CompletedCount counts milestones with completed status.
func (g *Goal) CompletedCount() int {
	count := 0
	for i := range g.Milestones {
		if g.Milestones[i].Status == MilestoneStatusCompleted {
			count++
		}
	}
	return count
}

// RecalculateProgress recomputes the derived goal progress from milestone
// completion. A goal with no milestones has progress 0.
func (g *Goal) RecalculateProgress() {
	total := len(g.Milestones)
	if total == 0 {
		g.Progress = 0
		return
	}
	g.Progress = int(math.Round(float64(g.CompletedCount()) / float64(total) * 100))
}

// IsOverdue reports whether the goal's deadline has passed without the goal
// reaching full progress.
func (g *Goal) IsOverdue(now time.Time) bool {
	return now.After(g.Deadline) && g.Progress < 100
}

// Clone returns a deep copy of the goal. Model operations transform copies so
// a failed precondition never leaves a half-applied adjustment behind.
func (g *Goal) Clone() *Goal {
	clone := *g
	clone.Milestones = make([]Milestone, len(g.Milestones))
	copy(clone.Milestones, g.Milestones)
	for i := range clone.Milestones {
		if g.Milestones[i].CompletedDate != nil {
			completed := *g.Milestones[i].CompletedDate
			clone.Milestones[i].CompletedDate = &completed
		}
	}
	return &clone
}

// ColorForCategory derives the cosmetic theme tag assigned at creation time.
func ColorForCategory(category GoalCategory) string {
	switch category {
	case CategoryWork:
		return "hsl(220, 80%, 60%)"
	case CategoryStudy:
		return "hsl(280, 70%, 60%)"
	case CategoryHealth:
		return "hsl(140, 70%, 50%)"
	default:
		return "hsl(250, 80%, 60%)"
	}
}

// Utility methods
func (s MilestoneStatus) IsValid() bool {
	switch s {
	case MilestoneStatusPending, MilestoneStatusCompleted, MilestoneStatusMissed, MilestoneStatusAdjusted:
		return true
	default:
		return false
	}
}

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyMicro, DifficultySmall, DifficultyMedium, DifficultyLarge:
		return true
	default:
		return false
	}
}

func (c GoalCategory) IsValid() bool {
	switch c {
	case CategoryWork, CategoryStudy, CategoryHobby, CategoryHealth, CategoryFinance, CategoryOther:
		return true
	default:
		return false
	}
}

func (p PersonalityType) IsValid() bool {
	switch p {
	case PersonalitySteady, PersonalitySprinter, PersonalityProcrastinator:
		return true
	default:
		return false
	}
}

func (n NotificationMethod) IsValid() bool {
	switch n {
	case NotifyBrowser, NotifyEmail, NotifyLine, NotifyNone:
		return true
	default:
		return false
	}
}
