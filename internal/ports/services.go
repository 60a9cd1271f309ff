package ports

import (
	"context"
	"time"

	"github.com/pacemaker/core/internal/domain/entities"
)

// AuthService interface for the magic-link login flow
type AuthService interface {
	RequestLink(ctx context.Context, req RequestLinkRequest) error
	VerifyToken(ctx context.Context, req VerifyTokenRequest) (*AuthResponse, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// GoalService interface for goal authoring and completion
type GoalService interface {
	CreateGoal(ctx context.Context, userID string, req CreateGoalRequest) (*entities.Goal, error)
	GetCurrentGoal(ctx context.Context, userID string) (*entities.Goal, error)
	CompleteMilestone(ctx context.Context, userID, milestoneID string) (*entities.Goal, error)
}

// AdjustmentService interface for the re-planning engine
type AdjustmentService interface {
	Adjust(ctx context.Context, userID string, req AdjustRequest) (*entities.Goal, error)
}

// TimelineService interface for display-order classification
type TimelineService interface {
	BuildTimeline(goal *entities.Goal, now time.Time) *TimelineView
}

// ProfileService interface for profile setup and the daily streak check
type ProfileService interface {
	SetupProfile(ctx context.Context, userID, email string, req SetupProfileRequest) (*entities.UserProfile, error)
	GetProfile(ctx context.Context, userID string) (*entities.UserProfile, error)
	UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*entities.UserProfile, error)
	TrackLogin(ctx context.Context, userID string, today time.Time) (*entities.UserProfile, error)
}

// NotificationService interface for outbound progress updates
type NotificationService interface {
	SendProgressUpdate(ctx context.Context, userID string, req SendUpdateRequest) error
}

// Request/Response Types

// Auth related types
type RequestLinkRequest struct {
	Email string `json:"email" validate:"required,email"`
	Lang  string `json:"lang" validate:"omitempty,oneof=en ja"`
}

type VerifyTokenRequest struct {
	Email string `json:"email" validate:"required,email"`
	Token string `json:"token" validate:"required"`
}

type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	UserID      string `json:"user_id"`
}

type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// Goal related types
type MilestoneInput struct {
	Title       string              `json:"title" validate:"required,max=500"`
	Description string              `json:"description" validate:"omitempty,max=2000"`
	TargetDate  time.Time           `json:"target_date" validate:"required"`
	Difficulty  entities.Difficulty `json:"difficulty" validate:"required,oneof=micro small medium large"`
}

type CreateGoalRequest struct {
	Title       string                `json:"title" validate:"required,max=200"`
	Description string                `json:"description" validate:"omitempty,max=1000"`
	Category    entities.GoalCategory `json:"category" validate:"required,oneof=WORK STUDY HOBBY HEALTH FINANCE OTHER"`
	StartDate   time.Time             `json:"start_date" validate:"required"`
	Deadline    time.Time             `json:"deadline" validate:"required"`
	Milestones  []MilestoneInput      `json:"milestones" validate:"dive"`
}

// AdjustRequest selects one of the two re-planning modes for a milestone
// that is behind schedule.
type AdjustRequest struct {
	MilestoneID string `json:"milestone_id" validate:"required"`
	Mode        string `json:"mode" validate:"required,oneof=extend squeeze"`
	Lang        string `json:"lang" validate:"omitempty,oneof=en ja"`
}

const (
	AdjustModeExtend  = "extend"
	AdjustModeSqueeze = "squeeze"
)

// Profile related types
type SetupProfileRequest struct {
	Name               string                      `json:"name" validate:"required,max=100"`
	HomeworkStyle      string                      `json:"homework_style" validate:"required,oneof=steady last_minute front_load"`
	NotificationMethod entities.NotificationMethod `json:"notification_method" validate:"required,oneof=BROWSER EMAIL LINE NONE"`
	NotificationTime   string                      `json:"notification_time" validate:"omitempty,len=5"`
}

type UpdateProfileRequest struct {
	Name               *string                      `json:"name" validate:"omitempty,max=100"`
	NotificationMethod *entities.NotificationMethod `json:"notification_method" validate:"omitempty,oneof=BROWSER EMAIL LINE NONE"`
	NotificationTime   *string                      `json:"notification_time" validate:"omitempty,len=5"`
}

// Notification related types
type SendUpdateRequest struct {
	Message string `json:"message" validate:"required,max=500"`
	Lang    string `json:"lang" validate:"omitempty,oneof=en ja"`
}

// TimelineView is the display-order projection of a goal: milestones sorted
// ascending by target date with derived late/current flags.
type TimelineView struct {
	StartDate time.Time      `json:"start_date"`
	Deadline  time.Time      `json:"deadline"`
	Items     []TimelineItem `json:"items"`
	// CurrentID is the id of today's focus milestone, empty when every
	// milestone is completed, missed or adjusted.
	CurrentID string `json:"current_id,omitempty"`
}

type TimelineItem struct {
	Milestone entities.Milestone `json:"milestone"`
	Late      bool               `json:"late"`
	Current   bool               `json:"current"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
