package ports

import (
	"context"
	"time"

	"github.com/pacemaker/core/internal/domain/entities"
)

// GoalRepository defines the interface for goal persistence. A save must
// fully replace the goal's milestone set (delete-then-insert, never merge)
// so stale milestones cannot resurrect after an adjustment.
type GoalRepository interface {
	LoadLatest(ctx context.Context, userID string) (*entities.Goal, error)
	Save(ctx context.Context, goal *entities.Goal) (*entities.Goal, error)
	DeleteMilestones(ctx context.Context, goalID string) error
	InsertMilestones(ctx context.Context, goalID string, milestones []entities.Milestone) error
}

// ProfileRepository defines the interface for user profile persistence.
type ProfileRepository interface {
	Load(ctx context.Context, userID string) (*entities.UserProfile, error)
	Save(ctx context.Context, profile *entities.UserProfile) error
	UpdateStreak(ctx context.Context, userID string, streak int, lastLoginDate string) error
}

// LoginTokenRepository stores hashed one-time magic-link tokens.
type LoginTokenRepository interface {
	Create(ctx context.Context, token *LoginToken) error
	FindActive(ctx context.Context, email string) (*LoginToken, error)
	MarkUsed(ctx context.Context, id int) error
	CleanupExpired(ctx context.Context) error
}

// Mailer delivers mail through the transactional email collaborator. The
// core only supplies the payload and observes success/failure; delivery
// guarantees are out of scope.
type Mailer interface {
	Send(ctx context.Context, update ProgressUpdate) error
	SendLoginLink(ctx context.Context, email, lang, link string) error
}

// Translator resolves localized strings by dot-separated key. The adjustment
// engine never hardcodes user-facing text; the squeeze annotation is always
// requested through this interface.
type Translator interface {
	Translate(lang, key string) string
}

// ProgressUpdate is the payload handed to the email collaborator.
type ProgressUpdate struct {
	Email           string `json:"email"`
	Username        string `json:"username"`
	GoalTitle       string `json:"goal_title"`
	Message         string `json:"message"`
	ProgressPercent int    `json:"progress_percent"`
}

// LoginToken represents a one-time magic-link token record. Only the hash is
// persisted.
type LoginToken struct {
	ID        int        `json:"id" db:"id"`
	Email     string     `json:"email" db:"email"`
	TokenHash string     `json:"-" db:"token_hash"`
	ExpiresAt time.Time  `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UsedAt    *time.Time `json:"used_at" db:"used_at"`
}

// IsExpired checks if the login token is expired.
func (lt *LoginToken) IsExpired() bool {
	return time.Now().After(lt.ExpiresAt)
}

// IsUsed checks if the login token has already been consumed.
func (lt *LoginToken) IsUsed() bool {
	return lt.UsedAt != nil
}

// IsValid checks if the login token can still be exchanged for a session.
func (lt *LoginToken) IsValid() bool {
	return !lt.IsExpired() && !lt.IsUsed()
}
