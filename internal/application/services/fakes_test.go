package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/pacemaker/core/internal/domain/entities"
	"github.com/pacemaker/core/internal/ports"
)

// fakeGoalRepo keeps a single goal in memory and mimics the durable-id
// assignment of the real repository.
type fakeGoalRepo struct {
	goal    *entities.Goal
	saveErr error
	saves   int
}

func (r *fakeGoalRepo) LoadLatest(ctx context.Context, userID string) (*entities.Goal, error) {
	if r.goal == nil || r.goal.UserID != userID {
		return nil, entities.ErrGoalNotFound
	}
	return r.goal.Clone(), nil
}

func (r *fakeGoalRepo) Save(ctx context.Context, goal *entities.Goal) (*entities.Goal, error) {
	if r.saveErr != nil {
		return nil, r.saveErr
	}
	if !entities.IsDurableID(goal.ID) {
		goal.ID = uuid.New().String()
	}
	for i := range goal.Milestones {
		if !entities.IsDurableID(goal.Milestones[i].ID) {
			goal.Milestones[i].ID = uuid.New().String()
		}
		goal.Milestones[i].GoalID = goal.ID
		goal.Milestones[i].Position = i
	}
	r.goal = goal.Clone()
	r.saves++
	return goal, nil
}

func (r *fakeGoalRepo) DeleteMilestones(ctx context.Context, goalID string) error {
	if r.goal != nil && r.goal.ID == goalID {
		r.goal.Milestones = nil
	}
	return nil
}

func (r *fakeGoalRepo) InsertMilestones(ctx context.Context, goalID string, milestones []entities.Milestone) error {
	if r.goal == nil || r.goal.ID != goalID {
		return entities.ErrGoalNotFound
	}
	r.goal.Milestones = append(r.goal.Milestones, milestones...)
	return nil
}

// fakeProfileRepo keeps profiles in memory keyed by user id.
type fakeProfileRepo struct {
	profiles map[string]*entities.UserProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*entities.UserProfile)}
}

func (r *fakeProfileRepo) Load(ctx context.Context, userID string) (*entities.UserProfile, error) {
	profile, ok := r.profiles[userID]
	if !ok {
		return nil, entities.ErrProfileNotFound
	}
	copied := *profile
	return &copied, nil
}

func (r *fakeProfileRepo) Save(ctx context.Context, profile *entities.UserProfile) error {
	copied := *profile
	r.profiles[profile.UserID] = &copied
	return nil
}

func (r *fakeProfileRepo) UpdateStreak(ctx context.Context, userID string, streak int, lastLoginDate string) error {
	profile, ok := r.profiles[userID]
	if !ok {
		return entities.ErrProfileNotFound
	}
	profile.Streak = streak
	profile.LastLoginDate = lastLoginDate
	return nil
}

// fakeTokenRepo keeps login tokens in memory.
type fakeTokenRepo struct {
	tokens []*ports.LoginToken
	nextID int
}

func (r *fakeTokenRepo) Create(ctx context.Context, token *ports.LoginToken) error {
	for _, t := range r.tokens {
		if t.Email == token.Email && t.UsedAt == nil {
			used := token.CreatedAt
			t.UsedAt = &used
		}
	}
	r.nextID++
	token.ID = r.nextID
	copied := *token
	r.tokens = append(r.tokens, &copied)
	return nil
}

func (r *fakeTokenRepo) FindActive(ctx context.Context, email string) (*ports.LoginToken, error) {
	for i := len(r.tokens) - 1; i >= 0; i-- {
		t := r.tokens[i]
		if t.Email == email && t.UsedAt == nil {
			copied := *t
			return &copied, nil
		}
	}
	return nil, entities.ErrLoginTokenInvalid
}

func (r *fakeTokenRepo) MarkUsed(ctx context.Context, id int) error {
	for _, t := range r.tokens {
		if t.ID == id && t.UsedAt == nil {
			used := t.CreatedAt
			t.UsedAt = &used
			return nil
		}
	}
	return entities.ErrLoginTokenInvalid
}

func (r *fakeTokenRepo) CleanupExpired(ctx context.Context) error {
	return nil
}

// fakeMailer records outbound mail.
type fakeMailer struct {
	updates    []ports.ProgressUpdate
	loginLinks []string
	sendErr    error
}

func (m *fakeMailer) Send(ctx context.Context, update ports.ProgressUpdate) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.updates = append(m.updates, update)
	return nil
}

func (m *fakeMailer) SendLoginLink(ctx context.Context, email, lang, link string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.loginLinks = append(m.loginLinks, link)
	return nil
}
