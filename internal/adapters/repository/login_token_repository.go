package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pacemaker/core/internal/domain/entities"
	"github.com/pacemaker/core/internal/infrastructure/database"
	"github.com/pacemaker/core/internal/ports"
)

// LoginTokenRepositoryImpl implements the LoginTokenRepository interface
type LoginTokenRepositoryImpl struct {
	db *database.DB
}

// NewLoginTokenRepository creates a new login token repository
func NewLoginTokenRepository(db *database.DB) ports.LoginTokenRepository {
	return &LoginTokenRepositoryImpl{db: db}
}

// Create stores a hashed login token. Any earlier unused token for the same
// email is invalidated so at most one link is exchangeable at a time.
func (r *LoginTokenRepositoryImpl) Create(ctx context.Context, token *ports.LoginToken) error {
	invalidate := `
		UPDATE login_tokens
		SET used_at = CURRENT_TIMESTAMP
		WHERE email = $1 AND used_at IS NULL`

	if _, err := r.db.DB.ExecContext(ctx, invalidate, token.Email); err != nil {
		return fmt.Errorf("invalidate previous tokens: %w", err)
	}

	query := `
		INSERT INTO login_tokens (email, token_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := r.db.DB.QueryRowContext(ctx, query,
		token.Email, token.TokenHash, token.ExpiresAt, token.CreatedAt,
	).Scan(&token.ID)
	if err != nil {
		return fmt.Errorf("create login token: %w", err)
	}

	return nil
}

// FindActive returns the newest unused, unexpired token for an email.
func (r *LoginTokenRepositoryImpl) FindActive(ctx context.Context, email string) (*ports.LoginToken, error) {
	query := `
		SELECT id, email, token_hash, expires_at, created_at, used_at
		FROM login_tokens
		WHERE email = $1 AND used_at IS NULL AND expires_at > CURRENT_TIMESTAMP
		ORDER BY created_at DESC
		LIMIT 1`

	var token ports.LoginToken
	err := r.db.DB.GetContext(ctx, &token, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrLoginTokenInvalid
		}
		return nil, fmt.Errorf("find active login token: %w", err)
	}

	return &token, nil
}

// MarkUsed consumes a token.
func (r *LoginTokenRepositoryImpl) MarkUsed(ctx context.Context, id int) error {
	query := `
		UPDATE login_tokens
		SET used_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND used_at IS NULL`

	result, err := r.db.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("mark login token used: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entities.ErrLoginTokenInvalid
	}

	return nil
}

// CleanupExpired removes tokens past their expiry.
func (r *LoginTokenRepositoryImpl) CleanupExpired(ctx context.Context) error {
	query := `DELETE FROM login_tokens WHERE expires_at < CURRENT_TIMESTAMP`

	if _, err := r.db.DB.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("cleanup expired login tokens: %w", err)
	}

	return nil
}
