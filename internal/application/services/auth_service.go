package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pacemaker/core/internal/domain/entities"
	"github.com/pacemaker/core/internal/infrastructure/config"
	"github.com/pacemaker/core/internal/infrastructure/logger"
	"github.com/pacemaker/core/internal/ports"
)

// Claims represents the JWT session claims
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// userNamespace seeds deterministic user ids so the same email always maps
// to the same account.
var userNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// AuthService implements the passwordless magic-link login flow. Tokens are
// single use, short lived and stored only as bcrypt hashes.
type AuthService struct {
	tokenRepo ports.LoginTokenRepository
	mailer    ports.Mailer
	jwtConfig config.JWTConfig
	baseURL   string
	logger    *logger.Logger
	now       func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(tokenRepo ports.LoginTokenRepository, mailer ports.Mailer, jwtConfig config.JWTConfig, appConfig config.AppConfig, logger *logger.Logger) *AuthService {
	return &AuthService{
		tokenRepo: tokenRepo,
		mailer:    mailer,
		jwtConfig: jwtConfig,
		baseURL:   appConfig.BaseURL,
		logger:    logger,
		now:       time.Now,
	}
}

// RequestLink generates a one-time login token and mails the sign-in link.
// The raw token leaves the process only inside the email.
func (s *AuthService) RequestLink(ctx context.Context, req ports.RequestLinkRequest) error {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Generate random token
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return fmt.Errorf("failed to generate random token: %w", err)
	}
	token := hex.EncodeToString(tokenBytes)

	// Hash token for storage
	tokenHash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash token: %w", err)
	}

	record := &ports.LoginToken{
		Email:     email,
		TokenHash: string(tokenHash),
		ExpiresAt: s.now().Add(s.jwtConfig.LinkExpiresIn),
		CreatedAt: s.now(),
	}
	if err := s.tokenRepo.Create(ctx, record); err != nil {
		return fmt.Errorf("failed to store login token: %w", err)
	}

	link := fmt.Sprintf("%s/auth/verify?email=%s&token=%s",
		s.baseURL, url.QueryEscape(email), token)

	if err := s.mailer.SendLoginLink(ctx, email, req.Lang, link); err != nil {
		return fmt.Errorf("failed to send login link: %w", err)
	}

	s.logger.Infow("Login link sent", "email", email)
	return nil
}

// VerifyToken exchanges a magic-link token for a session. The token is
// consumed on success regardless of what the caller does with the session.
func (s *AuthService) VerifyToken(ctx context.Context, req ports.VerifyTokenRequest) (*ports.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	stored, err := s.tokenRepo.FindActive(ctx, email)
	if err != nil {
		s.logger.Warnw("Token verification with no active token", "email", email)
		return nil, entities.ErrLoginTokenInvalid
	}

	if !stored.IsValid() {
		return nil, entities.ErrLoginTokenInvalid
	}

	if err := bcrypt.CompareHashAndPassword([]byte(stored.TokenHash), []byte(req.Token)); err != nil {
		s.logger.Warnw("Token verification with wrong token", "email", email)
		return nil, entities.ErrLoginTokenInvalid
	}

	if err := s.tokenRepo.MarkUsed(ctx, stored.ID); err != nil {
		return nil, fmt.Errorf("failed to consume login token: %w", err)
	}

	userID := UserIDForEmail(email)
	accessToken, err := s.generateAccessToken(userID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	s.logger.LogUserAction(userID, "login", map[string]interface{}{"email": email})

	return &ports.AuthResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.jwtConfig.ExpiresIn.Seconds()),
		UserID:      userID,
	}, nil
}

// ValidateToken validates a session JWT and returns its claims
func (s *AuthService) ValidateToken(tokenString string) (*ports.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.Secret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return &ports.Claims{
		UserID: claims.UserID,
		Email:  claims.Email,
	}, nil
}

// UserIDForEmail derives the stable account id for an email address.
func UserIDForEmail(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	return uuid.NewSHA1(userNamespace, []byte(normalized)).String()
}

func (s *AuthService) generateAccessToken(userID, email string) (string, error) {
	now := s.now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtConfig.ExpiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.jwtConfig.Issuer,
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtConfig.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}
