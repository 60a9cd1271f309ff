package services

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pacemaker/core/internal/domain/entities"
	"github.com/pacemaker/core/internal/infrastructure/config"
	"github.com/pacemaker/core/internal/infrastructure/logger"
	"github.com/pacemaker/core/internal/ports"
)

func newAuthService(tokens *fakeTokenRepo, mail *fakeMailer, now time.Time) *AuthService {
	jwtCfg := config.JWTConfig{
		Secret:        "test-secret-key",
		ExpiresIn:     24 * time.Hour,
		Issuer:        "pacemaker-test",
		LinkExpiresIn: 15 * time.Minute,
	}
	appCfg := config.AppConfig{BaseURL: "http://localhost:8080"}
	svc := NewAuthService(tokens, mail, jwtCfg, appCfg, logger.NewNop())
	svc.now = func() time.Time { return now }
	return svc
}

// requestAndExtractToken runs the full link request and pulls the raw token
// out of the mailed link.
func requestAndExtractToken(t *testing.T, svc *AuthService, mail *fakeMailer, email string) string {
	t.Helper()

	err := svc.RequestLink(context.Background(), ports.RequestLinkRequest{Email: email})
	require.NoError(t, err)
	require.Len(t, mail.loginLinks, 1)

	link, err := url.Parse(mail.loginLinks[len(mail.loginLinks)-1])
	require.NoError(t, err)
	return link.Query().Get("token")
}

func TestRequestLink_StoresHashNotToken(t *testing.T) {
	tokens := &fakeTokenRepo{}
	mail := &fakeMailer{}
	svc := newAuthService(tokens, mail, day(1))

	raw := requestAndExtractToken(t, svc, mail, "Hero@Example.com")

	require.Len(t, tokens.tokens, 1)
	stored := tokens.tokens[0]
	assert.Equal(t, "hero@example.com", stored.Email)
	assert.NotEqual(t, raw, stored.TokenHash)
	assert.False(t, strings.Contains(stored.TokenHash, raw))
	assert.True(t, stored.ExpiresAt.Equal(day(1).Add(15*time.Minute)))
}

func TestVerifyToken_RoundTrip(t *testing.T) {
	tokens := &fakeTokenRepo{}
	mail := &fakeMailer{}
	// Real clock: the issued JWT is validated against wall time.
	svc := newAuthService(tokens, mail, time.Now())

	raw := requestAndExtractToken(t, svc, mail, "hero@example.com")

	resp, err := svc.VerifyToken(context.Background(), ports.VerifyTokenRequest{
		Email: "hero@example.com",
		Token: raw,
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, UserIDForEmail("hero@example.com"), resp.UserID)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, claims.UserID)
	assert.Equal(t, "hero@example.com", claims.Email)
}

func TestVerifyToken_SingleUse(t *testing.T) {
	tokens := &fakeTokenRepo{}
	mail := &fakeMailer{}
	svc := newAuthService(tokens, mail, time.Now())

	raw := requestAndExtractToken(t, svc, mail, "hero@example.com")

	_, err := svc.VerifyToken(context.Background(), ports.VerifyTokenRequest{Email: "hero@example.com", Token: raw})
	require.NoError(t, err)

	_, err = svc.VerifyToken(context.Background(), ports.VerifyTokenRequest{Email: "hero@example.com", Token: raw})
	assert.ErrorIs(t, err, entities.ErrLoginTokenInvalid)
}

func TestVerifyToken_WrongToken(t *testing.T) {
	tokens := &fakeTokenRepo{}
	mail := &fakeMailer{}
	svc := newAuthService(tokens, mail, time.Now())

	requestAndExtractToken(t, svc, mail, "hero@example.com")

	_, err := svc.VerifyToken(context.Background(), ports.VerifyTokenRequest{
		Email: "hero@example.com",
		Token: "deadbeef",
	})
	assert.ErrorIs(t, err, entities.ErrLoginTokenInvalid)
}

func TestVerifyToken_NewLinkInvalidatesOld(t *testing.T) {
	tokens := &fakeTokenRepo{}
	mail := &fakeMailer{}
	svc := newAuthService(tokens, mail, time.Now())

	first := requestAndExtractToken(t, svc, mail, "hero@example.com")

	err := svc.RequestLink(context.Background(), ports.RequestLinkRequest{Email: "hero@example.com"})
	require.NoError(t, err)

	_, err = svc.VerifyToken(context.Background(), ports.VerifyTokenRequest{Email: "hero@example.com", Token: first})
	assert.ErrorIs(t, err, entities.ErrLoginTokenInvalid)
}

func TestUserIDForEmail_Deterministic(t *testing.T) {
	a := UserIDForEmail("hero@example.com")
	b := UserIDForEmail("  Hero@Example.COM ")
	c := UserIDForEmail("other@example.com")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.True(t, entities.IsDurableID(a))
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := newAuthService(&fakeTokenRepo{}, &fakeMailer{}, day(1))

	_, err := svc.ValidateToken("not-a-jwt")
	assert.Error(t, err)
}
