package utils

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leveluplife/config"
	"leveluplife/database/dbtest"
)

func newTestTokenManager(t *testing.T) *TokenManager {
	t.Helper()
	store := NewGormRevocationStore(dbtest.New(t))
	m, err := NewTokenManager(config.JWTConfig{
		Secret:              "test-secret",
		Algorithm:           "HS256",
		AccessTokenDuration: 30 * time.Minute,
	}, store)
	require.NoError(t, err)
	return m
}

func TestIssueAndParse(t *testing.T) {
	m := newTestTokenManager(t)

	token, err := m.Issue("Bricou")
	require.NoError(t, err)

	claims, err := m.Parse(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "Bricou", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestParseRejectsTampered(t *testing.T) {
	m := newTestTokenManager(t)
	token, err := m.Issue("Bricou")
	require.NoError(t, err)

	_, err = m.Parse(context.Background(), token+"x")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpired(t *testing.T) {
	m := newTestTokenManager(t)
	m.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, err := m.Issue("Bricou")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Parse(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsOtherAlgorithm(t *testing.T) {
	m := newTestTokenManager(t)
	claims := jwt.RegisteredClaims{
		Subject:   "Bricou",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = m.Parse(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRevoke(t *testing.T) {
	m := newTestTokenManager(t)
	ctx := context.Background()
	token, err := m.Issue("Bricou")
	require.NoError(t, err)
	claims, err := m.Parse(ctx, token)
	require.NoError(t, err)

	require.NoError(t, m.Revoke(ctx, claims))
	// revoking twice upserts
	require.NoError(t, m.Revoke(ctx, claims))

	_, err = m.Parse(ctx, token)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestNewTokenManagerRejectsNonHMAC(t *testing.T) {
	_, err := NewTokenManager(config.JWTConfig{Secret: "s", Algorithm: "RS256", AccessTokenDuration: time.Minute}, nil)
	assert.Error(t, err)

	_, err = NewTokenManager(config.JWTConfig{Algorithm: "HS256"}, nil)
	assert.Error(t, err)
}
