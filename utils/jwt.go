package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"leveluplife/config"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenRevoked = errors.New("token revoked")
)

// TokenManager issues and validates bearer tokens whose subject is a username.
type TokenManager struct {
	secret  []byte
	method  jwt.SigningMethod
	ttl     time.Duration
	revoked RevocationStore
	now     func() time.Time
}

func NewTokenManager(cfg config.JWTConfig, revoked RevocationStore) (*TokenManager, error) {
	if cfg.Secret == "" {
		return nil, errors.New("JWT secret is not set")
	}
	method, ok := jwt.GetSigningMethod(cfg.Algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported JWT algorithm %q", cfg.Algorithm)
	}
	return &TokenManager{
		secret:  []byte(cfg.Secret),
		method:  method,
		ttl:     cfg.AccessTokenDuration,
		revoked: revoked,
		now:     time.Now,
	}, nil
}

// Issue signs an access token for username.
func (m *TokenManager) Issue(username string) (string, error) {
	now := m.now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		ID:        uuid.NewString(),
	}
	return jwt.NewWithClaims(m.method, claims).SignedString(m.secret)
}

// Parse validates signature, expiry and revocation and returns the claims.
func (m *TokenManager) Parse(ctx context.Context, tokenStr string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{m.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	if m.revoked != nil && claims.ID != "" {
		revoked, err := m.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("check revocation: %w", err)
		}
		if revoked {
			return nil, ErrTokenRevoked
		}
	}
	return claims, nil
}

// Revoke blacklists the token's jti until it would have expired anyway.
func (m *TokenManager) Revoke(ctx context.Context, claims *jwt.RegisteredClaims) error {
	if m.revoked == nil {
		return errors.New("no revocation store configured")
	}
	if claims.ID == "" {
		return errors.New("empty jti")
	}
	expiresAt := m.now().Add(m.ttl)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	return m.revoked.Revoke(ctx, claims.ID, expiresAt)
}
