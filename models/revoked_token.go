package models

import "time"

// RevokedToken records an access token jti that must no longer be accepted.
type RevokedToken struct {
	JTI       string    `gorm:"primaryKey;type:char(36)" json:"jti"`
	RevokedAt time.Time `json:"revoked_at"`
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
}

func (RevokedToken) TableName() string {
	return "revoked_tokens"
}

func NewRevokedToken(jti string, expiresAt time.Time) *RevokedToken {
	return &RevokedToken{
		JTI:       jti,
		RevokedAt: time.Now(),
		ExpiresAt: expiresAt,
	}
}

// Expired reports whether the token would have been rejected anyway.
func (t RevokedToken) Expired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}
