package model

import (
	"time"

	"github.com/google/uuid"
)

// Claims is the identity snapshot embedded and signed inside a token. The
// KYC stage reflects account state at issuance, not at verification time.
type Claims struct {
	UserID    uuid.UUID
	Email     string
	KYCStatus KYCStatus
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenManager issues and validates signed identity tokens.
type TokenManager interface {
	Issue(user User) (string, error)
	Parse(token string) (Claims, error)
	TTL() time.Duration
}
