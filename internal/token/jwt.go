package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/finflow/identity/internal/model"
)

var _ model.TokenManager = (*JWT)(nil)

// Claims represents the signed identity snapshot carried by a token.
type Claims struct {
	jwt.RegisteredClaims
	UserID    uuid.UUID       `json:"user_id"`
	Email     string          `json:"email"`
	KYCStatus model.KYCStatus `json:"kyc_status"`
}

// JWT implements TokenManager backed by symmetric HMAC. The secret is
// shared across all verifying instances and fixed for the process lifetime.
type JWT struct {
	secret []byte
	ttl    time.Duration
}

// NewJWT creates a token manager with the provided secret and expiry horizon.
func NewJWT(secret string, ttl time.Duration) *JWT {
	return &JWT{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token embedding the user's identity and KYC stage as of now.
// Timestamps are whole-second epoch values.
func (j *JWT) Issue(user model.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
		UserID:    user.ID,
		Email:     user.Email,
		KYCStatus: user.KYCStatus,
	})

	tokenString, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Parse validates signature and expiry and returns the embedded claims.
// The check is stateless; revocation is layered by the caller.
func (j *JWT) Parse(tokenString string) (model.Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return j.secret, nil
	}, jwt.WithExpirationRequired())
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return model.Claims{}, model.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return model.Claims{}, model.ErrTokenSignature
	case err != nil:
		return model.Claims{}, fmt.Errorf("%w: %v", model.ErrTokenMalformed, err)
	}
	if !token.Valid || claims.ExpiresAt == nil {
		return model.Claims{}, model.ErrTokenMalformed
	}

	out := model.Claims{
		UserID:    claims.UserID,
		Email:     claims.Email,
		KYCStatus: claims.KYCStatus,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}

	return out, nil
}

// TTL returns the configured expiry horizon for issued tokens.
func (j *JWT) TTL() time.Duration {
	return j.ttl
}
