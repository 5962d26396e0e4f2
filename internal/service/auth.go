package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finflow/identity/internal/logger"
	"github.com/finflow/identity/internal/model"
)

// Auth is the facade external callers invoke. It composes the user
// directory, the token manager and the revocation store; it holds no state
// of its own.
type Auth struct {
	users      *Users
	tokens     model.TokenManager
	revocation *Revocation
	logger     *logger.Logger
}

// NewAuth creates the authentication facade.
func NewAuth(users *Users, tokens model.TokenManager, revocation *Revocation, logger *logger.Logger) *Auth {
	return &Auth{
		users:      users,
		tokens:     tokens,
		revocation: revocation,
		logger:     logger,
	}
}

// Register creates a new account.
func (a *Auth) Register(ctx context.Context, in RegisterInput) (model.User, error) {
	return a.users.Register(ctx, in)
}

// Login verifies credentials and issues a bearer token carrying the
// identity snapshot at issuance.
func (a *Auth) Login(ctx context.Context, email, password string) (string, model.User, error) {
	user, err := a.users.VerifyCredentials(ctx, email, password)
	if err != nil {
		return "", model.User{}, err
	}

	tokenString, err := a.tokens.Issue(user)
	if err != nil {
		a.logger.Error("Auth service: failed to issue token",
			"user_id", user.ID,
			"error", err.Error())
		return "", model.User{}, fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: login succeeded", "user_id", user.ID)

	return tokenString, user, nil
}

// Logout revokes the token for its remaining lifetime. Logout is
// idempotent: revoking an already-revoked or already-expired token is not
// an error.
func (a *Auth) Logout(ctx context.Context, tokenString string) error {
	claims, err := a.tokens.Parse(tokenString)
	switch {
	case errors.Is(err, model.ErrTokenExpired):
		// Natural expiry already makes the token unusable.
		return nil
	case err != nil:
		return err
	}

	if err := a.revocation.Revoke(ctx, tokenString, time.Until(claims.ExpiresAt)); err != nil {
		return err
	}

	a.logger.Info("Auth service: token revoked", "user_id", claims.UserID)

	return nil
}

// VerifyToken returns the embedded claims of a valid token. The revocation
// set is consulted first and fails closed: a revoked token is rejected
// without decoding.
func (a *Auth) VerifyToken(ctx context.Context, tokenString string) (model.Claims, error) {
	revoked, err := a.revocation.IsRevoked(ctx, tokenString)
	if err != nil {
		return model.Claims{}, err
	}
	if revoked {
		return model.Claims{}, model.ErrTokenRevoked
	}

	return a.tokens.Parse(tokenString)
}

// IsTokenValid collapses any verification failure to a boolean for the
// minimal surface. Callers needing the reason use VerifyToken.
func (a *Auth) IsTokenValid(ctx context.Context, tokenString string) bool {
	_, err := a.VerifyToken(ctx, tokenString)
	if err != nil {
		a.logger.Debug("Auth service: token rejected", "error", err.Error())
		return false
	}
	return true
}

// GetUser returns the identity view for the given id.
func (a *Auth) GetUser(ctx context.Context, id uuid.UUID) (model.User, error) {
	return a.users.GetByID(ctx, id)
}

// UpdateProfile applies a partial profile update.
func (a *Auth) UpdateProfile(ctx context.Context, id uuid.UUID, update ProfileUpdate) (model.User, error) {
	return a.users.UpdateProfile(ctx, id, update)
}

// UpdateKYCStatus overwrites the KYC stage. Outstanding tokens keep their
// issuance-time snapshot until re-issued.
func (a *Auth) UpdateKYCStatus(ctx context.Context, id uuid.UUID, status model.KYCStatus) (model.User, error) {
	return a.users.UpdateKYCStatus(ctx, id, status)
}

// UpdateStatus overwrites the account status.
func (a *Auth) UpdateStatus(ctx context.Context, id uuid.UUID, status model.Status) (model.User, error) {
	return a.users.UpdateStatus(ctx, id, status)
}
