package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/finflow/identity/internal/logger"
	"github.com/finflow/identity/internal/model"
)

const (
	revocationKeyPrefix = "revoked"

	// minRevocationTTL keeps an entry alive even when the remaining token
	// life rounds down to zero, so a revoke observed near expiry still wins.
	minRevocationTTL = time.Minute
)

// Revocation tracks tokens that must be rejected before their natural
// expiry. Entries carry their own TTL so the set never accumulates; an
// absent key means "not revoked".
type Revocation struct {
	kv     model.KeyValueStore
	logger *logger.Logger
}

// NewRevocation creates the revocation store over the shared key/value
// collaborator.
func NewRevocation(kv model.KeyValueStore, logger *logger.Logger) *Revocation {
	return &Revocation{kv: kv, logger: logger}
}

func revocationKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return revocationKeyPrefix + ":" + hex.EncodeToString(sum[:])
}

// Revoke marks the token unusable for at least ttl. ttl should be no
// shorter than the token's remaining validity.
func (s *Revocation) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl < minRevocationTTL {
		ttl = minRevocationTTL
	}

	if err := s.kv.Set(ctx, revocationKey(token), "1", ttl); err != nil {
		s.logger.Error("Revocation: failed to record revocation", "error", err.Error())
		return fmt.Errorf("failed to record revocation: %w", err)
	}

	return nil
}

// IsRevoked reports whether the token has been revoked. Absence of an entry
// means not revoked, never "unknown".
func (s *Revocation) IsRevoked(ctx context.Context, token string) (bool, error) {
	_, err := s.kv.Get(ctx, revocationKey(token))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check revocation: %w", err)
	}

	return true, nil
}
