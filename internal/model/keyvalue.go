package model

import (
	"context"
	"time"
)

// KeyValueStore is a shared key/value collaborator with per-key expiry.
// Get returns ErrNotFound for absent keys.
type KeyValueStore interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
}
