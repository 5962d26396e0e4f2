package password

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/finflow/identity/internal/model"
)

var _ model.Hasher = (*Bcrypt)(nil)

// Bcrypt hashes credentials with a salted, adaptive work factor. Identical
// plaintext hashed twice yields different outputs; Verify always agrees.
type Bcrypt struct {
	cost int
}

// NewBcrypt creates a hasher with the given cost. Out-of-range costs fall
// back to the library default.
func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

// Hash produces a credential hash. Empty or whitespace-only plaintext is
// rejected before any hashing attempt.
func (b *Bcrypt) Hash(plaintext string) (string, error) {
	if strings.TrimSpace(plaintext) == "" {
		return "", model.ErrEmptyPassword
	}

	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), b.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(h), nil
}

// Verify reports whether plaintext matches the stored hash.
func (b *Bcrypt) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
