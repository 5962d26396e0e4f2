package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finflow/identity/internal/model"
)

func newTestHasher() *Bcrypt {
	// MinCost keeps the suite fast; production cost comes from config.
	return NewBcrypt(4)
}

func TestBcrypt_HashAndVerify(t *testing.T) {
	h := newTestHasher()

	hash, err := h.Hash("longenough1")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, h.Verify("longenough1", hash))
	assert.False(t, h.Verify("wrongpassword", hash))
}

func TestBcrypt_SaltedHashesDiffer(t *testing.T) {
	h := newTestHasher()

	first, err := h.Hash("longenough1")
	require.NoError(t, err)
	second, err := h.Hash("longenough1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("longenough1", first))
	assert.True(t, h.Verify("longenough1", second))
}

func TestBcrypt_EmptyPasswordRejected(t *testing.T) {
	h := newTestHasher()

	tests := []struct {
		name      string
		plaintext string
	}{
		{name: "empty", plaintext: ""},
		{name: "whitespace only", plaintext: "   \t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Hash(tt.plaintext)
			require.ErrorIs(t, err, model.ErrEmptyPassword)
			require.ErrorIs(t, err, model.ErrInvalidInput)
		})
	}
}

func TestBcrypt_VerifyGarbageHash(t *testing.T) {
	h := newTestHasher()

	assert.False(t, h.Verify("longenough1", "not a bcrypt hash"))
}

func TestNewBcrypt_OutOfRangeCostFallsBack(t *testing.T) {
	assert.NotPanics(t, func() {
		h := NewBcrypt(-1)
		hash, err := h.Hash("longenough1")
		require.NoError(t, err)
		assert.True(t, h.Verify("longenough1", hash))
	})
}
