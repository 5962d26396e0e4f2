package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finflow/identity/internal/model"
)

func testUser() model.User {
	return model.User{
		ID:        uuid.New(),
		Email:     "a@x.com",
		KYCStatus: model.KYCPending,
	}
}

func TestJWT_IssueParseRoundTrip(t *testing.T) {
	j := NewJWT("testsecret", 24*time.Hour)
	user := testUser()

	tokenString, err := j.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := j.Parse(tokenString)
	require.NoError(t, err)

	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, model.KYCPending, claims.KYCStatus)
	assert.WithinDuration(t, time.Now(), claims.IssuedAt, 5*time.Second)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt, 5*time.Second)
}

func TestJWT_SnapshotReflectsIssuanceState(t *testing.T) {
	j := NewJWT("testsecret", time.Hour)
	user := testUser()

	tokenString, err := j.Issue(user)
	require.NoError(t, err)

	// The account moves on; the outstanding token must not.
	user.KYCStatus = model.KYCVerified

	claims, err := j.Parse(tokenString)
	require.NoError(t, err)
	assert.Equal(t, model.KYCPending, claims.KYCStatus)
}

func TestJWT_Expired(t *testing.T) {
	j := NewJWT("testsecret", -time.Minute)

	tokenString, err := j.Issue(testUser())
	require.NoError(t, err)

	_, err = j.Parse(tokenString)
	require.ErrorIs(t, err, model.ErrTokenExpired)
}

func TestJWT_WrongSecret(t *testing.T) {
	issuer := NewJWT("secret-one", time.Hour)
	verifier := NewJWT("secret-two", time.Hour)

	tokenString, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, err = verifier.Parse(tokenString)
	require.ErrorIs(t, err, model.ErrTokenSignature)
}

func TestJWT_Malformed(t *testing.T) {
	j := NewJWT("testsecret", time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not.a.token"},
		{name: "truncated", token: "eyJhbGciOiJIUzI1NiJ9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := j.Parse(tt.token)
			require.ErrorIs(t, err, model.ErrTokenMalformed)
		})
	}
}

func TestJWT_TTL(t *testing.T) {
	j := NewJWT("testsecret", 12*time.Hour)
	assert.Equal(t, 12*time.Hour, j.TTL())
}
