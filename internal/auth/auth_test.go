package auth

import (
	"testing"
	"time"

	"folio/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-key-12345678901234567890123456789012"

func TestBcryptHasher(t *testing.T) {
	t.Parallel()
	h := &BcryptHasher{Cost: bcrypt.MinCost}

	first, err := h.Hash("secret1")
	require.NoError(t, err)
	second, err := h.Hash("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, "secret1", first)
	assert.NotEqual(t, first, second, "salt must differ per call")
	assert.NoError(t, h.Compare(first, "secret1"))
	assert.ErrorIs(t, h.Compare(first, "wrong"), ErrPasswordMismatch)
}

func TestTokenManager_IssueVerify(t *testing.T) {
	t.Parallel()
	m := NewTokenManager(testSecret, time.Hour)
	user := &models.User{ID: "7b6a3f7e-0d7e-4c1f-9d55-1c1c1c1c1c1c", Name: "Nico", Email: "nico@example.com"}

	token, err := m.Issue(user)
	require.NoError(t, err)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID())
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.Name, claims.Name)
	assert.Equal(t, Issuer, claims.Issuer)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.Expiry(), 5*time.Second)
}

func TestTokenManager_Rejects(t *testing.T) {
	t.Parallel()
	m := NewTokenManager(testSecret, time.Hour)
	user := &models.User{ID: "u1", Email: "a@b.c"}

	valid, err := m.Issue(user)
	require.NoError(t, err)

	expired := NewTokenManager(testSecret, time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.Issue(user)
	require.NoError(t, err)

	otherSecret, err := NewTokenManager("another-secret-another-secret-another", time.Hour).Issue(user)
	require.NoError(t, err)

	wrongAudience := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		Issuer:    Issuer,
		Audience:  jwt.ClaimStrings{"someone-else"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	wrongAudienceToken, err := wrongAudience.SignedString([]byte(testSecret))
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "u1",
		Issuer:    Issuer,
		Audience:  jwt.ClaimStrings{Audience},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"tampered", valid + "x"},
		{"expired", expiredToken},
		{"wrong secret", otherSecret},
		{"wrong audience", wrongAudienceToken},
		{"alg none", noneToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Verify(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
