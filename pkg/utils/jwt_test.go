package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("secret", "storefront", time.Hour)

	token, expiresAt, err := m.Generate(7, "anna@example.com", "admin")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "anna@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "7", claims.Subject)
}

func TestTokenManager_Rejects(t *testing.T) {
	m := NewTokenManager("secret", "storefront", time.Hour)
	valid, _, err := m.Generate(1, "a@example.com", "user")
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenManager("other-secret", "storefront", time.Hour)
		_, err := other.Parse(valid)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewTokenManager("secret", "someone-else", time.Hour)
		_, err := other.Parse(valid)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		past := NewTokenManager("secret", "storefront", time.Minute)
		past.now = func() time.Time { return time.Now().Add(-time.Hour) }
		expired, _, err := past.Generate(1, "a@example.com", "user")
		require.NoError(t, err)

		_, err = m.Parse(expired)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("none algorithm", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 1, Role: "admin"})
		token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = m.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.Parse("definitely.not.a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc.def", "abc.def", true},
		{"bearer abc.def", "abc.def", true},
		{"Bearer   ", "", false},
		{"Basic abc", "", false},
		{"abc.def", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		token, ok := ExtractBearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.token, token, tt.header)
	}
}
