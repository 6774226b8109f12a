package helpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWT(t *testing.T) *JWTManager {
	t.Helper()
	m, err := NewJWTManager("test-secret", "issuer.test", "audience.test", 30*time.Minute)
	require.NoError(t, err)
	return m
}

func TestNewJWTManager_MissingSecret(t *testing.T) {
	m, err := NewJWTManager("", "iss", "aud", time.Minute)
	assert.Nil(t, m)
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestJWTManager_IssueAndParse(t *testing.T) {
	m := newTestJWT(t)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	m.now = func() time.Time { return fixed }

	tok, exp, err := m.Issue("ann@x.com")
	require.NoError(t, err)
	assert.Equal(t, fixed.Add(30*time.Minute), exp)

	claims, err := m.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", claims.Email)
	assert.Equal(t, "issuer.test", claims.Issuer)
	assert.Equal(t, jwt.ClaimStrings{"audience.test"}, claims.Audience)
	assert.Equal(t, exp.Unix(), claims.ExpiresAt.Unix())
}

func TestJWTManager_Parse_Rejects(t *testing.T) {
	m := newTestJWT(t)
	tok, _, err := m.Issue("ann@x.com")
	require.NoError(t, err)

	t.Run("other secret", func(t *testing.T) {
		other, err := NewJWTManager("other-secret", m.Issuer, m.Audience, m.TTL)
		require.NoError(t, err)
		_, err = other.Parse(tok)
		assert.Error(t, err)
	})

	t.Run("other audience", func(t *testing.T) {
		other, err := NewJWTManager("test-secret", m.Issuer, "someone-else", m.TTL)
		require.NoError(t, err)
		_, err = other.Parse(tok)
		assert.ErrorIs(t, err, jwt.ErrTokenInvalidAudience)
	})

	t.Run("other issuer", func(t *testing.T) {
		other, err := NewJWTManager("test-secret", "elsewhere", m.Audience, m.TTL)
		require.NoError(t, err)
		_, err = other.Parse(tok)
		assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
	})

	t.Run("expired", func(t *testing.T) {
		later := *m
		later.now = func() time.Time { return time.Now().Add(time.Hour) }
		_, err := later.Parse(tok)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.Parse("not-a-jwt")
		assert.Error(t, err)
	})
}
