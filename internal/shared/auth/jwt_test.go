package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVerifier(t *testing.T, ttl time.Duration) *Verifier {
	t.Helper()
	v, err := NewVerifier("test-secret-at-least-32-chars-long", "resume-optimizer-test", ttl, false)
	require.NoError(t, err)
	return v
}

func TestIssueAndVerify(t *testing.T) {
	v := newTestVerifier(t, time.Hour)

	token, err := v.Issue("user-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestVerifyEmptyToken(t *testing.T) {
	v := newTestVerifier(t, time.Hour)
	_, err := v.Verify("  ")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestVerifyExpiredToken(t *testing.T) {
	v := newTestVerifier(t, time.Hour)
	token, err := v.Issue("user-1")
	require.NoError(t, err)

	v.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = v.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	v := newTestVerifier(t, time.Hour)
	other, err := NewVerifier("a-completely-different-secret-value", "resume-optimizer-test", time.Hour, false)
	require.NoError(t, err)

	token, err := other.Issue("user-1")
	require.NoError(t, err)

	_, err = v.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsTokenWithoutExpiry(t *testing.T) {
	v := newTestVerifier(t, time.Hour)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "resume-optimizer-test", Subject: "user-1"},
		UserID:           "user-1",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	require.NoError(t, err)

	_, err = v.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	v := newTestVerifier(t, time.Hour)
	_, err := v.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewVerifierRequiresSecretInProduction(t *testing.T) {
	_, err := NewVerifier("", "iss", time.Hour, true)
	require.Error(t, err)

	v, err := NewVerifier("", "iss", time.Hour, false)
	require.NoError(t, err)
	assert.Equal(t, []byte(devSecret), v.secret)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", BearerToken("Bearer abc"))
	assert.Equal(t, "abc", BearerToken("bearer  abc "))
	assert.Equal(t, "", BearerToken("Basic abc"))
	assert.Equal(t, "", BearerToken(""))
	assert.Equal(t, "", BearerToken("Bearer "))
}
