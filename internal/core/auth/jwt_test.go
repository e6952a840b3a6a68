package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthy-backend/internal/domain"
)

func newJWTer(ttl time.Duration) *JWTer {
	return &JWTer{Secret: []byte("test-secret"), Issuer: "healthy-test", TTL: ttl}
}

func TestIssueExtract_RoundTrip(t *testing.T) {
	j := newJWTer(0)
	for _, email := range []string{"a@x.com", "Mixed.Case@Example.org", "user+tag@mail.co"} {
		tok, err := j.Issue(email)
		require.NoError(t, err)

		got, err := j.Extract(tok)
		require.NoError(t, err)
		assert.Equal(t, email, got)
	}
}

func TestIssue_NoExpiryByDefault(t *testing.T) {
	j := newJWTer(0)
	tok, err := j.Issue("a@x.com")
	require.NoError(t, err)

	var claims jwt.RegisteredClaims
	_, _, err = jwt.NewParser().ParseUnverified(tok, &claims)
	require.NoError(t, err)
	assert.Nil(t, claims.ExpiresAt)
	assert.Equal(t, "healthy-test", claims.Issuer)
}

func TestIssue_EmptyEmail(t *testing.T) {
	_, err := newJWTer(0).Issue("  ")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExtract_WrongSecret(t *testing.T) {
	tok, err := newJWTer(0).Issue("a@x.com")
	require.NoError(t, err)

	other := &JWTer{Secret: []byte("another-secret"), Issuer: "healthy-test"}
	_, err = other.Extract(tok)
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestExtract_WrongIssuer(t *testing.T) {
	tok, err := newJWTer(0).Issue("a@x.com")
	require.NoError(t, err)

	other := &JWTer{Secret: []byte("test-secret"), Issuer: "someone-else"}
	_, err = other.Extract(tok)
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestExtract_Expired(t *testing.T) {
	j := newJWTer(-2 * time.Minute) // beyond the 60s leeway
	tok, err := j.Issue("a@x.com")
	require.NoError(t, err)

	_, err = j.Extract(tok)
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestExtract_Garbage(t *testing.T) {
	j := newJWTer(0)
	for _, tok := range []string{"", "not.a.jwt", "abc", "a.b.c.d"} {
		_, err := j.Extract(tok)
		require.ErrorIs(t, err, domain.ErrInvalidToken, "token %q", tok)
	}
}

func TestExtract_UnsignedAlgNone(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject: "a@x.com",
		Issuer:  "healthy-test",
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newJWTer(0).Extract(tok)
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestExtract_MissingSubject(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer: "healthy-test",
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = newJWTer(0).Extract(tok)
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}
