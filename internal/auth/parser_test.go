package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techtify/ensured-billing/internal/model"
)

func signToken(t *testing.T, secret string, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestParseValidToken(t *testing.T) {
	parser := NewParser("test-secret")
	token := signToken(t, "test-secret", accessClaims{
		Name:     "Dante Rohlin",
		UserType: model.UserTypeContractor,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "103",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	principal, err := parser.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(103), principal.UserID)
	assert.Equal(t, "Dante Rohlin", principal.Name)
	assert.True(t, principal.IsContractor())
}

func TestParseWrongSecret(t *testing.T) {
	parser := NewParser("test-secret")
	token := signToken(t, "other-secret", accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "103",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := parser.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseExpiredToken(t *testing.T) {
	parser := NewParser("test-secret")
	token := signToken(t, "test-secret", accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "103",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	_, err := parser.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseBadSubject(t *testing.T) {
	parser := NewParser("test-secret")
	token := signToken(t, "test-secret", accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "not-a-number",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := parser.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseGarbage(t *testing.T) {
	parser := NewParser("test-secret")

	_, err := parser.Parse("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
