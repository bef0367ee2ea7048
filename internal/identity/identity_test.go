package identity

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"upshift/internal/shared/apperror"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte("test-secret"))
	assert.NoError(t, err)
	return s
}

func TestTokenSession_Profile(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{
		"sub":   "user_2abc",
		"name":  "Dana Field",
		"email": "dana@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	s := NewTokenSession(token)
	assert.True(t, s.IsSignedIn())

	p, err := s.Profile()
	assert.NoError(t, err)
	assert.Equal(t, "user_2abc", p.UserID)
	assert.Equal(t, "Dana Field", p.Name)
	assert.Equal(t, "dana@example.com", p.Email)

	got, err := s.SessionToken(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, token, got)
}

func TestTokenSession_Expired(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{
		"sub": "user_2abc",
		"exp": time.Now().Add(-time.Minute).Unix(),
	})

	s := NewTokenSession(token)
	assert.False(t, s.IsSignedIn())

	_, err := s.Profile()
	assert.ErrorIs(t, err, apperror.ErrNotSignedIn)
}

func TestTokenSession_NoExpiryClaim(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "user_2abc"})
	s := NewTokenSession(token)
	assert.True(t, s.IsSignedIn())
}

func TestTokenSession_EmptyOrGarbage(t *testing.T) {
	assert.False(t, NewTokenSession("").IsSignedIn())
	assert.False(t, NewTokenSession("not-a-jwt").IsSignedIn())

	_, err := NewTokenSession("").SessionToken(context.Background())
	assert.ErrorIs(t, err, apperror.ErrNotSignedIn)
}
