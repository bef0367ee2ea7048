// Package identity answers "who is signed in" from the auth SDK's session
// token. Token verification is the server's job; the client only reads the
// claims it needs for display and request headers.
package identity

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"upshift/internal/shared/apperror"
)

type Profile struct {
	UserID string
	Name   string
	Email  string
}

//go:generate mockgen -source=identity.go -destination=mock/identity_mock.go -package=mock
type Provider interface {
	IsSignedIn() bool
	Profile() (Profile, error)
	// SessionToken returns the bearer token for remote calls.
	SessionToken(ctx context.Context) (string, error)
}

type sessionClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenSession is a Provider backed by a single session JWT handed to the
// app by the auth SDK.
type TokenSession struct {
	token  string
	claims sessionClaims
	valid  bool
	now    func() time.Time
}

func NewTokenSession(token string) *TokenSession {
	s := &TokenSession{token: token, now: time.Now}
	if token == "" {
		return s
	}
	claims := sessionClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return s
	}
	s.claims = claims
	s.valid = true
	return s
}

func (s *TokenSession) IsSignedIn() bool {
	if !s.valid {
		return false
	}
	if s.claims.ExpiresAt != nil && !s.claims.ExpiresAt.After(s.now()) {
		return false
	}
	return true
}

func (s *TokenSession) Profile() (Profile, error) {
	if !s.IsSignedIn() {
		return Profile{}, apperror.ErrNotSignedIn
	}
	return Profile{
		UserID: s.claims.Subject,
		Name:   s.claims.Name,
		Email:  s.claims.Email,
	}, nil
}

func (s *TokenSession) SessionToken(ctx context.Context) (string, error) {
	if !s.IsSignedIn() {
		return "", apperror.ErrNotSignedIn
	}
	return s.token, nil
}
