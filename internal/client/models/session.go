// Package models defines the client-side view of sessions, users and notes.
package models

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User is the identity embedded in a Session.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is the credential bundle issued by the auth backend. It is
// persisted as JSON, so the field tags are the storage format.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         *User     `json:"user"`
}

// ExpiresWithin reports whether the access token expires before now+d.
func (s *Session) ExpiresWithin(now time.Time, d time.Duration) bool {
	return !s.ExpiresAt.After(now.Add(d))
}

// Clone returns a deep copy; nil stays nil.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.User = s.User.Clone()
	return &c
}

func (u *User) GetID() string {
	if u == nil {
		return ""
	}
	return u.ID
}

func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// ErrNoUserClaims is returned when an access token carries no user id.
var ErrNoUserClaims = errors.New("access token carries no user")

type accessClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// UserFromAccessToken decodes the identity and expiry from an access token
// without verifying its signature. The client cannot verify it (the secret
// lives on the backend); it only uses the claims to fill gaps in a session.
func UserFromAccessToken(token string) (*User, time.Time, error) {
	claims := &accessClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, time.Time{}, err
	}

	id := claims.UserID
	if id == "" {
		id = claims.Subject
	}
	if id == "" {
		return nil, time.Time{}, ErrNoUserClaims
	}

	var exp time.Time
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}
	return &User{ID: id, Email: claims.Email}, exp, nil
}
