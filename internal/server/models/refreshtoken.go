package models

import "time"

// RefreshToken is an opaque, single-use token that can be exchanged for a new
// token pair until Expires.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}
