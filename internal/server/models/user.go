// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is an account. PasswordHash is argon2id(password, Salt).
type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	Salt         []byte
	CreatedAt    time.Time
}
