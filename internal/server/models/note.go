package models

import "time"

// Note is a row of the notes table. UserID is the owner; every statement
// touching a note is scoped by it.
type Note struct {
	ID        string
	UserID    string
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
