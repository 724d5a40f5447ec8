// Package notes stores the notes table. Every statement is scoped by the
// owner's user id, so a caller can never see or touch another user's rows.
package notes

import (
	"context"

	"github.com/dmitrijs2005/gophnotes/internal/server/models"
)

type Repository interface {
	// List returns the user's notes, most recently updated first.
	List(ctx context.Context, userID string) ([]models.Note, error)
	// Insert assigns id and timestamps and returns the stored row.
	Insert(ctx context.Context, note *models.Note) (*models.Note, error)
	// Update sets title and content, bumps updated_at and returns the row.
	// common.ErrorNotFound if no row with that id belongs to the user.
	Update(ctx context.Context, userID string, note *models.Note) (*models.Note, error)
	// Delete removes the row; deleting a missing row is not an error.
	Delete(ctx context.Context, userID, id string) error
}
