package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/server/models"
	"github.com/dmitrijs2005/gophnotes/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// NoteService runs note operations on behalf of an authenticated user. The
// caller's user id always comes from the verified access token, never from
// the request body.
type NoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewNoteService(db *sql.DB, m repomanager.RepositoryManager) *NoteService {
	return &NoteService{db: db, repomanager: m}
}

// List returns the notes owned by ownerID, newest update first. Rows of other
// users are invisible, so asking for someone else's notes yields an empty list.
func (s *NoteService) List(ctx context.Context, callerID, ownerID string) ([]models.Note, error) {
	if ownerID != "" && ownerID != callerID {
		return []models.Note{}, nil
	}
	notes, err := s.repomanager.Notes(s.db).List(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("error listing notes: %w", err)
	}
	return notes, nil
}

// Insert stores a new note for the caller. ownerID, when given, must be the
// caller.
func (s *NoteService) Insert(ctx context.Context, callerID, ownerID, title, content string) (*models.Note, error) {
	if ownerID != "" && ownerID != callerID {
		return nil, ErrForeignOwner
	}
	if strings.TrimSpace(title) == "" {
		return nil, ErrTitleRequired
	}

	n, err := s.repomanager.Notes(s.db).Insert(ctx, &models.Note{UserID: callerID, Title: title, Content: content})
	if err != nil {
		return nil, fmt.Errorf("error inserting note: %w", err)
	}
	return n, nil
}

// Update replaces title and content of the caller's note.
func (s *NoteService) Update(ctx context.Context, callerID, id, title, content string) (*models.Note, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrTitleRequired
	}
	if !isNoteID(id) {
		return nil, ErrNoteNotFound
	}

	n, err := s.repomanager.Notes(s.db).Update(ctx, callerID, &models.Note{ID: id, Title: title, Content: content})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("error updating note: %w", err)
	}
	return n, nil
}

// Delete removes the caller's note. Unknown ids, malformed ones included,
// are a no-op.
func (s *NoteService) Delete(ctx context.Context, callerID, id string) error {
	if !isNoteID(id) {
		return nil
	}
	if err := s.repomanager.Notes(s.db).Delete(ctx, callerID, id); err != nil {
		return fmt.Errorf("error deleting note: %w", err)
	}
	return nil
}

// isNoteID reports whether id can address a row of the uuid keyed notes table.
func isNoteID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
