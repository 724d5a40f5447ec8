package backend

import (
	"context"

	"github.com/dmitrijs2005/gophnotes/internal/api"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
)

var errNoNote = &APIError{Kind: ErrServer, Message: "server returned no note"}

// List returns the notes owned by ownerID, most recently updated first.
func (c *GRPCClient) List(ctx context.Context, ownerID string) ([]models.Note, error) {
	resp, err := c.notes.List(ctx, &api.ListNotesRequest{UserId: ownerID})
	if err != nil {
		return nil, mapError(err)
	}

	notes := make([]models.Note, 0, len(resp.Notes))
	for _, n := range resp.Notes {
		if n != nil {
			notes = append(notes, noteFromAPI(n))
		}
	}
	return notes, nil
}

func (c *GRPCClient) Insert(ctx context.Context, title, content, userID string) (models.Note, error) {
	resp, err := c.notes.Insert(ctx, &api.InsertNoteRequest{Title: title, Content: content, UserId: userID})
	return noteResult(resp, err)
}

func (c *GRPCClient) Update(ctx context.Context, id, title, content string) (models.Note, error) {
	resp, err := c.notes.Update(ctx, &api.UpdateNoteRequest{Id: id, Title: title, Content: content})
	return noteResult(resp, err)
}

func (c *GRPCClient) Delete(ctx context.Context, id string) error {
	if _, err := c.notes.Delete(ctx, &api.DeleteNoteRequest{Id: id}); err != nil {
		return mapError(err)
	}
	return nil
}

func noteResult(resp *api.NoteResponse, err error) (models.Note, error) {
	if err != nil {
		return models.Note{}, mapError(err)
	}
	n := resp.GetNote()
	if n == nil {
		return models.Note{}, errNoNote
	}
	return noteFromAPI(n), nil
}
