package state

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/gophnotes/internal/client/backend"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

const (
	FetchFailedMessage = "Failed to fetch notes"
	OfflineMessage     = "You seem to be offline. Check your internet connection."
)

// Errors raised before any request is made. Their text is shown as is.
var (
	ErrTitleRequired = errors.New("Please enter a title")
	ErrNoUserSession = errors.New("No user session found")
)

// Notes keeps the cached notes collection in sync with the notes table.
type Notes struct {
	store  *Store
	api    backend.NotesAPI
	logger logging.Logger
}

func NewNotes(store *Store, api backend.NotesAPI, logger logging.Logger) *Notes {
	return &Notes{store: store, api: api, logger: logger}
}

// FetchAll replaces the collection with the notes of userID, newest update
// first. On failure the previous collection stays and the message is kept
// in the notes error.
func (n *Notes) FetchAll(ctx context.Context, userID string) Result[[]models.Note] {
	n.store.Dispatch(notesPending{})

	items, err := n.api.List(ctx, userID)
	if err != nil {
		n.store.Dispatch(notesFetchFailed{message: messageOr(err, FetchFailedMessage)})
		return Result[[]models.Note]{Err: err}
	}

	n.store.Dispatch(notesFetched{items: items})
	return Result[[]models.Note]{Value: items}
}

// Add inserts a note and puts the stored record at the front of the
// collection. Failures are returned only; the shared error is untouched.
func (n *Notes) Add(ctx context.Context, title, content, userID string) Result[models.Note] {
	if userID == "" {
		return Result[models.Note]{Err: ErrNoUserSession}
	}

	note, err := n.api.Insert(ctx, title, content, userID)
	if err != nil {
		return Result[models.Note]{Err: err}
	}

	n.store.Dispatch(noteAdded{note: note})
	return Result[models.Note]{Value: note}
}

// Update saves the note and swaps the cached copy for the stored record.
func (n *Notes) Update(ctx context.Context, id, title, content string) Result[models.Note] {
	note, err := n.api.Update(ctx, id, title, content)
	if err != nil {
		return Result[models.Note]{Err: err}
	}

	a := &noteUpdated{note: note}
	n.store.Dispatch(a)
	if !a.found {
		n.logger.Debug(ctx, "updated note is not cached", "note_id", note.ID)
	}
	return Result[models.Note]{Value: note}
}

// Delete removes the note on the server, then from the collection.
func (n *Notes) Delete(ctx context.Context, id string) Result[struct{}] {
	if err := n.api.Delete(ctx, id); err != nil {
		return Result[struct{}]{Err: err}
	}

	n.store.Dispatch(noteDeleted{id: id})
	return Result[struct{}]{}
}

// FilterByTitle keeps the notes whose title contains query, ignoring case.
func FilterByTitle(notes []models.Note, query string) []models.Note {
	if query == "" {
		return notes
	}

	q := strings.ToLower(query)
	out := make([]models.Note, 0, len(notes))
	for _, note := range notes {
		if strings.Contains(strings.ToLower(note.Title), q) {
			out = append(out, note)
		}
	}
	return out
}

// DescribeFetchError is the text shown for a failed fetch.
func DescribeFetchError(err error) string {
	if backend.IsOffline(err) {
		return OfflineMessage
	}
	return messageOr(err, FetchFailedMessage)
}
