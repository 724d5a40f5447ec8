package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/backend"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/state"
)

const deleteConfirmation = "Are you sure you want to delete this note?"

var getMultiline = GetMultiline
var confirm = Confirm

var errNoteNotFound = errors.New("note not found")

// refresh reloads the notes of the current user and tracks connectivity.
func (a *App) refresh(ctx context.Context) error {
	res := a.notes.FetchAll(ctx, a.currentUser().GetID())
	if res.Err != nil {
		if backend.IsOffline(res.Err) {
			a.setMode(ModeOffline)
		}
		fmt.Fprintln(a.out, state.DescribeFetchError(res.Err))
		return res.Err
	}
	a.setMode(ModeOnline)
	return nil
}

// List fetches the notes and prints those whose title matches query. When
// the fetch fails the cached notes are shown below the error.
func (a *App) List(ctx context.Context, query string) error {
	err := a.refresh(ctx)

	notes := state.FilterByTitle(a.store.Snapshot().Notes.Items, query)
	a.listed = notes
	if len(notes) == 0 {
		if query != "" {
			fmt.Fprintf(a.out, "No notes match %q\n", query)
		} else {
			fmt.Fprintln(a.out, "No notes yet. Use 'add' to create one.")
		}
		return err
	}

	for i, n := range notes {
		fmt.Fprintf(a.out, "%d. %s  [%s]  %s\n", i+1, n.Title, formatTime(n.UpdatedAt), n.ID)
	}
	return err
}

func (a *App) Show(ctx context.Context, ref string) error {
	n, err := a.pickNote(ref, "Enter note id or number to show")
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, n.Title)
	fmt.Fprintf(a.out, "created %s, updated %s\n", formatTime(n.CreatedAt), formatTime(n.UpdatedAt))
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, n.Content)
	return nil
}

func (a *App) Add(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		return err
	}
	if title == "" {
		fmt.Fprintln(a.out, state.ErrTitleRequired)
		return state.ErrTitleRequired
	}

	content, err := getMultiline(a.reader, "Enter content", a.out)
	if err != nil {
		return err
	}

	u := a.currentUser()
	if u == nil {
		fmt.Fprintln(a.out, state.ErrNoUserSession)
		return state.ErrNoUserSession
	}

	res := a.notes.Add(ctx, title, content, u.ID)
	if res.Err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", res.Err)
		return res.Err
	}

	fmt.Fprintf(a.out, "Note added: %s\n", res.Value.ID)
	return nil
}

// Edit updates a note. Empty answers keep the current title or content.
func (a *App) Edit(ctx context.Context, ref string) error {
	n, err := a.pickNote(ref, "Enter note id or number to edit")
	if err != nil {
		return err
	}

	title, err := getSimpleText(a.reader, fmt.Sprintf("Enter title (empty keeps %q)", n.Title), a.out)
	if err != nil {
		return err
	}
	if title == "" {
		title = n.Title
	}

	content, err := getMultiline(a.reader, "Enter content (empty keeps the current text)", a.out)
	if err != nil {
		return err
	}
	if content == "" {
		content = n.Content
	}

	res := a.notes.Update(ctx, n.ID, title, content)
	if res.Err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", res.Err)
		return res.Err
	}

	fmt.Fprintln(a.out, "Note updated")
	return nil
}

func (a *App) Delete(ctx context.Context, ref string) error {
	n, err := a.pickNote(ref, "Enter note id or number to delete")
	if err != nil {
		return err
	}

	ok, err := confirm(a.reader, deleteConfirmation, a.out)
	if err != nil || !ok {
		return err
	}

	res := a.notes.Delete(ctx, n.ID)
	if res.Err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", res.Err)
		return res.Err
	}

	fmt.Fprintln(a.out, "Note deleted")
	return nil
}

// pickNote resolves ref, asking for it when empty. A ref is either a note id
// or the 1-based position in the output of the last List.
func (a *App) pickNote(ref, prompt string) (models.Note, error) {
	if ref == "" {
		var err error
		if ref, err = getSimpleText(a.reader, prompt, a.out); err != nil {
			return models.Note{}, err
		}
	}

	if i, err := strconv.Atoi(ref); err == nil && i >= 1 && i <= len(a.listed) {
		return a.findNote(a.listed[i-1].ID)
	}
	return a.findNote(ref)
}

// findNote looks ref up among the cached notes.
func (a *App) findNote(ref string) (models.Note, error) {
	for _, n := range a.store.Snapshot().Notes.Items {
		if n.ID == ref {
			return n, nil
		}
	}

	fmt.Fprintf(a.out, "Note %q not found\n", ref)
	return models.Note{}, errNoteNotFound
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
