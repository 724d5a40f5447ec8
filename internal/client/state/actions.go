package state

import "github.com/dmitrijs2005/gophnotes/internal/client/models"

func userOf(s *models.Session) *models.User {
	if s == nil {
		return nil
	}
	return s.User.Clone()
}

// SetSession replaces the session and the user derived from it. The notes
// cache belongs to the user, so it is emptied whenever the user changes.
type SetSession struct {
	Session *models.Session
}

func (a SetSession) apply(st *State) {
	user := userOf(a.Session)
	if st.Auth.User.GetID() != user.GetID() {
		st.Notes = NotesState{Items: []models.Note{}}
	}
	st.Auth.Session = a.Session.Clone()
	st.Auth.User = user
}

type sessionRestored struct {
	session *models.Session
}

func (a sessionRestored) apply(st *State) {
	SetSession{Session: a.session}.apply(st)
	st.Auth.Loading = false
	st.Auth.Initialized = true
}

type authPending struct{}

func (authPending) apply(st *State) {
	st.Auth.Loading = true
	st.Auth.Error = ""
}

type authFulfilled struct {
	session *models.Session
}

func (a authFulfilled) apply(st *State) {
	SetSession{Session: a.session}.apply(st)
	st.Auth.Loading = false
}

type authRejected struct {
	message string
}

func (a authRejected) apply(st *State) {
	st.Auth.Loading = false
	st.Auth.Error = a.message
}

// signedOut ends the session and forgets the notes of the previous user in
// one transition, so no subscriber sees one without the other.
type signedOut struct{}

func (signedOut) apply(st *State) {
	st.Auth.Session = nil
	st.Auth.User = nil
	st.Auth.Loading = false
	st.Notes = NotesState{Items: []models.Note{}}
}

type notesPending struct{}

func (notesPending) apply(st *State) {
	st.Notes.Loading = true
	st.Notes.Error = ""
}

type notesFetched struct {
	items []models.Note
}

func (a notesFetched) apply(st *State) {
	st.Notes.Loading = false
	st.Notes.Items = append([]models.Note{}, a.items...)
}

type notesFetchFailed struct {
	message string
}

func (a notesFetchFailed) apply(st *State) {
	st.Notes.Loading = false
	st.Notes.Error = a.message
}

type noteAdded struct {
	note models.Note
}

func (a noteAdded) apply(st *State) {
	st.Notes.Items = append([]models.Note{a.note}, st.Notes.Items...)
}

type noteUpdated struct {
	note  models.Note
	found bool
}

func (a *noteUpdated) apply(st *State) {
	for i := range st.Notes.Items {
		if st.Notes.Items[i].ID == a.note.ID {
			st.Notes.Items[i] = a.note
			a.found = true
			return
		}
	}
}

type noteDeleted struct {
	id string
}

func (a noteDeleted) apply(st *State) {
	items := make([]models.Note, 0, len(st.Notes.Items))
	for _, n := range st.Notes.Items {
		if n.ID != a.id {
			items = append(items, n)
		}
	}
	st.Notes.Items = items
}
