package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/backend"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/state"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

type fakeAuth struct {
	signInErr   error
	signOutErr  error
	signInCalls int
	signUpCalls int
	lastEmail   string
}

func (f *fakeAuth) GetSession(context.Context) (*models.Session, error) { return nil, nil }

func (f *fakeAuth) SignInWithPassword(_ context.Context, email, _ string) (*models.Session, error) {
	f.signInCalls++
	f.lastEmail = email
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return session(email), nil
}

func (f *fakeAuth) SignUp(_ context.Context, email, _ string) (*models.Session, error) {
	f.signUpCalls++
	f.lastEmail = email
	return session(email), nil
}

func (f *fakeAuth) SignOut(context.Context) error { return f.signOutErr }

func (f *fakeAuth) OnAuthStateChange(func(backend.AuthChange)) func() { return func() {} }

type fakeNotesAPI struct {
	items     []models.Note
	listErr   error
	insertErr error
	deleted   []string
	updated   []models.Note
}

func (f *fakeNotesAPI) List(context.Context, string) ([]models.Note, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Note(nil), f.items...), nil
}

func (f *fakeNotesAPI) Insert(_ context.Context, title, content, userID string) (models.Note, error) {
	if f.insertErr != nil {
		return models.Note{}, f.insertErr
	}
	return models.Note{ID: "n-new", UserID: userID, Title: title, Content: content}, nil
}

func (f *fakeNotesAPI) Update(_ context.Context, id, title, content string) (models.Note, error) {
	n := models.Note{ID: id, UserID: "u1", Title: title, Content: content, UpdatedAt: time.Now()}
	f.updated = append(f.updated, n)
	return n, nil
}

func (f *fakeNotesAPI) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeRefresher struct {
	interval time.Duration
}

func (f *fakeRefresher) StartAutoRefresh(_ context.Context, interval time.Duration) {
	f.interval = interval
}

func session(email string) *models.Session {
	return &models.Session{
		AccessToken: "a1",
		ExpiresAt:   time.Now().Add(time.Hour),
		User:        &models.User{ID: "u1", Email: email},
	}
}

func sampleNotes() []models.Note {
	return []models.Note{
		{ID: "n3", UserID: "u1", Title: "Groceries", Content: "milk"},
		{ID: "n2", UserID: "u1", Title: "Work plan", Content: "ship it"},
		{ID: "n1", UserID: "u1", Title: "grocery budget", Content: "50"},
	}
}

type testApp struct {
	*App
	auth *fakeAuth
	api  *fakeNotesAPI
	buf  *bytes.Buffer
}

// newTestApp builds an App over fakes. input feeds the prompts; passwords
// come from the stubbed getPassword in order.
func newTestApp(t *testing.T, input string, passwords ...string) *testApp {
	t.Helper()

	orig := getPassword
	t.Cleanup(func() { getPassword = orig })
	getPassword = func(_ io.Writer, _ string) ([]byte, error) {
		if len(passwords) == 0 {
			return []byte{}, nil
		}
		pw := passwords[0]
		passwords = passwords[1:]
		return []byte(pw), nil
	}

	ta := &testApp{auth: &fakeAuth{}, api: &fakeNotesAPI{items: sampleNotes()}, buf: &bytes.Buffer{}}
	store := state.NewStore()
	app := &App{
		store:  store,
		logger: logging.Nop{},
		reader: bufio.NewReader(strings.NewReader(input)),
		out:    ta.buf,
	}
	app.session = state.NewSession(store, ta.auth, state.NotifierFunc(app.alert), logging.Nop{})
	app.notes = state.NewNotes(store, ta.api, logging.Nop{})
	ta.App = app
	return ta
}

// signIn puts the app into the signed in state with the notes loaded.
func (ta *testApp) signIn(t *testing.T) {
	t.Helper()
	ta.store.Dispatch(state.SetSession{Session: session("a@b.co")})
	ta.notes.FetchAll(context.Background(), "u1")
	ta.buf.Reset()
}
