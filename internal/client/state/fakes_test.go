package state

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/backend"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
)

type fakeAuth struct {
	session    *models.Session
	getErr     error
	signInErr  error
	signUpErr  error
	signOutErr error

	signInCalls  int
	signUpCalls  int
	signOutCalls int
	listener     func(backend.AuthChange)
	unsubscribed atomic.Bool
}

func (f *fakeAuth) GetSession(context.Context) (*models.Session, error) {
	return f.session, f.getErr
}

func (f *fakeAuth) SignInWithPassword(_ context.Context, email, _ string) (*models.Session, error) {
	f.signInCalls++
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return sampleSession(email), nil
}

func (f *fakeAuth) SignUp(_ context.Context, email, _ string) (*models.Session, error) {
	f.signUpCalls++
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	return sampleSession(email), nil
}

func (f *fakeAuth) SignOut(context.Context) error {
	f.signOutCalls++
	return f.signOutErr
}

func (f *fakeAuth) OnAuthStateChange(fn func(backend.AuthChange)) func() {
	f.listener = fn
	return func() { f.unsubscribed.Store(true) }
}

type fakeNotesAPI struct {
	list      []models.Note
	listErr   error
	insertErr error
	updateErr error
	deleteErr error

	calls      int
	lastUserID string
}

func (f *fakeNotesAPI) List(_ context.Context, ownerID string) ([]models.Note, error) {
	f.calls++
	f.lastUserID = ownerID
	return f.list, f.listErr
}

func (f *fakeNotesAPI) Insert(_ context.Context, title, content, userID string) (models.Note, error) {
	f.calls++
	if f.insertErr != nil {
		return models.Note{}, f.insertErr
	}
	return models.Note{ID: "n-new", UserID: userID, Title: title, Content: content}, nil
}

func (f *fakeNotesAPI) Update(_ context.Context, id, title, content string) (models.Note, error) {
	f.calls++
	if f.updateErr != nil {
		return models.Note{}, f.updateErr
	}
	return models.Note{ID: id, UserID: "u1", Title: title, Content: content, UpdatedAt: time.Unix(100, 0)}, nil
}

func (f *fakeNotesAPI) Delete(context.Context, string) error {
	f.calls++
	return f.deleteErr
}

type alert struct{ title, message string }

type alertLog struct{ alerts []alert }

func (l *alertLog) Alert(title, message string) {
	l.alerts = append(l.alerts, alert{title, message})
}

func sampleSession(email string) *models.Session {
	return &models.Session{
		AccessToken:  "a1",
		RefreshToken: "r1",
		ExpiresAt:    time.Now().Add(time.Hour),
		User:         &models.User{ID: "u1", Email: email},
	}
}

func threeNotes() []models.Note {
	return []models.Note{
		{ID: "n3", UserID: "u1", Title: "Groceries"},
		{ID: "n2", UserID: "u1", Title: "Work plan"},
		{ID: "n1", UserID: "u1", Title: "grocery budget"},
	}
}
