package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/server/models"
	"github.com/dmitrijs2005/gophnotes/internal/server/services"
)

// ---- fakes ----

type fakeUser struct {
	session *services.AuthSession
	err     error

	user    *models.User
	userErr error

	signedOut string
}

func (f *fakeUser) SignUp(ctx context.Context, email, password string) (*services.AuthSession, error) {
	return f.session, f.err
}
func (f *fakeUser) SignIn(ctx context.Context, email, password string) (*services.AuthSession, error) {
	return f.session, f.err
}
func (f *fakeUser) Refresh(ctx context.Context, refreshToken string) (*services.AuthSession, error) {
	return f.session, f.err
}
func (f *fakeUser) SignOut(ctx context.Context, userID string) error {
	f.signedOut = userID
	return f.err
}
func (f *fakeUser) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return f.user, f.userErr
}

type fakeNotes struct {
	notes []models.Note
	note  *models.Note
	err   error

	gotCaller, gotOwner, gotID string
}

func (f *fakeNotes) List(ctx context.Context, callerID, ownerID string) ([]models.Note, error) {
	f.gotCaller, f.gotOwner = callerID, ownerID
	return f.notes, f.err
}
func (f *fakeNotes) Insert(ctx context.Context, callerID, ownerID, title, content string) (*models.Note, error) {
	f.gotCaller, f.gotOwner = callerID, ownerID
	return f.note, f.err
}
func (f *fakeNotes) Update(ctx context.Context, callerID, id, title, content string) (*models.Note, error) {
	f.gotCaller, f.gotID = callerID, id
	return f.note, f.err
}
func (f *fakeNotes) Delete(ctx context.Context, callerID, id string) error {
	f.gotCaller, f.gotID = callerID, id
	return f.err
}

func sampleSession() *services.AuthSession {
	return &services.AuthSession{
		AccessToken:  "A",
		RefreshToken: "R",
		ExpiresAt:    time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
		User:         &models.User{ID: "u1", Email: "a@b.co"},
	}
}
