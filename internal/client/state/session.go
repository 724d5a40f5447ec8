package state

import (
	"context"

	"github.com/dmitrijs2005/gophnotes/internal/client/backend"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

const (
	LoginErrorTitle  = "Login Error"
	SignupErrorTitle = "Signup Error"

	loginFailed  = "Login failed"
	signupFailed = "Signup failed"
)

// Notifier shows a blocking alert to the user.
type Notifier interface {
	Alert(title, message string)
}

type NotifierFunc func(title, message string)

func (f NotifierFunc) Alert(title, message string) { f(title, message) }

// Session drives the auth part of the state.
type Session struct {
	store    *Store
	api      backend.AuthAPI
	notifier Notifier
	logger   logging.Logger
}

func NewSession(store *Store, api backend.AuthAPI, notifier Notifier, logger logging.Logger) *Session {
	return &Session{store: store, api: api, notifier: notifier, logger: logger}
}

// Initialize restores a persisted session. A failure counts as "signed out"
// and is only logged.
func (s *Session) Initialize(ctx context.Context) Result[*models.Session] {
	sess, err := s.api.GetSession(ctx)
	if err != nil {
		s.logger.Warn(ctx, "failed to restore session", "error", err)
		sess = nil
	}

	s.store.Dispatch(sessionRestored{session: sess})
	return Result[*models.Session]{Value: sess}
}

func (s *Session) SignIn(ctx context.Context, email, password string) Result[*models.Session] {
	if err := ValidateSignIn(email, password); err != nil {
		return Result[*models.Session]{Err: err}
	}

	return s.authenticate(ctx, LoginErrorTitle, loginFailed, func() (*models.Session, error) {
		return s.api.SignInWithPassword(ctx, email, password)
	})
}

func (s *Session) SignUp(ctx context.Context, form SignUpForm) Result[*models.Session] {
	if err := ValidateSignUp(form); err != nil {
		return Result[*models.Session]{Err: err}
	}

	return s.authenticate(ctx, SignupErrorTitle, signupFailed, func() (*models.Session, error) {
		return s.api.SignUp(ctx, form.Email, form.Password)
	})
}

func (s *Session) authenticate(ctx context.Context, alertTitle, fallback string, call func() (*models.Session, error)) Result[*models.Session] {
	s.store.Dispatch(authPending{})

	sess, err := call()
	if err != nil {
		msg := messageOr(err, fallback)
		s.store.Dispatch(authRejected{message: msg})
		s.notifier.Alert(alertTitle, msg)
		return Result[*models.Session]{Err: err}
	}

	s.store.Dispatch(authFulfilled{session: sess})
	s.logger.Info(ctx, "signed in", "user_id", userOf(sess).GetID())
	return Result[*models.Session]{Value: sess}
}

// SignOut revokes the session. Whatever the server answers, the session,
// the user and the notes are cleared; the server error is still returned.
func (s *Session) SignOut(ctx context.Context) Result[struct{}] {
	err := s.api.SignOut(ctx)
	if err != nil {
		s.logger.Warn(ctx, "sign out request failed", "error", err)
	}

	s.store.Dispatch(signedOut{})
	return Result[struct{}]{Err: err}
}

// Watch mirrors backend auth events into the store. A sign-out pushed by the
// backend clears the notes too. It runs until ctx is done or the returned
// func is called.
func (s *Session) Watch(ctx context.Context) func() {
	unsubscribe := s.api.OnAuthStateChange(func(c backend.AuthChange) {
		if c.Session == nil {
			s.store.Dispatch(signedOut{})
			return
		}
		s.store.Dispatch(SetSession{Session: c.Session})
	})

	stop := context.AfterFunc(ctx, unsubscribe)
	return func() {
		if stop() {
			unsubscribe()
		}
	}
}

func messageOr(err error, fallback string) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
