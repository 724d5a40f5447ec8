package backend

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/dmitrijs2005/gophnotes/internal/api"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
)

var (
	errSessionMissing = &APIError{Kind: ErrUnauthorized, Message: "Auth session missing!"}
	errNoSession      = &APIError{Kind: ErrServer, Message: "server returned no session"}
)

// GetSession returns the current session, restoring it from storage on the
// first call. An expired session is refreshed; when the server rejects the
// refresh token the stored session is discarded and (nil, nil) is returned.
func (c *GRPCClient) GetSession(ctx context.Context) (*models.Session, error) {
	s := c.currentSession()
	if s == nil {
		raw, err := c.storage.Get(ctx, StorageKey)
		if err != nil {
			return nil, err
		}
		if raw == nil {
			return nil, nil
		}

		stored := &models.Session{}
		if err := json.Unmarshal(raw, stored); err != nil {
			c.logger.Warn(ctx, "discarding unreadable stored session", "error", err)
			c.dropSession(ctx)
			return nil, nil
		}
		fillFromToken(stored)

		c.mu.Lock()
		if c.session == nil {
			c.session = stored
		}
		s = c.session
		c.mu.Unlock()
	}

	if !s.ExpiresWithin(c.now(), expiryMargin) {
		return s.Clone(), nil
	}

	fresh, err := c.refreshSession(ctx, s)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return nil, nil
		}
		// The caller sees no session, so neither may the background refresh.
		// The stored copy stays for the next attempt.
		c.mu.Lock()
		if c.session == s {
			c.session = nil
		}
		c.mu.Unlock()
		return nil, err
	}
	return fresh.Clone(), nil
}

func (c *GRPCClient) SignInWithPassword(ctx context.Context, email, password string) (*models.Session, error) {
	resp, err := c.auth.SignIn(ctx, &api.SignInRequest{Email: email, Password: password})
	if err != nil {
		return nil, mapError(err)
	}
	return c.startSession(ctx, resp)
}

func (c *GRPCClient) SignUp(ctx context.Context, email, password string) (*models.Session, error) {
	resp, err := c.auth.SignUp(ctx, &api.SignUpRequest{Email: email, Password: password})
	if err != nil {
		return nil, mapError(err)
	}
	return c.startSession(ctx, resp)
}

func (c *GRPCClient) startSession(ctx context.Context, resp *api.SessionResponse) (*models.Session, error) {
	s := sessionFromAPI(resp.GetSession())
	if s == nil {
		return nil, errNoSession
	}

	c.setSession(ctx, s)
	c.emit(EventSignedIn, s)
	return s.Clone(), nil
}

// SignOut revokes the session on the server. Local state is cleared and
// EventSignedOut emitted whatever the server answers; its error, if any, is
// still returned.
func (c *GRPCClient) SignOut(ctx context.Context) error {
	var err error
	if c.currentSession() != nil {
		_, err = c.auth.SignOut(ctx, &api.SignOutRequest{})
	}

	c.dropSession(ctx)
	c.emit(EventSignedOut, nil)

	if err != nil {
		return mapError(err)
	}
	return nil
}
