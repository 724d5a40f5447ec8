package backend

import "github.com/dmitrijs2005/gophnotes/internal/client/models"

type AuthEvent string

const (
	EventSignedIn       AuthEvent = "SIGNED_IN"
	EventSignedOut      AuthEvent = "SIGNED_OUT"
	EventTokenRefreshed AuthEvent = "TOKEN_REFRESHED"
)

// AuthChange is delivered to OnAuthStateChange listeners. Session is nil
// after a sign-out.
type AuthChange struct {
	Event   AuthEvent
	Session *models.Session
}

// OnAuthStateChange registers fn and returns a function that unregisters it.
// Listeners run synchronously on the goroutine that caused the change, so
// they must not call back into the client's auth methods.
func (c *GRPCClient) OnAuthStateChange(fn func(AuthChange)) func() {
	c.listenersMu.Lock()
	defer c.listenersMu.Unlock()

	id := c.nextListenerID
	c.nextListenerID++
	c.listeners[id] = fn

	return func() {
		c.listenersMu.Lock()
		defer c.listenersMu.Unlock()
		delete(c.listeners, id)
	}
}

func (c *GRPCClient) emit(event AuthEvent, s *models.Session) {
	c.listenersMu.Lock()
	fns := make([]func(AuthChange), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.listenersMu.Unlock()

	for _, fn := range fns {
		fn(AuthChange{Event: event, Session: s.Clone()})
	}
}
