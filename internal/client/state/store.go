package state

import (
	"sync"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
)

type AuthState struct {
	Session     *models.Session
	User        *models.User
	Loading     bool
	Error       string
	Initialized bool
}

type NotesState struct {
	Items   []models.Note
	Loading bool
	Error   string
}

type State struct {
	Auth  AuthState
	Notes NotesState
}

func (s State) clone() State {
	out := s
	out.Auth.Session = s.Auth.Session.Clone()
	out.Auth.User = s.Auth.User.Clone()
	if s.Notes.Items != nil {
		out.Notes.Items = append([]models.Note(nil), s.Notes.Items...)
	}
	return out
}

// Action is a state transition. Implementations live in this package.
type Action interface {
	apply(*State)
}

// Result is the outcome of an awaited operation: a value or an error.
type Result[T any] struct {
	Value T
	Err   error
}

func (r Result[T]) OK() bool { return r.Err == nil }

type Store struct {
	mu        sync.Mutex
	state     State
	listeners map[int]func(State)
	nextID    int
}

func NewStore() *Store {
	return &Store{listeners: make(map[int]func(State))}
}

// Dispatch applies a under the store lock, then hands a snapshot of the new
// state to every subscriber.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	a.apply(&s.state)
	snapshot := s.state.clone()
	fns := make([]func(State), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(snapshot)
	}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe registers fn for future changes and returns its unsubscribe func.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}
