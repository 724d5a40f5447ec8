// Package state holds the client's application state: the auth session and
// the cached notes collection.
//
// State lives in a Store that is created once and passed to whoever needs
// it. It changes only by dispatching actions; every action is applied under
// the store lock and subscribers receive a snapshot afterwards. The Session
// and Notes types run the network calls and dispatch the resulting actions.
package state
