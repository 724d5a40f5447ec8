// Package backend talks to the hosted auth and notes services.
//
// GRPCClient owns the current auth session: it restores it from a
// SessionStorage, attaches the access token to every call, refreshes the
// token when the server reports it expired, and notifies listeners about
// sign-in, sign-out and refresh events. All failures reach callers as
// *APIError values carrying the server's user-facing message.
package backend
