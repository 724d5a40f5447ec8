// Package api is the wire contract between the gophnotes client and the
// hosted backend.
//
// It declares two gRPC services:
//
//   - gophnotes.v1.AuthService: SignUp, SignIn, Refresh, SignOut, GetUser
//   - gophnotes.v1.NotesService: List, Insert, Update, Delete
//
// Service descriptors are written by hand instead of generated; messages are
// plain Go structs carried by the JSON codec registered under the "json"
// content subtype (see Codec). Clients built with NewAuthServiceClient and
// NewNotesServiceClient select that codec on every call. Timestamps use the
// protobuf well-known Timestamp type.
//
// Authenticated calls carry the access token in the "access_token" metadata
// key (common.AccessTokenHeaderName).
package api
