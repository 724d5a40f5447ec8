// Package common contains shared constants and sentinel errors used across
// gophnotes components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// MinPasswordLength is the shortest password accepted at sign-up, both by
// client-side validation and by the backend.
const MinPasswordLength = 6
