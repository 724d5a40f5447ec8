// Package securestore persists small secrets of the CLI client, such as the
// current auth session, in the local SQLite database.
//
// Values live in the metadata table and are sealed with AES-GCM under a
// random device key. The key is kept in a 0600 file next to the database, so
// copying the database alone does not leak the refresh token.
package securestore
