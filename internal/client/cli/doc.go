// Package cli provides the interactive gophnotes command-line client.
//
// It wires configuration, the encrypted local session store, the backend
// client and the application state, then runs a REPL. Typical flow: restore
// the previous session, start the auth watcher and the token auto-refresh,
// and execute user commands.
//
// Commands:
//   - signup / login / logout / whoami
//   - list [query]: fetch notes and filter them by title
//   - show / add / edit / delete
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
