package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	SignUp(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	List(ctx context.Context, query string) error
	Show(ctx context.Context, ref string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, ref string) error
	Delete(ctx context.Context, ref string) error
}

// runREPL starts a simple read-eval-print loop for the gophnotes CLI.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a'; the rest of the line is the argument. The
// same reader serves the prompts of the commands, so they never race the
// loop for input. The loop exits on EOF or when the user types "exit" or
// "quit".
//
// Prompt & Commands
//
//	Not logged in:
//	  - help           show available commands
//	  - signup         create an account
//	  - login          authenticate
//	  - exit | quit    leave the program
//
//	Logged in:
//	  - list [query]   fetch notes, optionally filtered by title
//	  - show <ref>     print a note (ref is an id or a list position)
//	  - add            create a note
//	  - edit <ref>     change a note
//	  - delete <ref>   delete a note after confirmation
//	  - whoami         print the current user
//	  - logout         sign out
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("gn %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		arg = strings.TrimSpace(arg)
		if cmd == "" {
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist [query], show <id|#>, add, edit <id|#>, delete <id|#>, whoami, logout, exit")
			} else {
				printlnFn("Available commands: signup, login, exit")
			}

		case "signup":
			_ = a.SignUp(ctx)

		case "login":
			_ = a.Login(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		case "l", "list", "show", "add", "edit", "delete", "whoami", "logout":
			if !a.isLoggedIn() {
				printlnFn("Please log in first")
				continue
			}
			runNoteCommand(ctx, a, cmd, arg)

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func runNoteCommand(ctx context.Context, a execIface, cmd, arg string) {
	switch cmd {
	case "l", "list":
		_ = a.List(ctx, arg)
	case "show":
		_ = a.Show(ctx, arg)
	case "add":
		_ = a.Add(ctx)
	case "edit":
		_ = a.Edit(ctx, arg)
	case "delete":
		_ = a.Delete(ctx, arg)
	case "whoami":
		_ = a.WhoAmI(ctx)
	case "logout":
		_ = a.Logout(ctx)
	}
}
