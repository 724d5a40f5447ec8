package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/backend"
	"github.com/dmitrijs2005/gophnotes/internal/client/config"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/securestore"
	"github.com/dmitrijs2005/gophnotes/internal/client/state"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// autoRefresher is the part of backend.GRPCClient the App drives directly.
type autoRefresher interface {
	StartAutoRefresh(ctx context.Context, interval time.Duration)
}

type App struct {
	config    *config.Config
	store     *state.Store
	session   *state.Session
	notes     *state.Notes
	refresher autoRefresher
	closers   []io.Closer
	logger    logging.Logger
	Mode      Mode
	reader    *bufio.Reader
	out       io.Writer

	// listed is what the last List printed; list positions refer to it.
	listed []models.Note
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewText(os.Stderr, slog.LevelWarn)

	storage, err := securestore.Open(ctx, c.DataDir)
	if err != nil {
		return nil, fmt.Errorf("error initializing local storage: %w", err)
	}

	apiClient, err := backend.NewGRPCClient(c.ServerEndpointAddr, storage, logger)
	if err != nil {
		_ = storage.Close()
		return nil, err
	}

	app := &App{
		config:    c,
		store:     state.NewStore(),
		refresher: apiClient,
		closers:   []io.Closer{apiClient, storage},
		logger:    logger,
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
	}
	app.session = state.NewSession(app.store, apiClient, state.NotifierFunc(app.alert), logger)
	app.notes = state.NewNotes(app.store, apiClient, logger)
	return app, nil
}

func (a *App) alert(title, message string) {
	fmt.Fprintf(a.out, "[%s] %s\n", title, message)
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		fmt.Fprintf(a.out, "Switched to %s mode\n", mode)
	}
}

// Run restores the previous session, starts the background auth machinery
// and blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(a.out, "Welcome to gophnotes CLI (type 'help' for commands)")

	a.session.Initialize(ctx)
	stop := a.session.Watch(ctx)
	defer stop()
	a.refresher.StartAutoRefresh(ctx, a.config.AutoRefreshInterval)

	if a.isLoggedIn() {
		fmt.Fprintf(a.out, "Signed in as %s\n", a.currentUser().Email)
		a.refresh(ctx)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Warn(context.Background(), "close failed", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.store.Snapshot().Auth.Session != nil
}

func (a *App) getStatus() string {
	s := ""
	if u := a.currentUser(); u != nil {
		s = u.Email + " "
	}
	if a.Mode != "" {
		s = s + string(a.Mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}
