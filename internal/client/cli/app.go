package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/hackorsnooze/internal/client/client"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/config"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/nav"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/services"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/session"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/state"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/view"
	"github.com/dmitrijs2005/hackorsnooze/internal/filex"
	"github.com/dmitrijs2005/hackorsnooze/internal/logging"
	"golang.org/x/term"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config  *config.Config
	db      *sql.DB
	auth    services.AuthService
	ctrl    *state.Controller
	nav     *nav.Dispatcher
	printer *view.Printer
	log     logging.Logger
	reader  *bufio.Reader

	modeMu sync.RWMutex
	mode   Mode
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.New(os.Stderr, c.LogLevel)

	colorMode, err := view.ParseColorMode(c.Color)
	if err != nil {
		return nil, err
	}

	if err := filex.EnsureParentDir(c.SessionDBPath); err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, c.SessionDBPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.SessionDBPath, "error", err)
		return nil, err
	}

	apiClient, err := client.NewHTTPClient(c.APIBaseURL,
		client.WithHTTPClient(&http.Client{Timeout: c.RequestTimeout}),
		client.WithRateLimit(c.RequestsPerSecond),
		client.WithStoriesLimit(c.StoriesLimit),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := &App{
		config:  c,
		db:      db,
		auth:    services.NewAuthService(apiClient, session.NewStore(db, log)),
		printer: view.NewPrinter(os.Stdout, view.ResolveColors(colorMode, term.IsTerminal(int(os.Stdout.Fd())))),
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
		mode:    ModeOnline,
	}
	a.ctrl = state.NewController(a.auth, services.NewStoryService(apiClient), a, log)
	a.nav = nav.NewDispatcher(a.ctrl, log)
	return a, nil
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	if a.mode != mode {
		a.mode = mode
		a.log.Info(ctx, "connectivity changed", "mode", string(mode))
	}
}

func (a *App) Mode() Mode {
	a.modeMu.RLock()
	defer a.modeMu.RUnlock()
	return a.mode
}

// Run restores the session, starts the connectivity watcher and serves the
// REPL until the user exits or stdin is closed.
func (a *App) Run(ctx context.Context) error {
	defer a.Close(ctx)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.printer.Info("Hack or Snooze (type 'help' for commands)")
	if err := a.ctrl.Initialize(ctx); err != nil {
		a.report(ctx, err)
	}
	a.show(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

func (a *App) Close(ctx context.Context) {
	if err := a.auth.Close(ctx); err != nil {
		a.log.Warn(ctx, "closing api client", "error", err)
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn(ctx, "closing session database", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.ctrl.IsLoggedIn()
}

func (a *App) getStatus() string {
	var username string
	if u := a.ctrl.CurrentUser(); u != nil {
		username = u.Username
	}
	return a.printer.Prompt(username, a.Mode() == ModeOnline)
}

// StartOnlineStatusWatcher pings the API every interval and flips the
// connectivity mode accordingly. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	timeout := a.config.RequestTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	pctx, cancel := context.WithTimeout(ctx, timeout)
	err := a.auth.Ping(pctx)
	cancel()

	if err != nil {
		a.log.Debug(ctx, "ping failed", "error", err)
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}

// Confirm asks a yes/no question on the terminal. Anything but y/yes is no.
func (a *App) Confirm(ctx context.Context, prompt string) (bool, error) {
	answer, err := getSimpleText(a.reader, prompt+" [y/N]", stdout())
	if err != nil {
		return false, fmt.Errorf("read answer: %w", err)
	}
	switch answer {
	case "y", "Y", "yes", "YES", "Yes":
		return true, nil
	default:
		return false, nil
	}
}

// stdout is a test seam for interactive prompts.
var stdout = func() io.Writer { return os.Stdout }
