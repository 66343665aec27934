package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/Shamu9311/sport-front/internal/api"
	"github.com/Shamu9311/sport-front/internal/config"
	"github.com/Shamu9311/sport-front/internal/gate"
	"github.com/Shamu9311/sport-front/internal/logging"
	"github.com/Shamu9311/sport-front/internal/models"
	"github.com/Shamu9311/sport-front/internal/notify"
	"github.com/Shamu9311/sport-front/internal/storage"
)

// tokenSource adapts the gate into the API client's token source. It exists
// so the client can be constructed before the gate (which needs the client
// for profile checks).
type tokenSource struct {
	gate *gate.Gate
}

func (t *tokenSource) Token() string {
	if t.gate == nil {
		return ""
	}
	return t.gate.Token()
}

// App wires storage, the session gate, the API client, the reminder
// scheduler, and the interactive REPL together.
type App struct {
	config    *config.Config
	log       logging.Logger
	api       api.Client
	gate      *gate.Gate
	notifier  *notify.TimerNotifier
	scheduler *notify.Scheduler
	db        *sql.DB
	reader    *bufio.Reader
	out       io.Writer

	// route is the screen the user is currently on; the guard may rewrite
	// it after every command and state transition.
	route gate.Route
}

func NewApp(cfg *config.Config) (*App, error) {
	ctx := context.Background()
	log := logging.NewText(os.Stderr, slog.LevelInfo)

	db, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}
	repo := storage.NewSQLiteRepository(db)

	ts := &tokenSource{}
	httpClient := api.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout, ts)

	g := gate.New(repo, httpClient, log)
	ts.gate = g
	httpClient.SetUnauthorizedHandler(func() {
		g.Logout(context.Background())
	})

	out := os.Stdout
	notifier := notify.NewTimerNotifier(func(c notify.Content) {
		fmt.Fprintf(out, "\n*** %s: %s ***\n", c.Title, c.Body)
	})

	scheduler := notify.NewScheduler(httpClient, notifier, log, notify.Options{
		PollAttempts:     cfg.PollAttempts,
		PollDelay:        cfg.PollDelay,
		DefaultStartTime: cfg.DefaultSessionStart,
		DefaultOffset:    time.Duration(cfg.DefaultOffsetMin) * time.Minute,
		DailyHour:        cfg.DailyReminderHour,
		DailyMinute:      cfg.DailyReminderMinute,
		DailySet:         true,
	})

	return &App{
		config:    cfg,
		log:       log,
		api:       httpClient,
		gate:      g,
		notifier:  notifier,
		scheduler: scheduler,
		db:        db,
		reader:    bufio.NewReader(os.Stdin),
		out:       out,
	}, nil
}

// Run restores the stored session, resolves the initial screen, and starts
// the REPL. It blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.gate.Restore(ctx)
	a.navigate(ctx, gate.RouteHome)
	a.Root(ctx)
}

func (a *App) Close() {
	a.notifier.Close()
	if a.db != nil {
		_ = a.db.Close()
	}
}

// navigate moves to a screen and immediately applies the guard, which may
// rewrite the destination.
func (a *App) navigate(ctx context.Context, to gate.Route) {
	a.route = to
	a.applyGuard(ctx)
}

// applyGuard runs the navigation guard against the current route. Decide
// is idempotent, so a single redirect always settles; the loop bound is a
// backstop, not a protocol.
func (a *App) applyGuard(ctx context.Context) {
	for i := 0; i < 2; i++ {
		target, redirect := gate.Decide(a.gate.State(), a.route)
		if !redirect {
			return
		}
		a.log.Debug(ctx, "redirecting", "from", string(a.route), "to", string(target))
		a.route = target
	}
}

// enter navigates to the screen a command belongs to and reports whether
// the guard let us stay there.
func (a *App) enter(ctx context.Context, r gate.Route) bool {
	a.navigate(ctx, r)
	if a.route != r {
		fmt.Fprintf(a.out, "Not available here; you are on /%s\n", a.route)
		a.printRouteHint()
		return false
	}
	return true
}

func (a *App) printRouteHint() {
	switch a.route {
	case gate.RouteLogin:
		fmt.Fprintln(a.out, "Sign in first: 'login' (or 'register' to create an account)")
	case gate.RouteCreateProfile:
		fmt.Fprintln(a.out, "Complete your nutrition profile first: 'create-profile'")
	}
}

// currentUser returns the signed-in user, or nil.
func (a *App) currentUser() *models.User {
	snap := a.gate.Snapshot()
	if snap.Session == nil {
		return nil
	}
	u := snap.Session.User
	return &u
}
