package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/photoshare/internal/client/client"
	"github.com/dmitrijs2005/photoshare/internal/client/config"
	"github.com/dmitrijs2005/photoshare/internal/client/credstore"
	"github.com/dmitrijs2005/photoshare/internal/client/feed"
	"github.com/dmitrijs2005/photoshare/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/photoshare/internal/client/services"
	"github.com/dmitrijs2005/photoshare/internal/client/session"
	"github.com/dmitrijs2005/photoshare/internal/logging"
	"github.com/dmitrijs2005/photoshare/internal/telemetry"
)

const serviceName = "photoshare-cli"

type App struct {
	config      *config.Config
	authService services.AuthService
	feed        *feed.Store
	log         logging.Logger
	reader      *bufio.Reader
	out         io.Writer

	closers []func(context.Context) error
}

// NewApp builds the application graph from c. Close releases what it opened.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.New(os.Stderr, c.LogLevel)

	shutdown, err := telemetry.Setup(ctx, c.OTLPEndpoint, serviceName)
	if err != nil {
		return nil, fmt.Errorf("telemetry setup: %w", err)
	}

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		_ = shutdown(ctx)
		return nil, fmt.Errorf("database init: %w", err)
	}

	tokens := credstore.NewMetadataStore(metadata.NewSQLiteRepository(db))

	api, err := client.NewHTTPClient(c.ServerBaseURL, tokens,
		client.WithTimeout(c.RequestTimeout),
		client.WithRateLimit(c.RequestsPerSecond),
	)
	if err != nil {
		_ = db.Close()
		_ = shutdown(ctx)
		return nil, err
	}

	store := feed.NewStore()
	as := services.NewAuthService(api, tokens, session.NewMachine(), feed.NewReader(api, store), log)

	return &App{
		config:      c,
		authService: as,
		feed:        store,
		log:         log,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		closers:     []func(context.Context) error{closeDB(db), shutdown},
	}, nil
}

func closeDB(db *sql.DB) func(context.Context) error {
	return func(context.Context) error { return db.Close() }
}

// Run resumes a stored session if there is one, then serves the REPL until
// the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to photoshare (type 'help' for commands)")
	a.restore(ctx)
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) restore(ctx context.Context) {
	err := a.authService.Restore(ctx)
	switch {
	case err == nil:
		printlnFn("Welcome back,", a.authService.State().MyProfile.NickName)
	case errors.Is(err, credstore.ErrTokenNotFound):
	case services.IsUnauthorized(err):
		printlnFn("Stored session is no longer valid, please sign in")
	default:
		a.log.Warn(ctx, "session restore failed", "error", err)
		printlnFn("Could not restore session:", err)
	}
}

// Close releases the database and flushes telemetry.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c(ctx))
	}
	return errors.Join(errs...)
}

func (a *App) isLoggedIn() bool {
	return a.authService.State().Authenticated()
}

func (a *App) getStatus() string {
	s := a.authService.State()
	switch {
	case s.IsAuthPending:
		return "(signing in)"
	case s.Authenticated():
		return fmt.Sprintf("(%s)", s.MyProfile.NickName)
	default:
		return ""
	}
}

// Status prints the current session state.
func (a *App) Status(context.Context) error {
	s := a.authService.State()
	fmt.Fprintf(a.out, "signed in:      %t\n", s.Authenticated())
	fmt.Fprintf(a.out, "sign-in open:   %t\n", s.SignInModalOpen)
	fmt.Fprintf(a.out, "sign-up open:   %t\n", s.SignUpModalOpen)
	fmt.Fprintf(a.out, "profile open:   %t\n", s.ProfileModalOpen)
	fmt.Fprintf(a.out, "auth pending:   %t\n", s.IsAuthPending)
	fmt.Fprintf(a.out, "profiles known: %d\n", len(s.AllProfiles))
	if s.AuthError != nil {
		fmt.Fprintf(a.out, "last error:     %v\n", s.AuthError)
	}
	return nil
}
