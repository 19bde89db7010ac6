package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/icare/internal/client/client"
	"github.com/dmitrijs2005/icare/internal/client/config"
	"github.com/dmitrijs2005/icare/internal/client/controllers"
	"github.com/dmitrijs2005/icare/internal/client/services"
	"github.com/dmitrijs2005/icare/internal/client/session"
	"github.com/dmitrijs2005/icare/internal/logging"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	api      client.Client
	sessions *session.Manager

	authService    services.AuthService
	profileService services.ProfileService

	loginForm    *controllers.LoginController
	registerForm *controllers.RegisterController
	profile      *controllers.ProfileController

	reader *bufio.Reader
	out    io.Writer

	mu       sync.Mutex
	screen   controllers.Route
	signedIn bool

	unsubscribe func()
}

// NewApp opens the session database, restores the stored session and wires
// the services and controllers.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewTextLogger(os.Stderr, c.LogLevel)

	db, err := session.InitDatabase(ctx, c.SessionDBPath)
	if err != nil {
		logger.Error(ctx, "error initializing session database", "path", c.SessionDBPath, "error", err)
		return nil, err
	}

	sessions := session.NewManager(session.NewSQLiteStore(db), logger)
	api := client.NewHTTPClient(c.APIBaseURL, sessions, client.WithLogger(logger))

	a := &App{
		config:   c,
		logger:   logger,
		db:       db,
		api:      api,
		sessions: sessions,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		screen:   controllers.RouteHome,
	}
	a.authService = services.NewAuthService(api, sessions, logger)
	a.profileService = services.NewProfileService(api, sessions, logger)
	a.loginForm = controllers.NewLoginController(a.authService, a, logger)
	a.registerForm = controllers.NewRegisterController(a.authService, a, logger)
	a.profile = controllers.NewProfileController(a.authService, a.profileService, a, c.LogoutPolicy, logger)

	a.signedIn = sessions.Load(ctx).Authenticated()
	a.unsubscribe = a.authService.Subscribe(a.onAuthChange)
	return a, nil
}

// Run restores the last screen and runs the REPL until the user exits or
// ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.printf("Welcome to I Care (type 'help' for commands)\n")
	if a.isLoggedIn() {
		a.Navigate(ctx, controllers.RouteProfile)
	}
	runREPL(ctx, a, a.getStatus, a.reader)
}

// Close releases the API client and the session database.
func (a *App) Close() error {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	_ = a.api.Close()
	return a.db.Close()
}

// Navigate implements controllers.UI. Showing the profile screen loads the
// profile from the server.
func (a *App) Navigate(ctx context.Context, to controllers.Route) {
	a.mu.Lock()
	a.screen = to
	a.mu.Unlock()

	switch to {
	case controllers.RouteProfile:
		if err := a.profile.Mount(ctx); err == nil {
			a.printProfile()
		}
	case controllers.RouteLogin:
		a.printf("Please log in (type 'login').\n")
	case controllers.RouteRegister:
		a.printf("Create an account (type 'register').\n")
	}
}

// Alert implements controllers.UI.
func (a *App) Alert(msg string) {
	a.printf("! %s\n", msg)
}

func (a *App) onAuthChange(st services.AuthState) {
	a.mu.Lock()
	changed := st.IsAuthenticated != a.signedIn
	a.signedIn = st.IsAuthenticated
	a.mu.Unlock()
	if !changed {
		return
	}

	if st.IsAuthenticated {
		name := "user"
		if st.User != nil {
			name = st.User.DisplayName()
		}
		a.printf("Signed in as %s.\n", name)
		return
	}
	a.printf("Signed out.\n")
}

func (a *App) isLoggedIn() bool {
	return a.authService.State().IsAuthenticated
}

func (a *App) getStatus() string {
	st := a.authService.State()

	a.mu.Lock()
	screen := a.screen
	a.mu.Unlock()

	s := string(screen)
	if st.IsAuthenticated && st.User != nil && st.User.Username != "" {
		s = st.User.Username + " " + s
	}
	return fmt.Sprintf("(%s)", s)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
