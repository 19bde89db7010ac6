package controllers

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/icare/internal/client/client"
	"github.com/dmitrijs2005/icare/internal/client/models"
	"github.com/dmitrijs2005/icare/internal/client/services"
	"github.com/dmitrijs2005/icare/internal/client/session"
	"github.com/dmitrijs2005/icare/internal/testutil/fakeapi"
)

type recordingUI struct {
	mu     sync.Mutex
	routes []Route
	alerts []string
}

func (u *recordingUI) Navigate(_ context.Context, to Route) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.routes = append(u.routes, to)
}

func (u *recordingUI) Alert(msg string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.alerts = append(u.alerts, msg)
}

func (u *recordingUI) Routes() []Route {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]Route(nil), u.routes...)
}

func (u *recordingUI) Alerts() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.alerts...)
}

type env struct {
	srv      *fakeapi.Server
	store    *session.SQLiteStore
	sessions *session.Manager
	auth     services.AuthService
	profiles services.ProfileService
	ui       *recordingUI
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()

	db, err := session.InitDatabase(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	e := &env{srv: fakeapi.New(t), store: session.NewSQLiteStore(db), ui: &recordingUI{}}
	e.sessions = session.NewManager(e.store, nil)
	e.sessions.Load(ctx)

	api := client.NewHTTPClient(e.srv.BaseURL(), e.sessions)
	e.auth = services.NewAuthService(api, e.sessions, nil)
	e.profiles = services.NewProfileService(api, e.sessions, nil)
	return e
}

// signIn creates an account on the fake server and stores its session.
func (e *env) signIn(t *testing.T, u models.UserProfile) string {
	t.Helper()
	token := e.srv.AddUser("pw", u)
	server, _ := e.srv.User(u.Email)
	require.NoError(t, e.sessions.Set(context.Background(), token, server))
	return token
}

func (e *env) profileController(policy LogoutPolicy) *ProfileController {
	return NewProfileController(e.auth, e.profiles, e.ui, policy, nil)
}

// blockingAuth is an AuthService whose Login and Register wait on release.
type blockingAuth struct {
	services.AuthService
	started chan struct{}
	release chan struct{}
}

func newBlockingAuth() *blockingAuth {
	return &blockingAuth{started: make(chan struct{}, 1), release: make(chan struct{})}
}

func (b *blockingAuth) Login(context.Context, models.LoginRequest) (*models.UserProfile, error) {
	b.started <- struct{}{}
	<-b.release
	return &models.UserProfile{}, nil
}

func (b *blockingAuth) Register(context.Context, models.RegisterRequest) (string, error) {
	b.started <- struct{}{}
	<-b.release
	return "ok", nil
}
