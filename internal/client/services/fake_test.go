package services

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/icare/internal/client/models"
	"github.com/dmitrijs2005/icare/internal/client/session"
)

// fakeClient implements client.Client for service unit tests.
type fakeClient struct {
	LoginRet *models.AuthResponse
	LoginErr error

	RegisterMsg string
	RegisterErr error

	ProfileRet *models.UserProfile
	ProfileErr error

	UpdateRet *models.UserProfile
	UpdateErr error

	UploadRet *models.UserProfile
	UploadErr error

	LastLogin    models.LoginRequest
	LastRegister models.RegisterRequest
	LastUpdate   models.ProfileUpdate
	LastFileName string
	LastContent  []byte
	Calls        int
}

func (f *fakeClient) Login(_ context.Context, r models.LoginRequest) (*models.AuthResponse, error) {
	f.Calls++
	f.LastLogin = r
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Register(_ context.Context, r models.RegisterRequest) (string, error) {
	f.Calls++
	f.LastRegister = r
	return f.RegisterMsg, f.RegisterErr
}

func (f *fakeClient) GetProfile(context.Context) (*models.UserProfile, error) {
	f.Calls++
	return f.ProfileRet, f.ProfileErr
}

func (f *fakeClient) UpdateProfile(_ context.Context, u models.ProfileUpdate) (*models.UserProfile, error) {
	f.Calls++
	f.LastUpdate = u
	return f.UpdateRet, f.UpdateErr
}

func (f *fakeClient) UploadProfileImage(_ context.Context, name string, r io.Reader) (*models.UserProfile, error) {
	f.Calls++
	f.LastFileName = name
	f.LastContent, _ = io.ReadAll(r)
	return f.UploadRet, f.UploadErr
}

func (f *fakeClient) Close() error { return nil }

func newManager(t *testing.T) (*session.Manager, *session.SQLiteStore) {
	t.Helper()
	db, err := session.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := session.NewSQLiteStore(db)
	m := session.NewManager(store, nil)
	m.Load(context.Background())
	return m, store
}
