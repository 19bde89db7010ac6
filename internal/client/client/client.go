package client

import (
	"context"
	"io"

	"github.com/dmitrijs2005/icare/internal/client/models"
)

// Client is the backend API surface the services depend on.
type Client interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (string, error)
	GetProfile(ctx context.Context) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.UserProfile, error)
	UploadProfileImage(ctx context.Context, fileName string, content io.Reader) (*models.UserProfile, error)
	Close() error
}

// TokenSource supplies the bearer token for outgoing requests. An empty
// string means no Authorization header is sent.
type TokenSource interface {
	Token() string
}
