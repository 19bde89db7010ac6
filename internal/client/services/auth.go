// Package services contains the application services of the I Care client.
// This file defines authentication: login, registration, logout and the
// derived auth state consumed by the UI layer.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/icare/internal/client/client"
	"github.com/dmitrijs2005/icare/internal/client/models"
	"github.com/dmitrijs2005/icare/internal/client/session"
	"github.com/dmitrijs2005/icare/internal/logging"
)

// AuthState is what UI components need to know about authentication.
//
// IsAuthenticated is derived only from token presence. IsLoading is true
// until the session has been read from storage. ExpiresAt is the token's
// "exp" claim when the token is a JWT and is informational only.
type AuthState struct {
	IsAuthenticated bool
	IsLoading       bool
	User            *models.UserProfile
	ExpiresAt       time.Time
}

// StateFrom derives an AuthState from a session snapshot.
func StateFrom(s session.Snapshot) AuthState {
	st := AuthState{
		IsAuthenticated: s.Authenticated(),
		IsLoading:       !s.Loaded,
		User:            s.User,
	}
	if st.IsAuthenticated {
		st.ExpiresAt = tokenExpiry(s.Token)
	}
	return st
}

// tokenExpiry reads "exp" without verifying the signature; the client has
// no key and only uses the value for display.
func tokenExpiry(token string) time.Time {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

// AuthService defines authentication operations for the client.
type AuthService interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.UserProfile, error)
	Register(ctx context.Context, req models.RegisterRequest) (string, error)
	Logout(ctx context.Context) error
	State() AuthState
	Subscribe(fn func(AuthState)) (cancel func())
}

type authService struct {
	client   client.Client
	sessions *session.Manager
	logger   logging.Logger
}

func NewAuthService(c client.Client, sessions *session.Manager, logger logging.Logger) AuthService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &authService{client: c, sessions: sessions, logger: logger}
}

// Login authenticates and persists {token, user}. On failure the stored
// session is left untouched.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (*models.UserProfile, error) {
	resp, err := a.client.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := a.sessions.Set(ctx, resp.Token, resp.User); err != nil {
		return nil, err
	}
	a.logger.Info(ctx, "signed in", "user_id", resp.User.ID)
	u := resp.User.Clone()
	return &u, nil
}

// Register creates an account and returns the server's message. It does
// not sign the user in.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (string, error) {
	msg, err := a.client.Register(ctx, req)
	if err != nil {
		return "", fmt.Errorf("register: %w", err)
	}
	return msg, nil
}

// Logout clears the session; subscribers see the change immediately.
func (a *authService) Logout(ctx context.Context) error {
	a.logger.Info(ctx, "signed out")
	return a.sessions.Clear(ctx)
}

func (a *authService) State() AuthState {
	return StateFrom(a.sessions.Snapshot())
}

func (a *authService) Subscribe(fn func(AuthState)) (cancel func()) {
	return a.sessions.Subscribe(func(s session.Snapshot) { fn(StateFrom(s)) })
}
