package controllers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/icare/internal/client/client"
	"github.com/dmitrijs2005/icare/internal/client/models"
)

var (
	// ErrInProgress is returned when an action is triggered while the same
	// action is still running. No request is made.
	ErrInProgress = errors.New("action already in progress")
	// ErrValidation wraps the models.Violations that blocked a submit.
	ErrValidation = errors.New("validation failed")
	// ErrNotModified is returned by a submit of an unchanged form.
	ErrNotModified = errors.New("form not modified")
	// ErrNoImage is returned by an upload with nothing staged.
	ErrNoImage = errors.New("no image staged")
)

// Route names a screen of the client.
type Route string

const (
	RouteHome     Route = "home"
	RouteLogin    Route = "login"
	RouteRegister Route = "register"
	RouteProfile  Route = "profile"
)

// UI is what controllers need from the presentation layer.
type UI interface {
	Navigate(ctx context.Context, to Route)
	Alert(msg string)
}

type Status int

const (
	StatusIdle Status = iota
	StatusSubmitting
	StatusSucceeded
)

func (s Status) String() string {
	switch s {
	case StatusSubmitting:
		return "submitting"
	case StatusSucceeded:
		return "succeeded"
	default:
		return "idle"
	}
}

// FormState is the observable state of one form. A failed submit returns
// the form to StatusIdle with the inline error kept in Message.
type FormState[T any] struct {
	Values T
	Errors models.Violations
	Status Status
	Message string
}

// Submitting reports whether the submit control is disabled.
func (s FormState[T]) Submitting() bool { return s.Status == StatusSubmitting }

// LogoutPolicy decides which failed authenticated calls end the session.
type LogoutPolicy int

const (
	// LogoutOnAnyError clears the session for any failed profile fetch,
	// cancellation included. It is the zero value.
	LogoutOnAnyError LogoutPolicy = iota
	// LogoutOnAuthError clears the session only for 401 and 403 responses.
	LogoutOnAuthError
)

func (p LogoutPolicy) String() string {
	if p == LogoutOnAuthError {
		return "auth"
	}
	return "any"
}

// ParseLogoutPolicy accepts "any" and "auth" (case-insensitive). An empty
// string is the default, "any".
func ParseLogoutPolicy(s string) (LogoutPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any":
		return LogoutOnAnyError, nil
	case "auth":
		return LogoutOnAuthError, nil
	default:
		return LogoutOnAnyError, fmt.Errorf("unknown logout policy %q", s)
	}
}

func (p LogoutPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *LogoutPolicy) UnmarshalText(b []byte) error {
	v, err := ParseLogoutPolicy(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func (p LogoutPolicy) shouldLogout(err error) bool {
	return p == LogoutOnAnyError || client.IsAuthError(err)
}

// flag is an in-progress flag for one action.
type flag struct {
	mu   sync.Mutex
	busy bool
}

func (f *flag) acquire() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.busy {
		return false
	}
	f.busy = true
	return true
}

func (f *flag) release() {
	f.mu.Lock()
	f.busy = false
	f.mu.Unlock()
}

func (f *flag) active() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy
}

func validationError(v models.Violations) error {
	return fmt.Errorf("%w: %w", ErrValidation, v)
}
