package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/icare/internal/client/models"
	"github.com/dmitrijs2005/icare/internal/logging"
)

// Snapshot is an immutable view of the session at one point in time.
// Loaded is false until storage has been read for the first time.
type Snapshot struct {
	Token  string
	User   *models.UserProfile
	Loaded bool
}

// Authenticated is true iff a token is present.
func (s Snapshot) Authenticated() bool { return s.Token != "" }

func (s Snapshot) clone() Snapshot {
	if s.User != nil {
		u := s.User.Clone()
		s.User = &u
	}
	return s
}

// Listener receives the new snapshot after every change.
type Listener func(Snapshot)

// Manager is the process-wide observable session. It is safe for
// concurrent use; listeners run synchronously on the goroutine that made
// the change, after the manager's locks are released.
type Manager struct {
	store  Store
	logger logging.Logger

	mu   sync.RWMutex
	snap Snapshot

	subMu  sync.Mutex
	subs   map[uint64]Listener
	nextID uint64
}

func NewManager(store Store, logger logging.Logger) *Manager {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Manager{store: store, logger: logger, subs: map[uint64]Listener{}}
}

// Load reads the stored session. A storage failure is logged and the
// session is treated as absent.
func (m *Manager) Load(ctx context.Context) Snapshot {
	sess, err := m.store.Get(ctx)
	if err != nil && !errors.Is(err, ErrNoSession) {
		m.logger.Warn(ctx, "session storage unavailable, continuing signed out", "error", err)
	}

	m.mu.Lock()
	m.snap = Snapshot{Token: sess.Token, User: sess.User, Loaded: true}
	snap := m.snap.clone()
	m.mu.Unlock()

	m.notify(snap)
	return snap
}

// Snapshot returns the current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap.clone()
}

// Token implements client.TokenSource.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap.Token
}

// Set persists a new session (after login) and publishes it.
func (m *Manager) Set(ctx context.Context, token string, user models.UserProfile) error {
	if token == "" {
		return errors.New("empty token")
	}
	if err := m.store.Set(ctx, token, user); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	u := user.Clone()
	m.mu.Lock()
	m.snap = Snapshot{Token: token, User: &u, Loaded: true}
	snap := m.snap.clone()
	m.mu.Unlock()

	m.notify(snap)
	return nil
}

// SetUser replaces the cached user with an authoritative copy from the
// server, keeping the token.
func (m *Manager) SetUser(ctx context.Context, user models.UserProfile) error {
	if err := m.store.SetUser(ctx, user); err != nil {
		return fmt.Errorf("save user: %w", err)
	}

	u := user.Clone()
	m.mu.Lock()
	m.snap.User = &u
	m.snap.Loaded = true
	snap := m.snap.clone()
	m.mu.Unlock()

	m.notify(snap)
	return nil
}

// Clear drops the session. The in-memory state is cleared even when the
// store fails, so the process never stays signed in after a logout; the
// storage error is still returned.
func (m *Manager) Clear(ctx context.Context) error {
	err := m.store.Clear(ctx)
	if err != nil {
		m.logger.Warn(ctx, "failed to clear stored session", "error", err)
		err = fmt.Errorf("clear session: %w", err)
	}

	m.mu.Lock()
	m.snap = Snapshot{Loaded: true}
	snap := m.snap
	m.mu.Unlock()

	m.notify(snap)
	return err
}

// Subscribe registers fn for future changes and returns a function that
// removes it.
func (m *Manager) Subscribe(fn Listener) (cancel func()) {
	m.subMu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	m.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.subMu.Lock()
			delete(m.subs, id)
			m.subMu.Unlock()
		})
	}
}

func (m *Manager) notify(s Snapshot) {
	m.subMu.Lock()
	listeners := make([]Listener, 0, len(m.subs))
	for _, fn := range m.subs {
		listeners = append(listeners, fn)
	}
	m.subMu.Unlock()

	for _, fn := range listeners {
		fn(s.clone())
	}
}
