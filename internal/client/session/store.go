package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/icare/internal/client/models"
	"github.com/dmitrijs2005/icare/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/icare/internal/common"
	"github.com/dmitrijs2005/icare/internal/dbx"
)

// ErrNoSession is returned by Store.Get when no token is stored.
var ErrNoSession = errors.New("no session")

// Session is a stored token plus the last known user. User is nil when the
// cached copy is missing or unreadable.
type Session struct {
	Token string
	User  *models.UserProfile
}

type Store interface {
	Get(ctx context.Context) (Session, error)
	Set(ctx context.Context, token string, user models.UserProfile) error
	SetUser(ctx context.Context, user models.UserProfile) error
	Clear(ctx context.Context) error
}

// SQLiteStore is a Store over the metadata key/value table.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) repo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

func (s *SQLiteStore) Get(ctx context.Context) (Session, error) {
	repo := s.repo(s.db)

	token, err := repo.Get(ctx, common.TokenKey)
	if errors.Is(err, metadata.ErrNotFound) || (err == nil && len(token) == 0) {
		return Session{}, ErrNoSession
	}
	if err != nil {
		return Session{}, err
	}

	sess := Session{Token: string(token)}

	raw, err := repo.Get(ctx, common.UserKey)
	switch {
	case errors.Is(err, metadata.ErrNotFound):
	case err != nil:
		return Session{}, err
	default:
		var u models.UserProfile
		if err := json.Unmarshal(raw, &u); err == nil {
			sess.User = &u
		}
	}
	return sess, nil
}

// Set stores token and user atomically.
func (s *SQLiteStore) Set(ctx context.Context, token string, user models.UserProfile) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Set(ctx, common.TokenKey, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, common.UserKey, raw)
	})
}

// SetUser overwrites the cached user, leaving the token untouched.
func (s *SQLiteStore) SetUser(ctx context.Context, user models.UserProfile) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	return s.repo(s.db).Set(ctx, common.UserKey, raw)
}

// Clear removes both session keys.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repo(tx).Delete(ctx, common.TokenKey, common.UserKey)
	})
}
