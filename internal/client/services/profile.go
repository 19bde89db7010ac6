package services

import (
	"context"
	"io"

	"github.com/dmitrijs2005/icare/internal/client/client"
	"github.com/dmitrijs2005/icare/internal/client/models"
	"github.com/dmitrijs2005/icare/internal/client/session"
	"github.com/dmitrijs2005/icare/internal/logging"
)

// ProfileService reads and writes the signed-in user's profile. Every
// successful write replaces the cached session user with the server's copy.
type ProfileService interface {
	Fetch(ctx context.Context) (*models.UserProfile, error)
	Update(ctx context.Context, upd models.ProfileUpdate) (*models.UserProfile, error)
	UploadImage(ctx context.Context, fileName string, content io.Reader) (*models.UserProfile, error)
}

type profileService struct {
	client   client.Client
	sessions *session.Manager
	logger   logging.Logger
}

func NewProfileService(c client.Client, sessions *session.Manager, logger logging.Logger) ProfileService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &profileService{client: c, sessions: sessions, logger: logger}
}

func (p *profileService) Fetch(ctx context.Context) (*models.UserProfile, error) {
	return p.client.GetProfile(ctx)
}

func (p *profileService) Update(ctx context.Context, upd models.ProfileUpdate) (*models.UserProfile, error) {
	u, err := p.client.UpdateProfile(ctx, upd)
	if err != nil {
		return nil, err
	}
	return p.sync(ctx, u)
}

func (p *profileService) UploadImage(ctx context.Context, fileName string, content io.Reader) (*models.UserProfile, error) {
	u, err := p.client.UploadProfileImage(ctx, fileName, content)
	if err != nil {
		return nil, err
	}
	return p.sync(ctx, u)
}

// sync caches the server's user. A cache write failure is logged, not
// returned: the server change already happened.
func (p *profileService) sync(ctx context.Context, u *models.UserProfile) (*models.UserProfile, error) {
	if err := p.sessions.SetUser(ctx, *u); err != nil {
		p.logger.Warn(ctx, "failed to cache updated user", "error", err)
	}
	return u, nil
}
