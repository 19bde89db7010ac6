package controllers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dmitrijs2005/icare/internal/client/client"
	"github.com/dmitrijs2005/icare/internal/client/models"
	"github.com/dmitrijs2005/icare/internal/client/services"
	"github.com/dmitrijs2005/icare/internal/filex"
	"github.com/dmitrijs2005/icare/internal/logging"
)

const (
	ProfileLoadFailedMessage   = "Failed to load profile."
	ProfileUpdatedMessage      = "Profile updated successfully!"
	ProfileUpdateFailedMessage = "An error occurred while updating your profile."
	ImageUploadedMessage       = "Profile picture uploaded!"
	ImageUploadFailedMessage   = "Upload failed."
)

// ProfileState is everything the profile screen renders.
type ProfileState struct {
	Loading bool
	User    *models.UserProfile
	Form    FormState[models.ProfileForm]
	// Dirty is true when Form.Values differ from the last server copy.
	Dirty bool
	// Updating disables both the submit and the upload controls.
	Updating bool

	StagedImage  string
	PreviewImage string
}

type ProfileController struct {
	auth     services.AuthService
	profiles services.ProfileService
	ui       UI
	policy   LogoutPolicy
	logger   logging.Logger

	loading  flag
	updating flag

	mu       sync.Mutex
	mounted  bool
	user     *models.UserProfile
	form     FormState[models.ProfileForm]
	pristine models.ProfileForm
	staged   string
	preview  string
}

func NewProfileController(
	auth services.AuthService,
	profiles services.ProfileService,
	ui UI,
	policy LogoutPolicy,
	logger logging.Logger,
) *ProfileController {
	if logger == nil {
		logger = logging.Nop()
	}
	return &ProfileController{auth: auth, profiles: profiles, ui: ui, policy: policy, logger: logger}
}

func (c *ProfileController) State() ProfileState {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := ProfileState{
		Loading:      c.loading.active() || !c.mounted,
		Form:         c.form,
		Dirty:        !c.form.Values.Equal(c.pristine),
		Updating:     c.updating.active(),
		StagedImage:  c.staged,
		PreviewImage: c.preview,
	}
	st.Form.Values = c.form.Values.Clone()
	if c.user != nil {
		u := c.user.Clone()
		st.User = &u
	}
	return st
}

// Mount loads the profile. Without a token it navigates to login and makes
// no request. A failed fetch ends the session when the LogoutPolicy says so.
func (c *ProfileController) Mount(ctx context.Context) error {
	if !c.auth.State().IsAuthenticated {
		c.ui.Navigate(ctx, RouteLogin)
		return client.ErrUnauthorized
	}
	if !c.loading.acquire() {
		return ErrInProgress
	}
	defer c.loading.release()

	u, err := c.profiles.Fetch(ctx)
	if err != nil {
		c.logger.Warn(ctx, "failed to fetch profile", "error", err)
		if c.policy.shouldLogout(err) {
			c.endSession(ctx)
			return err
		}
		c.setMounted()
		c.ui.Alert(client.MessageOf(err, ProfileLoadFailedMessage))
		return err
	}
	if unknown := models.UnknownCategories(u.FriendCategories); len(unknown) > 0 {
		c.logger.Warn(ctx, "dropping unknown friend categories", "categories", unknown)
	}
	c.reset(u)
	c.setMounted()
	return nil
}

func (c *ProfileController) setMounted() {
	c.mu.Lock()
	c.mounted = true
	c.mu.Unlock()
}

// Edit applies fn to a copy of the current form values and stores the
// result. Validation runs on Submit.
func (c *ProfileController) Edit(fn func(*models.ProfileForm)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := c.form.Values.Clone()
	fn(&v)
	c.form.Values = v
}

// Submit sends the edited form as a partial update. An unchanged form
// returns ErrNotModified without a request. On success the user and the
// form are reset from the server's response.
func (c *ProfileController) Submit(ctx context.Context) error {
	if !c.updating.acquire() {
		return ErrInProgress
	}
	defer c.updating.release()

	c.mu.Lock()
	if c.user == nil {
		c.mu.Unlock()
		return client.ErrUnauthorized
	}
	values := c.form.Values.Clone()
	dirty := !values.Equal(c.pristine)
	v := values.Validate()
	if !v.Empty() {
		c.form.Errors = v
		c.mu.Unlock()
		return validationError(v)
	}
	if !dirty {
		c.mu.Unlock()
		return ErrNotModified
	}
	c.form.Errors = nil
	c.form.Message = ""
	c.form.Status = StatusSubmitting
	c.mu.Unlock()

	u, err := c.profiles.Update(ctx, values.Update())
	if err != nil {
		c.logger.Warn(ctx, "failed to update profile", "error", err)
		if client.IsAuthError(err) {
			c.endSession(ctx)
			return err
		}
		c.mu.Lock()
		c.form.Status = StatusIdle
		c.form.Message = ProfileUpdateFailedMessage
		c.mu.Unlock()
		c.ui.Alert(ProfileUpdateFailedMessage)
		return err
	}

	c.reset(u)
	c.mu.Lock()
	c.form.Status = StatusSucceeded
	c.mu.Unlock()
	c.ui.Alert(ProfileUpdatedMessage)
	return nil
}

// StageImage selects a local file for upload and derives its preview URL.
// Staging a new file replaces the previous one.
func (c *ProfileController) StageImage(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stage image: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("stage image: %s is a directory", path)
	}
	preview, err := filex.FileURL(path)
	if err != nil {
		return fmt.Errorf("stage image: %w", err)
	}

	c.mu.Lock()
	c.staged = path
	c.preview = preview
	c.mu.Unlock()
	return nil
}

// UploadImage uploads the staged file. With nothing staged it is a no-op
// returning ErrNoImage. On success the staged file and preview are
// discarded and the user is replaced by the server's copy.
func (c *ProfileController) UploadImage(ctx context.Context) error {
	c.mu.Lock()
	path := c.staged
	c.mu.Unlock()
	if path == "" {
		return ErrNoImage
	}

	if !c.updating.acquire() {
		return ErrInProgress
	}
	defer c.updating.release()

	f, err := os.Open(path)
	if err != nil {
		c.ui.Alert(ImageUploadFailedMessage)
		return fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	u, err := c.profiles.UploadImage(ctx, filepath.Base(path), f)
	if err != nil {
		c.logger.Warn(ctx, "failed to upload image", "error", err)
		if client.IsAuthError(err) {
			c.endSession(ctx)
			return err
		}
		c.ui.Alert(client.DetailsOf(err, ImageUploadFailedMessage))
		return err
	}

	c.mu.Lock()
	uc := u.Clone()
	c.user = &uc
	c.staged = ""
	c.preview = ""
	c.mu.Unlock()
	c.ui.Alert(ImageUploadedMessage)
	return nil
}

// Logout clears the session and navigates to login.
func (c *ProfileController) Logout(ctx context.Context) error {
	err := c.auth.Logout(ctx)
	c.forget()
	c.ui.Navigate(ctx, RouteLogin)
	return err
}

// endSession clears the stored session even when ctx is already cancelled.
func (c *ProfileController) endSession(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	if err := c.auth.Logout(ctx); err != nil {
		c.logger.Error(ctx, "failed to clear session", "error", err)
	}
	c.forget()
	c.ui.Navigate(ctx, RouteLogin)
}

// reset makes u the current user and the pristine form.
func (c *ProfileController) reset(u *models.UserProfile) {
	uc := u.Clone()
	form := models.ProfileFormFrom(uc)

	c.mu.Lock()
	c.user = &uc
	c.pristine = form.Clone()
	c.form = FormState[models.ProfileForm]{Values: form}
	c.mu.Unlock()
}

func (c *ProfileController) forget() {
	c.mu.Lock()
	c.mounted = false
	c.user = nil
	c.form = FormState[models.ProfileForm]{}
	c.pristine = models.ProfileForm{}
	c.staged = ""
	c.preview = ""
	c.mu.Unlock()
}
