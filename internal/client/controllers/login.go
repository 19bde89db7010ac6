package controllers

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/icare/internal/client/client"
	"github.com/dmitrijs2005/icare/internal/client/models"
	"github.com/dmitrijs2005/icare/internal/client/services"
	"github.com/dmitrijs2005/icare/internal/logging"
)

const LoginFailedMessage = "Login failed. Please try again."

type LoginController struct {
	auth   services.AuthService
	ui     UI
	logger logging.Logger

	submitting flag

	mu    sync.Mutex
	state FormState[models.LoginForm]
}

func NewLoginController(auth services.AuthService, ui UI, logger logging.Logger) *LoginController {
	if logger == nil {
		logger = logging.Nop()
	}
	return &LoginController{auth: auth, ui: ui, logger: logger}
}

func (c *LoginController) State() FormState[models.LoginForm] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit validates the form, signs in and navigates to the profile. On
// failure the server's message (or LoginFailedMessage) becomes the inline
// message and the stored session is not touched.
func (c *LoginController) Submit(ctx context.Context, form models.LoginForm) (err error) {
	if !c.submitting.acquire() {
		return ErrInProgress
	}
	defer c.submitting.release()

	if v := form.Validate(); !v.Empty() {
		c.set(FormState[models.LoginForm]{Values: form, Errors: v, Status: StatusIdle})
		return validationError(v)
	}

	c.set(FormState[models.LoginForm]{Values: form, Status: StatusSubmitting})
	defer func() {
		st := FormState[models.LoginForm]{Values: form, Status: StatusSucceeded}
		if err != nil {
			st.Status = StatusIdle
			st.Message = client.MessageOf(err, LoginFailedMessage)
		}
		c.set(st)
	}()

	if _, err = c.auth.Login(ctx, form.Request()); err != nil {
		c.logger.Warn(ctx, "login failed", "error", err)
		return err
	}
	c.ui.Navigate(ctx, RouteProfile)
	return nil
}

func (c *LoginController) set(st FormState[models.LoginForm]) {
	st.Values.Password = ""
	c.mu.Lock()
	c.state = st
	c.mu.Unlock()
}
