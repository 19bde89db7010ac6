package controllers

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/icare/internal/client/client"
	"github.com/dmitrijs2005/icare/internal/client/models"
	"github.com/dmitrijs2005/icare/internal/client/services"
	"github.com/dmitrijs2005/icare/internal/logging"
)

const RegisterFailedMessage = "Registration failed"

type RegisterController struct {
	auth   services.AuthService
	ui     UI
	logger logging.Logger

	submitting flag

	mu    sync.Mutex
	state FormState[models.RegisterForm]
}

func NewRegisterController(auth services.AuthService, ui UI, logger logging.Logger) *RegisterController {
	if logger == nil {
		logger = logging.Nop()
	}
	return &RegisterController{auth: auth, ui: ui, logger: logger}
}

func (c *RegisterController) State() FormState[models.RegisterForm] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit validates the form (a password mismatch never reaches the
// network), registers, alerts the server's message and navigates to login.
// Failures are alerted with the server's message or RegisterFailedMessage.
func (c *RegisterController) Submit(ctx context.Context, form models.RegisterForm) (err error) {
	if !c.submitting.acquire() {
		return ErrInProgress
	}
	defer c.submitting.release()

	if v := form.Validate(); !v.Empty() {
		c.set(FormState[models.RegisterForm]{Values: form, Errors: v, Status: StatusIdle})
		return validationError(v)
	}

	c.set(FormState[models.RegisterForm]{Values: form, Status: StatusSubmitting})
	var msg string
	defer func() {
		st := FormState[models.RegisterForm]{Values: form, Status: StatusSucceeded, Message: msg}
		if err != nil {
			st.Status = StatusIdle
		}
		c.set(st)
	}()

	msg, err = c.auth.Register(ctx, form.Request())
	if err != nil {
		c.logger.Warn(ctx, "registration failed", "error", err)
		msg = client.MessageOf(err, RegisterFailedMessage)
		c.ui.Alert(msg)
		return err
	}
	c.ui.Alert(msg)
	c.ui.Navigate(ctx, RouteLogin)
	return nil
}

func (c *RegisterController) set(st FormState[models.RegisterForm]) {
	st.Values.Password = ""
	st.Values.ConfirmPassword = ""
	c.mu.Lock()
	c.state = st
	c.mu.Unlock()
}
