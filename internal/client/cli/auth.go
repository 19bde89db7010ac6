package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/dmitrijs2005/icare/internal/client/controllers"
	"github.com/dmitrijs2005/icare/internal/client/models"
	"github.com/dmitrijs2005/icare/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the registration form and submits it. The byte
// buffers read from the terminal are wiped before returning. The string
// copies in the form are not and live until collected. Validation problems
// are printed per field and nothing is sent.
func (a *App) Register(ctx context.Context) error {
	var form models.RegisterForm
	var err error

	prompts := []struct {
		label string
		dst   *string
	}{
		{"Username", &form.Username},
		{"Email", &form.Email},
	}
	for _, p := range prompts {
		if *p.dst, err = getSimpleText(a.reader, p.label, a.out); err != nil {
			return err
		}
	}

	password, err := getPassword(a.out, "Password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(a.out, "Confirm password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	form.Password = string(password)
	form.ConfirmPassword = string(confirm)

	prompts = []struct {
		label string
		dst   *string
	}{
		{"First name", &form.FirstName},
		{"Last name", &form.LastName},
		{"Phone (optional)", &form.Phone},
		{"Address (optional)", &form.Address},
	}
	for _, p := range prompts {
		if *p.dst, err = getSimpleText(a.reader, p.label, a.out); err != nil {
			return err
		}
	}

	err = a.registerForm.Submit(ctx, form)
	a.reportFormError(err, a.registerForm.State().Errors)
	return err
}

// Login prompts for credentials and signs in. On success the profile screen
// is shown; on failure the inline message is printed and the stored
// session is unchanged. As in Register, only the terminal buffer is wiped.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	err = a.loginForm.Submit(ctx, models.LoginForm{Email: email, Password: string(password)})
	switch {
	case err == nil, errors.Is(err, controllers.ErrValidation), errors.Is(err, controllers.ErrInProgress):
		a.reportFormError(err, a.loginForm.State().Errors)
	default:
		a.printf("%s\n", a.loginForm.State().Message)
	}
	return err
}

// Logout clears the session and returns to the login screen.
func (a *App) Logout(ctx context.Context) error {
	err := a.profile.Logout(ctx)
	if err != nil {
		a.printf("Could not clear the stored session: %v\n", err)
	}
	return err
}

// reportFormError prints the outcome of a form submit that did not already
// reach the user through an alert.
func (a *App) reportFormError(err error, v models.Violations) {
	switch {
	case err == nil:
	case errors.Is(err, controllers.ErrValidation):
		printViolations(a.out, v)
	case errors.Is(err, controllers.ErrInProgress):
		a.printf("Please wait, the previous request is still running.\n")
	}
}

func printViolations(w io.Writer, v models.Violations) {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Fprintf(w, "  %s: %s\n", f, v[f])
	}
}
