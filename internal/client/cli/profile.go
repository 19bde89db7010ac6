package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/icare/internal/client/controllers"
	"github.com/dmitrijs2005/icare/internal/client/models"
)

// Profile shows the profile screen, reloading it from the server.
func (a *App) Profile(ctx context.Context) error {
	a.Navigate(ctx, controllers.RouteProfile)
	return nil
}

// Edit walks through the editable fields, then submits the changes. An
// empty answer keeps a field, "-" clears it.
func (a *App) Edit(ctx context.Context) error {
	if a.profile.State().User == nil {
		if err := a.profile.Mount(ctx); err != nil {
			return err
		}
	}
	current := a.profile.State().Form.Values

	fields := []struct {
		label string
		dst   *string
	}{
		{"First name", &current.FirstName},
		{"Last name", &current.LastName},
		{"Phone", &current.Phone},
		{"Address", &current.Address},
		{"Education", &current.Education},
		{"Experience", &current.Experience},
		{"Skills", &current.Skills},
	}
	for _, f := range fields {
		v, err := GetWithDefault(a.reader, f.label, *f.dst, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	cats, err := a.askCategories(current.FriendCategories)
	if err != nil {
		return err
	}
	current.FriendCategories = cats

	a.profile.Edit(func(f *models.ProfileForm) { *f = current })

	err = a.profile.Submit(ctx)
	switch {
	case err == nil:
		a.printProfile()
	case errors.Is(err, controllers.ErrNotModified):
		a.printf("No changes.\n")
	case errors.Is(err, controllers.ErrValidation):
		printViolations(a.out, a.profile.State().Form.Errors)
	case errors.Is(err, controllers.ErrInProgress):
		a.printf("Please wait, the previous request is still running.\n")
	}
	return err
}

// askCategories prints the numbered category options and reads a
// comma-separated selection.
func (a *App) askCategories(selected map[models.FriendCategory]bool) (map[models.FriendCategory]bool, error) {
	var current []string
	for i, o := range models.FriendCategoryOptions {
		mark := " "
		if selected[o.Code] {
			mark = "x"
			current = append(current, strconv.Itoa(i+1))
		}
		a.printf("  [%s] %d. %s (%s)\n", mark, i+1, o.Label, o.Code)
	}

	line, err := GetWithDefault(a.reader, "Friend categories, comma-separated numbers", strings.Join(current, ","), a.out)
	if err != nil {
		return nil, err
	}
	return parseCategorySelection(line)
}

// parseCategorySelection turns "1, 3" into a category form map.
func parseCategorySelection(line string) (map[models.FriendCategory]bool, error) {
	var picked []models.FriendCategory
	for _, part := range strings.Split(line, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 || n > len(models.FriendCategoryOptions) {
			return nil, fmt.Errorf("invalid category %q", part)
		}
		picked = append(picked, models.FriendCategoryOptions[n-1].Code)
	}
	return models.CategoriesToForm(picked), nil
}

// Image stages a local file for upload and prints its preview URL.
func (a *App) Image(_ context.Context, path string) error {
	if err := a.profile.StageImage(path); err != nil {
		a.printf("Cannot use %s: %v\n", path, err)
		return err
	}
	a.printf("Selected %s\nPreview: %s\nType 'upload' to send it.\n", path, a.profile.State().PreviewImage)
	return nil
}

// Upload sends the staged image.
func (a *App) Upload(ctx context.Context) error {
	err := a.profile.UploadImage(ctx)
	switch {
	case err == nil:
		a.printProfile()
	case errors.Is(err, controllers.ErrNoImage):
		a.printf("No image selected. Use: image <path>\n")
	case errors.Is(err, controllers.ErrInProgress):
		a.printf("Please wait, the previous request is still running.\n")
	}
	return err
}

// Status prints the session as the client sees it, without a request.
func (a *App) Status(_ context.Context) error {
	st := a.authService.State()
	if !st.IsAuthenticated {
		a.printf("Not signed in.\n")
		return nil
	}

	name := "unknown user"
	if st.User != nil {
		name = st.User.DisplayName()
	}
	a.printf("Signed in as %s\n", name)
	if !st.ExpiresAt.IsZero() {
		a.printf("Token expires %s\n", st.ExpiresAt.Local().Format(time.RFC1123))
	}

	ps := a.profile.State()
	if ps.Dirty {
		a.printf("Profile has unsaved changes.\n")
	}
	if ps.StagedImage != "" {
		a.printf("Image staged for upload: %s\n", ps.StagedImage)
	}
	return nil
}

func (a *App) printProfile() {
	u := a.profile.State().User
	if u == nil {
		return
	}

	a.printf("%s (@%s)\n", u.DisplayName(), u.Username)
	rows := []struct{ label, value string }{
		{"Email", u.Email},
		{"Phone", u.Phone},
		{"Address", u.Address},
		{"Education", u.Education},
		{"Experience", u.Experience},
		{"Skills", u.Skills},
		{"Picture", u.ProfileImageURL},
	}
	for _, r := range rows {
		if r.value != "" {
			a.printf("  %-11s %s\n", r.label+":", r.value)
		}
	}

	var labels []string
	selected := models.CategoriesToForm(u.FriendCategories)
	for _, o := range models.FriendCategoryOptions {
		if selected[o.Code] {
			labels = append(labels, o.Label)
		}
	}
	if len(labels) > 0 {
		a.printf("  %-11s %s\n", "Looking for:", strings.Join(labels, ", "))
	}
}
