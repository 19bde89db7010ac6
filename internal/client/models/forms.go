package models

import (
	"maps"
	"slices"
	"strings"
)

// Field names used as Violations keys.
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldFirstName       = "firstName"
	FieldLastName        = "lastName"
)

type LoginForm struct {
	Email    string
	Password string
}

func (f LoginForm) Validate() Violations {
	v := Violations{}
	required(v, FieldEmail, f.Email, "Email is required")
	required(v, FieldPassword, f.Password, "Password is required")
	return v
}

func (f LoginForm) Request() LoginRequest {
	return LoginRequest{Email: strings.TrimSpace(f.Email), Password: f.Password}
}

type RegisterForm struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
	Phone           string
	Address         string
}

func (f RegisterForm) Validate() Violations {
	v := Violations{}
	required(v, FieldUsername, f.Username, "Username is required.")
	required(v, FieldEmail, f.Email, "Email is required.")
	required(v, FieldPassword, f.Password, "Password is required.")
	if _, ok := v[FieldPassword]; !ok && len(f.Password) < MinPasswordLength {
		v[FieldPassword] = "Password must be at least 6 characters."
	}
	required(v, FieldConfirmPassword, f.ConfirmPassword, "Please confirm your password.")
	if _, ok := v[FieldConfirmPassword]; !ok && f.ConfirmPassword != f.Password {
		v[FieldConfirmPassword] = "Passwords do not match."
	}
	required(v, FieldFirstName, f.FirstName, "First name is required.")
	required(v, FieldLastName, f.LastName, "Last name is required.")
	return v
}

// Request drops ConfirmPassword; it never leaves the client.
func (f RegisterForm) Request() RegisterRequest {
	return RegisterRequest{
		Username:  strings.TrimSpace(f.Username),
		Email:     strings.TrimSpace(f.Email),
		Password:  f.Password,
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Phone:     f.Phone,
		Address:   f.Address,
	}
}

// ProfileForm is the editable part of a UserProfile, with categories held as
// a checkbox map.
type ProfileForm struct {
	FirstName        string
	LastName         string
	Phone            string
	Address          string
	Education        string
	Experience       string
	Skills           string
	FriendCategories map[FriendCategory]bool
}

// ProfileFormFrom populates a form from a fetched or returned profile.
func ProfileFormFrom(u UserProfile) ProfileForm {
	return ProfileForm{
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Phone:            u.Phone,
		Address:          u.Address,
		Education:        u.Education,
		Experience:       u.Experience,
		Skills:           u.Skills,
		FriendCategories: CategoriesToForm(u.FriendCategories),
	}
}

func (f ProfileForm) Validate() Violations {
	v := Violations{}
	required(v, FieldFirstName, f.FirstName, "First name is required")
	required(v, FieldLastName, f.LastName, "Last name is required")
	return v
}

// Update converts the form into the partial-update payload.
func (f ProfileForm) Update() ProfileUpdate {
	return ProfileUpdate{
		FirstName:        f.FirstName,
		LastName:         f.LastName,
		Phone:            f.Phone,
		Address:          f.Address,
		Education:        f.Education,
		Experience:       f.Experience,
		Skills:           f.Skills,
		FriendCategories: CategoriesFromForm(f.FriendCategories),
	}
}

// Equal compares two forms; categories compare by selection, so a missing
// key equals false.
func (f ProfileForm) Equal(o ProfileForm) bool {
	if f.FirstName != o.FirstName || f.LastName != o.LastName || f.Phone != o.Phone ||
		f.Address != o.Address || f.Education != o.Education || f.Experience != o.Experience ||
		f.Skills != o.Skills {
		return false
	}
	return slices.Equal(CategoriesFromForm(f.FriendCategories), CategoriesFromForm(o.FriendCategories))
}

// Clone returns a copy whose category map is not shared with f.
func (f ProfileForm) Clone() ProfileForm {
	f.FriendCategories = maps.Clone(f.FriendCategories)
	return f
}
