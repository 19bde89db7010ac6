package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginForm_Validate(t *testing.T) {
	v := LoginForm{}.Validate()
	assert.Equal(t, "Email is required", v[FieldEmail])
	assert.Equal(t, "Password is required", v[FieldPassword])

	assert.True(t, LoginForm{Email: "a@b.com", Password: "x"}.Validate().Empty())
}

func validRegister() RegisterForm {
	return RegisterForm{
		Username:        "jane",
		Email:           "jane@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		FirstName:       "Jane",
		LastName:        "Doe",
	}
}

func TestRegisterForm_Validate(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*RegisterForm)
		field string
		msg   string
	}{
		{"missing username", func(f *RegisterForm) { f.Username = " " }, FieldUsername, "Username is required."},
		{"short password", func(f *RegisterForm) { f.Password, f.ConfirmPassword = "abc", "abc" }, FieldPassword, "Password must be at least 6 characters."},
		{"mismatch", func(f *RegisterForm) { f.ConfirmPassword = "secret2" }, FieldConfirmPassword, "Passwords do not match."},
		{"missing confirm", func(f *RegisterForm) { f.ConfirmPassword = "" }, FieldConfirmPassword, "Please confirm your password."},
		{"missing last name", func(f *RegisterForm) { f.LastName = "" }, FieldLastName, "Last name is required."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validRegister()
			tt.edit(&f)
			v := f.Validate()
			assert.Equal(t, tt.msg, v[tt.field])
		})
	}

	assert.True(t, validRegister().Validate().Empty())
}

func TestRegisterForm_RequestHasNoConfirmField(t *testing.T) {
	b, err := json.Marshal(validRegister().Request())
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.NotContains(t, m, "confirmPassword")
	assert.Equal(t, "secret1", m["password"])
	assert.Equal(t, "jane", m["username"])
}

func TestProfileForm_FromProfileAndBack(t *testing.T) {
	u := UserProfile{
		ID:               "u1",
		FirstName:        "Jane",
		LastName:         "Doe",
		Skills:           "Cooking",
		FriendCategories: []FriendCategory{CategoryTravel, CategoryDining},
	}

	f := ProfileFormFrom(u)
	assert.True(t, f.FriendCategories[CategoryTravel])
	assert.False(t, f.FriendCategories[CategorySports])

	upd := f.Update()
	assert.Equal(t, "Jane", upd.FirstName)
	assert.Equal(t, "Cooking", upd.Skills)
	assert.ElementsMatch(t, u.FriendCategories, upd.FriendCategories)
}

func TestProfileForm_EqualAndClone(t *testing.T) {
	a := ProfileFormFrom(UserProfile{FirstName: "A", LastName: "B", FriendCategories: []FriendCategory{CategorySports}})
	b := a.Clone()
	assert.True(t, a.Equal(b))

	b.FriendCategories[CategoryDining] = true
	assert.False(t, a.Equal(b))
	assert.False(t, a.FriendCategories[CategoryDining], "clone must not share the map")

	c := a.Clone()
	c.FriendCategories = map[FriendCategory]bool{CategorySports: true}
	assert.True(t, a.Equal(c), "missing keys compare as unselected")
}

func TestProfileForm_Validate(t *testing.T) {
	v := ProfileForm{}.Validate()
	assert.Len(t, v, 2)
	assert.Contains(t, v.Error(), "firstName: First name is required")
}

func TestUserProfile_DisplayNameAndClone(t *testing.T) {
	assert.Equal(t, "Jane Doe", UserProfile{FirstName: "Jane", LastName: "Doe"}.DisplayName())
	assert.Equal(t, "jdoe", UserProfile{Username: "jdoe"}.DisplayName())

	u := UserProfile{FriendCategories: []FriendCategory{CategoryTravel}}
	c := u.Clone()
	c.FriendCategories[0] = CategoryDoctor
	assert.Equal(t, CategoryTravel, u.FriendCategories[0])
}
