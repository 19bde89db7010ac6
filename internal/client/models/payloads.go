package models

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /auth/register. It deliberately has
// no confirm-password field.
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
}

// ProfileUpdate is the body of PUT /users/profile.
type ProfileUpdate struct {
	FirstName        string           `json:"firstName"`
	LastName         string           `json:"lastName"`
	Phone            string           `json:"phone"`
	Address          string           `json:"address"`
	Education        string           `json:"education"`
	Experience       string           `json:"experience"`
	Skills           string           `json:"skills"`
	FriendCategories []FriendCategory `json:"friendCategories"`
}

// AuthResponse is returned by a successful login.
type AuthResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

// ProfileResponse wraps the user returned by profile update and upload.
type ProfileResponse struct {
	User UserProfile `json:"user"`
}

// MessageResponse carries a plain server message (register success, errors).
type MessageResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
