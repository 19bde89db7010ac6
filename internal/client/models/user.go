// Package models defines the client-side user, form and wire types of the
// I Care client.
package models

import "slices"

// UserProfile is the server-owned user record. The client only caches it;
// every change goes through an explicit fetch or update.
type UserProfile struct {
	ID               string           `json:"id"`
	Username         string           `json:"username"`
	Email            string           `json:"email"`
	FirstName        string           `json:"firstName"`
	LastName         string           `json:"lastName"`
	Phone            string           `json:"phone,omitempty"`
	Address          string           `json:"address,omitempty"`
	ProfileImageURL  string           `json:"profileImageUrl,omitempty"`
	Education        string           `json:"education,omitempty"`
	Experience       string           `json:"experience,omitempty"`
	Skills           string           `json:"skills,omitempty"`
	FriendCategories []FriendCategory `json:"friendCategories"`
}

// DisplayName returns "First Last", falling back to the username.
func (u UserProfile) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Username
	}
}

// Clone returns a deep copy of u.
func (u UserProfile) Clone() UserProfile {
	u.FriendCategories = slices.Clone(u.FriendCategories)
	return u
}
