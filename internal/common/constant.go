// Package common contains constants and helpers shared by the client layers.
package common

// Outbound request headers.
const (
	AuthorizationHeader = "Authorization"
	BearerPrefix        = "Bearer "
	RequestIDHeader     = "X-Request-ID"
)

// Persisted session keys.
const (
	TokenKey = "token"
	UserKey  = "user"
)

// ProfileImageField is the multipart field name the backend expects for
// profile image uploads.
const ProfileImageField = "profileImage"
