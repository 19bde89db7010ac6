// Package client is the HTTP client of the I Care REST backend.
//
// # Overview
//
// HTTPClient.Do is the single request primitive: it encodes the body,
// attaches the bearer token from a TokenSource, tags the call with an
// X-Request-ID and decodes the JSON response. The endpoint helpers (Login,
// Register, GetProfile, UpdateProfile, UploadProfileImage) are thin
// wrappers around it and together satisfy the Client interface used by the
// services layer.
//
// # Error Handling
//
// Any non-2xx response becomes a *HTTPError carrying the status and the
// server's message/details. 401 and 403 match ErrUnauthorized with
// errors.Is; transport failures wrap ErrUnavailable. MessageOf and DetailsOf
// turn an error into user-facing text with a fallback.
//
// Nothing is retried and no timeout is applied beyond what the caller puts
// on the context or the configured *http.Client.
package client
