// Package session keeps the client's proof of authentication: the bearer
// token and a cached copy of the user's profile.
//
// Store persists the two values in the local SQLite database under the
// keys "token" and "user". Manager sits in front of a Store as the single
// process-wide, observable session: it loads once, writes through, and
// notifies subscribers after every change so that every consumer sees the
// same state without re-reading storage.
//
// A cached user without a token is not a session.
package session
