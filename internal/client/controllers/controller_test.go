package controllers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/icare/internal/client/client"
)

func TestParseLogoutPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    LogoutPolicy
		wantErr bool
	}{
		{"", LogoutOnAnyError, false},
		{"auth", LogoutOnAuthError, false},
		{" ANY ", LogoutOnAnyError, false},
		{"never", LogoutOnAnyError, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLogoutPolicy(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			back, err := ParseLogoutPolicy(got.String())
			require.NoError(t, err)
			assert.Equal(t, got, back)
		})
	}
}

func TestLogoutPolicy_ShouldLogout(t *testing.T) {
	unauthorized := &client.HTTPError{Status: 401}
	forbidden := &client.HTTPError{Status: 403}
	serverErr := &client.HTTPError{Status: 500}
	offline := errors.Join(client.ErrUnavailable, errors.New("dial tcp: refused"))

	assert.True(t, LogoutOnAuthError.shouldLogout(unauthorized))
	assert.True(t, LogoutOnAuthError.shouldLogout(forbidden))
	assert.False(t, LogoutOnAuthError.shouldLogout(serverErr))
	assert.False(t, LogoutOnAuthError.shouldLogout(offline))

	assert.True(t, LogoutOnAnyError.shouldLogout(serverErr))
	assert.True(t, LogoutOnAnyError.shouldLogout(offline))
	assert.True(t, LogoutOnAnyError.shouldLogout(context.Canceled))
	assert.False(t, LogoutOnAuthError.shouldLogout(context.Canceled))
}

func TestLogoutPolicy_ZeroValueIsAny(t *testing.T) {
	var p LogoutPolicy
	assert.Equal(t, LogoutOnAnyError, p)
	assert.Equal(t, "any", p.String())
	assert.True(t, p.shouldLogout(&client.HTTPError{Status: 500}))
}

func TestFlag(t *testing.T) {
	var f flag
	require.True(t, f.acquire())
	assert.True(t, f.active())
	assert.False(t, f.acquire())
	f.release()
	assert.False(t, f.active())
	assert.True(t, f.acquire())
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "idle", StatusIdle.String())
	assert.Equal(t, "submitting", StatusSubmitting.String())
	assert.Equal(t, "succeeded", StatusSucceeded.String())
}

func TestLogoutPolicy_TextRoundTrip(t *testing.T) {
	var p LogoutPolicy
	require.NoError(t, p.UnmarshalText([]byte("auth")))
	assert.Equal(t, LogoutOnAuthError, p)

	b, err := p.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "auth", string(b))

	assert.Error(t, p.UnmarshalText([]byte("sometimes")))
	assert.Equal(t, LogoutOnAuthError, p, "a bad value leaves the policy unchanged")
}
