package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/icare/internal/client/models"
	"github.com/dmitrijs2005/icare/internal/testutil/fakeapi"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestLogin_Success_ReturnsTokenAndUser(t *testing.T) {
	srv := fakeapi.New(t)
	srv.AddUser("x", models.UserProfile{Email: "a@b.com", FirstName: "Ann"})

	c := NewHTTPClient(srv.BaseURL(), nil)
	resp, err := c.Login(context.Background(), models.LoginRequest{Email: "a@b.com", Password: "x"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Ann", resp.User.FirstName)

	rec, ok := srv.LastRequest(http.MethodPost, "/auth/login")
	require.True(t, ok)
	assert.Empty(t, rec.Authorization, "no token source, no header")
	assert.Equal(t, "application/json", rec.ContentType)
	_, err = uuid.Parse(rec.RequestID)
	assert.NoError(t, err, "every request carries a uuid request id")
}

func TestLogin_InvalidCredentials_HTTPErrorWithServerMessage(t *testing.T) {
	srv := fakeapi.New(t)
	c := NewHTTPClient(srv.BaseURL(), nil)

	_, err := c.Login(context.Background(), models.LoginRequest{Email: "a@b.com", Password: "x"})
	require.Error(t, err)

	var he *HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.Status)
	assert.Equal(t, "Invalid credentials", he.Message)
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.Equal(t, "Invalid credentials", MessageOf(err, "fallback"))
}

func TestDo_InjectsBearerToken(t *testing.T) {
	srv := fakeapi.New(t)
	token := srv.AddUser("pw", models.UserProfile{Email: "a@b.com", Username: "ann"})

	c := NewHTTPClient(srv.BaseURL(), staticToken(token))
	u, err := c.GetProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ann", u.Username)

	rec, ok := srv.LastRequest(http.MethodGet, "/users/profile")
	require.True(t, ok)
	assert.Equal(t, "Bearer "+token, rec.Authorization)
}

func TestGetProfile_NoToken_Unauthorized(t *testing.T) {
	srv := fakeapi.New(t)
	c := NewHTTPClient(srv.BaseURL(), staticToken(""))

	_, err := c.GetProfile(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.True(t, IsAuthError(err))
}

func TestUpdateProfile_ReturnsServerUser(t *testing.T) {
	srv := fakeapi.New(t)
	token := srv.AddUser("pw", models.UserProfile{Email: "a@b.com", FirstName: "Ann", LastName: "Lee"})
	c := NewHTTPClient(srv.BaseURL(), staticToken(token))

	u, err := c.UpdateProfile(context.Background(), models.ProfileUpdate{
		FirstName:        "  Jane ",
		LastName:         "Lee",
		FriendCategories: []models.FriendCategory{models.CategoryTravel, "BOGUS"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane", u.FirstName)
	assert.Equal(t, []models.FriendCategory{models.CategoryTravel}, u.FriendCategories)

	rec, _ := srv.LastRequest(http.MethodPut, "/users/profile")
	var sent map[string]any
	require.NoError(t, json.Unmarshal(rec.Body, &sent))
	assert.Equal(t, []any{"TRAVEL", "BOGUS"}, sent["friendCategories"])
}

func TestUploadProfileImage_SendsMultipart(t *testing.T) {
	srv := fakeapi.New(t)
	token := srv.AddUser("pw", models.UserProfile{Email: "a@b.com"})
	c := NewHTTPClient(srv.BaseURL(), staticToken(token))

	u, err := c.UploadProfileImage(context.Background(), "/home/me/avatar.png", strings.NewReader("img"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(u.ProfileImageURL, "/uploads/avatar.png"))

	rec, _ := srv.LastRequest(http.MethodPost, "/users/profile/upload")
	assert.True(t, strings.HasPrefix(rec.ContentType, "multipart/form-data; boundary="))
}

func TestRegister_ReturnsServerMessage(t *testing.T) {
	srv := fakeapi.New(t)
	c := NewHTTPClient(srv.BaseURL(), nil)

	msg, err := c.Register(context.Background(), models.RegisterRequest{Username: "j", Email: "j@x.io", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "User registered successfully", msg)

	_, err = c.Register(context.Background(), models.RegisterRequest{Email: "j@x.io"})
	assert.Equal(t, "Email already in use", MessageOf(err, "Registration failed"))
	assert.False(t, IsAuthError(err))
}

func TestDo_ErrorBodies(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMsg     string
		wantDetails string
		wantErrText string
	}{
		{"message", 400, `{"message":"bad"}`, "bad", "", "bad"},
		{"message and details", 400, `{"message":"Upload failed","details":"too big"}`, "Upload failed", "too big", "Upload failed"},
		{"error key", 500, `{"error":"encode_error"}`, "encode_error", "", "encode_error"},
		{"structured details", 422, `{"message":"invalid","details":{"field":"phone"}}`, "invalid", `{"field":"phone"}`, "invalid"},
		{"not json", 502, `<html>bad gateway</html>`, "", "", "request failed with status 502"},
		{"empty", 500, ``, "", "", "request failed with status 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			err := NewHTTPClient(ts.URL, nil).Do(context.Background(), http.MethodGet, "/x", nil, nil)

			var he *HTTPError
			require.ErrorAs(t, err, &he)
			assert.Equal(t, tt.status, he.Status)
			assert.Equal(t, tt.wantMsg, he.Message)
			assert.Equal(t, tt.wantDetails, he.Details)
			assert.EqualError(t, err, tt.wantErrText)
			assert.False(t, errors.Is(err, ErrUnauthorized))
		})
	}
}

func TestHTTPError_ForbiddenIsUnauthorized(t *testing.T) {
	assert.ErrorIs(t, &HTTPError{Status: http.StatusForbidden}, ErrUnauthorized)
	assert.NotErrorIs(t, &HTTPError{Status: http.StatusInternalServerError}, ErrUnauthorized)
}

func TestDo_TransportFailure_WrapsErrUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	err := NewHTTPClient(url, nil).Do(context.Background(), http.MethodGet, "/users/profile", nil, nil)
	require.ErrorIs(t, err, ErrUnavailable)
	assert.False(t, IsAuthError(err))
	assert.Equal(t, "Upload failed.", DetailsOf(err, "Upload failed."))
}

func TestDo_CancelledContext(t *testing.T) {
	srv := fakeapi.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewHTTPClient(srv.BaseURL(), nil).Do(ctx, http.MethodGet, "/users/profile", nil, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestDo_ReaderBodyAndExtraHeader(t *testing.T) {
	var gotCT, gotExtra, gotBody string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCT = r.Header.Get("Content-Type")
		gotExtra = r.Header.Get("X-Client")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	err := NewHTTPClient(ts.URL, nil).Do(context.Background(), http.MethodPost, "/raw",
		strings.NewReader("plain"), nil, WithContentType("text/plain"), WithHeader("X-Client", "cli"))
	require.NoError(t, err)
	assert.Equal(t, "text/plain", gotCT)
	assert.Equal(t, "cli", gotExtra)
	assert.Equal(t, "plain", gotBody)
}

func TestDo_UndecodableSuccessBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer ts.Close()

	var out models.UserProfile
	err := NewHTTPClient(ts.URL, nil).Do(context.Background(), http.MethodGet, "/users/profile", nil, &out)
	require.ErrorContains(t, err, "decode response")
}

func TestLogin_EmptyTokenRejected(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"user":{"id":"1"}}`))
	}))
	defer ts.Close()

	_, err := NewHTTPClient(ts.URL, nil).Login(context.Background(), models.LoginRequest{Email: "a", Password: "b"})
	require.ErrorContains(t, err, "no token")
}

func TestClose(t *testing.T) {
	require.NoError(t, NewHTTPClient("http://127.0.0.1:1", nil).Close())
}
