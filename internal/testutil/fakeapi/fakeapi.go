// Package fakeapi is an in-memory stand-in for the I Care REST backend,
// served over httptest for client, service, controller and CLI tests.
package fakeapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/icare/internal/client/models"
	"github.com/dmitrijs2005/icare/internal/common"
)

// Recorded is one request as the server saw it.
type Recorded struct {
	Method        string
	Path          string
	Authorization string
	RequestID     string
	ContentType   string
	Body          []byte
}

type failure struct {
	status int
	body   any
}

type account struct {
	password string
	user     models.UserProfile
}

type Server struct {
	srv *httptest.Server

	mu       sync.Mutex
	accounts map[string]*account
	tokens   map[string]string
	requests []Recorded
	failures map[string]failure
	seq      int
}

// New starts a server and stops it when the test ends.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		accounts: map[string]*account{},
		tokens:   map[string]string{},
		failures: map[string]failure{},
	}
	s.srv = httptest.NewServer(s.router())
	t.Cleanup(s.srv.Close)
	return s
}

// BaseURL is the API root to hand to client.NewHTTPClient.
func (s *Server) BaseURL() string { return s.srv.URL + "/api" }

// AddUser creates an account and returns a valid token for it.
func (s *Server) AddUser(password string, u models.UserProfile) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		s.seq++
		u.ID = fmt.Sprintf("u-%d", s.seq)
	}
	if u.FriendCategories == nil {
		u.FriendCategories = []models.FriendCategory{}
	}
	s.accounts[u.Email] = &account{password: password, user: u}
	return s.issueToken(u.Email)
}

// User returns the server-side copy of the account.
func (s *Server) User(email string) (models.UserProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[email]
	if !ok {
		return models.UserProfile{}, false
	}
	return a.user.Clone(), true
}

// RevokeTokens invalidates every issued token.
func (s *Server) RevokeTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = map[string]string{}
}

// Fail makes every request to method+path (path relative to BaseURL)
// answer with status and a JSON body until ClearFailures.
func (s *Server) Fail(method, path string, status int, body any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = failure{status: status, body: body}
}

func (s *Server) ClearFailures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = map[string]failure{}
}

// Requests returns the requests received so far.
func (s *Server) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Recorded(nil), s.requests...)
}

// LastRequest returns the most recent request to method+path.
func (s *Server) LastRequest(method, path string) (Recorded, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.requests) - 1; i >= 0; i-- {
		r := s.requests[i]
		if r.Method == method && r.Path == path {
			return r, true
		}
	}
	return Recorded{}, false
}

func (s *Server) issueToken(email string) string {
	s.seq++
	token := fmt.Sprintf("token-%d", s.seq)
	s.tokens[token] = email
	return token
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record, s.injectFailures)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", s.login)
		r.Post("/auth/register", s.register)
		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)
			r.Get("/users/profile", s.getProfile)
			r.Put("/users/profile", s.updateProfile)
			r.Post("/users/profile/upload", s.uploadImage)
		})
	})
	r.Get("/uploads/{name}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return r
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests = append(s.requests, Recorded{
			Method:        r.Method,
			Path:          strings.TrimPrefix(r.URL.Path, "/api"),
			Authorization: r.Header.Get(common.AuthorizationHeader),
			RequestID:     r.Header.Get(common.RequestIDHeader),
			ContentType:   r.Header.Get("Content-Type"),
			Body:          body,
		})
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		f, ok := s.failures[r.Method+" "+strings.TrimPrefix(r.URL.Path, "/api")]
		s.mu.Unlock()
		if ok {
			writeJSON(w, f.status, f.body)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type ctxKey struct{}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get(common.AuthorizationHeader), common.BearerPrefix)

		s.mu.Lock()
		email, ok := s.tokens[token]
		s.mu.Unlock()
		if token == "" || !ok {
			writeJSON(w, http.StatusUnauthorized, models.MessageResponse{Message: "Unauthorized"})
			return
		}
		next.ServeHTTP(w, r.WithContext(withEmail(r.Context(), email)))
	})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.MessageResponse{Message: "Invalid request"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[req.Email]
	if !ok || a.password != req.Password {
		writeJSON(w, http.StatusUnauthorized, models.MessageResponse{Message: "Invalid credentials"})
		return
	}
	writeJSON(w, http.StatusOK, models.AuthResponse{Token: s.issueToken(req.Email), User: a.user.Clone()})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req map[string]any
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.MessageResponse{Message: "Invalid request"})
		return
	}
	str := func(k string) string { v, _ := req[k].(string); return v }

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[str("email")]; exists {
		writeJSON(w, http.StatusConflict, models.MessageResponse{Message: "Email already in use"})
		return
	}
	s.seq++
	s.accounts[str("email")] = &account{
		password: str("password"),
		user: models.UserProfile{
			ID:               fmt.Sprintf("u-%d", s.seq),
			Username:         str("username"),
			Email:            str("email"),
			FirstName:        str("firstName"),
			LastName:         str("lastName"),
			Phone:            str("phone"),
			Address:          str("address"),
			FriendCategories: []models.FriendCategory{},
		},
	}
	writeJSON(w, http.StatusCreated, models.MessageResponse{Message: "User registered successfully"})
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.accounts[emailFrom(r.Context())].user.Clone())
}

// updateProfile applies the update the way the backend does: names are
// trimmed and unknown categories dropped, so the response can differ from
// the submitted draft.
func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	var upd models.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeJSON(w, http.StatusBadRequest, models.MessageResponse{Message: "Invalid request"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.accounts[emailFrom(r.Context())]
	a.user.FirstName = strings.TrimSpace(upd.FirstName)
	a.user.LastName = strings.TrimSpace(upd.LastName)
	a.user.Phone = upd.Phone
	a.user.Address = upd.Address
	a.user.Education = upd.Education
	a.user.Experience = upd.Experience
	a.user.Skills = upd.Skills
	a.user.FriendCategories = []models.FriendCategory{}
	for _, c := range upd.FriendCategories {
		if c.IsKnown() {
			a.user.FriendCategories = append(a.user.FriendCategories, c)
		}
	}
	writeJSON(w, http.StatusOK, models.ProfileResponse{User: a.user.Clone()})
}

func (s *Server) uploadImage(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile(common.ProfileImageField)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.MessageResponse{Message: "Upload failed", Details: "No image file provided"})
		return
	}
	defer file.Close()
	_, _ = io.Copy(io.Discard, file)

	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.accounts[emailFrom(r.Context())]
	a.user.ProfileImageURL = s.srv.URL + "/uploads/" + header.Filename
	writeJSON(w, http.StatusOK, models.ProfileResponse{User: a.user.Clone()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
