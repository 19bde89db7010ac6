package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/icare/internal/client/models"
	"github.com/dmitrijs2005/icare/internal/common"
	"github.com/dmitrijs2005/icare/internal/logging"
	"github.com/dmitrijs2005/icare/internal/netx"
	"github.com/google/uuid"
)

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  logging.Logger
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithLogger sets the request logger.
func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

// NewHTTPClient builds a client for the API rooted at baseURL
// (e.g. "http://localhost:5000/api"). tokens may be nil.
func NewHTTPClient(baseURL string, tokens TokenSource, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		tokens:  tokens,
		logger:  logging.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type requestOptions struct {
	contentType string
	header      http.Header
}

type RequestOption func(*requestOptions)

// WithContentType sets the Content-Type for an io.Reader body.
func WithContentType(ct string) RequestOption {
	return func(o *requestOptions) { o.contentType = ct }
}

// WithHeader adds an extra request header.
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) { o.header.Add(key, value) }
}

// Do issues a request against path. body may be nil, an io.Reader (sent
// as-is) or any JSON-encodable value. When out is non-nil the 2xx response
// body is decoded into it.
func (c *HTTPClient) Do(ctx context.Context, method, path string, body any, out any, opts ...RequestOption) error {
	ro := requestOptions{header: http.Header{}}
	for _, o := range opts {
		o(&ro)
	}

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case io.Reader:
		reader = b
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
		if ro.contentType == "" {
			ro.contentType = "application/json"
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	for k, vs := range ro.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if ro.contentType != "" {
		req.Header.Set("Content-Type", ro.contentType)
	}
	req.Header.Set("Accept", "application/json")

	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeader, requestID)

	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
		}
	}

	log := c.logger.With("request_id", requestID, "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	log.Debug(ctx, "request done", "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeHTTPError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorPayload covers the shapes the backend uses for failures:
// {message}, {message, details} and {error}.
type errorPayload struct {
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Details json.RawMessage `json:"details"`
}

func decodeHTTPError(resp *http.Response) error {
	he := &HTTPError{Status: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return he
	}

	var p errorPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return he
	}

	he.Message = p.Message
	if he.Message == "" {
		he.Message = p.Error
	}
	he.Details = rawText(p.Details)
	return he
}

// rawText renders a JSON value as text: strings are unquoted, other values
// are kept in their JSON form, null becomes "".
func rawText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func (c *HTTPClient) Login(ctx context.Context, r models.LoginRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.Do(ctx, http.MethodPost, "/auth/login", r, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, errors.New("login response has no token")
	}
	return &resp, nil
}

// Register creates an account and returns the server's message.
func (c *HTTPClient) Register(ctx context.Context, r models.RegisterRequest) (string, error) {
	var resp models.MessageResponse
	if err := c.Do(ctx, http.MethodPost, "/auth/register", r, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *HTTPClient) GetProfile(ctx context.Context) (*models.UserProfile, error) {
	var u models.UserProfile
	if err := c.Do(ctx, http.MethodGet, "/users/profile", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.UserProfile, error) {
	var resp models.ProfileResponse
	if err := c.Do(ctx, http.MethodPut, "/users/profile", upd, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (c *HTTPClient) UploadProfileImage(ctx context.Context, fileName string, content io.Reader) (*models.UserProfile, error) {
	body, contentType, err := netx.MultipartFile(common.ProfileImageField, fileName, content)
	if err != nil {
		return nil, err
	}

	var resp models.ProfileResponse
	if err := c.Do(ctx, http.MethodPost, "/users/profile/upload", body, &resp, WithContentType(contentType)); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Close releases idle keep-alive connections.
func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}
