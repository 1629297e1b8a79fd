package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/hackorsnooze/internal/client/models"
	"github.com/dmitrijs2005/hackorsnooze/internal/common"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const DefaultStoriesLimit = 25

type HTTPClient struct {
	baseURL      *url.URL
	http         *http.Client
	limiter      *rate.Limiter
	storiesLimit int
	newRequestID func() string
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client (timeouts, transport).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithRateLimit caps outgoing requests per second. Zero or negative disables the cap.
func WithRateLimit(rps float64) Option {
	return func(c *HTTPClient) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithStoriesLimit sets how many stories FetchAll asks for.
func WithStoriesLimit(n int) Option {
	return func(c *HTTPClient) {
		if n > 0 {
			c.storiesLimit = n
		}
	}
}

func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api url %q: scheme must be http or https", baseURL)
	}

	c := &HTTPClient{
		baseURL:      u,
		http:         http.DefaultClient,
		limiter:      rate.NewLimiter(rate.Inf, 0),
		storiesLimit: DefaultStoriesLimit,
		newRequestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type tokenBody struct {
	Token string `json:"token"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type apiError struct {
	Error struct {
		Status  int    `json:"status"`
		Title   string `json:"title"`
		Message any    `json:"message"`
	} `json:"error"`
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (*models.User, error) {
	req := map[string]any{"user": map[string]string{"username": username, "password": password}}

	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/login", nil, req, &resp)
	if errors.Is(err, ErrNotFound) {
		// The API answers 404 for an unknown username.
		return nil, fmt.Errorf("%w: unknown user %q", ErrUnauthorized, username)
	}
	if err != nil {
		return nil, err
	}
	resp.User.LoginToken = resp.Token
	return &resp.User, nil
}

func (c *HTTPClient) Create(ctx context.Context, fields models.SignupFields) (*models.User, error) {
	req := map[string]any{"user": fields}

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/signup", nil, req, &resp); err != nil {
		return nil, err
	}
	resp.User.LoginToken = resp.Token
	return &resp.User, nil
}

func (c *HTTPClient) GetByToken(ctx context.Context, token, username string) (*models.User, error) {
	var resp struct {
		User models.User `json:"user"`
	}
	err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(username), url.Values{"token": {token}}, nil, &resp)
	if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	resp.User.LoginToken = token
	return &resp.User, nil
}

func (c *HTTPClient) SetFavorite(ctx context.Context, user *models.User, storyID string, add bool) error {
	method := http.MethodDelete
	if add {
		method = http.MethodPost
	}
	path := "/users/" + url.PathEscape(user.Username) + "/favorites/" + url.PathEscape(storyID)
	return c.do(ctx, method, path, nil, tokenBody{Token: user.LoginToken}, nil)
}

func (c *HTTPClient) DeleteStory(ctx context.Context, user *models.User, storyID string) error {
	return c.do(ctx, http.MethodDelete, "/stories/"+url.PathEscape(storyID), nil, tokenBody{Token: user.LoginToken}, nil)
}

func (c *HTTPClient) FetchAll(ctx context.Context) ([]models.Story, error) {
	return c.fetchStories(ctx, c.storiesLimit)
}

func (c *HTTPClient) fetchStories(ctx context.Context, limit int) ([]models.Story, error) {
	q := url.Values{"skip": {"0"}, "limit": {strconv.Itoa(limit)}}

	var resp struct {
		Stories []models.Story `json:"stories"`
	}
	if err := c.do(ctx, http.MethodGet, "/stories", q, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Stories == nil {
		resp.Stories = []models.Story{}
	}
	return resp.Stories, nil
}

func (c *HTTPClient) AddStory(ctx context.Context, user *models.User, fields models.StoryFields) (*models.Story, error) {
	req := struct {
		Token string             `json:"token"`
		Story models.StoryFields `json:"story"`
	}{Token: user.LoginToken, Story: fields}

	var resp struct {
		Story models.Story `json:"story"`
	}
	if err := c.do(ctx, http.MethodPost, "/stories", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Story, nil
}

// Ping asks for a single story; any successful answer means the API is up.
func (c *HTTPClient) Ping(ctx context.Context) error {
	_, err := c.fetchStories(ctx, 1)
	return err
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(common.RequestIDHeaderName, c.newRequestID())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return mapStatus(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func mapStatus(resp *http.Response) error {
	msg := http.StatusText(resp.StatusCode)

	var ae apiError
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&ae); err == nil && ae.Error.Message != nil {
		msg = fmt.Sprint(ae.Error.Message)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	case resp.StatusCode == http.StatusBadRequest,
		resp.StatusCode == http.StatusConflict,
		resp.StatusCode == http.StatusUnprocessableEntity:
		return &ValidationError{Message: msg}
	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrUnavailable, msg)
	default:
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, msg)
	}
}
