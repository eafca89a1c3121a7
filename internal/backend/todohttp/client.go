// Package todohttp implements the service.Service interface against the
// REST task service (/todo/... and /user/... endpoints).
package todohttp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/publicsuffix"

	"dailytask/internal/logging"
	"dailytask/internal/service"
)

// SessionCookie is the cookie carrying the session credential.
const SessionCookie = "jwt"

const (
	pathFetch  = "/todo/fetch"
	pathCreate = "/todo/create"
	pathUpdate = "/todo/update/"
	pathDelete = "/todo/delete/"
	pathLogout = "/user/logout"

	// maxErrorBody caps how much of a failure response is kept for logging.
	maxErrorBody = 512
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: server returned %d", e.Method, e.Path, e.Code)
	}
	return fmt.Sprintf("%s %s: server returned %d: %s", e.Method, e.Path, e.Code, e.Body)
}

// Is maps auth and not-found statuses onto the service sentinels.
func (e *StatusError) Is(target error) bool {
	switch target {
	case service.ErrUnauthorized:
		return e.Code == http.StatusUnauthorized || e.Code == http.StatusForbidden
	case service.ErrNotFound:
		return e.Code == http.StatusNotFound
	}
	return false
}

// Client implements service.Service over HTTP with cookie-based sessions.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	log        logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client. Its Jar is used for cookies; a
// client without a jar sends no session cookie.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithSessionToken seeds the cookie jar with the session credential.
// It must come after WithHTTPClient when both are given.
func WithSessionToken(token string) Option {
	return func(c *Client) {
		if token == "" || c.httpClient.Jar == nil {
			return
		}
		c.httpClient.Jar.SetCookies(c.baseURL, []*http.Cookie{{
			Name:  SessionCookie,
			Value: token,
			Path:  "/",
		}})
	}
}

// New creates a client for the service at baseURL. The default HTTP client
// has a public-suffix aware cookie jar and no timeout of its own.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url: %s", baseURL)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Jar: jar},
		log:        logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type fetchResponse struct {
	Todos []service.Task `json:"todos"`
}

type createRequest struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

type createResponse struct {
	NewTodo service.Task `json:"newTodo"`
}

type updateResponse struct {
	Todo service.Task `json:"todo"`
}

// FetchTodos implements service.Service.
func (c *Client) FetchTodos(ctx context.Context) ([]service.Task, error) {
	var resp fetchResponse
	if err := c.do(ctx, http.MethodGet, pathFetch, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Todos == nil {
		return []service.Task{}, nil
	}
	return resp.Todos, nil
}

// CreateTodo implements service.Service.
func (c *Client) CreateTodo(ctx context.Context, text string) (service.Task, error) {
	var resp createResponse
	if err := c.do(ctx, http.MethodPost, pathCreate, createRequest{Text: text}, &resp); err != nil {
		return service.Task{}, err
	}
	if resp.NewTodo.ID == "" {
		return service.Task{}, errors.New("create response carries no task id")
	}
	return resp.NewTodo, nil
}

// UpdateTodo implements service.Service.
func (c *Client) UpdateTodo(ctx context.Context, task service.Task) (service.Task, error) {
	var resp updateResponse
	if err := c.do(ctx, http.MethodPut, pathUpdate+url.PathEscape(task.ID), task, &resp); err != nil {
		return service.Task{}, err
	}
	if resp.Todo.ID == "" {
		return service.Task{}, errors.New("update response carries no task id")
	}
	return resp.Todo, nil
}

// DeleteTodo implements service.Service.
func (c *Client) DeleteTodo(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, pathDelete+url.PathEscape(id), nil, nil)
}

// Logout implements service.Service.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, pathLogout, nil, nil)
}

// do performs one request. in is JSON-encoded when non-nil; out is decoded
// from the response when non-nil.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil || method == http.MethodGet {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WithFields(logrus.Fields{"method": method, "path": path, "error": err}).Debug("request failed")
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	c.log.WithFields(logrus.Fields{
		"method":   method,
		"path":     path,
		"status":   resp.StatusCode,
		"duration": time.Since(start).Round(time.Millisecond),
	}).Debug("request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Method: method,
			Path:   path,
			Code:   resp.StatusCode,
			Body:   strings.TrimSpace(string(b)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
