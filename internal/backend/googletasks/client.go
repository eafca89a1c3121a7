// Package googletasks implements the service.Service interface using Google Tasks API.
// Tasks live in the user's default list.
package googletasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"dailytask/internal/config"
	"dailytask/internal/service"
)

const (
	// DefaultListID is the special ID for the default list.
	DefaultListID = "@default"

	// PageSize is the number of tasks per page when fetching.
	PageSize = 100

	// TasksScope is the OAuth scope for Google Tasks.
	TasksScope = "https://www.googleapis.com/auth/tasks"

	// RevokeURL is Google's OAuth token revocation endpoint.
	RevokeURL = "https://oauth2.googleapis.com/revoke"

	statusCompleted   = "completed"
	statusNeedsAction = "needsAction"
)

// Client implements service.Service using Google Tasks API.
type Client struct {
	svc        *tasks.Service
	listID     string
	token      *oauth2.Token
	httpClient *http.Client // unauthenticated, for revocation
	revokeURL  string
}

// New creates a new Google Tasks client.
// Requires oauth_client.json and token.json to exist.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	// Load OAuth client config
	clientJSON, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read oauth_client.json: %w", err)
	}

	oauthConfig, err := google.ConfigFromJSON(clientJSON, TasksScope)
	if err != nil {
		return nil, fmt.Errorf("invalid oauth_client.json: %w", err)
	}

	// Load token
	tokenData, err := cfg.Session().Raw()
	if err != nil {
		return nil, fmt.Errorf("failed to read token.json: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(tokenData, &token); err != nil {
		return nil, fmt.Errorf("invalid token.json: %w", err)
	}

	// Create token source that auto-refreshes
	tokenSource := oauthConfig.TokenSource(ctx, &token)

	// Create HTTP client with token source
	httpClient := oauth2.NewClient(ctx, tokenSource)

	// Create Tasks service
	svc, err := tasks.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}

	return &Client{
		svc:        svc,
		listID:     DefaultListID,
		token:      &token,
		httpClient: http.DefaultClient,
		revokeURL:  RevokeURL,
	}, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client and API
// endpoint (for testing). Logout revokes token against revokeURL.
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, endpoint, revokeURL string, token *oauth2.Token) (*Client, error) {
	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{
		svc:        svc,
		listID:     DefaultListID,
		token:      token,
		httpClient: httpClient,
		revokeURL:  revokeURL,
	}, nil
}

// FetchTodos returns every task of the default list, completed ones included,
// in API order.
func (c *Client) FetchTodos(ctx context.Context) ([]service.Task, error) {
	result := []service.Task{}
	err := c.svc.Tasks.List(c.listID).
		MaxResults(PageSize).
		ShowCompleted(true).
		ShowHidden(true).
		ShowDeleted(false).
		Pages(ctx, func(resp *tasks.Tasks) error {
			for _, t := range resp.Items {
				result = append(result, fromAPI(t))
			}
			return nil
		})
	if err != nil {
		return nil, wrapError(err)
	}
	return result, nil
}

// CreateTodo inserts an open task.
func (c *Client) CreateTodo(ctx context.Context, text string) (service.Task, error) {
	created, err := c.svc.Tasks.Insert(c.listID, &tasks.Task{
		Title:  text,
		Status: statusNeedsAction,
	}).Context(ctx).Do()
	if err != nil {
		return service.Task{}, wrapError(err)
	}
	return fromAPI(created), nil
}

// UpdateTodo patches title and status. Reopening a task clears its
// completion time.
func (c *Client) UpdateTodo(ctx context.Context, task service.Task) (service.Task, error) {
	patch := &tasks.Task{Title: task.Text, Status: statusNeedsAction}
	if task.Completed {
		patch.Status = statusCompleted
	} else {
		patch.NullFields = []string{"Completed"}
	}

	updated, err := c.svc.Tasks.Patch(c.listID, task.ID, patch).Context(ctx).Do()
	if err != nil {
		return service.Task{}, wrapError(err)
	}
	return fromAPI(updated), nil
}

// DeleteTodo deletes a task.
func (c *Client) DeleteTodo(ctx context.Context, id string) error {
	if err := c.svc.Tasks.Delete(c.listID, id).Context(ctx).Do(); err != nil {
		return wrapError(err)
	}
	return nil
}

// Logout revokes the OAuth grant. The refresh token is preferred since
// revoking it also invalidates derived access tokens.
func (c *Client) Logout(ctx context.Context) error {
	if c.token == nil {
		return nil
	}
	tok := c.token.RefreshToken
	if tok == "" {
		tok = c.token.AccessToken
	}
	if tok == "" {
		return nil
	}

	form := url.Values{"token": {tok}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.revokeURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	// 400 means the token is already invalid, which is what logout wants.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusBadRequest {
		return fmt.Errorf("revoke token: server returned %d", resp.StatusCode)
	}
	return nil
}

func fromAPI(t *tasks.Task) service.Task {
	return service.Task{
		ID:        t.Id,
		Text:      t.Title,
		Completed: t.Status == statusCompleted,
	}
}

// wrapError maps API errors onto the service sentinels.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out: %w", err)
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("token expired or revoked (run: dailytask login): %w", service.ErrUnauthorized)
		case http.StatusNotFound:
			return fmt.Errorf("%s: %w", apiErr.Message, service.ErrNotFound)
		}
	}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return fmt.Errorf("token refresh failed (run: dailytask login): %w", service.ErrUnauthorized)
	}

	return err
}
