package googletasks_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"dailytask/internal/backend/googletasks"
	"dailytask/internal/service"
)

// fakeAPI serves the subset of the Tasks API used by the client.
type fakeAPI struct {
	mu      sync.Mutex
	pages   [][]map[string]any
	patches []map[string]any
	status  int
	revoked []string
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r.URL.Path == "/revoke" {
		_ = r.ParseForm()
		f.revoked = append(f.revoked, r.PostForm.Get("token"))
		w.WriteHeader(http.StatusOK)
		return
	}

	if f.status != 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.status)
		fmt.Fprintf(w, `{"error":{"code":%d,"message":"boom"}}`, f.status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/tasks"):
		page := 0
		if tok := r.URL.Query().Get("pageToken"); tok != "" {
			page = 1
		}
		resp := map[string]any{"items": f.pages[page]}
		if page+1 < len(f.pages) {
			resp["nextPageToken"] = "next"
		}
		_ = json.NewEncoder(w).Encode(resp)
	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/tasks"):
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		body["id"] = "new-1"
		_ = json.NewEncoder(w).Encode(body)
	case r.Method == http.MethodPatch:
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.patches = append(f.patches, body)
		body["id"] = r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
		_ = json.NewEncoder(w).Encode(body)
	case r.Method == http.MethodDelete:
		w.WriteHeader(http.StatusNoContent)
	default:
		http.NotFound(w, r)
	}
}

func newClient(t *testing.T, api *fakeAPI, token *oauth2.Token) *googletasks.Client {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	c, err := googletasks.NewWithHTTPClient(context.Background(), srv.Client(), srv.URL+"/", srv.URL+"/revoke", token)
	require.NoError(t, err)
	return c
}

func TestFetchTodos_AllPages(t *testing.T) {
	api := &fakeAPI{pages: [][]map[string]any{
		{{"id": "1", "title": "buy milk", "status": "needsAction"}},
		{{"id": "2", "title": "write report", "status": "completed"}},
	}}
	c := newClient(t, api, nil)

	tasks, err := c.FetchTodos(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []service.Task{
		{ID: "1", Text: "buy milk"},
		{ID: "2", Text: "write report", Completed: true},
	}, tasks)
}

func TestFetchTodos_Empty(t *testing.T) {
	api := &fakeAPI{pages: [][]map[string]any{{}}}
	c := newClient(t, api, nil)

	tasks, err := c.FetchTodos(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestCreateTodo(t *testing.T) {
	c := newClient(t, &fakeAPI{}, nil)

	task, err := c.CreateTodo(context.Background(), "write report")
	require.NoError(t, err)
	assert.Equal(t, service.Task{ID: "new-1", Text: "write report"}, task)
}

func TestUpdateTodo_Complete(t *testing.T) {
	api := &fakeAPI{}
	c := newClient(t, api, nil)

	got, err := c.UpdateTodo(context.Background(), service.Task{ID: "1", Text: "buy milk", Completed: true})
	require.NoError(t, err)
	assert.Equal(t, service.Task{ID: "1", Text: "buy milk", Completed: true}, got)

	require.Len(t, api.patches, 1)
	assert.Equal(t, "completed", api.patches[0]["status"])
}

func TestUpdateTodo_ReopenClearsCompleted(t *testing.T) {
	api := &fakeAPI{}
	c := newClient(t, api, nil)

	got, err := c.UpdateTodo(context.Background(), service.Task{ID: "1", Text: "buy milk"})
	require.NoError(t, err)
	assert.False(t, got.Completed)

	require.Len(t, api.patches, 1)
	assert.Equal(t, "needsAction", api.patches[0]["status"])
	v, ok := api.patches[0]["completed"]
	assert.True(t, ok, "completed should be sent as null")
	assert.Nil(t, v)
}

func TestDeleteTodo(t *testing.T) {
	c := newClient(t, &fakeAPI{}, nil)
	assert.NoError(t, c.DeleteTodo(context.Background(), "1"))
}

func TestErrors_MapToSentinels(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, service.ErrUnauthorized},
		{http.StatusForbidden, service.ErrUnauthorized},
		{http.StatusNotFound, service.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			c := newClient(t, &fakeAPI{status: tt.status}, nil)
			err := c.DeleteTodo(context.Background(), "1")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestErrors_ServerError(t *testing.T) {
	c := newClient(t, &fakeAPI{status: http.StatusInternalServerError}, nil)

	_, err := c.FetchTodos(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrUnauthorized)
	assert.NotErrorIs(t, err, service.ErrNotFound)
}

func TestLogout_RevokesRefreshToken(t *testing.T) {
	api := &fakeAPI{}
	c := newClient(t, api, &oauth2.Token{AccessToken: "access", RefreshToken: "refresh"})

	require.NoError(t, c.Logout(context.Background()))
	assert.Equal(t, []string{"refresh"}, api.revoked)
}

func TestLogout_FallsBackToAccessToken(t *testing.T) {
	api := &fakeAPI{}
	c := newClient(t, api, &oauth2.Token{AccessToken: "access"})

	require.NoError(t, c.Logout(context.Background()))
	assert.Equal(t, []string{"access"}, api.revoked)
}

func TestLogout_NoToken(t *testing.T) {
	api := &fakeAPI{}
	c := newClient(t, api, nil)

	require.NoError(t, c.Logout(context.Background()))
	assert.Empty(t, api.revoked)
}

func TestLogout_RevokeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	revokeURL, err := url.JoinPath(srv.URL, "revoke")
	require.NoError(t, err)
	c, err := googletasks.NewWithHTTPClient(context.Background(), srv.Client(), srv.URL+"/", revokeURL,
		&oauth2.Token{AccessToken: "access"})
	require.NoError(t, err)

	assert.Error(t, c.Logout(context.Background()))
}
