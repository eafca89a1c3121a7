package testutil

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"dailytask/internal/service"
)

// FakeServer is an in-memory implementation of the REST task service.
// Mount Handler() on an httptest.Server.
type FakeServer struct {
	mu       sync.Mutex
	tasks    []service.Task
	requests []RecordedRequest

	// Session, when set, is the value every request must carry in the
	// "jwt" cookie; other requests get 401.
	Session string

	// FailWith, when non-zero, makes every request fail with that status.
	FailWith int

	// LoggedOut is set once /user/logout has been called.
	LoggedOut bool
}

// RecordedRequest is a request seen by FakeServer.
type RecordedRequest struct {
	Method      string
	Path        string
	ContentType string
	Body        map[string]any
}

// NewFakeServer creates an empty FakeServer.
func NewFakeServer() *FakeServer {
	return &FakeServer{}
}

// AddTask seeds a task.
func (s *FakeServer) AddTask(id, text string, completed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, service.Task{ID: id, Text: text, Completed: completed})
}

// Tasks returns a copy of the stored tasks.
func (s *FakeServer) Tasks() []service.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]service.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Requests returns the requests seen so far.
func (s *FakeServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// Handler returns the HTTP handler.
func (s *FakeServer) Handler() http.Handler {
	r := mux.NewRouter().UseEncodedPath()
	r.Use(s.record, s.guard)
	r.HandleFunc("/todo/fetch", s.fetch).Methods(http.MethodGet)
	r.HandleFunc("/todo/create", s.create).Methods(http.MethodPost)
	r.HandleFunc("/todo/update/{id}", s.update).Methods(http.MethodPut)
	r.HandleFunc("/todo/delete/{id}", s.remove).Methods(http.MethodDelete)
	r.HandleFunc("/user/logout", s.logout).Methods(http.MethodGet)
	return r
}

func (s *FakeServer) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := RecordedRequest{
			Method:      r.Method,
			Path:        r.URL.Path,
			ContentType: r.Header.Get("Content-Type"),
		}
		if r.Body != nil && r.ContentLength != 0 {
			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				http.Error(w, "bad json", http.StatusBadRequest)
				return
			}
			rec.Body = body
		}
		s.mu.Lock()
		s.requests = append(s.requests, rec)
		s.mu.Unlock()
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), bodyKey{}, rec.Body)))
	})
}

func (s *FakeServer) guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		failWith, want := s.FailWith, s.Session
		s.mu.Unlock()

		if failWith != 0 {
			http.Error(w, http.StatusText(failWith), failWith)
			return
		}
		if want != "" {
			c, err := r.Cookie("jwt")
			if err != nil || c.Value != want {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

type bodyKey struct{}

func bodyOf(r *http.Request) map[string]any {
	body, _ := r.Context().Value(bodyKey{}).(map[string]any)
	return body
}

func pathID(r *http.Request) string {
	id := mux.Vars(r)["id"]
	if unescaped, err := url.PathUnescape(id); err == nil {
		return unescaped
	}
	return id
}

func (s *FakeServer) fetch(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"todos": s.Tasks()})
}

func (s *FakeServer) create(w http.ResponseWriter, r *http.Request) {
	body := bodyOf(r)
	text, _ := body["text"].(string)
	if text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "text is required"})
		return
	}
	completed, _ := body["completed"].(bool)
	t := service.Task{ID: uuid.NewString(), Text: text, Completed: completed}

	s.mu.Lock()
	s.tasks = append(s.tasks, t)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]any{"message": "Todo Created Successfully", "newTodo": t})
}

func (s *FakeServer) update(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	body := bodyOf(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tasks {
		if t.ID != id {
			continue
		}
		if text, ok := body["text"].(string); ok {
			t.Text = text
		}
		if completed, ok := body["completed"].(bool); ok {
			t.Completed = completed
		}
		s.tasks[i] = t
		writeJSON(w, http.StatusOK, map[string]any{"message": "Todo Updated Successfully", "todo": t})
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Todo not found"})
}

func (s *FakeServer) remove(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "Todo Deleted Successfully"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Todo not found"})
}

func (s *FakeServer) logout(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.LoggedOut = true
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{Name: "jwt", Value: "", Path: "/", MaxAge: -1})
	writeJSON(w, http.StatusOK, map[string]string{"message": "User logged out successfully"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
