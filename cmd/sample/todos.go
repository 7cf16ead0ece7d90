package main

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/bjaus/endpoint"
)

// Todo is a single todo item.
type Todo struct {
	ID          int        `json:"id"`
	Title       string     `json:"title" required:"true"`
	Owner       string     `json:"owner,omitempty"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// NewTodo is the body of an insert.
type NewTodo struct {
	Title string `json:"title" required:"true" minLength:"1"`
	Owner string `json:"owner,omitempty"`
}

// Validate rejects blank titles.
func (n NewTodo) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return errors.New("title is required")
	}
	return nil
}

// Completion is the body of a completion update.
type Completion struct {
	Completed bool `json:"completed"`
}

// TodoFilter narrows a listing.
type TodoFilter struct {
	Completed *bool  `query:"completed" doc:"Only todos with this completion state"`
	Owner     string `query:"owner" doc:"Only todos owned by this user"`
	Search    string `query:"q" doc:"Case-insensitive title substring"`
	Limit     int    `query:"limit" default:"50" doc:"Maximum number of todos"`
}

// TodoList is a page of todos.
type TodoList struct {
	Items []Todo `json:"items"`
	Total int    `json:"total"`
}

// Store is the in-memory todo store shared by every handler.
type Store struct {
	mu     sync.RWMutex
	todos  map[int]*Todo
	nextID int
	now    func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{todos: make(map[int]*Todo), nextID: 1, now: time.Now}
}

func (s *Store) insert(in NewTodo) Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &Todo{ID: s.nextID, Title: in.Title, Owner: in.Owner, CreatedAt: s.now()}
	s.todos[t.ID] = t
	s.nextID++
	return *t
}

func (s *Store) get(id int) (Todo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.todos[id]
	if !ok {
		return Todo{}, false
	}
	return *t, true
}

func (s *Store) setCompleted(id int, completed bool) (Todo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.todos[id]
	if !ok {
		return Todo{}, false
	}
	t.Completed = completed
	t.CompletedAt = nil
	if completed {
		now := s.now()
		t.CompletedAt = &now
	}
	return *t, true
}

func (s *Store) remove(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.todos[id]
	delete(s.todos, id)
	return ok
}

func (s *Store) list(f TodoFilter) TodoList {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Todo
	for _, t := range s.todos {
		if f.Completed != nil && t.Completed != *f.Completed {
			continue
		}
		if f.Owner != "" && t.Owner != f.Owner {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(t.Title), strings.ToLower(f.Search)) {
			continue
		}
		out = append(out, *t)
	}
	slices.SortFunc(out, func(a, b Todo) int { return a.ID - b.ID })

	total := len(out)
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	if out == nil {
		out = []Todo{}
	}
	return TodoList{Items: out, Total: total}
}

func errNotFound(id int) error {
	return endpoint.Errorf(http.StatusNotFound, "todo %d not found", id)
}

func insertTodo(_ context.Context, s endpoint.State[*Store], in endpoint.JSON[NewTodo]) (endpoint.JSON[Todo], error) {
	return endpoint.JSON[Todo]{Value: s.Value.insert(in.Value)}, nil
}

func listTodos(_ context.Context, f endpoint.Query[TodoFilter], s endpoint.State[*Store]) (endpoint.JSON[TodoList], error) {
	return endpoint.JSON[TodoList]{Value: s.Value.list(f.Value)}, nil
}

func getTodo(_ context.Context, id endpoint.Path[int], s endpoint.State[*Store]) (endpoint.JSON[Todo], error) {
	t, ok := s.Value.get(id.Value)
	if !ok {
		return endpoint.JSON[Todo]{}, errNotFound(id.Value)
	}
	return endpoint.JSON[Todo]{Value: t}, nil
}

func completeTodo(_ context.Context, id endpoint.Path[int], in endpoint.JSON[Completion], s endpoint.State[*Store]) (endpoint.JSON[Todo], error) {
	t, ok := s.Value.setCompleted(id.Value, in.Value.Completed)
	if !ok {
		return endpoint.JSON[Todo]{}, errNotFound(id.Value)
	}
	return endpoint.JSON[Todo]{Value: t}, nil
}

func deleteTodo(_ context.Context, id endpoint.Path[int], s endpoint.State[*Store]) error {
	if !s.Value.remove(id.Value) {
		return errNotFound(id.Value)
	}
	return nil
}

func health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	//nolint:errcheck,gosec // best-effort
	w.Write([]byte(`{"status":"ok"}`))
}
