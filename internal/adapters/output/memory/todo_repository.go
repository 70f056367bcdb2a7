package memory

import (
	"context"
	"fmt"
	"sync"

	"todo-htmx/internal/domain"
	"todo-htmx/internal/ports/output"

	"github.com/google/uuid"
)

// Compile-time check to ensure TodoRepository implements the output port
var _ output.TodoRepository = (*TodoRepository)(nil)

// TodoRepository struct - Output adapter for in-memory todo storage.
// A RWMutex guards both the records and the insertion order so that
// find-and-modify calls are atomic.
type TodoRepository struct {
	mu    sync.RWMutex
	todos map[string]*domain.Todo
	order []string
}

// NewTodoRepository creates an empty in-memory store
func NewTodoRepository() *TodoRepository {
	return &TodoRepository{
		todos: make(map[string]*domain.Todo),
	}
}

// Create stores a copy of todo under a fresh UUID
func (m *TodoRepository) Create(_ context.Context, todo domain.Todo) (*domain.Todo, error) {
	if err := todo.Validate(); err != nil {
		return nil, err
	}
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("generate id: %w", err)
	}
	todo.ID = id.String()

	m.mu.Lock()
	defer m.mu.Unlock()
	stored := todo
	m.todos[todo.ID] = &stored
	m.order = append(m.order, todo.ID)
	return &todo, nil
}

// FindAll returns copies of every todo in insertion order
func (m *TodoRepository) FindAll(_ context.Context) ([]domain.Todo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	todos := make([]domain.Todo, 0, len(m.order))
	for _, id := range m.order {
		todos = append(todos, *m.todos[id])
	}
	return todos, nil
}

// FindByID returns a copy of the todo stored under id
func (m *TodoRepository) FindByID(_ context.Context, id string) (*domain.Todo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	todo, ok := m.todos[id]
	if !ok {
		return nil, notFound(id)
	}
	found := *todo
	return &found, nil
}

// FindByIDAndUpdate applies patch in place
func (m *TodoRepository) FindByIDAndUpdate(_ context.Context, id string, patch domain.TodoPatch) (*domain.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	todo, ok := m.todos[id]
	if !ok {
		return nil, notFound(id)
	}
	if patch.Text != nil {
		todo.Text = *patch.Text
	}
	updated := *todo
	return &updated, nil
}

// FindByIDAndToggle flips IsComplete under the write lock
func (m *TodoRepository) FindByIDAndToggle(_ context.Context, id string) (*domain.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	todo, ok := m.todos[id]
	if !ok {
		return nil, notFound(id)
	}
	todo.Toggle()
	updated := *todo
	return &updated, nil
}

// FindByIDAndDelete removes the todo. Deleting a missing id is a no-op.
func (m *TodoRepository) FindByIDAndDelete(_ context.Context, id string) (*domain.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	todo, ok := m.todos[id]
	if !ok {
		return nil, nil
	}
	delete(m.todos, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return todo, nil
}

// Ping always succeeds
func (m *TodoRepository) Ping(_ context.Context) error {
	return nil
}

// Close is a no-op
func (m *TodoRepository) Close(_ context.Context) error {
	return nil
}

func notFound(id string) error {
	return fmt.Errorf("todo %q: %w", id, domain.ErrNotFound)
}
