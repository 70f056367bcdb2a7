package output

import (
	"context"

	"todo-htmx/internal/domain"
)

// TodoRepository interface - Output port
// Defines the document-store capability the application needs.
// Implementations must be safe for concurrent use.
type TodoRepository interface {
	// Create stores a new todo and returns it with its assigned ID.
	// A todo with empty text is rejected with domain.ErrInvalidInput.
	Create(ctx context.Context, todo domain.Todo) (*domain.Todo, error)

	// FindAll returns every stored todo in insertion order.
	FindAll(ctx context.Context) ([]domain.Todo, error)

	// FindByID returns domain.ErrNotFound when the id does not resolve.
	FindByID(ctx context.Context, id string) (*domain.Todo, error)

	// FindByIDAndUpdate applies the patch and returns the post-update todo.
	FindByIDAndUpdate(ctx context.Context, id string, patch domain.TodoPatch) (*domain.Todo, error)

	// FindByIDAndToggle flips IsComplete atomically and returns the post-update todo.
	FindByIDAndToggle(ctx context.Context, id string) (*domain.Todo, error)

	// FindByIDAndDelete removes the todo and returns its prior state.
	// A missing id is not an error: it returns (nil, nil).
	FindByIDAndDelete(ctx context.Context, id string) (*domain.Todo, error)

	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error

	// Close releases the store connection.
	Close(ctx context.Context) error
}
