package input

import (
	"context"

	"todo-htmx/internal/domain"
)

// TodoService interface - Input port (use case)
// Defines what the application can do with todos
type TodoService interface {
	ListTodos(ctx context.Context) ([]domain.Todo, error)
	GetTodo(ctx context.Context, id string) (*domain.Todo, error)
	CreateTodo(ctx context.Context, text string) (*domain.Todo, error)
	ToggleTodo(ctx context.Context, id string) (*domain.Todo, error)
	UpdateTodoText(ctx context.Context, id, text string) (*domain.Todo, error)
	DeleteTodo(ctx context.Context, id string) (*domain.Todo, error)
}
