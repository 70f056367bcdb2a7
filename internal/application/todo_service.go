package application

import (
	"context"

	"todo-htmx/internal/domain"
	"todo-htmx/internal/ports/input"
	"todo-htmx/internal/ports/output"

	"github.com/sirupsen/logrus"
)

var _ input.TodoService = (*TodoService)(nil)

// TodoService struct - Application service implementing use cases.
// It is a thin facade over the store: errors come back unmodified.
type TodoService struct {
	repo output.TodoRepository
}

// NewTodoService func - Creates new todo service
func NewTodoService(repo output.TodoRepository) *TodoService {
	return &TodoService{
		repo: repo,
	}
}

// ListTodos func - Use case: List every todo
func (s *TodoService) ListTodos(ctx context.Context) ([]domain.Todo, error) {
	todos, err := s.repo.FindAll(ctx)
	if err != nil {
		logrus.Errorln(err)
		return nil, err
	}
	if todos == nil {
		todos = make([]domain.Todo, 0)
	}
	return todos, nil
}

// GetTodo func - Use case: Get a single todo
func (s *TodoService) GetTodo(ctx context.Context, id string) (*domain.Todo, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateTodo func - Use case: Create a new todo
func (s *TodoService) CreateTodo(ctx context.Context, text string) (*domain.Todo, error) {
	result, err := s.repo.Create(ctx, domain.NewTodo(text))
	if err != nil {
		logrus.Errorln(err)
		return nil, err
	}
	return result, nil
}

// ToggleTodo func - Use case: Flip the completion flag
func (s *TodoService) ToggleTodo(ctx context.Context, id string) (*domain.Todo, error) {
	return s.repo.FindByIDAndToggle(ctx, id)
}

// UpdateTodoText func - Use case: Replace the text of a todo
func (s *TodoService) UpdateTodoText(ctx context.Context, id, text string) (*domain.Todo, error) {
	return s.repo.FindByIDAndUpdate(ctx, id, domain.TodoPatch{Text: &text})
}

// DeleteTodo func - Use case: Delete a todo.
// Returns (nil, nil) when nothing was stored under id.
func (s *TodoService) DeleteTodo(ctx context.Context, id string) (*domain.Todo, error) {
	return s.repo.FindByIDAndDelete(ctx, id)
}
