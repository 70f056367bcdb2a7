package domain

import (
	"fmt"

	"todo-htmx/pkg/validator"
)

var shape = validator.New()

// Todo struct - Core domain entity
type Todo struct {
	ID         string `json:"id"`
	Text       string `json:"text" validate:"required"`
	IsComplete bool   `json:"isComplete"`
}

// NewTodo func - Builds a todo the way every store creates one: incomplete
func NewTodo(text string) Todo {
	return Todo{
		Text:       text,
		IsComplete: false,
	}
}

// Toggle flips the completion flag
func (t *Todo) Toggle() {
	t.IsComplete = !t.IsComplete
}

// Validate checks the shape a store requires before insert.
// The returned error wraps ErrInvalidInput.
func (t Todo) Validate() error {
	if err := shape.ValidateStruct(t); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidInput, validator.Describe(err))
	}
	return nil
}
