package http

import (
	"todo-htmx/internal/ports/input"

	"github.com/gofiber/fiber/v2"
)

// Template names, relative to the embedded web root
const (
	indexView = "views/index"
	todoView  = "views/todo"
	editView  = "views/edit"
)

// ViewHandler struct - Primary/Driving adapter rendering HTML fragments.
// Handlers return errors unchanged; ErrorHandler writes the failure.
type ViewHandler struct {
	srv input.TodoService
}

// NewViewHandler func
func NewViewHandler(srv input.TodoService) *ViewHandler {
	return &ViewHandler{srv: srv}
}

// Index renders the full page
func (v *ViewHandler) Index(c *fiber.Ctx) error {
	todos, err := v.srv.ListTodos(c.UserContext())
	if err != nil {
		return err
	}
	return c.Render(indexView, fiber.Map{"Todos": todos})
}

// Add creates a todo when text is present, otherwise replies with nothing
func (v *ViewHandler) Add(c *fiber.Ctx) error {
	text, err := bodyText(c)
	if err != nil {
		return err
	}
	if text == nil || *text == "" {
		return c.SendString("")
	}
	todo, err := v.srv.CreateTodo(c.UserContext(), *text)
	if err != nil {
		return err
	}
	return c.Render(todoView, todo)
}

// Toggle flips a todo and re-renders it
func (v *ViewHandler) Toggle(c *fiber.Ctx) error {
	todo, err := v.srv.ToggleTodo(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.Render(todoView, todo)
}

// EditText renders the edit form for one todo
func (v *ViewHandler) EditText(c *fiber.Ctx) error {
	todo, err := v.srv.GetTodo(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.Render(editView, todo)
}

// UpdateText saves the edited text and re-renders the todo
func (v *ViewHandler) UpdateText(c *fiber.Ctx) error {
	text, err := bodyText(c)
	if err != nil {
		return err
	}
	if text == nil {
		return v.rerender(c)
	}
	todo, err := v.srv.UpdateTodoText(c.UserContext(), c.Params("id"), *text)
	if err != nil {
		return err
	}
	return c.Render(todoView, todo)
}

// rerender shows the stored todo unchanged
func (v *ViewHandler) rerender(c *fiber.Ctx) error {
	todo, err := v.srv.GetTodo(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.Render(todoView, todo)
}

// Delete removes a todo; the empty reply swaps the node out of the page
func (v *ViewHandler) Delete(c *fiber.Ctx) error {
	if _, err := v.srv.DeleteTodo(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendString("")
}
