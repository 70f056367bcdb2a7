package http

import (
	"context"
	"fmt"

	"todo-htmx/internal/domain"
	"todo-htmx/internal/ports/input"
	"todo-htmx/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Pinger is satisfied by every todo store
type Pinger interface {
	Ping(ctx context.Context) error
}

// HTTPHandler struct - Primary/Driving adapter for the JSON API
type HTTPHandler struct {
	srv       input.TodoService
	store     Pinger
	validator validator.Validator
}

// New func - Creates new HTTP handler
func New(srv input.TodoService, store Pinger) *HTTPHandler {
	return &HTTPHandler{
		srv:       srv,
		store:     store,
		validator: validator.New(),
	}
}

// HealthCheck godoc
// @Summary Health check
// @Description Pings the todo store
// @Tags HEALTH
// @Success 200 {object} ResponseBody
// @Failure 503 {object} FailureBody
// @Router /health [get]
// @Produce json
func (hdl *HTTPHandler) HealthCheck(c *fiber.Ctx) error {
	if err := hdl.store.Ping(c.UserContext()); err != nil {
		return failure(c, err, "store is not reachable")
	}
	return success(c, nil)
}

// ListTodos godoc
// @Summary List todos
// @Description List every todo in insertion order
// @Tags TODO
// @Success 200 {object} ResponseBody
// @Failure 503 {object} FailureBody
// @Router /api/ [get]
// @Produce json
func (hdl *HTTPHandler) ListTodos(c *fiber.Ctx) error {
	todos, err := hdl.srv.ListTodos(c.UserContext())
	if err != nil {
		return failure(c, err, "Failure getting todos.")
	}
	return success(c, todos)
}

// CreateTodo godoc
// @Summary Create todo
// @Description Create an incomplete todo
// @Tags TODO
// @Accept json
// @Accept x-www-form-urlencoded
// @Success 200 {object} ResponseBody
// @Failure 400 {object} FailureBody
// @Router /api/ [post]
// @Produce json
// @param CreateTodo body TodoRequest true "CreateTodo"
func (hdl *HTTPHandler) CreateTodo(c *fiber.Ctx) error {
	const message = "Failure creating a todo."
	text, err := bodyText(c)
	if err != nil {
		return failure(c, err, message)
	}
	var value string
	if text != nil {
		value = *text
	}
	todo, err := hdl.srv.CreateTodo(c.UserContext(), value)
	if err != nil {
		return failure(c, err, message)
	}
	return success(c, todo)
}

// GetTodo godoc
// @Summary Get todo
// @Tags TODO
// @Success 200 {object} ResponseBody
// @Failure 404 {object} FailureBody
// @Router /api/{id} [get]
// @Produce json
// @param id path string true "todo id"
func (hdl *HTTPHandler) GetTodo(c *fiber.Ctx) error {
	todo, err := hdl.srv.GetTodo(c.UserContext(), c.Params("id"))
	if err != nil {
		return failure(c, err, "failure getting todo")
	}
	return success(c, todo)
}

// UpdateTodoText godoc
// @Summary Update todo text
// @Description Replace the text of a todo, returning the updated todo
// @Tags TODO
// @Accept json
// @Accept x-www-form-urlencoded
// @Success 200 {object} ResponseBody
// @Failure 400 {object} FailureBody
// @Failure 404 {object} FailureBody
// @Router /api/{id} [put]
// @Produce json
// @param id path string true "todo id"
// @param UpdateTodoText body UpdateTextRequest true "UpdateTodoText"
func (hdl *HTTPHandler) UpdateTodoText(c *fiber.Ctx) error {
	const message = "failure updating todo"
	var request UpdateTextRequest
	text, err := bodyText(c)
	if err != nil {
		return failure(c, err, message)
	}
	request.Text = text
	if err := hdl.validator.ValidateStruct(request); err != nil {
		logrus.Errorln(err)
		return failure(c, fmt.Errorf("%w: %s", domain.ErrInvalidInput, validator.Describe(err)), message)
	}
	todo, err := hdl.srv.UpdateTodoText(c.UserContext(), c.Params("id"), *request.Text)
	if err != nil {
		return failure(c, err, message)
	}
	return success(c, todo)
}

// ToggleTodo godoc
// @Summary Toggle todo
// @Description Flip the completion flag of a todo
// @Tags TODO
// @Success 200 {object} ResponseBody
// @Failure 404 {object} FailureBody
// @Router /api/{id}/toggle [put]
// @Produce json
// @param id path string true "todo id"
func (hdl *HTTPHandler) ToggleTodo(c *fiber.Ctx) error {
	todo, err := hdl.srv.ToggleTodo(c.UserContext(), c.Params("id"))
	if err != nil {
		return failure(c, err, "failure toggling todo")
	}
	return success(c, todo)
}

// DeleteTodo godoc
// @Summary Delete todo
// @Description Delete a todo. Deleting an unknown id succeeds with a null payload.
// @Tags TODO
// @Success 200 {object} ResponseBody
// @Router /api/{id} [delete]
// @Produce json
// @param id path string true "todo id"
func (hdl *HTTPHandler) DeleteTodo(c *fiber.Ctx) error {
	todo, err := hdl.srv.DeleteTodo(c.UserContext(), c.Params("id"))
	if err != nil {
		return failure(c, err, "failure deleting todo")
	}
	return success(c, todo)
}
