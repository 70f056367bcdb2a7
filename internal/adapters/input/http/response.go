package http

import (
	"errors"

	"todo-htmx/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const (
	// Success message
	Success = "success"
)

// ResponseBody struct - Success envelope
type ResponseBody struct {
	Message string      `json:"message"`
	Payload interface{} `json:"payload"`
}

// FailureBody struct - Failure envelope
type FailureBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// StatusOf maps a domain error kind onto an HTTP status code.
// Domain kinds win over a wrapped *fiber.Error.
func StatusOf(err error) int {
	var fiberErr *fiber.Error
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrStoreUnavailable):
		return fiber.StatusServiceUnavailable
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	default:
		return fiber.StatusInternalServerError
	}
}

func success(c *fiber.Ctx, payload interface{}) error {
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Message: Success, Payload: payload})
}

func failure(c *fiber.Ctx, err error, message string) error {
	logrus.WithError(err).Errorln(message)
	return c.Status(StatusOf(err)).JSON(FailureBody{Message: message, Error: err.Error()})
}

// ErrorHandler func - Fiber error handler used by the view routes, which
// return errors instead of writing failures themselves
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := StatusOf(err)
	if code >= fiber.StatusInternalServerError {
		logrus.WithError(err).Errorf("%s %s", c.Method(), c.Path())
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Status(code).SendString(err.Error())
}
