package http

import (
	"fmt"

	"todo-htmx/internal/domain"

	"github.com/gofiber/fiber/v2"
)

type (
	// TodoRequest struct - HTTP request DTO, accepted as JSON or urlencoded form
	TodoRequest struct {
		Text *string `json:"text" form:"text"`
	}

	// UpdateTextRequest struct - HTTP request DTO for replacing the text
	UpdateTextRequest struct {
		Text *string `json:"text" form:"text" validate:"required"`
	}
)

// bodyText reads the optional text field. An empty body yields nil.
func bodyText(c *fiber.Ctx) (*string, error) {
	if len(c.Body()) == 0 {
		return nil, nil
	}
	var request TodoRequest
	if err := c.BodyParser(&request); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return request.Text, nil
}
