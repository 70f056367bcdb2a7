package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"todo-htmx/internal/adapters/output/memory"
	"todo-htmx/internal/application"
	"todo-htmx/internal/domain"
	"todo-htmx/web"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// testResponse holds the parts of a response the tests assert on
type testResponse struct {
	Status int
	Body   string
}

func newTestApp(t *testing.T) (*fiber.App, *application.TodoService) {
	t.Helper()
	store := memory.NewTodoRepository()
	srv := application.NewTodoService(store)
	return newApp(srv, store), srv
}

func newApp(srv *application.TodoService, store Pinger) *fiber.App {
	app := fiber.New(fiber.Config{
		Views:        web.Engine(),
		ErrorHandler: ErrorHandler,
	})
	RegisterRoutes(app, New(srv, store), NewViewHandler(srv))
	return app
}

func do(t *testing.T, app *fiber.App, method, target, contentType, body string) testResponse {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(fiber.HeaderContentType, contentType)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return testResponse{Status: resp.StatusCode, Body: string(raw)}
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string) testResponse {
	t.Helper()
	return do(t, app, method, target, fiber.MIMEApplicationJSON, body)
}

func doForm(t *testing.T, app *fiber.App, method, target, body string) testResponse {
	t.Helper()
	return do(t, app, method, target, fiber.MIMEApplicationForm, body)
}

// envelope decodes a success envelope with a single todo payload
type envelope struct {
	Message string       `json:"message"`
	Payload *domain.Todo `json:"payload"`
	Error   string       `json:"error"`
}

func decode(t *testing.T, body string) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal([]byte(body), &env))
	return env
}

// failingPinger reports the store as unreachable
type failingPinger struct{}

func (failingPinger) Ping(context.Context) error {
	return errors.Join(domain.ErrStoreUnavailable, errors.New("dial tcp: connection refused"))
}
