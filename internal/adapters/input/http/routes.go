package http

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes sets up the JSON API under /api and the HTML views under /
func RegisterRoutes(app fiber.Router, api *HTTPHandler, views *ViewHandler) {
	app.Get("/health", api.HealthCheck)

	todos := app.Group("/api")
	{
		todos.Get("/", api.ListTodos)
		todos.Post("/", api.CreateTodo)
		todos.Get("/:id", api.GetTodo)
		todos.Put("/:id", api.UpdateTodoText)
		todos.Put("/:id/toggle", api.ToggleTodo)
		todos.Delete("/:id", api.DeleteTodo)
	}

	app.Get("/", views.Index)
	app.Post("/add", views.Add)
	app.Put("/toggle/:id", views.Toggle)
	app.Get("/edit-text/:id", views.EditText)
	app.Put("/update-text/:id", views.UpdateText)
	app.Delete("/delete/:id", views.Delete)
}
