package protocal

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"todo-htmx/configs"
	httpAdapter "todo-htmx/internal/adapters/input/http"
	"todo-htmx/internal/application"
	"todo-htmx/internal/ports/output"
	"todo-htmx/web"

	swagger "github.com/arsmn/fiber-swagger/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

// Server struct - Owns the fiber app and the store every handler shares
type Server struct {
	app   *fiber.App
	store output.TodoRepository
	port  string
}

// NewServer wires the hexagonal layers around store
func NewServer(cfg *configs.Config, store output.TodoRepository) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "todo",
		Views:        web.Engine(),
		ErrorHandler: httpAdapter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "${method} ${path} ${status} ${latency} - ${bytesSent}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, HX-Request, HX-Target, HX-Trigger, HX-Current-URL",
	}))

	// Application service (use case)
	srv := application.NewTodoService(store)
	// Input adapters (JSON API and HTML views)
	hdl := httpAdapter.New(srv, store)
	views := httpAdapter.NewViewHandler(srv)

	app.Get("/swagger/*", swagger.HandlerDefault)
	httpAdapter.RegisterRoutes(app, hdl, views)
	app.Use("/static", filesystem.New(filesystem.Config{
		Root: web.Public(),
	}))

	return &Server{
		app:   app,
		store: store,
		port:  cfg.App.Port,
	}
}

// App exposes the fiber app, mainly for tests
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen blocks until the server stops
func (s *Server) Listen() error {
	logrus.Println("Listerning on port: ", s.port)
	return s.app.Listen(":" + s.port)
}

// Serve listens until ctx is done, then shuts down and closes the store.
// It returns only after the store is closed.
func (s *Server) Serve(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		errc <- s.Listen()
	}()

	select {
	case err := <-errc:
		logrus.Errorln("Server stopped: ", err)
		_ = s.store.Close(context.Background())
		return err
	case <-ctx.Done():
	}

	logrus.Println("Gracefull shut down ...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errc
}

// Shutdown stops accepting requests, then closes the store
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.app.ShutdownWithContext(ctx); err != nil {
		logrus.Println("Error when shutdown server: ", err)
		_ = s.store.Close(ctx)
		return err
	}
	return s.store.Close(ctx)
}

// ServeHTTP func
func ServeHTTP(cfg *configs.Config) error {
	ConfigureLogging(cfg.App)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	return NewServer(cfg, store).Serve(ctx)
}

// ConfigureLogging func - Debug raises the level; production logs JSON
func ConfigureLogging(app configs.App) {
	if app.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
	if app.Env == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	logrus.Info(app.Env)
}
