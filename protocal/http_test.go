package protocal

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"todo-htmx/configs"
	_ "todo-htmx/docs"
	"todo-htmx/internal/adapters/output/memory"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *configs.Config {
	return &configs.Config{
		App:   configs.App{Port: "3000", Env: "test"},
		Store: configs.Store{Driver: configs.DriverMemory},
	}
}

func get(t *testing.T, app *fiber.App, target string) (int, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, target, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestServerServesPageAndAPI(t *testing.T) {
	server := NewServer(testConfig(), memory.NewTodoRepository())

	status, body := get(t, server.App(), "/")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, body, "<h1>Todos</h1>")

	status, body = get(t, server.App(), "/api/")
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"message":"success","payload":[]}`, body)
}

func TestServerServesStaticAssets(t *testing.T) {
	server := NewServer(testConfig(), memory.NewTodoRepository())

	status, body := get(t, server.App(), "/static/styles.css")

	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, body, "text-decoration: line-through")
}

func TestServerServesSwaggerDoc(t *testing.T) {
	server := NewServer(testConfig(), memory.NewTodoRepository())

	status, body := get(t, server.App(), "/swagger/doc.json")

	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, strings.Contains(body, `"/api/{id}/toggle"`), "expected toggle route in swagger doc")
}

func TestServerRecoversFromPanics(t *testing.T) {
	server := NewServer(testConfig(), memory.NewTodoRepository())
	server.App().Get("/panic", func(c *fiber.Ctx) error {
		panic("boom")
	})

	status, _ := get(t, server.App(), "/panic")

	assert.Equal(t, fiber.StatusInternalServerError, status)
}

func TestOpenStoreDefaultsToMemory(t *testing.T) {
	store, err := OpenStore(context.Background(), testConfig())
	require.NoError(t, err)
	assert.IsType(t, &memory.TodoRepository{}, store)
	assert.NoError(t, store.Ping(context.Background()))
}

func TestMigrateMemoryIsNoop(t *testing.T) {
	assert.NoError(t, Migrate(context.Background(), testConfig()))
}

func TestShutdownClosesStore(t *testing.T) {
	server := NewServer(testConfig(), memory.NewTodoRepository())

	assert.NoError(t, server.Shutdown(context.Background()))
}

// slowCloseStore records whether Close finished
type slowCloseStore struct {
	*memory.TodoRepository
	closed atomic.Bool
}

func (s *slowCloseStore) Close(ctx context.Context) error {
	time.Sleep(100 * time.Millisecond)
	s.closed.Store(true)
	return s.TodoRepository.Close(ctx)
}

func freePort(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())
	return strconv.Itoa(port)
}

func TestServeClosesStoreBeforeReturning(t *testing.T) {
	cfg := testConfig()
	cfg.App.Port = freePort(t)
	store := &slowCloseStore{TodoRepository: memory.NewTodoRepository()}
	server := NewServer(cfg, store)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- server.Serve(ctx)
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://127.0.0.1:" + cfg.App.Port + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
	assert.True(t, store.closed.Load(), "store must be closed when Serve returns")
}

func TestServeClosesStoreWhenListenFails(t *testing.T) {
	ln, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer ln.Close()

	cfg := testConfig()
	cfg.App.Port = strconv.Itoa(ln.Addr().(*net.TCPAddr).Port)
	store := &slowCloseStore{TodoRepository: memory.NewTodoRepository()}

	err = NewServer(cfg, store).Serve(context.Background())

	assert.Error(t, err)
	assert.True(t, store.closed.Load())
}

func TestConfigureLogging(t *testing.T) {
	defer logrus.SetLevel(logrus.InfoLevel)
	defer logrus.SetFormatter(&logrus.TextFormatter{})

	ConfigureLogging(configs.App{Debug: true, Env: "production"})

	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logrus.StandardLogger().Formatter)
}
