package command

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/wildwave/safari-admin/internal/apiclient"
	"github.com/wildwave/safari-admin/internal/cli/config"
	"github.com/wildwave/safari-admin/internal/core/service"
	"github.com/wildwave/safari-admin/internal/storage"
	"github.com/wildwave/safari-admin/internal/telemetry/logger"
	"github.com/wildwave/safari-admin/internal/telemetry/metric"
)

const testToken = "test-token"

// recordedRequest is a request seen by the mock server.
type recordedRequest struct {
	Method string
	Path   string
	Auth   string
	Body   string
}

// mockServer is a test backend with handlers keyed by "METHOD /path".
type mockServer struct {
	*httptest.Server

	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	requests []recordedRequest
}

// newMockServer creates a new mock server.
func newMockServer(t *testing.T) *mockServer {
	t.Helper()
	m := &mockServer{
		handlers: make(map[string]http.HandlerFunc),
	}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		m.mu.Lock()
		m.requests = append(m.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Auth:   r.Header.Get("Authorization"),
			Body:   string(body),
		})
		handler, ok := m.handlers[r.Method+" "+r.URL.Path]
		m.mu.Unlock()

		if !ok {
			jsonResponse(w, http.StatusNotFound, map[string]string{"message": "Not found"})
			return
		}
		handler(w, r)
	}))
	t.Cleanup(m.Close)
	return m
}

// handle registers a handler for "METHOD /path".
func (m *mockServer) handle(pattern string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[pattern] = handler
}

// respond registers a handler that always writes data with status.
func (m *mockServer) respond(pattern string, status int, data any) {
	m.handle(pattern, func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, status, data)
	})
}

// recorded returns the requests matching "METHOD /path".
func (m *mockServer) recorded(pattern string) []recordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []recordedRequest
	for _, r := range m.requests {
		if r.Method+" "+r.Path == pattern {
			out = append(out, r)
		}
	}
	return out
}

func (m *mockServer) requestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// jsonResponse writes a JSON response.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// testEnv bundles a runtime wired to a mock server.
type testEnv struct {
	rt     *Runtime
	server *mockServer
	kv     *storage.MemoryEngine
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// newTestEnv creates a runtime over an in-memory session store. When
// loggedIn is set the store already holds a token and user.
func newTestEnv(t *testing.T, loggedIn bool) *testEnv {
	t.Helper()

	server := newMockServer(t)
	kv := storage.NewMemoryEngine()
	if loggedIn {
		ctx := context.Background()
		kv.Set(ctx, []byte(apiclient.TokenKey), []byte(testToken))
		kv.Set(ctx, []byte(service.UserKey), []byte(`{"name":"Admin User","email":"admin@wildwave.com"}`))
	}

	cfg := config.Default()
	cfg.API.BaseURL = server.URL
	cfg.API.Timeout = 5 * time.Second
	cfg.Storage.Engine = storage.EngineMemory
	cfg.Storage.Dir = t.TempDir()

	env := &testEnv{
		server: server,
		kv:     kv,
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}
	env.rt = &Runtime{
		Config:     cfg,
		ConfigPath: t.TempDir() + "/cli.yaml",
		Stdin:      strings.NewReader(""),
		Stdout:     env.stdout,
		Stderr:     env.stderr,
		Logger:     logger.Discard(),
		Metrics:    metric.NewRegistry(false),
		Now:        func() time.Time { return time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC) },
		KVFactory: func(*config.CLIConfig, logger.Logger) (storage.KV, error) {
			return kv, nil
		},
	}
	return env
}

// run executes the CLI with args and returns stdout.
func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	e.stdout.Reset()
	e.stderr.Reset()
	app := App(e.rt)
	err := app.RunContext(context.Background(), append([]string{"wildwave-cli"}, args...))
	return e.stdout.String(), err
}

// mustRun executes the CLI and fails the test on error.
func (e *testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	if err != nil {
		t.Fatalf("%v: unexpected error: %v\nstdout:\n%s", args, err, out)
	}
	return out
}

// withStdin sets what confirmation prompts read.
func (e *testEnv) withStdin(s string) {
	e.rt.Stdin = strings.NewReader(s)
}
