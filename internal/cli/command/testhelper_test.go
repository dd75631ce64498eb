package command

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/klauspost/compress/zip"

	"github.com/yndnr/ota-go/internal/cli/config"
	"github.com/yndnr/ota-go/internal/core/domain"
	"github.com/yndnr/ota-go/internal/core/service"
)

// recordedRequest is what the mock server saw.
type recordedRequest struct {
	Method string
	Path   string
	Query  map[string][]string
	Header http.Header
	Body   []byte
}

// mockServer is a test HTTP server with per-route handlers that records
// every request.
type mockServer struct {
	*httptest.Server

	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	requests []recordedRequest
}

// newMockServer creates a new mock server. Unregistered routes answer 200
// with an empty JSON object.
func newMockServer(t *testing.T) *mockServer {
	t.Helper()
	m := &mockServer{handlers: make(map[string]http.HandlerFunc)}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		m.mu.Lock()
		m.requests = append(m.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   body,
		})
		handler, ok := m.handlers[r.Method+" "+r.URL.Path]
		m.mu.Unlock()

		if ok {
			handler(w, r)
			return
		}
		jsonResponse(w, http.StatusOK, map[string]any{})
	}))
	t.Cleanup(m.Close)
	return m
}

// handle registers a handler for "METHOD /path".
func (m *mockServer) handle(route string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[route] = handler
}

// recorded returns a copy of the requests seen so far.
func (m *mockServer) recorded() []recordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]recordedRequest(nil), m.requests...)
}

// only returns the single recorded request or fails.
func (m *mockServer) only(t *testing.T) recordedRequest {
	t.Helper()
	reqs := m.recorded()
	if len(reqs) != 1 {
		t.Fatalf("requests = %d, want 1", len(reqs))
	}
	return reqs[0]
}

// jsonResponse writes a JSON response.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// rawResponse writes body with the given status.
func rawResponse(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		io.WriteString(w, body)
	}
}

const noAuthTreehub = `{"no_auth": true, "ostree": {"server": "https://treehub.example.com/"}}`

// writeArchive builds a credentials archive holding entries.
func writeArchive(t *testing.T, entries map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "credentials.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create archive: %v", err)
	}
	zw := zip.NewWriter(f)
	for name, body := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create entry %s: %v", name, err)
		}
		if _, err := io.WriteString(w, body); err != nil {
			t.Fatalf("write entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}
	return path
}

// writeConfig saves a no-auth configuration pointing every service at
// server and returns its path.
func writeConfig(t *testing.T, server *mockServer) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), config.FileName)
	cfg := &domain.Config{
		CredentialsZip: writeArchive(t, map[string]string{service.TreehubEntry: noAuthTreehub}),
		Campaigner:     server.URL,
		Director:       server.URL,
		Registry:       server.URL,
		Reposerver:     server.URL,
	}
	if err := cfg.Normalize(); err != nil {
		t.Fatalf("normalize config: %v", err)
	}
	if err := config.NewFileStore(path).Save(cfg); err != nil {
		t.Fatalf("save config: %v", err)
	}
	return path
}

// writeFile writes content to a temp file called name.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// runResult is the outcome of one invocation.
type runResult struct {
	Stdout string
	Stderr string
	Err    error
}

// runApp runs the CLI with args and captures its output.
func runApp(t *testing.T, args ...string) runResult {
	t.Helper()

	app := App()
	var stdout, stderr bytes.Buffer
	app.Writer = &stdout
	app.ErrWriter = &stderr

	err := RunApp(context.Background(), app, append([]string{"ota"}, args...))
	return runResult{Stdout: stdout.String(), Stderr: stderr.String(), Err: err}
}

// runWith runs the CLI against server with a fresh configuration.
func runWith(t *testing.T, server *mockServer, args ...string) runResult {
	t.Helper()
	return runApp(t, append([]string{"--config", writeConfig(t, server)}, args...)...)
}
