package apiclient

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/wildwave/safari-admin/internal/core/domain"
	"github.com/wildwave/safari-admin/internal/storage"
	"github.com/wildwave/safari-admin/internal/telemetry/logger"
	"github.com/wildwave/safari-admin/internal/telemetry/metric"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	opts = append([]Option{WithLogger(logger.Discard())}, opts...)
	c, err := New(srv.URL, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	io.WriteString(w, body)
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", DefaultBaseURL},
		{"http://localhost:5000/api", "http://localhost:5000/api"},
		{"https://api.wildwave.test/api/", "https://api.wildwave.test/api"},
		{"localhost:5000/api", "http://localhost:5000/api"},
	}
	for _, tt := range tests {
		got, err := NormalizeBaseURL(tt.in)
		if err != nil {
			t.Errorf("NormalizeBaseURL(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeBaseURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if _, err := NormalizeBaseURL("http://"); err == nil {
		t.Error("NormalizeBaseURL(http://) should fail")
	}
}

func TestRequest_Headers(t *testing.T) {
	var seen http.Header
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Clone()
		writeJSON(w, http.StatusOK, `{}`)
	})

	t.Run("without token", func(t *testing.T) {
		if err := c.Request(context.Background(), http.MethodGet, "/admin/dashboard", nil, nil); err != nil {
			t.Fatalf("Request() error = %v", err)
		}
		if got := seen.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q", got)
		}
		if got := seen.Get("Authorization"); got != "" {
			t.Errorf("Authorization = %q, want none", got)
		}
		if seen.Get("X-Request-ID") == "" {
			t.Error("X-Request-ID missing")
		}
	})

	t.Run("with token and overrides", func(t *testing.T) {
		c.SetAuthToken("abc")
		err := c.Request(context.Background(), http.MethodGet, "/admin/dashboard", nil, nil,
			WithHeader("X-Trace", "t1"),
			WithHeader("Authorization", "Bearer forged"),
		)
		if err != nil {
			t.Fatalf("Request() error = %v", err)
		}
		if got := seen.Get("Authorization"); got != "Bearer abc" {
			t.Errorf("Authorization = %q, want Bearer abc", got)
		}
		if got := seen.Get("X-Trace"); got != "t1" {
			t.Errorf("X-Trace = %q, want t1", got)
		}
	})

	t.Run("content type override", func(t *testing.T) {
		err := c.Request(context.Background(), http.MethodGet, "/x", nil, nil,
			WithHeader("Content-Type", "application/merge-patch+json"))
		if err != nil {
			t.Fatal(err)
		}
		if got := seen.Get("Content-Type"); got != "application/merge-patch+json" {
			t.Errorf("Content-Type = %q", got)
		}
	})

	t.Run("after clearing token", func(t *testing.T) {
		c.SetAuthToken("")
		if err := c.Request(context.Background(), http.MethodGet, "/x", nil, nil); err != nil {
			t.Fatal(err)
		}
		if got := seen.Get("Authorization"); got != "" {
			t.Errorf("Authorization = %q after clearing token", got)
		}
	})
}

func TestRequest_ErrorMessages(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantMsg    string
		wantStatus int
	}{
		{"message field", http.StatusNotFound, `{"message":"Not found"}`, "Not found", 404},
		{"unparseable body", http.StatusInternalServerError, `<html>oops</html>`, "HTTP 500", 500},
		{"empty body", http.StatusBadGateway, ``, "HTTP 502", 502},
		{"json without message", http.StatusUnprocessableEntity, `{"error":"bad"}`, "HTTP 422", 422},
		{"empty message", http.StatusUnauthorized, `{"message":""}`, "HTTP 401", 401},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})

			err := c.Request(context.Background(), http.MethodGet, "/admin/bookings", nil, nil)
			var re *RequestError
			if !errors.As(err, &re) {
				t.Fatalf("error = %T %v, want *RequestError", err, err)
			}
			if re.Error() != tt.wantMsg {
				t.Errorf("message = %q, want %q", re.Error(), tt.wantMsg)
			}
			if re.Status != tt.wantStatus {
				t.Errorf("status = %d, want %d", re.Status, tt.wantStatus)
			}
		})
	}
}

func TestRequest_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(url, WithLogger(logger.Discard()))
	if err != nil {
		t.Fatal(err)
	}

	err = c.Request(context.Background(), http.MethodGet, "/admin/bookings", nil, nil)
	var re *RequestError
	if !errors.As(err, &re) {
		t.Fatalf("error = %v, want *RequestError", err)
	}
	if re.Message != "Request failed" || re.Status != 0 {
		t.Errorf("got status %d message %q", re.Status, re.Message)
	}
	if re.Cause == nil {
		t.Error("network failure should carry its cause")
	}
	if !strings.Contains(re.Detail(), "GET /admin/bookings") {
		t.Errorf("Detail() = %q", re.Detail())
	}
}

func TestRequest_SuccessDecoding(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/empty":
			w.WriteHeader(http.StatusNoContent)
		case "/bad":
			writeJSON(w, http.StatusOK, `{not json`)
		default:
			writeJSON(w, http.StatusOK, `{"name":"Mara"}`)
		}
	})

	var out struct{ Name string }
	if err := c.Request(context.Background(), http.MethodGet, "/ok", nil, &out); err != nil {
		t.Fatal(err)
	}
	if out.Name != "Mara" {
		t.Errorf("decoded name = %q", out.Name)
	}

	if err := c.Request(context.Background(), http.MethodDelete, "/empty", nil, &out); err != nil {
		t.Errorf("empty 204 body should decode cleanly, got %v", err)
	}

	err := c.Request(context.Background(), http.MethodGet, "/bad", nil, &out)
	if StatusOf(err) != http.StatusOK {
		t.Errorf("decode failure status = %d, want 200", StatusOf(err))
	}
}

func TestWithTLSConfig(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"status":"healthy"}`)
	}))
	defer srv.Close()

	untrusted, err := New(srv.URL, WithLogger(logger.Discard()))
	if err != nil {
		t.Fatal(err)
	}
	if err := untrusted.Request(context.Background(), http.MethodGet, "/health", nil, nil); err == nil {
		t.Error("request to a self-signed server should fail without its CA")
	}

	roots := x509.NewCertPool()
	roots.AddCert(srv.Certificate())
	c, err := New(srv.URL,
		WithLogger(logger.Discard()),
		WithTLSConfig(&tls.Config{RootCAs: roots}),
		WithTimeout(5*time.Second),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer c.httpClient.CloseIdleConnections()
	if c.httpClient.Timeout != 5*time.Second {
		t.Errorf("timeout = %v", c.httpClient.Timeout)
	}

	var out struct{ Status string }
	if err := c.Request(context.Background(), http.MethodGet, "/health", nil, &out); err != nil {
		t.Fatalf("Request() error = %v", err)
	}
	if out.Status != "healthy" {
		t.Errorf("status = %q", out.Status)
	}
}

func TestRequest_SendsJSONBody(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		writeJSON(w, http.StatusOK, `{}`)
	})

	body := map[string]any{"status": "confirmed"}
	if err := c.Request(context.Background(), http.MethodPut, "/admin/bookings/1", body, nil); err != nil {
		t.Fatal(err)
	}
	if got["status"] != "confirmed" {
		t.Errorf("server received %v", got)
	}
}

func TestRequest_ContextCancelled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		writeJSON(w, http.StatusOK, `{}`)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := c.Request(ctx, http.MethodGet, "/slow", nil, nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want deadline exceeded in chain", err)
	}
}

func TestRequest_RateLimit(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusOK, `{}`)
	}, WithRateLimit(1, 1))

	ctx := context.Background()
	if err := c.Request(ctx, http.MethodGet, "/a", nil, nil); err != nil {
		t.Fatal(err)
	}

	short, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	if err := c.Request(short, http.MethodGet, "/b", nil, nil); err == nil {
		t.Error("second request inside the rate window should wait past the deadline")
	}
	if calls.Load() != 1 {
		t.Errorf("server saw %d calls, want 1", calls.Load())
	}
}

func TestRequest_Metrics(t *testing.T) {
	reg := metric.NewRegistry(false)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"message":"Not found"}`)
	}, WithMetrics(reg))

	c.Request(context.Background(), http.MethodPut, "/admin/bookings/42", nil, nil)

	got := testutil.ToFloat64(reg.ClientRequests.WithLabelValues("PUT", "/admin/bookings/{id}", "404"))
	if got != 1 {
		t.Errorf("request counter = %v, want 1", got)
	}
}

func TestRouteLabel(t *testing.T) {
	tests := map[string]string{
		"/admin/bookings":              "/admin/bookings",
		"/admin/bookings/17":           "/admin/bookings/{id}",
		"/admin/users/3/status":        "/admin/users/{id}/status",
		"/admin/bookings/BK-001/guide": "/admin/bookings/BK-001/guide",
		"/public/blogs?limit=5":        "/public/blogs",
	}
	for in, want := range tests {
		if got := RouteLabel(in); got != want {
			t.Errorf("RouteLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestToken_Persistence(t *testing.T) {
	kv := storage.NewMemoryEngine()
	ctx := context.Background()

	c, err := New("http://localhost:5000/api", WithStorage(kv), WithLogger(logger.Discard()))
	if err != nil {
		t.Fatal(err)
	}
	if c.HasToken() {
		t.Fatal("fresh client should hold no token")
	}

	c.SetAuthToken("abc")
	raw, err := kv.Get(ctx, []byte(TokenKey))
	if err != nil || string(raw) != "abc" {
		t.Fatalf("persisted token = %q, %v", raw, err)
	}

	restarted, _ := New("http://localhost:5000/api", WithStorage(kv), WithLogger(logger.Discard()))
	if !restarted.HasToken() {
		t.Error("restarted client should restore the persisted token")
	}

	restarted.SetAuthToken("")
	if _, err := kv.Get(ctx, []byte(TokenKey)); !errors.Is(err, storage.ErrKeyNotFound) {
		t.Errorf("token still persisted after clearing: %v", err)
	}
}

func TestSetAuthToken_StorageFailureIsSwallowed(t *testing.T) {
	kv := storage.NewMemoryEngine()
	c, _ := New("", WithStorage(kv), WithLogger(logger.Discard()))
	kv.Close()

	c.SetAuthToken("abc")
	if !c.HasToken() {
		t.Error("in-memory token must be set even when storage fails")
	}
}

func TestLogin(t *testing.T) {
	var received domain.LoginRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&received)
		writeJSON(w, http.StatusOK, `{"token":"abc","user":{"name":"Admin User","email":"admin@wildwave.com"}}`)
	})

	resp, err := c.Login(context.Background(), "admin@wildwave.com", "admin123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if received.Email != "admin@wildwave.com" || received.Password != "admin123" {
		t.Errorf("server received %+v", received)
	}
	if resp.User.Name != "Admin User" {
		t.Errorf("user = %+v", resp.User)
	}
	if !c.HasToken() || c.currentToken() != "abc" {
		t.Errorf("token = %q, want abc", c.currentToken())
	}
}

func TestLogin_Failures(t *testing.T) {
	t.Run("rejected", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnauthorized, `{"message":"Invalid credentials"}`)
		})
		c.SetAuthToken("previous")

		_, err := c.Login(context.Background(), "admin@wildwave.com", "wrong")
		if err == nil || err.Error() != "Invalid credentials" {
			t.Errorf("error = %v, want Invalid credentials", err)
		}
		if !IsUnauthorized(err) {
			t.Error("IsUnauthorized() = false for 401")
		}
		if c.currentToken() != "previous" {
			t.Errorf("token changed on failed login: %q", c.currentToken())
		}
	})

	t.Run("missing token", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"user":{"name":"x","email":"x@y.z"}}`)
		})
		if _, err := c.Login(context.Background(), "x@y.z", "pw"); err == nil {
			t.Error("Login() should fail without a token in the response")
		}
		if c.HasToken() {
			t.Error("no token should be held")
		}
	})

	t.Run("invalid email never hits the network", func(t *testing.T) {
		var calls atomic.Int32
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
		})
		_, err := c.Login(context.Background(), "not-an-email", "pw")
		if !domain.IsDomainError(err, domain.ErrInvalidArgument.Code) {
			t.Errorf("error = %v, want invalid argument", err)
		}
		if calls.Load() != 0 {
			t.Error("request sent despite validation failure")
		}
	})
}
