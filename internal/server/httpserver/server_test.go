package httpserver

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/wildwave/safari-admin/internal/apiclient"
	"github.com/wildwave/safari-admin/internal/core/domain"
	"github.com/wildwave/safari-admin/internal/server/auth"
	"github.com/wildwave/safari-admin/internal/server/httpserver/handler"
	"github.com/wildwave/safari-admin/internal/server/store"
	"github.com/wildwave/safari-admin/internal/storage"
	"github.com/wildwave/safari-admin/internal/telemetry/logger"
	"github.com/wildwave/safari-admin/internal/telemetry/metric"
)

// leakOptions ignores the flush goroutine glog starts at init; glog is
// linked in through badger.
var leakOptions = []goleak.Option{
	goleak.IgnoreTopFunction("github.com/golang/glog.(*loggingT).flushDaemon"),
}

func TestNew(t *testing.T) {
	s := New("127.0.0.1:8080", okHandler())
	if s.httpServer == nil || s.handler == nil {
		t.Fatal("server not initialised")
	}
	if s.Addr() != "127.0.0.1:8080" {
		t.Errorf("Addr() = %q", s.Addr())
	}
	if s.httpServer.ReadHeaderTimeout == 0 {
		t.Error("ReadHeaderTimeout should be set")
	}
}

func TestServer_Shutdown(t *testing.T) {
	defer goleak.VerifyNone(t, leakOptions...)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	s := New(ln.Addr().String(), okHandler())

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Serve(ln)
	}()

	client := &http.Client{Transport: &http.Transport{}}
	resp, err := client.Get("http://" + ln.Addr().String() + "/")
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	resp.Body.Close()
	client.CloseIdleConnections()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown error: %v", err)
	}

	select {
	case err := <-errChan:
		if !errors.Is(err, http.ErrServerClosed) {
			t.Errorf("Serve returned unexpected error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Error("timeout waiting for Serve to return")
	}
}

type routerEnv struct {
	srv   *httptest.Server
	store *store.Store
}

func newRouterEnv(t *testing.T, rateLimit float64) *routerEnv {
	t.Helper()
	ctx := context.Background()

	kv := storage.NewMemoryEngine()
	t.Cleanup(func() { kv.Close() })
	s := store.New(kv)

	hasher := auth.NewHasher(8)
	hash, err := hasher.Hash("admin123")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Seed(ctx, store.SeedOptions{
		AdminEmail:   "admin@wildwave.com",
		AdminName:    "Admin User",
		PasswordHash: hash,
		Demo:         true,
	}); err != nil {
		t.Fatal(err)
	}

	issuer := auth.NewIssuer("integration-secret-0123456789", time.Hour)
	reg := metric.NewRegistry(false)
	h := handler.New(handler.Config{Store: s, Issuer: issuer, Hasher: hasher, Metrics: reg})

	router := NewRouter(RouterConfig{
		Handler:     h,
		Verifier:    issuer,
		Logger:      logger.Discard(),
		Metrics:     reg,
		BasePath:    "/api",
		CORSOrigins: []string{"*"},
		RateLimit:   rateLimit,
		RateBurst:   3,
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &routerEnv{srv: srv, store: s}
}

func TestRouter_WithAPIClient(t *testing.T) {
	// Registered first so it runs after the server cleanup.
	t.Cleanup(func() { goleak.VerifyNone(t, leakOptions...) })

	env := newRouterEnv(t, 0)
	ctx := context.Background()

	transport := &http.Transport{}
	defer transport.CloseIdleConnections()
	c, err := apiclient.New(env.srv.URL+"/api", apiclient.WithHTTPClient(&http.Client{Transport: transport}))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := c.GetBookings(ctx); !apiclient.IsUnauthorized(err) {
		t.Fatalf("GetBookings() before login error = %v, want 401", err)
	}

	resp, err := c.Login(ctx, "admin@wildwave.com", "admin123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if resp.User.Name != "Admin User" {
		t.Errorf("user = %+v", resp.User)
	}

	bookings, err := c.GetBookings(ctx)
	if err != nil {
		t.Fatalf("GetBookings() error = %v", err)
	}
	if len(bookings) != 4 {
		t.Errorf("bookings = %d, want 4", len(bookings))
	}

	b, err := c.UpdateBookingStatus(ctx, "4", domain.BookingConfirmed)
	if err != nil {
		t.Fatalf("UpdateBookingStatus() error = %v", err)
	}
	if b.Status != domain.BookingConfirmed {
		t.Errorf("status = %q", b.Status)
	}

	stats, err := c.GetDashboardStats(ctx)
	if err != nil {
		t.Fatalf("GetDashboardStats() error = %v", err)
	}
	if stats.ActiveTours != 3 {
		t.Errorf("activeTours = %d, want 3", stats.ActiveTours)
	}

	promo, err := c.GetActivePromotion(ctx)
	if err != nil || promo == nil || promo.Title != "Early Bird" {
		t.Errorf("GetActivePromotion() = %+v, %v", promo, err)
	}

	if _, err := c.UpdateAdminStatus(ctx, "1", domain.AdminBlocked); apiclient.StatusOf(err) != http.StatusBadRequest {
		t.Errorf("self block error = %v", err)
	}
}

func TestRouter_SuspendedTokenRejected(t *testing.T) {
	env := newRouterEnv(t, 0)
	ctx := context.Background()

	c, err := apiclient.New(env.srv.URL + "/api")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Login(ctx, "admin@wildwave.com", "admin123"); err != nil {
		t.Fatal(err)
	}

	if _, err := env.store.Users.Update(ctx, "1", func(u *store.UserRecord) error {
		u.Status = domain.AdminSuspended
		return nil
	}); err != nil {
		t.Fatal(err)
	}

	if _, err := c.GetBookings(ctx); !apiclient.IsUnauthorized(err) {
		t.Errorf("GetBookings() error = %v, want 401", err)
	}
}

func TestRouter_PublicAndMetrics(t *testing.T) {
	env := newRouterEnv(t, 0)

	resp, err := http.Get(env.srv.URL + "/api/public/destinations")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("public status = %d", resp.StatusCode)
	}
	if resp.Header.Get(HeaderRequestID) == "" {
		t.Error("missing request id header")
	}

	resp, err = http.Get(env.srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("health outside base path status = %d", resp.StatusCode)
	}

	resp, err = http.Get(env.srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	body := string(data)
	if !strings.Contains(body, `wildwave_http_requests_total{method="GET",route="/api/public/destinations",status="200"} 1`) {
		t.Errorf("metrics missing route counter:\n%s", body)
	}
}

func TestRouter_RateLimited(t *testing.T) {
	env := newRouterEnv(t, 0.001)

	var last int
	for i := 0; i < 4; i++ {
		resp, err := http.Get(env.srv.URL + "/api/health")
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		last = resp.StatusCode
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("fourth request status = %d, want 429", last)
	}
}
