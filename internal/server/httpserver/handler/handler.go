package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/wildwave/safari-admin/internal/core/domain"
	"github.com/wildwave/safari-admin/internal/server/auth"
	"github.com/wildwave/safari-admin/internal/server/store"
	"github.com/wildwave/safari-admin/internal/telemetry/logger"
	"github.com/wildwave/safari-admin/internal/telemetry/metric"
)

const maxBodyBytes = 1 << 20

// Config holds the dependencies of a Handler.
type Config struct {
	Store   *store.Store
	Issuer  *auth.Issuer
	Hasher  *auth.Hasher
	Metrics *metric.Registry

	// Now is the clock used for timestamps and dashboard windows.
	Now func() time.Time
}

// Handler serves the WildWave API.
type Handler struct {
	store   *store.Store
	issuer  *auth.Issuer
	hasher  *auth.Hasher
	metrics *metric.Registry
	now     func() time.Time
}

// New creates a Handler.
func New(cfg Config) *Handler {
	h := &Handler{
		store:   cfg.Store,
		issuer:  cfg.Issuer,
		hasher:  cfg.Hasher,
		metrics: cfg.Metrics,
		now:     cfg.Now,
	}
	if h.now == nil {
		h.now = time.Now
	}
	return h
}

// Route is one endpoint. Admin routes require a verified bearer token.
type Route struct {
	Method  string
	Path    string
	Admin   bool
	Handler http.HandlerFunc
}

// Routes returns every endpoint relative to the API base path.
func (h *Handler) Routes() []Route {
	return []Route{
		{http.MethodGet, "/health", false, h.handleHealth},
		{http.MethodPost, "/auth/login", false, h.handleLogin},

		{http.MethodGet, "/admin/dashboard", true, h.handleDashboard},

		{http.MethodGet, "/admin/bookings", true, list(h, h.store.Bookings)},
		{http.MethodPut, "/admin/bookings/{id}", true, h.handleBookingStatus},
		{http.MethodPut, "/admin/bookings/{id}/guide", true, h.handleAssignGuide},

		{http.MethodGet, "/admin/destinations", true, list(h, h.store.Destinations)},
		{http.MethodPost, "/admin/destinations", true, create(h, h.store.Destinations, newDestination)},
		{http.MethodPost, "/admin/destinations/sync-images", true, h.handleSyncImages},
		{http.MethodPut, "/admin/destinations/{id}", true, update(h, h.store.Destinations, "destination", applyDestination)},
		{http.MethodDelete, "/admin/destinations/{id}", true, remove(h, h.store.Destinations, "destination")},

		{http.MethodGet, "/admin/packages", true, list(h, h.store.Packages)},
		{http.MethodPost, "/admin/packages", true, create(h, h.store.Packages, newPackage)},
		{http.MethodPut, "/admin/packages/{id}", true, update(h, h.store.Packages, "package", applyPackage)},
		{http.MethodDelete, "/admin/packages/{id}", true, remove(h, h.store.Packages, "package")},

		{http.MethodGet, "/admin/blogs", true, list(h, h.store.Blogs)},
		{http.MethodPost, "/admin/blogs", true, create(h, h.store.Blogs, h.newBlog)},
		{http.MethodPut, "/admin/blogs/{id}", true, update(h, h.store.Blogs, "blog", applyBlog)},
		{http.MethodDelete, "/admin/blogs/{id}", true, remove(h, h.store.Blogs, "blog")},

		{http.MethodGet, "/admin/promotions", true, list(h, h.store.Promotions)},
		{http.MethodPost, "/admin/promotions", true, create(h, h.store.Promotions, newPromotion)},
		{http.MethodPut, "/admin/promotions/{id}", true, update(h, h.store.Promotions, "promotion", applyPromotion)},
		{http.MethodDelete, "/admin/promotions/{id}", true, remove(h, h.store.Promotions, "promotion")},

		{http.MethodGet, "/admin/enquiries", true, list(h, h.store.Enquiries)},
		{http.MethodPut, "/admin/enquiries/{id}", true, h.handleEnquiryStatus},

		{http.MethodGet, "/admin/contact-settings", true, h.handleGetContact},
		{http.MethodPut, "/admin/contact-settings", true, h.handleUpdateContact},

		{http.MethodGet, "/admin/customers", true, list(h, h.store.Customers)},
		{http.MethodGet, "/admin/payments", true, list(h, h.store.Payments)},
		{http.MethodGet, "/admin/guides", true, list(h, h.store.Guides)},
		{http.MethodGet, "/admin/vehicles", true, list(h, h.store.Vehicles)},

		{http.MethodGet, "/admin/users", true, h.handleListAdmins},
		{http.MethodPost, "/admin/users", true, h.handleCreateAdmin},
		{http.MethodPut, "/admin/users/{id}/status", true, h.handleAdminStatus},

		{http.MethodGet, "/public/destinations", false, h.handlePublicDestinations},
		{http.MethodGet, "/public/blogs", false, h.handlePublicBlogs},
		{http.MethodGet, "/public/contact-settings", false, h.handleGetContact},
		{http.MethodGet, "/public/promotions/active", false, h.handleActivePromotion},
		{http.MethodPost, "/public/bookings", false, h.handlePublicBooking},
		{http.MethodPost, "/public/enquiries", false, h.handlePublicEnquiry},
	}
}

// httpError is a failure with a chosen status and client-facing message.
type httpError struct {
	status  int
	message string
}

func (e *httpError) Error() string {
	return e.message
}

func badRequest(format string, args ...any) error {
	return &httpError{status: http.StatusBadRequest, message: fmt.Sprintf(format, args...)}
}

func notFound(kind string, id domain.ID) error {
	return &httpError{status: http.StatusNotFound, message: fmt.Sprintf("%s %s not found", kind, id)}
}

// writeJSON writes v as the response body.
func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.L(r.Context()).Error("failed to encode response", "error", err)
	}
}

// writeMessage writes {"message": msg}.
func (h *Handler) writeMessage(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.writeJSON(w, r, status, map[string]string{"message": msg})
}

// writeError converts err to a status code and message. Unexpected
// errors are logged and reported as 500 without detail.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var he *httpError
	var de *domain.DomainError
	switch {
	case errors.As(err, &he):
		h.writeMessage(w, r, he.status, he.message)
	case errors.Is(err, store.ErrNotFound):
		h.writeMessage(w, r, http.StatusNotFound, "not found")
	case errors.As(err, &de) && errors.Is(err, domain.ErrInvalidArgument):
		msg := de.Details
		if msg == "" {
			msg = de.Message
		}
		h.writeMessage(w, r, http.StatusBadRequest, msg)
	default:
		logger.L(r.Context()).Error("request failed", "path", r.URL.Path, "error", err)
		h.writeMessage(w, r, http.StatusInternalServerError, "internal server error")
	}
}

// decode reads a JSON body into v and validates it.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return badRequest("request body is required")
		}
		return badRequest("malformed JSON body: %v", err)
	}
	return domain.Validate(v)
}

func pathID(r *http.Request) domain.ID {
	return domain.ID(r.PathValue("id"))
}

func (h *Handler) today() string {
	return h.now().Format("2006-01-02")
}
