package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/wildwave/safari-admin/internal/core/domain"
	"github.com/wildwave/safari-admin/internal/telemetry/logger"
)

func (h *Handler) handlePublicDestinations(w http.ResponseWriter, r *http.Request) {
	all, err := h.store.Destinations.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out := []domain.Destination{}
	for _, d := range all {
		if d.Status == "" || d.Status == "active" {
			out = append(out, d)
		}
	}
	h.writeJSON(w, r, http.StatusOK, out)
}

func (h *Handler) handlePublicBlogs(w http.ResponseWriter, r *http.Request) {
	all, err := h.store.Blogs.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out := []domain.Blog{}
	for _, b := range all {
		if b.Published {
			out = append(out, b)
		}
	}
	h.writeJSON(w, r, http.StatusOK, out)
}

// handleActivePromotion serves the first active promotion, or null.
func (h *Handler) handleActivePromotion(w http.ResponseWriter, r *http.Request) {
	all, err := h.store.Promotions.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	for _, p := range all {
		if p.Active {
			h.writeJSON(w, r, http.StatusOK, p)
			return
		}
	}
	h.writeJSON(w, r, http.StatusOK, nil)
}

// handlePublicBooking records a pending booking and folds it into the
// customer's totals, creating the customer on first booking.
func (h *Handler) handlePublicBooking(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in domain.PublicBookingRequest
	if err := decode(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	created, err := h.store.Bookings.Create(ctx, domain.Booking{
		Customer:  strings.TrimSpace(in.CustomerName),
		Email:     email,
		Package:   strings.TrimSpace(in.SafariType),
		People:    in.People,
		Amount:    in.TotalPrice,
		Status:    domain.BookingPending,
		Date:      in.Date,
		CreatedAt: h.today(),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	n, _ := strconv.Atoi(created.ID.String())
	booking, err := h.store.Bookings.Update(ctx, created.ID, func(b *domain.Booking) error {
		b.Ref = fmt.Sprintf("WW-%d", 1000+n)
		return nil
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.recordCustomer(r, in, email); err != nil {
		logger.L(ctx).Warn("failed to update customer totals", "email", email, "error", err)
	}

	logger.L(ctx).Info("public booking received", "ref", booking.Ref, "package", booking.Package)
	h.writeJSON(w, r, http.StatusCreated, booking)
}

func (h *Handler) recordCustomer(r *http.Request, in domain.PublicBookingRequest, email string) error {
	ctx := r.Context()
	customers, err := h.store.Customers.List(ctx)
	if err != nil {
		return err
	}
	for _, c := range customers {
		if strings.EqualFold(c.Email, email) {
			_, err := h.store.Customers.Update(ctx, c.ID, func(c *domain.Customer) error {
				c.TotalBookings++
				c.TotalSpent += in.TotalPrice
				if c.Phone == "" {
					c.Phone = in.Phone
				}
				return nil
			})
			return err
		}
	}
	_, err = h.store.Customers.Create(ctx, domain.Customer{
		Name:          strings.TrimSpace(in.CustomerName),
		Email:         email,
		Phone:         in.Phone,
		TotalBookings: 1,
		TotalSpent:    in.TotalPrice,
		JoinedDate:    h.today(),
	})
	return err
}

func (h *Handler) handlePublicEnquiry(w http.ResponseWriter, r *http.Request) {
	var in domain.PublicEnquiryRequest
	if err := decode(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	rec, err := h.store.Enquiries.Create(r.Context(), domain.Enquiry{
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		Phone:     in.Phone,
		Subject:   in.Subject,
		Message:   in.Message,
		Status:    domain.EnquiryNew,
		CreatedAt: h.today(),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusCreated, rec)
}
