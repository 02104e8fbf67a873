package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/wildwave/safari-admin/internal/core/domain"
	"github.com/wildwave/safari-admin/internal/server/store"
)

func (h *Handler) handleBookingStatus(w http.ResponseWriter, r *http.Request) {
	var in domain.BookingStatusUpdate
	if err := decode(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.updateBooking(w, r, func(b *domain.Booking) {
		b.Status = in.Status
	})
}

// handleAssignGuide accepts only guides on the roster.
func (h *Handler) handleAssignGuide(w http.ResponseWriter, r *http.Request) {
	var in domain.GuideAssignment
	if err := decode(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}

	guides, err := h.store.Guides.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	name := ""
	for _, g := range guides {
		if strings.EqualFold(g.Name, strings.TrimSpace(in.Guide)) {
			name = g.Name
			break
		}
	}
	if name == "" {
		h.writeError(w, r, badRequest("unknown guide %q", in.Guide))
		return
	}

	h.updateBooking(w, r, func(b *domain.Booking) {
		b.Guide = name
	})
}

func (h *Handler) updateBooking(w http.ResponseWriter, r *http.Request, apply func(*domain.Booking)) {
	id := pathID(r)
	rec, err := h.store.Bookings.Update(r.Context(), id, func(b *domain.Booking) error {
		apply(b)
		return nil
	})
	if errors.Is(err, store.ErrNotFound) {
		err = notFound("booking", id)
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, rec)
}
