package handler

import (
	"errors"
	"net/http"

	"github.com/wildwave/safari-admin/internal/core/domain"
	"github.com/wildwave/safari-admin/internal/server/store"
)

func (h *Handler) newBlog(in domain.BlogInput) domain.Blog {
	b := domain.Blog{CreatedAt: h.today()}
	applyBlog(&b, in)
	return b
}

func applyBlog(b *domain.Blog, in domain.BlogInput) {
	b.Title = in.Title
	b.Category = in.Category
	b.Excerpt = in.Excerpt
	b.Content = in.Content
	b.ImageURL = in.ImageURL
	b.ReadTime = in.ReadTime
	b.Published = in.Published
}

func newPromotion(in domain.PromotionInput) domain.Promotion {
	p := domain.Promotion{}
	applyPromotion(&p, in)
	return p
}

func applyPromotion(p *domain.Promotion, in domain.PromotionInput) {
	p.Title = in.Title
	p.Description = in.Description
	p.DiscountText = in.DiscountText
	p.ButtonText = in.ButtonText
	p.ButtonLink = in.ButtonLink
	p.Active = in.Active
}

func (h *Handler) handleEnquiryStatus(w http.ResponseWriter, r *http.Request) {
	var in domain.EnquiryStatusUpdate
	if err := decode(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	id := pathID(r)
	rec, err := h.store.Enquiries.Update(r.Context(), id, func(e *domain.Enquiry) error {
		e.Status = in.Status
		return nil
	})
	if errors.Is(err, store.ErrNotFound) {
		err = notFound("enquiry", id)
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, rec)
}

func (h *Handler) handleGetContact(w http.ResponseWriter, r *http.Request) {
	c, err := h.store.Contact(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, c)
}

func (h *Handler) handleUpdateContact(w http.ResponseWriter, r *http.Request) {
	var in domain.ContactSettings
	if err := decode(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.store.SetContact(r.Context(), in); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, in)
}
