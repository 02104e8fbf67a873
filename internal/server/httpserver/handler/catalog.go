package handler

import (
	"net/http"
	"strings"

	"github.com/wildwave/safari-admin/internal/core/domain"
	"github.com/wildwave/safari-admin/internal/telemetry/logger"
)

func newDestination(in domain.DestinationInput) domain.Destination {
	d := domain.Destination{}
	applyDestination(&d, in)
	if d.Status == "" {
		d.Status = "active"
	}
	return d
}

// applyDestination overwrites the editable fields. Booking and revenue
// counters are kept.
func applyDestination(d *domain.Destination, in domain.DestinationInput) {
	d.Name = in.Name
	d.Duration = in.Duration
	d.Price = in.Price
	d.Category = in.Category
	if in.Status != "" {
		d.Status = in.Status
	}
	d.Image = in.Image
	d.Description = in.Description
}

func newPackage(in domain.SafariPackageInput) domain.SafariPackage {
	p := domain.SafariPackage{}
	applyPackage(&p, in)
	return p
}

func applyPackage(p *domain.SafariPackage, in domain.SafariPackageInput) {
	p.Name = in.Name
	p.Duration = in.Duration
	p.Price = in.Price
	p.Tag = in.Tag
	p.Type = in.Type
	p.ImageURL = in.ImageURL
	p.Description = in.Description
	p.Itinerary = in.Itinerary
	p.Includes = in.Includes
	p.Excludes = in.Excludes
	p.Published = in.Published
}

// handleSyncImages copies each safari package image onto the destination
// with the same name, compared without case.
func (h *Handler) handleSyncImages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	packages, err := h.store.Packages.List(ctx)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	images := make(map[string]string)
	for _, p := range packages {
		if p.ImageURL != "" {
			images[strings.ToLower(strings.TrimSpace(p.Name))] = p.ImageURL
		}
	}

	destinations, err := h.store.Destinations.List(ctx)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	result := domain.SyncImagesResult{SourceCount: len(images)}
	for _, d := range destinations {
		img, ok := images[strings.ToLower(strings.TrimSpace(d.Name))]
		if !ok {
			result.UnmatchedCount++
			continue
		}
		if d.Image == img {
			continue
		}
		if _, err := h.store.Destinations.Update(ctx, d.ID, func(v *domain.Destination) error {
			v.Image = img
			return nil
		}); err != nil {
			h.writeError(w, r, err)
			return
		}
		result.UpdatedCount++
	}

	logger.L(ctx).Info("destination images synced",
		"source", result.SourceCount,
		"updated", result.UpdatedCount,
		"unmatched", result.UnmatchedCount,
	)
	h.writeJSON(w, r, http.StatusOK, result)
}
