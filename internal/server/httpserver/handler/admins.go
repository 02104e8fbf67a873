package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/wildwave/safari-admin/internal/core/domain"
	"github.com/wildwave/safari-admin/internal/server/auth"
	"github.com/wildwave/safari-admin/internal/server/store"
)

var errSuperAdminOnly = &httpError{status: http.StatusForbidden, message: "super-admin role required"}

func (h *Handler) handleListAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.store.Admins(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, admins)
}

func (h *Handler) handleCreateAdmin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !isSuperAdmin(r) {
		h.writeError(w, r, errSuperAdminOnly)
		return
	}

	var in domain.CreateAdminRequest
	if err := decode(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}

	_, err := h.store.FindUserByEmail(ctx, in.Email)
	if err == nil {
		h.writeMessage(w, r, http.StatusConflict, "email already registered")
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		h.writeError(w, r, err)
		return
	}

	hash, err := h.hasher.Hash(in.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	rec, err := h.store.Users.Create(ctx, store.UserRecord{
		AdminUser: domain.AdminUser{
			Name:      strings.TrimSpace(in.Name),
			Email:     strings.ToLower(strings.TrimSpace(in.Email)),
			Role:      in.Role,
			Status:    domain.AdminActive,
			CreatedAt: h.today(),
			LastLogin: "Never",
		},
		PasswordHash: hash,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusCreated, rec.AdminUser)
}

func (h *Handler) handleAdminStatus(w http.ResponseWriter, r *http.Request) {
	if !isSuperAdmin(r) {
		h.writeError(w, r, errSuperAdminOnly)
		return
	}

	var in domain.AdminStatusUpdate
	if err := decode(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}

	id := pathID(r)
	if c := auth.ClaimsFromContext(r.Context()); c != nil && c.Subject == id.String() && in.Status != domain.AdminActive {
		h.writeError(w, r, badRequest("cannot %s your own account", strings.TrimSuffix(in.Status, "ed")))
		return
	}

	rec, err := h.store.Users.Update(r.Context(), id, func(u *store.UserRecord) error {
		u.Status = in.Status
		return nil
	})
	if errors.Is(err, store.ErrNotFound) {
		err = notFound("admin", id)
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, rec.AdminUser)
}

func isSuperAdmin(r *http.Request) bool {
	c := auth.ClaimsFromContext(r.Context())
	return c != nil && c.Role == domain.RoleSuperAdmin
}
