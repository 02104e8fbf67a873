package handler

import (
	"errors"
	"net/http"

	"github.com/wildwave/safari-admin/internal/core/domain"
	"github.com/wildwave/safari-admin/internal/server/store"
	"github.com/wildwave/safari-admin/internal/telemetry/logger"
)

// Login outcomes recorded in wildwave_auth_login_attempts_total.
const (
	loginSuccess  = "success"
	loginFailure  = "failure"
	loginRejected = "rejected"
	loginInvalid  = "invalid"
)

const invalidCredentials = "Invalid email or password"

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in domain.LoginRequest
	if err := decode(r, &in); err != nil {
		h.countLogin(loginInvalid)
		h.writeError(w, r, err)
		return
	}

	u, err := h.store.FindUserByEmail(ctx, in.Email)
	if errors.Is(err, store.ErrNotFound) {
		h.countLogin(loginFailure)
		h.writeMessage(w, r, http.StatusUnauthorized, invalidCredentials)
		return
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	match, err := h.hasher.Check(in.Password, u.PasswordHash)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if !match {
		h.countLogin(loginFailure)
		h.writeMessage(w, r, http.StatusUnauthorized, invalidCredentials)
		return
	}
	if u.Status != domain.AdminActive {
		h.countLogin(loginRejected)
		h.writeMessage(w, r, http.StatusForbidden, "account is "+u.Status)
		return
	}

	token, err := h.issuer.Issue(u.ID.String(), u.Email, u.Name, u.Role)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	stamp := h.now().Format("2006-01-02 15:04")
	if _, err := h.store.Users.Update(ctx, u.ID, func(rec *store.UserRecord) error {
		rec.LastLogin = stamp
		return nil
	}); err != nil {
		logger.L(ctx).Warn("failed to record last login", "user_id", u.ID.String(), "error", err)
	}

	h.countLogin(loginSuccess)
	logger.L(ctx).Info("admin logged in", "user_id", u.ID.String(), "role", u.Role)
	h.writeJSON(w, r, http.StatusOK, domain.LoginResponse{
		Token: token,
		User:  domain.User{Name: u.Name, Email: u.Email},
	})
}

func (h *Handler) countLogin(outcome string) {
	if h.metrics != nil {
		h.metrics.LoginAttempts.WithLabelValues(outcome).Inc()
	}
}

// AccountActive reports whether the account with id exists and is
// active. Tokens of suspended or deleted accounts stop working at once.
func (h *Handler) AccountActive(r *http.Request, id string) bool {
	u, err := h.store.Users.Get(r.Context(), domain.ID(id))
	return err == nil && u.Status == domain.AdminActive
}
