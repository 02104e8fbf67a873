package store

import (
	"context"
	"strings"

	"github.com/wildwave/safari-admin/internal/core/domain"
)

// UserRecord is a stored admin account. Only the embedded AdminUser is
// ever sent to clients.
type UserRecord struct {
	domain.AdminUser
	PasswordHash string `json:"passwordHash"`
}

// FindUserByEmail returns the account with email, compared without case.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (UserRecord, error) {
	users, err := s.Users.List(ctx)
	if err != nil {
		return UserRecord{}, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return UserRecord{}, ErrNotFound
}

// Admins returns every account without password hashes.
func (s *Store) Admins(ctx context.Context) ([]domain.AdminUser, error) {
	users, err := s.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.AdminUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.AdminUser)
	}
	return out, nil
}
