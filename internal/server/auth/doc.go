// Package auth authenticates administrators of the mock backend.
//
// Passwords are stored as argon2id PHC strings. A successful login is
// answered with an HS256 JWT carrying the account id, email and role;
// the /admin routes accept nothing else.
package auth
