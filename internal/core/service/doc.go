// Package service holds the console's application state.
//
// SessionStore owns authentication state, the logged-in user and the two
// UI preferences (dark mode, collapsed sidebar). It is constructed
// explicitly by the caller and hydrated from durable storage; the API
// client's token is the single source of truth for IsAuthenticated.
package service
