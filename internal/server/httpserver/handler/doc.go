// Package handler implements the WildWave REST endpoints of the mock
// backend.
//
// Handlers are grouped by area:
//
//   - auth.go: login
//   - dashboard.go: dashboard aggregates
//   - operations.go: bookings, customers, payments, guides, vehicles
//   - catalog.go: destinations, safari packages, image sync
//   - content.go: blogs, promotions, enquiries, contact settings
//   - admins.go: admin accounts
//   - public.go: the unauthenticated public site endpoints
//   - health.go: liveness
//
// Every handler follows the same pattern: decode, validate with the
// domain tags, touch the store, reply. Successful replies are bare JSON;
// failures are {"message": "..."} with a matching status code.
package handler
