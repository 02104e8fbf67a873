// Package domain defines the records exchanged with the WildWave API.
//
// Entities are plain values: they carry no IO and no framework coupling.
// This package contains:
//
//   - ID: collection-scoped identifier accepting numeric or string JSON
//   - Catalog: destinations, safari packages and image sync results
//   - Operations: bookings, customers, payments, guides, vehicles
//   - Content: blogs, promotions, contact settings, enquiries
//   - Admin: admin users, login payloads and the dashboard summary
//   - Errors: coded domain errors and request validation
//
// Request payloads carry validate tags and are checked with Validate
// before they leave the process.
package domain
