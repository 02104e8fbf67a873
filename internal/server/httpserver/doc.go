// Package httpserver serves the WildWave stub backend over HTTP.
//
// Every endpoint of the handler package is mounted under a configurable
// base path, by default /api:
//
//   - /auth/login: password login returning a signed session token
//   - /admin/*: back-office endpoints behind bearer token auth
//   - /public/*: the public site reads and submissions
//   - /health: liveness
//
// GET /metrics serves Prometheus metrics outside the base path.
//
// Each request passes RequestID, Recover, Audit, Metrics, CORS and a
// per-IP RateLimit. Admin routes add Auth, which also rejects tokens of
// accounts that have since been suspended or blocked.
package httpserver
