// Package shutdown runs registered cleanup hooks when the mock server is
// asked to stop, either by SIGINT/SIGTERM or by context cancellation.
//
// Usage:
//
//	h := shutdown.NewHandler(10 * time.Second)
//	h.OnShutdown("http", srv.Shutdown)
//	err := h.Wait(ctx)
package shutdown
