// Package buildinfo exposes the version stamped into the wildwave binaries.
//
// Values are injected at link time:
//
//	go build -ldflags "-X github.com/wildwave/safari-admin/internal/infra/buildinfo.Version=v1.2.0"
//
// Commit falls back to the VCS revision recorded by the Go toolchain when
// it is not set explicitly.
package buildinfo
