// Package buildinfo exposes version information stamped into the ota binary.
//
// Release builds inject values via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/ota-go/internal/infra/buildinfo.Version=v0.4.0 \
//	  -X github.com/yndnr/ota-go/internal/infra/buildinfo.Commit=abc123" ./cmd/ota
//
// Development builds fall back to the module version and VCS revision
// recorded by the Go toolchain.
package buildinfo
