// Package version reports the fetchkit release in use. The HTTP adapter
// sends it in its default User-Agent and the tracer and meter carry it as
// their instrumentation version.
//
// Release builds pin it with -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/fetchkit/version.Version=v1.2.0"
package version
