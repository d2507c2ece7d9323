// Package version reports build metadata for the gladiaflow binary.
//
// Values are stamped at link time, falling back to the module's VCS
// build settings:
//
//	go build -ldflags "-X github.com/kbukum/gladiaflow/version.Version=1.2.0" ./cmd/gladiaflow
package version
