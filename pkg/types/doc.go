// Package types defines the interfaces shared across hdrstrip packages.
// The FS interface lets the rewriter run against the real filesystem or an
// in-memory one in tests.
package types
