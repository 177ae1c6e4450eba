// Package dns wraps DNS resolution behind a small Resolver interface so the
// lookup pipeline can run against a configurable server in production and a
// mock in tests. Lookups are plain insecure queries; unsigned zones are the
// norm for the records this tool cares about.
package dns

import (
	"context"
	"errors"
	"net"
)

var (
	// ErrNotFound indicates the name does not exist (NXDOMAIN) or has no
	// records of the requested type.
	ErrNotFound = errors.New("dns: record not found")

	// ErrTimeout indicates the query timed out.
	ErrTimeout = errors.New("dns: query timed out")

	// ErrServFail indicates the server returned SERVFAIL or an equivalent
	// temporary failure.
	ErrServFail = errors.New("dns: server failure")

	// ErrRefused indicates the server refused the query.
	ErrRefused = errors.New("dns: query refused")
)

// Resolver performs the record lookups the report pipeline needs.
type Resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupTXT(ctx context.Context, name string) ([]string, error)
}

// IsNotFound reports whether err means the records simply do not exist,
// as opposed to a transport or server problem.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsTemporary reports whether the lookup may succeed if retried later.
func IsTemporary(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrServFail)
}
