// Package exitcode maps rclone exit statuses onto a fixed error taxonomy,
// and implements the suppression policy that lets callers downgrade chosen
// kinds from fatal errors to warnings.
package exitcode

import (
	"fmt"
	"strings"
)

// Kind classifies an rclone exit status.
type Kind int

// The rclone exit status contract. Codes 1 through 8 have fixed meanings;
// every other nonzero status is KindUnknown.
const (
	// KindNone is a clean exit (status 0).
	KindNone Kind = iota
	// KindSyntax is a syntax or usage error (status 1).
	KindSyntax
	// KindUncategorized is an error not otherwise categorized (status 2).
	KindUncategorized
	// KindDirNotFound means a directory was not found (status 3).
	KindDirNotFound
	// KindFileNotFound means a file was not found (status 4).
	KindFileNotFound
	// KindTemporary is a temporary error; retrying may fix it (status 5).
	KindTemporary
	// KindNoRetry is a less serious error that retrying will not fix (status 6).
	KindNoRetry
	// KindFatal is a fatal error (status 7).
	KindFatal
	// KindTransferLimit means the transfer limit was exceeded (status 8).
	KindTransferLimit
	// KindUnknown covers every other nonzero exit status.
	KindUnknown
)

// Classify maps a raw exit status to its Kind.
func Classify(status int) Kind {
	if status >= 0 && status <= 8 {
		// The Kind constants are declared in status order.
		return Kind(status)
	}
	return KindUnknown
}

var names = [...]string{
	KindNone:          "none",
	KindSyntax:        "syntax",
	KindUncategorized: "uncategorized",
	KindDirNotFound:   "dir-not-found",
	KindFileNotFound:  "file-not-found",
	KindTemporary:     "temporary",
	KindNoRetry:       "no-retry",
	KindFatal:         "fatal",
	KindTransferLimit: "transfer-limit",
	KindUnknown:       "unknown",
}

// String returns the kind's identifier, the form accepted by SuppressSet.
func (k Kind) String() string {
	if k < KindNone || k > KindUnknown {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return names[k]
}

// MarshalText renders the identifier, so a Kind serializes as a readable
// string rather than a bare integer.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// SuppressSet holds the error kinds a caller wants downgraded from fatal to
// warning. Matching is case-insensitive on the Kind identifier.
type SuppressSet map[string]struct{}

// NewSuppressSet builds a set from kind identifiers.
func NewSuppressSet(ids ...string) SuppressSet {
	s := make(SuppressSet, len(ids))
	for _, id := range ids {
		s[strings.ToLower(id)] = struct{}{}
	}
	return s
}

// Has reports whether k is in the set.
func (s SuppressSet) Has(k Kind) bool {
	_, ok := s[k.String()]
	return ok
}
