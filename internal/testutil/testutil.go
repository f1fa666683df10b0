// internal/testutil/testutil.go
package testutil

import (
	"testing"
	"time"
)

const (
	// DefaultMaxFuzzBytes caps fuzz inputs well above the maximum proof
	// size so oversize handling is still exercised without unbounded
	// corpus growth.
	DefaultMaxFuzzBytes = 1 << 15
	DefaultFuzzTimeout  = 100 * time.Millisecond
)

func CapBytes(b []byte, max int) []byte {
	if max <= 0 {
		return b
	}
	if len(b) > max {
		return b[:max]
	}
	return b
}

// WithTimeout fails the test if fn does not return within d. Verification is
// a bounded computation; a hang on fuzz input is itself a bug.
func WithTimeout(t testing.TB, d time.Duration, fn func()) {
	t.Helper()
	if d <= 0 {
		d = DefaultFuzzTimeout
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	select {
	case <-done:
	case <-time.After(d):
		t.Fatalf("timeout after %s", d)
	}
}
