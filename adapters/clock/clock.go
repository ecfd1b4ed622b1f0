// Package clock provides Clock implementations.
package clock

import (
	"time"

	"github.com/pychain/forge/ports"
)

// Real returns the actual current time.
type Real struct{}

// Now returns the current time.
func (Real) Now() time.Time {
	return time.Now()
}

// Fixed is a clock pinned to a single instant, for deterministic output in
// tests and the CLI's --timestamp flag.
type Fixed struct {
	t time.Time
}

// NewFixed creates a clock pinned to t.
func NewFixed(t time.Time) Fixed {
	return Fixed{t: t}
}

// Now returns the pinned time.
func (f Fixed) Now() time.Time {
	return f.t
}

// Ensure interface compliance.
var (
	_ ports.Clock = Real{}
	_ ports.Clock = Fixed{}
)
