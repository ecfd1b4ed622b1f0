package clock_test

import (
	"testing"
	"time"

	"github.com/pychain/forge/adapters/clock"
)

func TestReal(t *testing.T) {
	before := time.Now()
	got := clock.Real{}.Now()
	after := time.Now()

	if got.Before(before) || got.After(after) {
		t.Errorf("Real.Now() = %v outside [%v, %v]", got, before, after)
	}
}

func TestFixed(t *testing.T) {
	pinned := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	c := clock.NewFixed(pinned)

	if !c.Now().Equal(pinned) {
		t.Errorf("Fixed.Now() = %v, want %v", c.Now(), pinned)
	}
	if !c.Now().Equal(c.Now()) {
		t.Error("Fixed must return the same instant every call")
	}
}
