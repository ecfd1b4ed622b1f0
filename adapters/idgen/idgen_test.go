package idgen_test

import (
	"testing"

	"github.com/google/uuid"

	"github.com/pychain/forge/adapters/idgen"
)

func TestUUID(t *testing.T) {
	g := idgen.UUID{}

	a, b := g.New(), g.New()
	if a == b {
		t.Error("consecutive ids must differ")
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("not a valid uuid: %q", a)
	}
}

func TestSequential(t *testing.T) {
	g := idgen.NewSequential("gen_")

	if got := g.New(); got != "gen_1" {
		t.Errorf("first id = %q, want gen_1", got)
	}
	if got := g.New(); got != "gen_2" {
		t.Errorf("second id = %q, want gen_2", got)
	}
}
