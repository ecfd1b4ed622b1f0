package selection_test

import (
	"strings"
	"testing"

	"github.com/pychain/forge/domain/catalog"
	"github.com/pychain/forge/domain/selection"
)

var reg = catalog.Builtin()

func TestToggle(t *testing.T) {
	tests := []struct {
		name     string
		selected []string
		toggle   string
		want     []string
	}{
		{
			name:     "toggle on empty selection",
			selected: nil,
			toggle:   "mintable",
			want:     []string{"mintable"},
		},
		{
			name:     "toggle on appends at end",
			selected: []string{"mintable", "pausable"},
			toggle:   "burnable",
			want:     []string{"mintable", "pausable", "burnable"},
		},
		{
			name:     "toggle off removes preserving order",
			selected: []string{"mintable", "pausable", "burnable"},
			toggle:   "pausable",
			want:     []string{"mintable", "burnable"},
		},
		{
			name:     "ownable evicts accessControl",
			selected: []string{"mintable", "accessControl"},
			toggle:   "ownable",
			want:     []string{"mintable", "ownable"},
		},
		{
			name:     "accessControl evicts ownable",
			selected: []string{"ownable", "mintable"},
			toggle:   "accessControl",
			want:     []string{"mintable", "accessControl"},
		},
		{
			name:     "unknown id is a no-op",
			selected: []string{"mintable"},
			toggle:   "hologram",
			want:     []string{"mintable"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := selection.Toggle(reg, tt.selected, tt.toggle)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("Toggle = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToggle_DoesNotMutateInput(t *testing.T) {
	selected := []string{"accessControl", "mintable"}
	selection.Toggle(reg, selected, "ownable")

	if strings.Join(selected, ",") != "accessControl,mintable" {
		t.Errorf("input selection mutated: %v", selected)
	}
}

// Toggling two conflicting modules in either order must end with only the
// later one selected.
func TestToggle_ConflictSymmetric(t *testing.T) {
	ab := selection.Toggle(reg, selection.Toggle(reg, nil, "ownable"), "accessControl")
	ba := selection.Toggle(reg, selection.Toggle(reg, nil, "accessControl"), "ownable")

	if len(ab) != 1 || ab[0] != "accessControl" {
		t.Errorf("ownable then accessControl = %v, want [accessControl]", ab)
	}
	if len(ba) != 1 || ba[0] != "ownable" {
		t.Errorf("accessControl then ownable = %v, want [ownable]", ba)
	}
}

// Any selection reachable through Toggle keeps the conflict invariant.
func TestToggle_InvariantHolds(t *testing.T) {
	sequence := []string{
		"mintable", "ownable", "accessControl", "pausable",
		"ownable", "burnable", "accessControl", "mintable", "mintable",
	}

	var selected []string
	for _, id := range sequence {
		selected = selection.Toggle(reg, selected, id)
		if pairs := selection.FindConflicts(reg, selected); len(pairs) != 0 {
			t.Fatalf("after toggling %q: conflicts %v in %v", id, pairs, selected)
		}
	}
}

func TestFindConflicts(t *testing.T) {
	// Bulk-loaded selection bypassing the toggle contract.
	pairs := selection.FindConflicts(reg, []string{"ownable", "mintable", "accessControl"})

	if len(pairs) != 1 {
		t.Fatalf("got %d pairs, want 1", len(pairs))
	}
	if pairs[0].First != "ownable" || pairs[0].Second != "accessControl" {
		t.Errorf("pair = %+v, want ownable/accessControl", pairs[0])
	}
}

func TestFindConflicts_CleanSelection(t *testing.T) {
	if pairs := selection.FindConflicts(reg, []string{"ownable", "mintable", "pausable"}); len(pairs) != 0 {
		t.Errorf("unexpected conflicts: %v", pairs)
	}
}
