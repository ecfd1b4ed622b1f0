// Package selection implements the module selection toggle contract.
// All functions are pure: they never mutate the input slice and return a
// fresh selection, so a caller can treat selections as immutable snapshots.
//
// The toggle contract is last-write-wins: switching a module on first
// deselects every currently-selected module it conflicts with, then appends
// the new module at the end. The effect is symmetric regardless of which of
// two conflicting modules was selected first, and it guarantees that a
// selection reachable through Toggle never contains a conflicting pair.
package selection

import "github.com/pychain/forge/domain/catalog"

// ConflictPair is a pair of jointly-selected modules that declare a mutual
// conflict. First/Second follow selection order.
type ConflictPair struct {
	First  string
	Second string
}

// Toggle flips the selected state of id and returns the new selection.
//
// Toggling on removes every selected module in the target's conflict set,
// then appends id (most recently selected last). Toggling off removes id and
// preserves the relative order of the remainder. Unknown ids are a no-op.
func Toggle(reg *catalog.Registry, selected []string, id string) []string {
	if Contains(selected, id) {
		return remove(selected, id)
	}

	mod, ok := reg.Get(id)
	if !ok {
		return append([]string(nil), selected...)
	}

	out := make([]string, 0, len(selected)+1)
	for _, s := range selected {
		if mod.HasConflict(s) {
			continue
		}
		out = append(out, s)
	}
	return append(out, id)
}

// FindConflicts returns every conflicting pair jointly present in selected.
// Selections built through Toggle never contain such pairs; a non-empty
// result signals a selection constructed elsewhere (e.g. bulk-loaded state)
// and is intended for diagnostic display only.
func FindConflicts(reg *catalog.Registry, selected []string) []ConflictPair {
	var pairs []ConflictPair
	for i, a := range selected {
		mod, ok := reg.Get(a)
		if !ok {
			continue
		}
		for _, b := range selected[i+1:] {
			if mod.HasConflict(b) {
				pairs = append(pairs, ConflictPair{First: a, Second: b})
			}
		}
	}
	return pairs
}

// Contains reports whether id is in selected.
func Contains(selected []string, id string) bool {
	for _, s := range selected {
		if s == id {
			return true
		}
	}
	return false
}

func remove(selected []string, id string) []string {
	out := make([]string, 0, len(selected))
	for _, s := range selected {
		if s != id {
			out = append(out, s)
		}
	}
	return out
}
