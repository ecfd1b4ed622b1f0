// Package contract defines the input value types for the generation pipeline.
// A Spec is an immutable snapshot of the caller's selection; the pipeline never
// mutates it and derives a fresh composition plan on every invocation.
package contract

// Spec describes the contract to generate (value type).
type Spec struct {
	// ArchetypeID selects the base archetype (e.g. "token", "nft", "vault").
	ArchetypeID string

	// Parameters maps parameter name to its literal value (e.g. name, symbol).
	Parameters map[string]string

	// Modules lists selected module IDs in selection order. Order is
	// semantically significant: it determines initialization order and
	// method override precedence. Duplicates are not permitted; callers
	// build this list via selection.Toggle.
	Modules []string
}

// Parameter returns the named parameter value, or "" if absent.
func (s Spec) Parameter(name string) string {
	if s.Parameters == nil {
		return ""
	}
	return s.Parameters[name]
}

// Clone returns a deep copy of the spec.
func (s Spec) Clone() Spec {
	out := Spec{ArchetypeID: s.ArchetypeID}
	if s.Parameters != nil {
		out.Parameters = make(map[string]string, len(s.Parameters))
		for k, v := range s.Parameters {
			out.Parameters[k] = v
		}
	}
	if s.Modules != nil {
		out.Modules = append([]string(nil), s.Modules...)
	}
	return out
}
