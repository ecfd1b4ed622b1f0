package catalog

import "fmt"

// Registry is the read-only catalog of archetypes and modules. Lookups are
// index-backed; list operations return catalog definition order.
type Registry struct {
	archetypes []Archetype
	modules    []Module

	archetypeByID map[string]int
	moduleByID    map[string]int
}

// NewRegistry builds a registry from descriptor tables. It rejects duplicate
// IDs, colliding storage namespaces, asymmetric conflict declarations, and
// compatibility references to unknown archetypes.
func NewRegistry(archetypes []Archetype, modules []Module) (*Registry, error) {
	r := &Registry{
		archetypes:    archetypes,
		modules:       modules,
		archetypeByID: make(map[string]int, len(archetypes)),
		moduleByID:    make(map[string]int, len(modules)),
	}

	for i, a := range archetypes {
		if a.ID == "" {
			return nil, fmt.Errorf("archetype %d: empty id", i)
		}
		if _, dup := r.archetypeByID[a.ID]; dup {
			return nil, fmt.Errorf("duplicate archetype id %q", a.ID)
		}
		r.archetypeByID[a.ID] = i
	}

	namespaces := make(map[string]string, len(modules))
	for i, m := range modules {
		if m.ID == "" {
			return nil, fmt.Errorf("module %d: empty id", i)
		}
		if _, dup := r.moduleByID[m.ID]; dup {
			return nil, fmt.Errorf("duplicate module id %q", m.ID)
		}
		if m.StorageNamespace == "" {
			return nil, fmt.Errorf("module %q: empty storage namespace", m.ID)
		}
		if owner, taken := namespaces[m.StorageNamespace]; taken {
			return nil, fmt.Errorf("module %q: storage namespace %q already claimed by %q",
				m.ID, m.StorageNamespace, owner)
		}
		namespaces[m.StorageNamespace] = m.ID
		r.moduleByID[m.ID] = i
	}

	// Validate cross-references after all IDs are indexed.
	for _, m := range modules {
		for _, c := range m.Conflicts {
			other, ok := r.Get(c)
			if !ok {
				return nil, fmt.Errorf("module %q: conflict with unknown module %q", m.ID, c)
			}
			if !other.HasConflict(m.ID) {
				return nil, fmt.Errorf("module %q: conflict with %q is not symmetric", m.ID, c)
			}
		}
		for _, a := range m.CompatibleArchetypes {
			if _, ok := r.archetypeByID[a]; !ok {
				return nil, fmt.Errorf("module %q: unknown compatible archetype %q", m.ID, a)
			}
		}
	}

	return r, nil
}

// MustNewRegistry is NewRegistry that panics on error. Used for the built-in
// catalog, where a build failure is a programming error.
func MustNewRegistry(archetypes []Archetype, modules []Module) *Registry {
	r, err := NewRegistry(archetypes, modules)
	if err != nil {
		panic(err)
	}
	return r
}

// Get returns the module descriptor for id.
func (r *Registry) Get(id string) (Module, bool) {
	i, ok := r.moduleByID[id]
	if !ok {
		return Module{}, false
	}
	return r.modules[i], true
}

// GetArchetype returns the archetype descriptor for id.
func (r *Registry) GetArchetype(id string) (Archetype, bool) {
	i, ok := r.archetypeByID[id]
	if !ok {
		return Archetype{}, false
	}
	return r.archetypes[i], true
}

// Modules returns all modules in catalog definition order.
func (r *Registry) Modules() []Module {
	return append([]Module(nil), r.modules...)
}

// Archetypes returns all archetypes in catalog definition order.
func (r *Registry) Archetypes() []Archetype {
	return append([]Archetype(nil), r.archetypes...)
}

// ListCompatible returns the modules compatible with the archetype, in
// catalog definition order. Unknown archetype IDs yield an empty list.
func (r *Registry) ListCompatible(archetypeID string) []Module {
	var out []Module
	for _, m := range r.modules {
		if m.SupportsArchetype(archetypeID) {
			out = append(out, m)
		}
	}
	return out
}
