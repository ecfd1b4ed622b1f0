// Package compose linearizes a module selection into a composition plan.
// The plan is the single source of truth for everything downstream: the
// emitter renders from it and the rule engine evaluates it. Linearization is
// pure and deterministic - a fresh plan is derived per call.
package compose

import (
	"github.com/pychain/forge/domain/catalog"
	"github.com/pychain/forge/domain/contract"
)

// Plan is the resolved, ordered, conflict-free composition (value type).
//
// Modules preserves selection order exactly; the archetype is logically last
// (lowest precedence, like a base class). The order fixes two downstream
// behaviors: constructor init calls run left to right after the base
// initializer, and when two modules contribute a method fragment with the
// same name, the module listed earlier wins.
type Plan struct {
	Archetype catalog.Archetype
	Modules   []catalog.Module

	// Namespaces maps module ID to its storage namespace. Values are
	// pairwise distinct; the registry enforces this at build time.
	Namespaces map[string]string
}

// Report describes selection entries the linearizer excluded from the plan.
// Excluded ids are not fatal (the plan is still produced) but each one is a
// configuration error the caller should surface as a critical diagnostic.
type Report struct {
	// UnknownModules lists selected ids absent from the registry.
	UnknownModules []string

	// IncompatibleModules lists known ids not compatible with the archetype.
	IncompatibleModules []string
}

// Clean reports whether nothing was excluded.
func (r Report) Clean() bool {
	return len(r.UnknownModules) == 0 && len(r.IncompatibleModules) == 0
}

// Linearize builds the composition plan for a spec.
//
// The returned bool is false when the archetype id is unknown or empty; in
// that case the plan is the zero value and only the report is meaningful.
// Selected modules enter the plan in selection order, skipping duplicates,
// unknown ids, and modules incompatible with the archetype.
func Linearize(reg *catalog.Registry, spec contract.Spec) (Plan, Report, bool) {
	var report Report

	arch, ok := reg.GetArchetype(spec.ArchetypeID)
	if !ok {
		for _, id := range spec.Modules {
			if _, known := reg.Get(id); !known {
				report.UnknownModules = append(report.UnknownModules, id)
			}
		}
		return Plan{}, report, false
	}

	plan := Plan{
		Archetype:  arch,
		Namespaces: make(map[string]string, len(spec.Modules)),
	}

	seen := make(map[string]bool, len(spec.Modules))
	for _, id := range spec.Modules {
		if seen[id] {
			continue
		}
		seen[id] = true

		mod, known := reg.Get(id)
		if !known {
			report.UnknownModules = append(report.UnknownModules, id)
			continue
		}
		if !mod.SupportsArchetype(arch.ID) {
			report.IncompatibleModules = append(report.IncompatibleModules, id)
			continue
		}

		plan.Modules = append(plan.Modules, mod)
		plan.Namespaces[id] = mod.StorageNamespace
	}

	return plan, report, true
}

// Has reports whether the plan contains the module id.
func (p Plan) Has(id string) bool {
	for _, m := range p.Modules {
		if m.ID == id {
			return true
		}
	}
	return false
}

// HasCategory reports whether any planned module has the category.
func (p Plan) HasCategory(c catalog.Category) bool {
	for _, m := range p.Modules {
		if m.Category == c {
			return true
		}
	}
	return false
}
