package compose_test

import (
	"strings"
	"testing"

	"github.com/pychain/forge/domain/catalog"
	"github.com/pychain/forge/domain/compose"
	"github.com/pychain/forge/domain/contract"
)

var reg = catalog.Builtin()

func TestLinearize_PreservesSelectionOrder(t *testing.T) {
	plan, report, ok := compose.Linearize(reg, contract.Spec{
		ArchetypeID: "token",
		Modules:     []string{"pausable", "mintable", "ownable"},
	})
	if !ok {
		t.Fatal("expected plan for token archetype")
	}
	if !report.Clean() {
		t.Fatalf("unexpected report: %+v", report)
	}

	var ids []string
	for _, m := range plan.Modules {
		ids = append(ids, m.ID)
	}
	if strings.Join(ids, ",") != "pausable,mintable,ownable" {
		t.Errorf("plan order = %v, want selection order", ids)
	}
	if plan.Archetype.ID != "token" {
		t.Errorf("archetype = %q, want token", plan.Archetype.ID)
	}
}

func TestLinearize_SkipsDuplicates(t *testing.T) {
	plan, _, ok := compose.Linearize(reg, contract.Spec{
		ArchetypeID: "token",
		Modules:     []string{"mintable", "mintable", "pausable", "mintable"},
	})
	if !ok {
		t.Fatal("expected plan")
	}

	var ids []string
	for _, m := range plan.Modules {
		ids = append(ids, m.ID)
	}
	if strings.Join(ids, ",") != "mintable,pausable" {
		t.Errorf("plan order = %v, want [mintable pausable]", ids)
	}
}

func TestLinearize_ReportsUnknown(t *testing.T) {
	plan, report, ok := compose.Linearize(reg, contract.Spec{
		ArchetypeID: "token",
		Modules:     []string{"mintable", "hologram", "pausable"},
	})
	if !ok {
		t.Fatal("expected plan")
	}

	if len(report.UnknownModules) != 1 || report.UnknownModules[0] != "hologram" {
		t.Errorf("unknown = %v, want [hologram]", report.UnknownModules)
	}
	if plan.Has("hologram") {
		t.Error("unknown module must not enter the plan")
	}
	if !plan.Has("mintable") || !plan.Has("pausable") {
		t.Error("known modules must survive an unknown neighbor")
	}
}

func TestLinearize_ReportsIncompatible(t *testing.T) {
	// mintable does not compose with vault.
	plan, report, ok := compose.Linearize(reg, contract.Spec{
		ArchetypeID: "vault",
		Modules:     []string{"mintable", "reentrancyGuard"},
	})
	if !ok {
		t.Fatal("expected plan")
	}

	if len(report.IncompatibleModules) != 1 || report.IncompatibleModules[0] != "mintable" {
		t.Errorf("incompatible = %v, want [mintable]", report.IncompatibleModules)
	}
	if plan.Has("mintable") {
		t.Error("incompatible module must not enter the plan")
	}
	if !plan.Has("reentrancyGuard") {
		t.Error("compatible module missing from plan")
	}
}

func TestLinearize_UnknownArchetype(t *testing.T) {
	_, report, ok := compose.Linearize(reg, contract.Spec{
		ArchetypeID: "dao",
		Modules:     []string{"mintable", "hologram"},
	})
	if ok {
		t.Fatal("expected no plan for unknown archetype")
	}
	if len(report.UnknownModules) != 1 || report.UnknownModules[0] != "hologram" {
		t.Errorf("unknown = %v, want [hologram]", report.UnknownModules)
	}
}

func TestLinearize_NamespacesDistinct(t *testing.T) {
	plan, _, ok := compose.Linearize(reg, contract.Spec{
		ArchetypeID: "token",
		Modules:     []string{"ownable", "mintable", "burnable", "pausable", "reentrancyGuard"},
	})
	if !ok {
		t.Fatal("expected plan")
	}

	if len(plan.Namespaces) != len(plan.Modules) {
		t.Fatalf("namespace map size %d, want %d", len(plan.Namespaces), len(plan.Modules))
	}
	seen := make(map[string]string)
	for id, ns := range plan.Namespaces {
		if owner, dup := seen[ns]; dup {
			t.Errorf("namespace %q shared by %q and %q", ns, owner, id)
		}
		seen[ns] = id
	}
}

// Linearize derives a fresh plan per call; mutating one result must not
// affect another.
func TestLinearize_FreshPlanPerCall(t *testing.T) {
	spec := contract.Spec{ArchetypeID: "token", Modules: []string{"mintable"}}

	first, _, _ := compose.Linearize(reg, spec)
	first.Namespaces["mintable"] = "tampered"
	first.Modules[0].ID = "tampered"

	second, _, _ := compose.Linearize(reg, spec)
	if second.Namespaces["mintable"] != "mintable" {
		t.Error("plan namespaces shared between calls")
	}
	if second.Modules[0].ID != "mintable" {
		t.Error("plan modules shared between calls")
	}
}
