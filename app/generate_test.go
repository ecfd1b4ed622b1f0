package app_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pychain/forge/adapters/clock"
	"github.com/pychain/forge/adapters/idgen"
	"github.com/pychain/forge/adapters/memory"
	"github.com/pychain/forge/app"
	"github.com/pychain/forge/domain/catalog"
	"github.com/pychain/forge/domain/contract"
	"github.com/pychain/forge/domain/rules"
	"github.com/pychain/forge/ports"
)

var (
	reg      = catalog.Builtin()
	baseTime = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
)

func newService(store ports.GenerationStore) *app.GenerateService {
	return app.NewGenerateService(app.GenerateDeps{
		Registry: reg,
		Clock:    clock.NewFixed(baseTime),
		IDs:      idgen.NewSequential("gen_"),
		History:  store,
		Logger:   zerolog.Nop(),
	})
}

func TestGenerateAt_Deterministic(t *testing.T) {
	spec := contract.Spec{
		ArchetypeID: "token",
		Parameters:  map[string]string{"name": "MyToken", "symbol": "MTK"},
		Modules:     []string{"ownable", "mintable", "pausable"},
	}

	src1, diags1 := app.GenerateAt(reg, spec, baseTime)
	src2, diags2 := app.GenerateAt(reg, spec, baseTime)

	if src1 != src2 {
		t.Error("same spec and timestamp must produce identical source")
	}
	if len(diags1) != len(diags2) {
		t.Errorf("diagnostic count differs: %d vs %d", len(diags1), len(diags2))
	}
	if src1 == "" {
		t.Fatal("expected non-empty source")
	}
	if !strings.Contains(src1, "class MyToken(Ownable, Mintable, Pausable, Token):") {
		t.Errorf("unexpected class declaration:\n%s", src1)
	}
}

func TestGenerateAt_UnknownArchetype(t *testing.T) {
	spec := contract.Spec{
		ArchetypeID: "dao",
		Parameters:  map[string]string{"name": "X"},
		Modules:     []string{"hologram"},
	}

	src, diags := app.GenerateAt(reg, spec, baseTime)
	if src != "" {
		t.Errorf("unknown archetype must yield empty source, got:\n%s", src)
	}
	if len(diags) != 1 || diags[0].RuleID != rules.RuleUnknownModule {
		t.Errorf("diagnostics = %+v, want single C1", diags)
	}
}

func TestGenerateAt_ConfigBeforeRules(t *testing.T) {
	spec := contract.Spec{
		ArchetypeID: "token",
		Parameters:  map[string]string{"name": "X", "symbol": "X"},
		Modules:     []string{"hologram", "mintable"},
	}

	src, diags := app.GenerateAt(reg, spec, baseTime)
	if src == "" {
		t.Fatal("known archetype with a salvageable selection must still render")
	}
	if len(diags) != 2 {
		t.Fatalf("got %d diagnostics, want 2: %+v", len(diags), diags)
	}
	if diags[0].RuleID != rules.RuleUnknownModule {
		t.Errorf("first diagnostic = %s, want C1 before rule findings", diags[0].RuleID)
	}
	if diags[1].RuleID != rules.RuleMintWithoutAccess {
		t.Errorf("second diagnostic = %s, want R1", diags[1].RuleID)
	}
}

func TestGenerate_PersistsHistory(t *testing.T) {
	store := memory.NewGenerationStore()
	svc := newService(store)
	ctx := context.Background()

	spec := contract.Spec{
		ArchetypeID: "token",
		Parameters:  map[string]string{"name": "Coin", "symbol": "C"},
		Modules:     []string{"ownable", "mintable"},
	}

	res, err := svc.Generate(ctx, spec)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.ID != "gen_1" {
		t.Errorf("id = %q, want gen_1", res.ID)
	}
	if !res.CreatedAt.Equal(baseTime) {
		t.Errorf("created at = %v, want fixed clock time", res.CreatedAt)
	}

	rec, err := store.Get(ctx, "gen_1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.ContractName != "Coin" {
		t.Errorf("contract name = %q, want Coin", rec.ContractName)
	}
	if rec.Source != res.Source {
		t.Error("persisted source must match the result")
	}
	if strings.Join(rec.Modules, ",") != "ownable,mintable" {
		t.Errorf("persisted modules = %v", rec.Modules)
	}
}

func TestGenerate_EmptySourceNotPersisted(t *testing.T) {
	store := memory.NewGenerationStore()
	svc := newService(store)
	ctx := context.Background()

	// No name parameter: the empty state, not an error.
	res, err := svc.Generate(ctx, contract.Spec{ArchetypeID: "token"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Source != "" {
		t.Errorf("expected empty source, got:\n%s", res.Source)
	}

	recs, err := svc.History(ctx, 10)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("empty runs must not enter history, got %d records", len(recs))
	}
}

func TestGenerate_WithoutStore(t *testing.T) {
	svc := newService(nil)
	ctx := context.Background()

	spec := contract.Spec{
		ArchetypeID: "token",
		Parameters:  map[string]string{"name": "Coin", "symbol": "C"},
	}
	if _, err := svc.Generate(ctx, spec); err != nil {
		t.Fatalf("Generate without store: %v", err)
	}

	recs, err := svc.History(ctx, 10)
	if err != nil || recs != nil {
		t.Errorf("History without store = %v, %v; want nil, nil", recs, err)
	}
	if _, err := svc.GetGeneration(ctx, "gen_1"); err != ports.ErrNotFound {
		t.Errorf("GetGeneration without store = %v, want ErrNotFound", err)
	}
}

func TestHistory_NewestFirst(t *testing.T) {
	store := memory.NewGenerationStore()
	svc := newService(store)
	ctx := context.Background()

	for _, name := range []string{"First", "Second", "Third"} {
		spec := contract.Spec{
			ArchetypeID: "token",
			Parameters:  map[string]string{"name": name, "symbol": "X"},
		}
		if _, err := svc.Generate(ctx, spec); err != nil {
			t.Fatalf("Generate %s: %v", name, err)
		}
	}

	recs, err := svc.History(ctx, 2)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	if recs[0].ContractName != "Third" || recs[1].ContractName != "Second" {
		t.Errorf("order = %s, %s; want Third, Second", recs[0].ContractName, recs[1].ContractName)
	}
}
