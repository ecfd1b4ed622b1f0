package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/pychain/forge/adapters/memory"
	"github.com/pychain/forge/domain/generation"
	"github.com/pychain/forge/ports"
)

func TestGenerationStore(t *testing.T) {
	store := memory.NewGenerationStore()
	ctx := context.Background()
	now := time.Now().UTC()

	for _, id := range []string{"gen_1", "gen_2", "gen_3"} {
		err := store.Save(ctx, generation.Record{ID: id, ArchetypeID: "token", CreatedAt: now})
		if err != nil {
			t.Fatalf("Save %s: %v", id, err)
		}
	}

	got, err := store.Get(ctx, "gen_2")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != "gen_2" {
		t.Errorf("id = %q", got.ID)
	}

	if _, err := store.Get(ctx, "missing"); err != ports.ErrNotFound {
		t.Errorf("missing err = %v, want ErrNotFound", err)
	}

	recs, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 2 || recs[0].ID != "gen_3" || recs[1].ID != "gen_2" {
		t.Errorf("list = %+v, want newest first", recs)
	}

	all, _ := store.List(ctx, 0)
	if len(all) != 3 {
		t.Errorf("limit 0 must return all, got %d", len(all))
	}
}
