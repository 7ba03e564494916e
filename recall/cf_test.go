package recall

import (
	"context"
	"testing"

	"github.com/rushteam/shopkit/catalog"
	"github.com/rushteam/shopkit/core"
	"github.com/rushteam/shopkit/interaction"
	"github.com/rushteam/shopkit/matrix"
	"github.com/rushteam/shopkit/store"
)

type cfFixture struct {
	interactions *interaction.Store
	adapter      *catalog.StoreAdapter
	cleanup      func()
}

func newCFFixture(t *testing.T, products []*core.Product) *cfFixture {
	t.Helper()
	mem := store.NewMemoryStore()
	adapter := catalog.NewStoreAdapter(mem, "catalog")
	if err := catalog.SeedProducts(context.Background(), adapter, products); err != nil {
		t.Fatalf("SeedProducts() error = %v", err)
	}
	return &cfFixture{
		interactions: interaction.NewStore(mem, "interaction"),
		adapter:      adapter,
		cleanup:      func() { mem.Close() },
	}
}

func (f *cfFixture) userCF(fallback Source) *UserCF {
	return &UserCF{
		Matrix:   &matrix.Builder{Interactions: f.interactions},
		Catalog:  f.adapter,
		Fallback: fallback,
	}
}

// stubSource is a canned fallback to make delegation observable.
type stubSource struct{ ids []string }

func (s *stubSource) Name() string { return "recall.stub" }
func (s *stubSource) Recall(_ context.Context, _ *core.RecommendContext) ([]*core.Item, error) {
	out := make([]*core.Item, 0, len(s.ids))
	for _, id := range s.ids {
		out = append(out, core.NewItem(id))
	}
	return out, nil
}

func TestUserCF_FallbackPaths(t *testing.T) {
	fallback := &stubSource{ids: []string{"hot1", "hot2"}}

	t.Run("empty interaction store", func(t *testing.T) {
		f := newCFFixture(t, approvedProducts("p1"))
		defer f.cleanup()

		items, err := f.userCF(fallback).Recall(context.Background(), &core.RecommendContext{UserID: "u1"})
		if err != nil {
			t.Fatalf("Recall() error = %v", err)
		}
		got := itemIDs(items)
		if len(got) != 2 || got[0] != "hot1" || got[1] != "hot2" {
			t.Errorf("Recall() = %v, want fallback result [hot1 hot2]", got)
		}
	})

	t.Run("cold-start user", func(t *testing.T) {
		f := newCFFixture(t, approvedProducts("p1"))
		defer f.cleanup()
		ctx := context.Background()
		_ = f.interactions.RecordPurchase(ctx, "someone-else", "p1")

		items, err := f.userCF(fallback).Recall(ctx, &core.RecommendContext{UserID: "newcomer"})
		if err != nil {
			t.Fatalf("Recall() error = %v", err)
		}
		if got := itemIDs(items); len(got) != 2 || got[0] != "hot1" {
			t.Errorf("Recall() = %v, want fallback result", got)
		}
	})

	t.Run("matrix over ceiling", func(t *testing.T) {
		f := newCFFixture(t, approvedProducts("p1", "p2"))
		defer f.cleanup()
		ctx := context.Background()
		_ = f.interactions.RecordPurchase(ctx, "u1", "p1")
		_ = f.interactions.RecordPurchase(ctx, "u2", "p2")

		cf := f.userCF(fallback)
		cf.Matrix.MaxCells = 1 // 2x2 = 4 > 1
		items, err := cf.Recall(ctx, &core.RecommendContext{UserID: "u1"})
		if err != nil {
			t.Fatalf("Recall() error = %v", err)
		}
		if got := itemIDs(items); len(got) != 2 || got[0] != "hot1" {
			t.Errorf("Recall() = %v, want fallback result", got)
		}
	})

	t.Run("missing user id", func(t *testing.T) {
		f := newCFFixture(t, nil)
		defer f.cleanup()

		items, err := f.userCF(fallback).Recall(context.Background(), &core.RecommendContext{})
		if err != nil {
			t.Fatalf("Recall() error = %v", err)
		}
		if got := itemIDs(items); len(got) != 2 {
			t.Errorf("Recall() = %v, want fallback result", got)
		}
	})
}

func TestUserCF_BorrowsFromNearestNeighbor(t *testing.T) {
	// A and B both purchased p1; A additionally purchased p2.
	// B's nearest neighbor is A, so B gets p2 and never p1 again.
	f := newCFFixture(t, approvedProducts("p1", "p2"))
	defer f.cleanup()
	ctx := context.Background()

	_ = f.interactions.RecordPurchase(ctx, "A", "p1")
	_ = f.interactions.RecordPurchase(ctx, "A", "p2")
	_ = f.interactions.RecordPurchase(ctx, "B", "p1")

	items, err := f.userCF(nil).Recall(ctx, &core.RecommendContext{UserID: "B"})
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}

	got := itemIDs(items)
	foundP2 := false
	for _, id := range got {
		if id == "p1" {
			t.Errorf("Recall() = %v, must not re-recommend already purchased p1", got)
		}
		if id == "p2" {
			foundP2 = true
		}
	}
	if !foundP2 {
		t.Errorf("Recall() = %v, want p2 borrowed from neighbor A", got)
	}
}

func TestUserCF_NeverRecommendsInteracted(t *testing.T) {
	f := newCFFixture(t, approvedProducts("p1", "p2", "p3", "p4"))
	defer f.cleanup()
	ctx := context.Background()

	// target has signal on p1 (view) and p2 (purchase)
	_ = f.interactions.RecordView(ctx, "target", "p1")
	_ = f.interactions.RecordPurchase(ctx, "target", "p2")
	// neighbors cover everything
	_ = f.interactions.RecordPurchase(ctx, "n1", "p1")
	_ = f.interactions.RecordPurchase(ctx, "n1", "p2")
	_ = f.interactions.RecordPurchase(ctx, "n1", "p3")
	_ = f.interactions.RecordPurchase(ctx, "n2", "p2")
	_ = f.interactions.RecordPurchase(ctx, "n2", "p4")

	items, err := f.userCF(nil).Recall(ctx, &core.RecommendContext{UserID: "target"})
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}

	rows, _ := f.interactions.GetUserInteractions(ctx, "target")
	for _, it := range items {
		if row, ok := rows[it.ID]; ok && row.Weight() > 0 {
			t.Errorf("recommended %q which target already interacted with (weight %v)", it.ID, row.Weight())
		}
	}
}

func TestUserCF_DeletedProductSkipped(t *testing.T) {
	// p2 is recommended by the neighbor but has no catalog record
	f := newCFFixture(t, approvedProducts("p1", "p3"))
	defer f.cleanup()
	ctx := context.Background()

	_ = f.interactions.RecordPurchase(ctx, "A", "p1")
	_ = f.interactions.RecordPurchase(ctx, "A", "p2")
	_ = f.interactions.RecordPurchase(ctx, "A", "p3")
	_ = f.interactions.RecordPurchase(ctx, "B", "p1")

	items, err := f.userCF(nil).Recall(ctx, &core.RecommendContext{UserID: "B"})
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	for _, it := range items {
		if it.ID == "p2" {
			t.Errorf("deleted product p2 must be skipped, got %v", itemIDs(items))
		}
	}
}
