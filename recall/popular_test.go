package recall

import (
	"context"
	"testing"

	"github.com/rushteam/shopkit/catalog"
	"github.com/rushteam/shopkit/core"
	"github.com/rushteam/shopkit/store"
)

func newCatalog(t *testing.T, products []*core.Product, purchases map[string]int64, ratings map[string]float64) (*catalog.StoreAdapter, func()) {
	t.Helper()
	mem := store.NewMemoryStore()
	adapter := catalog.NewStoreAdapter(mem, "test")
	ctx := context.Background()
	if err := catalog.SeedProducts(ctx, adapter, products); err != nil {
		t.Fatalf("SeedProducts() error = %v", err)
	}
	if purchases != nil {
		if err := catalog.SeedPurchases(ctx, adapter, purchases); err != nil {
			t.Fatalf("SeedPurchases() error = %v", err)
		}
	}
	if ratings != nil {
		if err := catalog.SeedRatings(ctx, adapter, ratings); err != nil {
			t.Fatalf("SeedRatings() error = %v", err)
		}
	}
	return adapter, func() { mem.Close() }
}

func approvedProducts(ids ...string) []*core.Product {
	out := make([]*core.Product, 0, len(ids))
	for _, id := range ids {
		out = append(out, &core.Product{ID: id, Name: "product " + id, Status: core.ProductStatusApproved})
	}
	return out
}

func itemIDs(items []*core.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestPopular_Recall(t *testing.T) {
	tests := []struct {
		name      string
		products  []*core.Product
		purchases map[string]int64
		ratings   map[string]float64
		topK      int
		want      []string
	}{
		{
			name:      "purchase list comes first, rating list appended",
			products:  approvedProducts("p1", "p2", "p3", "p4"),
			purchases: map[string]int64{"p1": 10, "p2": 5},
			ratings:   map[string]float64{"p3": 4.9, "p4": 4.2},
			topK:      10,
			want:      []string{"p1", "p2", "p3", "p4"},
		},
		{
			name:      "product in both lists keeps purchase position",
			products:  approvedProducts("p1", "p2", "p3"),
			purchases: map[string]int64{"p1": 3, "p2": 9},
			ratings:   map[string]float64{"p1": 5.0, "p3": 4.0},
			topK:      10,
			want:      []string{"p2", "p1", "p3"},
		},
		{
			name:      "truncated to topK",
			products:  approvedProducts("p1", "p2", "p3"),
			purchases: map[string]int64{"p1": 3, "p2": 2, "p3": 1},
			topK:      2,
			want:      []string{"p1", "p2"},
		},
		{
			name:      "deleted product skipped silently",
			products:  approvedProducts("p1", "p3"),
			purchases: map[string]int64{"p1": 5, "p2": 4, "p3": 3}, // p2 has no catalog record
			topK:      10,
			want:      []string{"p1", "p3"},
		},
		{
			name:     "empty store yields empty result",
			products: nil,
			topK:     5,
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter, cleanup := newCatalog(t, tt.products, tt.purchases, tt.ratings)
			defer cleanup()

			r := &Popular{Orders: adapter, Reviews: adapter, Catalog: adapter, TopK: tt.topK}
			items, err := r.Recall(context.Background(), nil)
			if err != nil {
				t.Fatalf("Recall() error = %v", err)
			}

			got := itemIDs(items)
			if len(got) != len(tt.want) {
				t.Fatalf("Recall() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("Recall()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}

			// no duplicates
			seen := make(map[string]struct{})
			for _, id := range got {
				if _, dup := seen[id]; dup {
					t.Errorf("duplicate product %q in result", id)
				}
				seen[id] = struct{}{}
			}
		})
	}
}
