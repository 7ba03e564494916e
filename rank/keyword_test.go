package rank

import (
	"context"
	"testing"

	"github.com/rushteam/shopkit/core"
)

func testProducts() []*core.Product {
	return []*core.Product{
		{ID: "p1", Name: "Tablet Y", Brand: "Orbit", Category: "electronics", Description: "10 inch display"},
		{ID: "p2", Name: "Smartphone X", Brand: "Acme", Category: "electronics", Description: "flagship phone"},
		{ID: "p3", Name: "Espresso Maker", Brand: "Brew", Category: "kitchen", Description: "coffee at home"},
	}
}

func productIDs(products []*core.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestKeywordRanker_Rank(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "name match ranks first",
			query: "phone",
			want:  []string{"p2", "p1", "p3"}, // Smartphone X hits name+description
		},
		{
			name:  "brand match",
			query: "brew",
			want:  []string{"p3", "p1", "p2"},
		},
		{
			name:  "empty query is a no-op",
			query: "",
			want:  []string{"p1", "p2", "p3"},
		},
		{
			name:  "whitespace query is a no-op",
			query: "   ",
			want:  []string{"p1", "p2", "p3"},
		},
		{
			name:  "no match keeps original order",
			query: "zzz",
			want:  []string{"p1", "p2", "p3"},
		},
		{
			name:  "query is case-insensitive",
			query: "SMARTPHONE",
			want:  []string{"p2", "p1", "p3"},
		},
	}

	ranker := &KeywordRanker{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products := testProducts()
			got := productIDs(ranker.Rank(tt.query, products))

			if len(got) != len(tt.want) {
				t.Fatalf("Rank() = %v, want %v (ranker must never filter)", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("Rank()[%d] = %q, want %q (full order %v)", i, got[i], tt.want[i], got)
				}
			}

			// input must not be mutated
			if tt.query != "" {
				orig := productIDs(products)
				if orig[0] != "p1" || orig[1] != "p2" || orig[2] != "p3" {
					t.Errorf("input slice mutated: %v", orig)
				}
			}
		})
	}
}

func TestKeywordRanker_EmptyList(t *testing.T) {
	ranker := &KeywordRanker{}
	if got := ranker.Rank("phone", nil); len(got) != 0 {
		t.Errorf("Rank() on empty list = %v, want empty", got)
	}
}

func TestKeywordRanker_WholeQueryBonus(t *testing.T) {
	// token hits alone must not beat a whole-query substring hit on the same field
	ranker := &KeywordRanker{}
	exact := &core.Product{ID: "exact", Name: "red phone case"}
	scattered := &core.Product{ID: "scattered", Name: "phone with red buttons and case"}

	got := ranker.Rank("red phone", []*core.Product{scattered, exact})
	if got[0].ID != "exact" {
		t.Errorf("Rank()[0] = %q, want %q (whole-query bonus)", got[0].ID, "exact")
	}
}

func TestKeywordNode_Process(t *testing.T) {
	node := &KeywordNode{}
	items := []*core.Item{core.NewItem("p1"), core.NewItem("p2")}
	for i, p := range testProducts()[:2] {
		items[i].SetProduct(p)
	}

	rctx := &core.RecommendContext{
		UserID: "u1",
		Params: map[string]any{"query": "phone"},
	}
	out, err := node.Process(context.Background(), rctx, items)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("Process() dropped items: %d", len(out))
	}
	if out[0].ID != "p2" {
		t.Errorf("Process()[0] = %q, want p2 first for query 'phone'", out[0].ID)
	}

	// no query: untouched
	out, err = node.Process(context.Background(), &core.RecommendContext{}, items)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if out[0].ID != items[0].ID {
		t.Errorf("Process() without query must be a no-op")
	}
}
