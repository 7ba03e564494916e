package rerank

import (
	"context"
	"testing"

	"github.com/rushteam/shopkit/core"
	"github.com/rushteam/shopkit/pkg/utils"
)

func ids(items []*core.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestTopNNode(t *testing.T) {
	items := []*core.Item{core.NewItem("a"), core.NewItem("b"), core.NewItem("c")}

	tests := []struct {
		name string
		n    int
		want int
	}{
		{"truncates", 2, 2},
		{"larger than input", 10, 3},
		{"zero keeps all", 0, 3},
		{"negative keeps all", -1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := &TopNNode{N: tt.n}
			out, err := node.Process(context.Background(), nil, items)
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			if len(out) != tt.want {
				t.Errorf("Process() kept %d items, want %d", len(out), tt.want)
			}
			// order preserved
			for i, it := range out {
				if it.ID != items[i].ID {
					t.Errorf("Process()[%d] = %s, want %s", i, it.ID, items[i].ID)
				}
			}
		})
	}
}

func TestDiversity(t *testing.T) {
	withCategory := func(id, cat string) *core.Item {
		it := core.NewItem(id)
		it.SetProduct(&core.Product{ID: id, Category: cat})
		return it
	}
	withLabel := func(id, cat string) *core.Item {
		it := core.NewItem(id)
		it.PutLabel("category", utils.Label{Value: cat, Source: "test"})
		return it
	}

	node := &Diversity{}
	items := []*core.Item{
		withCategory("a", "electronics"),
		withCategory("b", "electronics"), // dup category, dropped
		withLabel("c", "kitchen"),        // category from label
		withLabel("d", "kitchen"),        // dup via label, dropped
		core.NewItem("e"),                // no category, always kept
		core.NewItem("f"),                // no category, always kept
	}
	out, err := node.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	want := []string{"a", "c", "e", "f"}
	got := ids(out)
	if len(got) != len(want) {
		t.Fatalf("Process() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Process()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
