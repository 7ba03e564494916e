package recall

import (
	"context"
	"testing"
	"time"

	"github.com/rushteam/shopkit/core"
)

// namedSource is a fixed-result Source with a configurable delay.
type namedSource struct {
	name  string
	ids   []string
	delay time.Duration
}

func (s *namedSource) Name() string { return s.name }

func (s *namedSource) Recall(ctx context.Context, _ *core.RecommendContext) ([]*core.Item, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	out := make([]*core.Item, 0, len(s.ids))
	for _, id := range s.ids {
		out = append(out, core.NewItem(id))
	}
	return out, nil
}

func TestFanout_MergeByPriority(t *testing.T) {
	node := &Fanout{
		Sources: []Source{
			&namedSource{name: "personal", ids: []string{"p1", "p2"}},
			&namedSource{name: "popular", ids: []string{"p2", "p3"}},
		},
		Dedup:         true,
		MergeStrategy: "priority",
	}

	out, err := node.Process(context.Background(), &core.RecommendContext{UserID: "u"}, nil)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	got := itemIDs(out)
	if len(got) != 3 {
		t.Fatalf("Process() = %v, want 3 unique items", got)
	}
	byID := make(map[string]*core.Item, len(out))
	for _, it := range out {
		byID[it.ID] = it
	}
	// the duplicate p2 must come from the higher-priority personal source
	if lbl := byID["p2"].Labels["recall_source"]; lbl.Value != "personal" {
		t.Errorf("p2 recall_source = %q, want personal", lbl.Value)
	}
}

func TestFanout_MergeFirstDedup(t *testing.T) {
	node := &Fanout{
		Sources: []Source{
			&namedSource{name: "a", ids: []string{"x", "y"}},
		},
		Dedup: true,
	}
	out, err := node.Process(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 2 {
		t.Errorf("Process() = %v, want 2 items", itemIDs(out))
	}
}

func TestFanout_TimeoutDropsSlowSource(t *testing.T) {
	node := &Fanout{
		Sources: []Source{
			&namedSource{name: "fast", ids: []string{"f"}},
			&namedSource{name: "slow", ids: []string{"s"}, delay: 500 * time.Millisecond},
		},
		Dedup:   true,
		Timeout: 20 * time.Millisecond,
	}
	out, err := node.Process(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	got := itemIDs(out)
	if len(got) != 1 || got[0] != "f" {
		t.Errorf("Process() = %v, want only the fast source's item", got)
	}
}

func TestFanout_NoSources(t *testing.T) {
	node := &Fanout{}
	out, err := node.Process(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 0 {
		t.Errorf("Process() = %v, want empty", itemIDs(out))
	}
}
