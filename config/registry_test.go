package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rushteam/shopkit/config"
	_ "github.com/rushteam/shopkit/config/builders"
	"github.com/rushteam/shopkit/pipeline"
)

const homeFeedYAML = `
pipeline:
  name: home_feed
  nodes:
    - type: recall.fanout
      config:
        merge_strategy: priority
        dedup: true
        sources:
          - type: usercf
            neighbors: 3
            neighbor_items: 5
          - type: popular
            top_k: 20
    - type: filter
      config:
        filters:
          - type: approved
          - type: expr
            expr: 'label.category == "tobacco"'
    - type: rerank.diversity
      config:
        label_key: category
    - type: rerank.topn
      config:
        n: 8
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestBuildPipelineFromYAML(t *testing.T) {
	cfg, err := pipeline.LoadFromYAML(writeConfig(t, homeFeedYAML))
	if err != nil {
		t.Fatalf("LoadFromYAML() error = %v", err)
	}
	if cfg.Pipeline.Name != "home_feed" {
		t.Errorf("pipeline name = %q, want home_feed", cfg.Pipeline.Name)
	}
	if err := config.ValidatePipelineConfig(cfg); err != nil {
		t.Fatalf("ValidatePipelineConfig() error = %v", err)
	}

	p, err := cfg.BuildPipeline(config.DefaultFactory())
	if err != nil {
		t.Fatalf("BuildPipeline() error = %v", err)
	}
	if len(p.Nodes) != 4 {
		t.Fatalf("built %d nodes, want 4", len(p.Nodes))
	}

	wantKinds := []pipeline.Kind{
		pipeline.KindRecall,
		pipeline.KindFilter,
		pipeline.KindReRank,
		pipeline.KindReRank,
	}
	for i, node := range p.Nodes {
		if node.Kind() != wantKinds[i] {
			t.Errorf("node[%d] %s kind = %v, want %v", i, node.Name(), node.Kind(), wantKinds[i])
		}
	}
}

func TestValidatePipelineConfig_UnknownType(t *testing.T) {
	cfg := &pipeline.Config{}
	cfg.Pipeline.Nodes = []pipeline.NodeConfig{{Type: "recall.bm25"}}

	if err := config.ValidatePipelineConfig(cfg); err == nil {
		t.Fatal("ValidatePipelineConfig() = nil, want error for unregistered type")
	}
}

func TestSupportedTypes(t *testing.T) {
	types := config.SupportedTypes()
	want := map[string]bool{
		"recall.fanout": false, "recall.popular": false, "recall.usercf": false,
		"rank.keyword": false, "filter": false,
		"rerank.topn": false, "rerank.diversity": false,
	}
	for _, typ := range types {
		if _, ok := want[typ]; ok {
			want[typ] = true
		}
	}
	for typ, seen := range want {
		if !seen {
			t.Errorf("SupportedTypes() missing %q (got %v)", typ, types)
		}
	}
}
