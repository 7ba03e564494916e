// Package builders 在 init 中注册内置 Node 的配置构建器。
// 配置驱动的 Node 不持有存储句柄（YAML 中无法表达），
// 需要存储的 Node（recall.popular / recall.usercf 等）由代码组装后
// 通过 Sources/Filters 字段注入，或在构建后补齐。
package builders

import (
	"fmt"
	"time"

	"github.com/rushteam/shopkit/config"
	"github.com/rushteam/shopkit/filter"
	"github.com/rushteam/shopkit/pipeline"
	"github.com/rushteam/shopkit/pkg/conv"
	"github.com/rushteam/shopkit/rank"
	"github.com/rushteam/shopkit/recall"
	"github.com/rushteam/shopkit/rerank"
)

func init() {
	config.Register("recall.fanout", BuildFanoutNode)
	config.Register("recall.popular", BuildPopularNode)
	config.Register("recall.usercf", BuildUserCFNode)
	config.Register("rank.keyword", BuildKeywordNode)
	config.Register("filter", BuildFilterNode)
	config.Register("rerank.topn", BuildTopNNode)
	config.Register("rerank.diversity", BuildDiversityNode)
}

func BuildFanoutNode(cfg map[string]interface{}) (pipeline.Node, error) {
	sourcesConfig, ok := cfg["sources"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("sources not found or invalid")
	}
	sources := make([]recall.Source, 0, len(sourcesConfig))
	for _, sc := range sourcesConfig {
		sourceMap, ok := sc.(map[string]interface{})
		if !ok {
			continue
		}
		sourceType := conv.ConfigGet(sourceMap, "type", "")
		switch sourceType {
		case "popular":
			sources = append(sources, &recall.Popular{
				TopK: int(conv.ConfigGetInt64(sourceMap, "top_k", 0)),
			})
		case "usercf":
			sources = append(sources, &recall.UserCF{
				Neighbors:     int(conv.ConfigGetInt64(sourceMap, "neighbors", 0)),
				NeighborItems: int(conv.ConfigGetInt64(sourceMap, "neighbor_items", 0)),
				TopK:          int(conv.ConfigGetInt64(sourceMap, "top_k", 0)),
			})
		default:
			return nil, fmt.Errorf("unknown source type: %s", sourceType)
		}
	}
	fanout := &recall.Fanout{
		Sources:       sources,
		Dedup:         conv.ConfigGet(cfg, "dedup", true),
		MergeStrategy: conv.ConfigGet(cfg, "merge_strategy", ""),
	}
	if sec := conv.ConfigGetInt64(cfg, "timeout", 0); sec > 0 {
		fanout.Timeout = time.Duration(sec) * time.Second
	}
	if n := conv.ConfigGetInt64(cfg, "max_concurrent", 0); n > 0 {
		fanout.MaxConcurrent = int(n)
	}
	return fanout, nil
}

func BuildPopularNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &recall.Popular{
		TopK: int(conv.ConfigGetInt64(cfg, "top_k", 0)),
	}, nil
}

func BuildUserCFNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &recall.UserCF{
		Neighbors:     int(conv.ConfigGetInt64(cfg, "neighbors", 0)),
		NeighborItems: int(conv.ConfigGetInt64(cfg, "neighbor_items", 0)),
		TopK:          int(conv.ConfigGetInt64(cfg, "top_k", 0)),
	}, nil
}

func BuildKeywordNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rank.KeywordNode{}, nil
}

func BuildFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	filtersConfig, ok := cfg["filters"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}

	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]interface{})
		if !ok {
			continue
		}
		filterType := conv.ConfigGet(filterMap, "type", "")
		switch filterType {
		case "approved":
			filters = append(filters, &filter.ApprovedFilter{})

		case "interacted":
			filters = append(filters, &filter.InteractedFilter{})

		case "expr":
			filters = append(filters, &filter.ExprFilter{
				Expr: conv.ConfigGet(filterMap, "expr", ""),
			})

		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}

	return &filter.FilterNode{Filters: filters}, nil
}

func BuildTopNNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.TopNNode{
		N: int(conv.ConfigGetInt64(cfg, "n", 0)),
	}, nil
}

func BuildDiversityNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.Diversity{
		LabelKey: conv.ConfigGet(cfg, "label_key", "category"),
	}, nil
}
