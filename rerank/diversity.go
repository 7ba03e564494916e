package rerank

import (
	"context"

	"github.com/rushteam/shopkit/core"
	"github.com/rushteam/shopkit/pipeline"
)

// Diversity 是一个简单的多样性 ReRank：按类目去重（保留首个出现的类目）。
// 避免首页 feed 被单一类目（比如全是手机）刷屏。
// 类目来源优先级：
// - item.Meta 上挂载的 *Product 的 Category
// - label[LabelKey].Value
type Diversity struct {
	LabelKey string // 默认 "category"
}

func (n *Diversity) Name() string {
	return "rerank.diversity"
}

func (n *Diversity) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *Diversity) category(item *core.Item) string {
	if p := item.Product(); p != nil {
		return p.Category
	}
	key := n.LabelKey
	if key == "" {
		key = "category"
	}
	if lbl, ok := item.Labels[key]; ok {
		return lbl.Value
	}
	return ""
}

func (n *Diversity) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	seen := make(map[string]struct{}, len(items))
	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		cat := n.category(it)
		if cat == "" {
			// 无类目信息的商品不参与去重
			out = append(out, it)
			continue
		}
		if _, ok := seen[cat]; ok {
			continue
		}
		seen[cat] = struct{}{}
		out = append(out, it)
	}
	return out, nil
}
