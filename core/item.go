package core

import "github.com/rushteam/shopkit/pkg/utils"

// Item 是推荐链路中的统一承载结构：商品 ID、分数、元信息、标签。
// Labels 用于解释与策略驱动；Score 用于排序决策；Meta 可挂载已解析的 *Product。
type Item struct {
	ID       string
	Score    float64
	Features map[string]float64
	Meta     map[string]any
	Labels   map[string]utils.Label
}

func NewItem(id string) *Item {
	return &Item{
		ID:       id,
		Score:    0,
		Features: make(map[string]float64),
		Meta:     make(map[string]any),
		Labels:   make(map[string]utils.Label),
	}
}

// Product 返回挂载在 Meta 上的商品记录；未解析时返回 nil。
func (it *Item) Product() *Product {
	if it.Meta == nil {
		return nil
	}
	p, _ := it.Meta["product"].(*Product)
	return p
}

// SetProduct 将已解析的商品记录挂载到 Meta 上。
func (it *Item) SetProduct(p *Product) {
	if it.Meta == nil {
		it.Meta = make(map[string]any)
	}
	it.Meta["product"] = p
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}
