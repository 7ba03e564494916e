package rank

import (
	"context"
	"sort"
	"strings"

	"github.com/rushteam/shopkit/core"
	"github.com/rushteam/shopkit/pipeline"
	"github.com/rushteam/shopkit/pkg/utils"
)

// Field 是关键词打分的一个字段：显式的 (取值函数, 权重) 对。
// 不做运行时反射字段查找，字段集合与顺序由调用方显式给定。
type Field struct {
	Name   string
	Weight float64
	Get    func(p *core.Product) string
}

// DefaultFields 返回默认的字段权重：名称 3、品牌 2、类目 2、描述 1。
func DefaultFields() []Field {
	return []Field{
		{Name: "name", Weight: 3, Get: func(p *core.Product) string { return p.Name }},
		{Name: "brand", Weight: 2, Get: func(p *core.Product) string { return p.Brand }},
		{Name: "category", Weight: 2, Get: func(p *core.Product) string { return p.Category }},
		{Name: "description", Weight: 1, Get: func(p *core.Product) string { return p.Description }},
	}
}

// KeywordRanker 按检索词对候选商品重排，适用于小目录的增强检索。
//
// 打分规则（对每个字段）：
//   - 整个检索串是字段子串：+10×权重（精确命中大幅加分）
//   - 任一检索词是字段子串：+1×权重
//   - 所有商品 +1 基础分：未命中的商品保持原有相对顺序垫底
//
// 性质：只重排、不过滤——每个输入商品恰好出现一次；
// 稳定排序保证同分商品保持输入顺序；空检索词/空列表原样返回。
type KeywordRanker struct {
	// Fields 打分字段，空则使用 DefaultFields
	Fields []Field
}

func (r *KeywordRanker) fields() []Field {
	if len(r.Fields) > 0 {
		return r.Fields
	}
	return DefaultFields()
}

// Score 计算单个商品对检索词的得分（含基础分）。
func (r *KeywordRanker) Score(query string, p *core.Product) float64 {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || p == nil {
		return 1
	}
	return r.score(query, strings.Fields(query), p)
}

func (r *KeywordRanker) score(query string, tokens []string, p *core.Product) float64 {
	score := 1.0 // 基础分
	for _, f := range r.fields() {
		text := strings.ToLower(f.Get(p))

		// 整串精确命中
		if strings.Contains(text, query) {
			score += 10 * f.Weight
		}

		// 分词命中
		for _, tok := range tokens {
			if strings.Contains(text, tok) {
				score += f.Weight
			}
		}
	}
	return score
}

// Rank 按检索词对商品列表重排，返回新切片，不修改输入。
func (r *KeywordRanker) Rank(query string, products []*core.Product) []*core.Product {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || len(products) == 0 {
		return products
	}
	tokens := strings.Fields(query)

	type scored struct {
		product *core.Product
		score   float64
	}
	list := make([]scored, 0, len(products))
	for _, p := range products {
		list = append(list, scored{product: p, score: r.score(query, tokens, p)})
	}

	// 稳定排序：同分保持输入顺序
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].score > list[j].score
	})

	out := make([]*core.Product, 0, len(list))
	for _, s := range list {
		out = append(out, s.product)
	}
	return out
}

// KeywordNode 是关键词排序 Node：从 rctx.Params["query"] 取检索词，
// 对上游召回/过滤后的候选重排。商品记录优先取 item.Meta，缺失时经
// Catalog 解析；解析失败的商品保留基础分，绝不剔除。
type KeywordNode struct {
	// Fields 打分字段，空则使用 DefaultFields
	Fields []Field

	// Catalog 用于解析未挂载商品记录的 item（可选）
	Catalog core.CatalogStore
}

func (n *KeywordNode) Name() string {
	return "rank.keyword"
}

func (n *KeywordNode) Kind() pipeline.Kind {
	return pipeline.KindRank
}

func (n *KeywordNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 || rctx == nil {
		return items, nil
	}
	query := strings.ToLower(strings.TrimSpace(rctx.Query()))
	if query == "" {
		return items, nil
	}
	tokens := strings.Fields(query)

	ranker := &KeywordRanker{Fields: n.Fields}
	for _, it := range items {
		if it == nil {
			continue
		}
		p := it.Product()
		if p == nil && n.Catalog != nil {
			if resolved, err := n.Catalog.GetProduct(ctx, it.ID); err == nil {
				p = resolved
				it.SetProduct(p)
			}
		}

		score := 1.0
		if p != nil {
			score = ranker.score(query, tokens, p)
		}
		it.Score = score
		it.PutLabel("rank_model", utils.Label{Value: "keyword", Source: "rank"})
	}

	out := make([]*core.Item, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out, nil
}
