package recall

import (
	"context"
	"sort"

	"github.com/rushteam/shopkit/core"
	"github.com/rushteam/shopkit/pipeline"
	"github.com/rushteam/shopkit/pkg/utils"
)

// Popular 是热门召回源：购买频次与平均评分两路信号合并的热门榜。
//
// 算法（与线上商城的热门榜语义一致）：
//  1. 按订单行出现次数降序取 TopK 商品
//  2. 按平均评分降序取 TopK 商品
//  3. 两路拼接（购买榜在前），按首次出现去重——同时上榜的商品保留购买榜位次
//  4. 解析商品记录，已删除的 ID 静默跳过，截断到 TopK
//
// 空订单/空评价得到空榜单，不是错误。
// Popular 同时实现了 Source 和 Node 接口，可以直接在 Pipeline 中使用。
type Popular struct {
	Orders  core.OrderStore
	Reviews core.ReviewStore
	Catalog core.CatalogStore

	// TopK 最终返回的商品数，<=0 使用默认值
	TopK int
}

func (r *Popular) Name() string        { return "recall.popular" }
func (r *Popular) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall
func (r *Popular) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口
func (r *Popular) Recall(
	ctx context.Context,
	_ *core.RecommendContext,
) ([]*core.Item, error) {
	topK := r.TopK
	if topK <= 0 {
		topK = (&core.DefaultRecommendConfig{}).DefaultTopK()
	}

	type scored struct {
		productID string
		score     float64
	}

	// 购买榜：订单行出现次数降序
	var byPurchases []scored
	if r.Orders != nil {
		counts, err := r.Orders.PurchaseCounts(ctx)
		if err != nil {
			return nil, err
		}
		byPurchases = make([]scored, 0, len(counts))
		for id, c := range counts {
			byPurchases = append(byPurchases, scored{productID: id, score: float64(c)})
		}
	}

	// 评分榜：平均评分降序
	var byRating []scored
	if r.Reviews != nil {
		averages, err := r.Reviews.RatingAverages(ctx)
		if err != nil {
			return nil, err
		}
		byRating = make([]scored, 0, len(averages))
		for id, avg := range averages {
			byRating = append(byRating, scored{productID: id, score: avg})
		}
	}

	// map 无序，分数相同按商品 ID 升序，保证榜单确定
	sortDesc := func(list []scored) {
		sort.Slice(list, func(i, j int) bool {
			if list[i].score != list[j].score {
				return list[i].score > list[j].score
			}
			return list[i].productID < list[j].productID
		})
	}
	sortDesc(byPurchases)
	sortDesc(byRating)
	if len(byPurchases) > topK {
		byPurchases = byPurchases[:topK]
	}
	if len(byRating) > topK {
		byRating = byRating[:topK]
	}

	// 拼接 + 首次出现去重 + 解析商品
	seen := make(map[string]struct{}, len(byPurchases)+len(byRating))
	out := make([]*core.Item, 0, topK)

	appendCandidate := func(c scored, signal string) {
		if len(out) >= topK {
			return
		}
		if _, ok := seen[c.productID]; ok {
			return
		}
		seen[c.productID] = struct{}{}

		it := core.NewItem(c.productID)
		it.Score = c.score
		it.PutLabel("recall_source", utils.Label{Value: "popular", Source: "recall"})
		it.PutLabel("popular_signal", utils.Label{Value: signal, Source: "recall"})

		if r.Catalog != nil {
			p, err := r.Catalog.GetProduct(ctx, c.productID)
			if err != nil {
				// 商品已删除：静默跳过，榜单降级而非报错
				return
			}
			it.SetProduct(p)
		}
		out = append(out, it)
	}

	for _, c := range byPurchases {
		appendCandidate(c, "purchases")
	}
	for _, c := range byRating {
		appendCandidate(c, "ratings")
	}

	return out, nil
}
