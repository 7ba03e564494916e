package recall

import (
	"context"
	"sort"

	"github.com/rushteam/shopkit/core"
	"github.com/rushteam/shopkit/matrix"
	"github.com/rushteam/shopkit/pipeline"
	"github.com/rushteam/shopkit/pkg/utils"
)

// UserCF 是基于用户的协同过滤召回源（User-based Collaborative Filtering）。
//
// 核心思想："兴趣相似的用户，喜欢相似的商品"
//
// 算法流程：
//  1. 物化交互矩阵（浏览/购买隐式反馈加权）
//  2. 对矩阵行做余弦相似度，取 Top Neighbors 个相似用户（排除自己，平分按行序稳定）
//  3. 每个相似用户贡献其权重最高的 NeighborItems 个商品（平分按列序稳定）
//  4. 剔除目标用户自己权重 > 0 的商品（已交互过的不再推荐）
//  5. 解析商品记录，已删除的静默跳过
//
// 降级策略（均为软路径，绝不向上抛错）：
//  - 交互矩阵为空 / 目标用户无行（冷启动）/ 矩阵超限 → 回退 Fallback（通常为热门榜）
//
// 内存式精确近邻是刻意选择：中小规模商城下可解释、无需 ANN 索引。
type UserCF struct {
	Matrix  *matrix.Builder
	Catalog core.CatalogStore

	// Fallback 数据不足时的回退召回源（通常为 Popular）
	Fallback Source

	// Neighbors 考虑的相似用户数，<=0 使用默认值 3
	Neighbors int

	// NeighborItems 每个相似用户贡献的候选商品数，<=0 使用默认值 5
	NeighborItems int

	// TopK 最终返回的商品数，<=0 使用默认值
	TopK int
}

func (r *UserCF) Name() string        { return "recall.usercf" }
func (r *UserCF) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall
func (r *UserCF) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

func (r *UserCF) fallback(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error) {
	if r.Fallback == nil {
		return nil, nil
	}
	return r.Fallback.Recall(ctx, rctx)
}

// Recall 实现 Source 接口
func (r *UserCF) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Matrix == nil || rctx == nil || rctx.UserID == "" {
		return r.fallback(ctx, rctx)
	}

	defaults := &core.DefaultRecommendConfig{}
	neighbors := r.Neighbors
	if neighbors <= 0 {
		neighbors = defaults.DefaultNeighbors()
	}
	neighborItems := r.NeighborItems
	if neighborItems <= 0 {
		neighborItems = defaults.DefaultNeighborItems()
	}
	topK := r.TopK
	if topK <= 0 {
		topK = defaults.DefaultTopK()
	}

	m, err := r.Matrix.Build(ctx)
	if err != nil {
		if core.IsResourceExhausted(err) {
			// 稠密矩阵超限：放弃个性化，降级热门榜
			return r.fallback(ctx, rctx)
		}
		return nil, err
	}
	if m == nil {
		// 交互数据为空
		return r.fallback(ctx, rctx)
	}

	userIdx, ok := m.UserIndex(rctx.UserID)
	if !ok {
		// 冷启动用户：没有任何浏览/购买/评分记录
		return r.fallback(ctx, rctx)
	}

	// 用户-用户相似度，取 Top Neighbors 个相似用户（排除自己）
	sims := matrix.UserSimilarity(m)
	simRow := sims[userIdx]

	order := make([]int, 0, len(m.Users)-1)
	for i := range m.Users {
		if i != userIdx {
			order = append(order, i)
		}
	}
	// 稳定排序：相似度相同保持原行序
	sort.SliceStable(order, func(a, b int) bool {
		return simRow[order[a]] > simRow[order[b]]
	})
	if len(order) > neighbors {
		order = order[:neighbors]
	}

	// 每个相似用户贡献其权重最高的 NeighborItems 个商品，按首次出现并入候选；
	// 目标用户自己权重 > 0 的商品（已交互）在并入时剔除。
	own := m.Row(userIdx)
	seen := make(map[int]struct{})
	out := make([]*core.Item, 0, topK)

	for _, neighborIdx := range order {
		row := m.Row(neighborIdx)

		cols := make([]int, len(m.Products))
		for j := range cols {
			cols[j] = j
		}
		// 稳定排序：权重相同保持原列序
		sort.SliceStable(cols, func(a, b int) bool {
			return row[cols[a]] > row[cols[b]]
		})
		if len(cols) > neighborItems {
			cols = cols[:neighborItems]
		}

		for _, j := range cols {
			if len(out) >= topK {
				return out, nil
			}
			if own[j] > 0 {
				continue
			}
			if _, dup := seen[j]; dup {
				continue
			}
			seen[j] = struct{}{}

			it := core.NewItem(m.Products[j])
			it.Score = simRow[neighborIdx] * row[j]
			it.PutLabel("recall_source", utils.Label{Value: "usercf", Source: "recall"})
			it.PutLabel("cf_neighbor", utils.Label{Value: m.Users[neighborIdx], Source: "recall"})

			if r.Catalog != nil {
				p, err := r.Catalog.GetProduct(ctx, m.Products[j])
				if err != nil {
					// 商品已删除：静默跳过
					continue
				}
				it.SetProduct(p)
			}
			out = append(out, it)
		}
	}

	return out, nil
}
