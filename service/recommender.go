// Package service 提供面向商城应用的推荐门面。
//
// Recommender 是无状态的服务对象：持有四个领域存储的句柄，每次调用
// 按需物化数据，不维护进程级可变缓存。事件写入与推荐读取都经由它，
// 方便上层 handler 以单一依赖接入。
package service

import (
	"context"

	"github.com/rushteam/shopkit/core"
	"github.com/rushteam/shopkit/matrix"
	"github.com/rushteam/shopkit/rank"
	"github.com/rushteam/shopkit/recall"
)

// 服务层错误定义（使用统一的 DomainError）
var (
	// ErrInvalidLimit 表示 limit 为负数
	ErrInvalidLimit = core.NewDomainError(core.ModuleService, core.ErrorCodeInvalidInput, "service: limit must not be negative")

	// ErrEmptyUserID 表示用户 ID 为空
	ErrEmptyUserID = core.NewDomainError(core.ModuleService, core.ErrorCodeInvalidInput, "service: user id must not be empty")
)

// Recommender 是推荐子系统的门面。
//
// 操作与上层 handler 的对应关系：
//   - 商品详情页浏览   → RecordView
//   - 订单行创建       → RecordPurchase
//   - 评价提交         → RecordRating
//   - 首页/搜索页      → Popular；已登录用户另取 Recommend
//   - 目录检索页       → RankKeyword（上游已做文本/属性过滤）
//
// 错误约定：INVALID_INPUT 向调用方透出；其余（商品缺失、数据不足、
// 矩阵超限）内部降级，推荐调用永远 best-effort，不拖垮页面渲染。
type Recommender struct {
	Interactions core.InteractionStore
	Catalog      core.CatalogStore
	Orders       core.OrderStore
	Reviews      core.ReviewStore

	// Neighbors / NeighborItems / MaxMatrixCells 个性化推荐调参，
	// <=0 使用 core.DefaultRecommendConfig 的默认值
	Neighbors      int
	NeighborItems  int
	MaxMatrixCells int

	// KeywordFields 关键词排序的字段权重，空则使用 rank.DefaultFields
	KeywordFields []rank.Field
}

// New 创建一个推荐门面。
func New(
	interactions core.InteractionStore,
	catalog core.CatalogStore,
	orders core.OrderStore,
	reviews core.ReviewStore,
) *Recommender {
	return &Recommender{
		Interactions: interactions,
		Catalog:      catalog,
		Orders:       orders,
		Reviews:      reviews,
	}
}

// RecordView 商品详情页浏览事件。
func (s *Recommender) RecordView(ctx context.Context, userID, productID string) error {
	return s.Interactions.RecordView(ctx, userID, productID)
}

// RecordPurchase 订单行创建事件。
func (s *Recommender) RecordPurchase(ctx context.Context, userID, productID string) error {
	return s.Interactions.RecordPurchase(ctx, userID, productID)
}

// RecordRating 评价提交事件。评分越界返回 INVALID_INPUT。
func (s *Recommender) RecordRating(ctx context.Context, userID, productID string, rating int) error {
	return s.Interactions.RecordRating(ctx, userID, productID, rating)
}

// Popular 返回至多 limit 个去重的热门商品。
// limit 为负返回 INVALID_INPUT；limit 为 0 返回空结果。
func (s *Recommender) Popular(ctx context.Context, limit int) ([]*core.Product, error) {
	if limit < 0 {
		return nil, ErrInvalidLimit
	}
	if limit == 0 {
		return nil, nil
	}

	items, err := s.popularSource(limit).Recall(ctx, nil)
	if err != nil {
		return nil, err
	}
	return products(items), nil
}

// Recommend 返回至多 limit 个该用户尚未交互过的个性化推荐商品。
// 数据不足（空存储/冷启动/矩阵超限）时内部降级为热门榜。
func (s *Recommender) Recommend(ctx context.Context, userID string, limit int) ([]*core.Product, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}
	if limit < 0 {
		return nil, ErrInvalidLimit
	}
	if limit == 0 {
		return nil, nil
	}

	cf := &recall.UserCF{
		Matrix: &matrix.Builder{
			Interactions: s.Interactions,
			MaxCells:     s.MaxMatrixCells,
		},
		Catalog:       s.Catalog,
		Fallback:      s.popularSource(limit),
		Neighbors:     s.Neighbors,
		NeighborItems: s.NeighborItems,
		TopK:          limit,
	}

	rctx := &core.RecommendContext{UserID: userID, Scene: "home"}
	items, err := cf.Recall(ctx, rctx)
	if err != nil {
		return nil, err
	}
	return products(items), nil
}

// RankKeyword 按检索词对候选商品重排：只重排、不过滤。
// 上游的文本/属性过滤已经收敛了候选集，这里只负责排序。
func (s *Recommender) RankKeyword(query string, candidates []*core.Product) []*core.Product {
	ranker := &rank.KeywordRanker{Fields: s.KeywordFields}
	return ranker.Rank(query, candidates)
}

func (s *Recommender) popularSource(limit int) *recall.Popular {
	return &recall.Popular{
		Orders:  s.Orders,
		Reviews: s.Reviews,
		Catalog: s.Catalog,
		TopK:    limit,
	}
}

// products 从 items 上取出已解析的商品记录，未解析的跳过。
func products(items []*core.Item) []*core.Product {
	out := make([]*core.Product, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		if p := it.Product(); p != nil {
			out = append(out, p)
		}
	}
	return out
}
