package filter

import (
	"context"

	"github.com/rushteam/shopkit/core"
)

// InteractedFilter 是已交互过滤器：过滤掉当前用户隐式反馈权重 > 0 的商品。
// 用于热门榜喂给已登录页面时，不再重复推荐用户已浏览/已购买的商品。
// 注意：零浏览、零购买的空行权重为 0，不算已交互。
type InteractedFilter struct {
	Interactions core.InteractionStore
}

func (f *InteractedFilter) Name() string {
	return "filter.interacted"
}

func (f *InteractedFilter) ShouldFilter(
	ctx context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if f.Interactions == nil || rctx == nil || rctx.UserID == "" {
		return false, nil
	}

	rows, err := f.Interactions.GetUserInteractions(ctx, rctx.UserID)
	if err != nil {
		// 读取失败按保留处理，过滤是 best-effort
		return false, nil
	}
	row, ok := rows[item.ID]
	if !ok {
		return false, nil
	}
	return row.Weight() > 0, nil
}
