package filter

import (
	"context"

	"github.com/rushteam/shopkit/core"
)

// ApprovedFilter 是商品审核过滤器：过滤掉未通过审核（pending/rejected）的商品。
// 买家侧页面只应看到 approved 商品，召回结果在此统一兜底。
type ApprovedFilter struct {
	// Catalog 用于解析商品记录；item.Meta 已挂载商品时优先使用，避免重复查询
	Catalog core.CatalogStore
}

func (f *ApprovedFilter) Name() string {
	return "filter.approved"
}

func (f *ApprovedFilter) ShouldFilter(
	ctx context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}

	p := item.Product()
	if p == nil && f.Catalog != nil {
		var err error
		p, err = f.Catalog.GetProduct(ctx, item.ID)
		if err != nil {
			// 商品已删除：视为不可展示
			return true, nil
		}
		item.SetProduct(p)
	}
	if p == nil {
		return false, nil
	}

	return !p.Approved(), nil
}
