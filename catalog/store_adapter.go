// Package catalog 提供商品/订单聚合/评分聚合的只读访问。
// 商品、订单与评价由外部子系统持有；本包只是把它们适配到
// core.CatalogStore / core.OrderStore / core.ReviewStore 领域接口上。
package catalog

import (
	"context"
	"encoding/json"

	"github.com/rushteam/shopkit/core"
)

// ErrProductNotFound 表示商品不存在（已下架/已删除）。
// 推荐链路对它按软失败处理：跳过该商品，不向调用方抛错。
var ErrProductNotFound = core.NewDomainError(core.ModuleCatalog, core.ErrorCodeNotFound, "catalog: product not found")

// StoreAdapter 是基于 core.Store 接口的商品目录适配器。
//
// 存储布局（JSON 值，由外部商城应用写入）：
//   商品记录：{KeyPrefix}:product:{productID} → core.Product
//   购买聚合：{KeyPrefix}:orders              → map[productID]订单行次数
//   评分聚合：{KeyPrefix}:ratings             → map[productID]平均评分
type StoreAdapter struct {
	store core.Store

	// KeyPrefix 是存储 key 的前缀，默认 "catalog"
	KeyPrefix string
}

// NewStoreAdapter 创建一个商品目录适配器。
func NewStoreAdapter(s core.Store, keyPrefix string) *StoreAdapter {
	if keyPrefix == "" {
		keyPrefix = "catalog"
	}
	return &StoreAdapter{
		store:     s,
		KeyPrefix: keyPrefix,
	}
}

// GetProduct 实现 core.CatalogStore。
func (a *StoreAdapter) GetProduct(ctx context.Context, productID string) (*core.Product, error) {
	key := a.KeyPrefix + ":product:" + productID
	data, err := a.store.Get(ctx, key)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	p := &core.Product{}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, err
	}
	return p, nil
}

// PurchaseCounts 实现 core.OrderStore。
func (a *StoreAdapter) PurchaseCounts(ctx context.Context) (map[string]int64, error) {
	key := a.KeyPrefix + ":orders"
	data, err := a.store.Get(ctx, key)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return make(map[string]int64), nil
		}
		return nil, err
	}

	var result map[string]int64
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// RatingAverages 实现 core.ReviewStore。
func (a *StoreAdapter) RatingAverages(ctx context.Context) (map[string]float64, error) {
	key := a.KeyPrefix + ":ratings"
	data, err := a.store.Get(ctx, key)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return make(map[string]float64), nil
		}
		return nil, err
	}

	var result map[string]float64
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// 确保实现领域接口
var _ core.CatalogStore = (*StoreAdapter)(nil)
var _ core.OrderStore = (*StoreAdapter)(nil)
var _ core.ReviewStore = (*StoreAdapter)(nil)

// SeedProducts 辅助函数：为测试/示例写入商品记录。
func SeedProducts(ctx context.Context, adapter *StoreAdapter, products []*core.Product) error {
	for _, p := range products {
		data, err := json.Marshal(p)
		if err != nil {
			return err
		}
		key := adapter.KeyPrefix + ":product:" + p.ID
		if err := adapter.store.Set(ctx, key, data); err != nil {
			return err
		}
	}
	return nil
}

// SeedPurchases 辅助函数：为测试/示例写入购买聚合。
func SeedPurchases(ctx context.Context, adapter *StoreAdapter, counts map[string]int64) error {
	data, err := json.Marshal(counts)
	if err != nil {
		return err
	}
	return adapter.store.Set(ctx, adapter.KeyPrefix+":orders", data)
}

// SeedRatings 辅助函数：为测试/示例写入评分聚合。
func SeedRatings(ctx context.Context, adapter *StoreAdapter, averages map[string]float64) error {
	data, err := json.Marshal(averages)
	if err != nil {
		return err
	}
	return adapter.store.Set(ctx, adapter.KeyPrefix+":ratings", data)
}
