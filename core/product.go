package core

import "context"

// 商品审核状态。只有 approved 状态的商品可进入推荐结果。
const (
	ProductStatusPending  = "pending"
	ProductStatusApproved = "approved"
	ProductStatusRejected = "rejected"
)

// Product 是商品记录。商品/订单/评价由外部目录与订单子系统持有，
// 本工具包只读：推荐输出最终解析回 Product，解析失败的 ID 静默跳过。
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// Approved 返回商品是否通过审核。
func (p *Product) Approved() bool {
	return p.Status == ProductStatusApproved
}

// CatalogStore 是商品目录的只读领域接口。
// 商品不存在时返回 NOT_FOUND（调用方按软失败处理，跳过该商品）。
type CatalogStore interface {
	GetProduct(ctx context.Context, productID string) (*Product, error)
}

// OrderStore 是订单行的只读领域接口，用于热门榜的购买信号。
type OrderStore interface {
	// PurchaseCounts 返回商品 ID → 订单行出现次数
	PurchaseCounts(ctx context.Context) (map[string]int64, error)
}

// ReviewStore 是评价的只读领域接口，用于热门榜的评分信号。
type ReviewStore interface {
	// RatingAverages 返回商品 ID → 平均评分
	RatingAverages(ctx context.Context) (map[string]float64, error)
}
