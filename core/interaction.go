package core

import (
	"context"
	"time"
)

// 隐式反馈权重：购买信号主导反复浏览，10 次浏览 ≈ 1 次购买。
const (
	ViewWeight     = 0.1
	PurchaseWeight = 1.0
)

// Interaction 是一个用户对一个商品的累积隐式反馈信号。
//
// 约束：
//   - (UserID, ProductID) 全局唯一，一对用户商品至多一行
//   - ViewCount 单调递增；Purchased 只能 false → true；Rating 后写覆盖
//   - 生命周期由 InteractionStore 独占管理，事件方只通过 Record* 写入
type Interaction struct {
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	ViewCount int64     `json:"view_count"`
	Purchased bool      `json:"purchased"`
	Rating    int       `json:"rating,omitempty"` // 0 表示未评分，有效值 1-5
	UpdatedAt time.Time `json:"updated_at"`
}

// Weight 返回该行在交互矩阵中的权重：view_count*0.1 + purchased*1.0。
func (i *Interaction) Weight() float64 {
	w := float64(i.ViewCount) * ViewWeight
	if i.Purchased {
		w += PurchaseWeight
	}
	return w
}

// InteractionStore 是隐式反馈的领域接口。
//
// 事件生产方（商品详情页、订单行创建、评价提交）只调用 Record* 三个操作；
// 同一 (user, product) key 上的并发更新必须串行化，避免浏览计数丢失更新。
type InteractionStore interface {
	// RecordView 浏览事件：view_count+1，行不存在则以 view_count=1 创建
	RecordView(ctx context.Context, userID, productID string) error

	// RecordPurchase 购买事件：purchased=true，行不存在则创建
	RecordPurchase(ctx context.Context, userID, productID string) error

	// RecordRating 评分事件：rating 后写覆盖，行不存在则创建。
	// rating 超出 1-5 返回 INVALID_INPUT，不做部分写入。
	RecordRating(ctx context.Context, userID, productID string, rating int) error

	// GetUserInteractions 获取一个用户的全部交互行，key 为商品 ID
	GetUserInteractions(ctx context.Context, userID string) (map[string]*Interaction, error)

	// ListInteractions 获取全量交互行（交互矩阵构建使用，读到的是调用时刻快照）
	ListInteractions(ctx context.Context) ([]*Interaction, error)
}
