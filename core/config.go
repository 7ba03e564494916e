package core

import "time"

// RecommendConfig 是推荐相关的配置接口，用于提供默认值。
type RecommendConfig interface {
	// DefaultNeighbors 返回个性化推荐默认考虑的相似用户数
	DefaultNeighbors() int

	// DefaultNeighborItems 返回每个相似用户默认贡献的候选商品数
	DefaultNeighborItems() int

	// DefaultTopK 返回默认的返回商品数
	DefaultTopK() int

	// DefaultMaxMatrixCells 返回稠密交互矩阵的单元格上限（用户数×商品数）。
	// 超限时放弃矩阵构建并降级到热门榜，避免 O(users×products) 内存失控。
	DefaultMaxMatrixCells() int

	// DefaultTimeout 返回默认的超时时间
	DefaultTimeout() time.Duration
}

// DefaultRecommendConfig 是默认的推荐配置实现。
// 3 个相似用户 / 每人 5 个候选沿用线上验证过的取值，可按场景覆盖。
type DefaultRecommendConfig struct{}

func (c *DefaultRecommendConfig) DefaultNeighbors() int {
	return 3
}

func (c *DefaultRecommendConfig) DefaultNeighborItems() int {
	return 5
}

func (c *DefaultRecommendConfig) DefaultTopK() int {
	return 20
}

func (c *DefaultRecommendConfig) DefaultMaxMatrixCells() int {
	return 4_000_000
}

func (c *DefaultRecommendConfig) DefaultTimeout() time.Duration {
	return 2 * time.Second
}
