// Package matrix 将隐式反馈物化为稠密的用户×商品权重矩阵，
// 并提供基于余弦相似度的用户/商品相似度计算。
//
// 稠密矩阵 + 精确近邻是刻意的取舍：目标规模是中小商城
// （用户数×商品数有限），可解释性优先于可扩展性。
// 超出配置上限时构建方直接拒绝，由上层降级到热门榜。
package matrix

import (
	"context"
	"sort"

	"github.com/rushteam/shopkit/core"
)

// ErrTooLarge 表示用户数×商品数超出配置上限。
var ErrTooLarge = core.NewDomainError(core.ModuleMatrix, core.ErrorCodeResourceExhausted, "matrix: user x product cells exceed configured ceiling")

// Matrix 是交互矩阵：行=用户、列=商品，单元格为隐式反馈权重
// view_count*0.1 + purchased*1.0。未出现的 (user, product) 对权重为 0。
//
// 它是 Interaction 集合的纯函数，按请求物化、不持久化；
// 行列均按 ID 升序排列，保证同一输入产出确定的矩阵。
type Matrix struct {
	Users    []string    // 行序：用户 ID 升序
	Products []string    // 列序：商品 ID 升序
	Weights  [][]float64 // len(Users) × len(Products)

	userIndex    map[string]int
	productIndex map[string]int
}

// UserIndex 返回用户的行号。
func (m *Matrix) UserIndex(userID string) (int, bool) {
	i, ok := m.userIndex[userID]
	return i, ok
}

// ProductIndex 返回商品的列号。
func (m *Matrix) ProductIndex(productID string) (int, bool) {
	i, ok := m.productIndex[productID]
	return i, ok
}

// Row 返回一个用户的权重向量。
func (m *Matrix) Row(i int) []float64 {
	return m.Weights[i]
}

// Col 返回一个商品的权重向量（拷贝）。
func (m *Matrix) Col(j int) []float64 {
	col := make([]float64, len(m.Users))
	for i := range m.Weights {
		col[i] = m.Weights[i][j]
	}
	return col
}

// Builder 按需从 InteractionStore 物化交互矩阵。
type Builder struct {
	Interactions core.InteractionStore

	// MaxCells 是用户数×商品数的上限，<=0 使用默认配置。
	MaxCells int
}

// Build 物化当前 Interaction 快照。
// 空存储返回 (nil, nil)（哨兵空结果，不是错误）；超限返回 ErrTooLarge。
func (b *Builder) Build(ctx context.Context) (*Matrix, error) {
	rows, err := b.Interactions.ListInteractions(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	userSet := make(map[string]struct{})
	productSet := make(map[string]struct{})
	for _, r := range rows {
		userSet[r.UserID] = struct{}{}
		productSet[r.ProductID] = struct{}{}
	}

	maxCells := b.MaxCells
	if maxCells <= 0 {
		maxCells = (&core.DefaultRecommendConfig{}).DefaultMaxMatrixCells()
	}
	if len(userSet)*len(productSet) > maxCells {
		return nil, ErrTooLarge
	}

	m := &Matrix{
		Users:        make([]string, 0, len(userSet)),
		Products:     make([]string, 0, len(productSet)),
		userIndex:    make(map[string]int, len(userSet)),
		productIndex: make(map[string]int, len(productSet)),
	}
	for u := range userSet {
		m.Users = append(m.Users, u)
	}
	for p := range productSet {
		m.Products = append(m.Products, p)
	}
	sort.Strings(m.Users)
	sort.Strings(m.Products)
	for i, u := range m.Users {
		m.userIndex[u] = i
	}
	for j, p := range m.Products {
		m.productIndex[p] = j
	}

	m.Weights = make([][]float64, len(m.Users))
	for i := range m.Weights {
		m.Weights[i] = make([]float64, len(m.Products))
	}
	for _, r := range rows {
		i := m.userIndex[r.UserID]
		j := m.productIndex[r.ProductID]
		m.Weights[i][j] = r.Weight()
	}

	return m, nil
}
