package matrix

import "math"

// Cosine 计算两个向量的余弦相似度，取值 [-1, 1]。
// 任一向量为零向量时定义为 0（冷数据没有方向，视为不相似，而非除零报错）。
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// UserSimilarity 计算用户-用户相似度矩阵（对矩阵行两两余弦）。
// 结果对称；非零向量的对角线为 1。
func UserSimilarity(m *Matrix) [][]float64 {
	n := len(m.Users)
	sim := make([][]float64, n)
	for i := range sim {
		sim[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			s := Cosine(m.Weights[i], m.Weights[j])
			sim[i][j] = s
			sim[j][i] = s
		}
	}
	return sim
}

// ProductSimilarity 计算商品-商品相似度矩阵（对矩阵列两两余弦）。
func ProductSimilarity(m *Matrix) [][]float64 {
	n := len(m.Products)
	cols := make([][]float64, n)
	for j := 0; j < n; j++ {
		cols[j] = m.Col(j)
	}

	sim := make([][]float64, n)
	for i := range sim {
		sim[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			s := Cosine(cols[i], cols[j])
			sim[i][j] = s
			sim[j][i] = s
		}
	}
	return sim
}
