// Package matrix 提供推荐引擎用到的稠密矩阵原语：余弦相似度、行归一化、单位矩阵。
// 目标规模（商品/用户数千级）下稠密表示足够，不引入稀疏结构。
package matrix

import "math"

// Identity 返回 n×n 单位矩阵。
// 特征抽取失败时作为降级特征：每个商品与其他商品等距（互不相似）。
func Identity(n int) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
		m[i][i] = 1
	}
	return m
}

// Dot 计算两个向量的点积。长度不一致时按较短的算。
func Dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

// Norm 计算向量的 L2 范数。
func Norm(a []float64) float64 {
	var sum float64
	for _, v := range a {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// CosineRows 对矩阵的每对行计算余弦相似度，返回对称方阵。
//   - 取值范围 [-1, 1]
//   - 对角线恒为 1（按构造给定，零向量行也是 1）
//   - 零向量与任何向量的相似度为 0
func CosineRows(rows [][]float64) [][]float64 {
	n := len(rows)
	sim := make([][]float64, n)
	for i := range sim {
		sim[i] = make([]float64, n)
		sim[i][i] = 1
	}

	norms := make([]float64, n)
	for i, row := range rows {
		norms[i] = Norm(row)
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			var v float64
			if norms[i] > 0 && norms[j] > 0 {
				v = Dot(rows[i], rows[j]) / (norms[i] * norms[j])
			}
			sim[i][j] = v
			sim[j][i] = v
		}
	}
	return sim
}

// NormalizeRows 将每一行除以该行元素之和，原地修改。
// 行和为 0 的行保持原样（全零行不做除法）。
func NormalizeRows(rows [][]float64) {
	for _, row := range rows {
		var sum float64
		for _, v := range row {
			sum += v
		}
		if sum == 0 {
			continue
		}
		for j := range row {
			row[j] /= sum
		}
	}
}

// Mean 计算切片均值，空切片返回 0。
func Mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// Std 计算总体标准差（除以 N，不是 N-1），空切片返回 0。
func Std(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	mean := Mean(vals)
	var sum float64
	for _, v := range vals {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(vals)))
}
