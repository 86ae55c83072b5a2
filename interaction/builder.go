// Package interaction 把追加式行为日志聚合成协同过滤所需的用户-商品矩阵。
package interaction

import (
	"sort"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/pkg/matrix"
)

// BuildUserItemMatrix 把行为日志聚合成归一化的用户-商品权重矩阵。
//
// 算法：按 (user, product) 分组求权重和，铺成二维表（缺失格为 0），
// 再把每行除以行和（行和为 0 的行保持原样）。
//
// 行 = 有过行为的用户（按 ID 升序），列 = productIDs 给定的商品顺序。
// 指向目录外商品的行为被忽略；日志为空时返回 (nil, nil)，
// 下游把 nil 矩阵视为"协同信号不可用"，而不是错误。
//
// 矩阵每次训练全量重建，不做增量更新。
func BuildUserItemMatrix(interactions []core.Interaction, productIDs []int64) ([][]float64, []int64) {
	if len(interactions) == 0 || len(productIDs) == 0 {
		return nil, nil
	}

	colIndex := make(map[int64]int, len(productIDs))
	for i, id := range productIDs {
		colIndex[id] = i
	}

	// 分组求和：weights[user][col] = Σ weight
	weights := make(map[int64]map[int]float64)
	for _, in := range interactions {
		col, ok := colIndex[in.ProductID]
		if !ok {
			continue
		}
		if weights[in.UserID] == nil {
			weights[in.UserID] = make(map[int]float64)
		}
		weights[in.UserID][col] += in.Weight
	}
	if len(weights) == 0 {
		return nil, nil
	}

	userIDs := make([]int64, 0, len(weights))
	for uid := range weights {
		userIDs = append(userIDs, uid)
	}
	sort.Slice(userIDs, func(i, j int) bool { return userIDs[i] < userIDs[j] })

	rows := make([][]float64, len(userIDs))
	for i, uid := range userIDs {
		row := make([]float64, len(productIDs))
		for col, w := range weights[uid] {
			row[col] = w
		}
		rows[i] = row
	}

	matrix.NormalizeRows(rows)
	return rows, userIDs
}

// BuildHistory 为每个用户构建最近行为历史（最新的 10 条商品 ID，新→旧）。
// 用于冷启动判断与推荐解释。
func BuildHistory(interactions []core.Interaction) map[int64][]int64 {
	if len(interactions) == 0 {
		return map[int64][]int64{}
	}

	byUser := make(map[int64][]core.Interaction)
	for _, in := range interactions {
		byUser[in.UserID] = append(byUser[in.UserID], in)
	}

	const keep = 10
	out := make(map[int64][]int64, len(byUser))
	for uid, list := range byUser {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Timestamp.After(list[j].Timestamp)
		})
		n := keep
		if len(list) < n {
			n = len(list)
		}
		ids := make([]int64, 0, n)
		for _, in := range list[:n] {
			ids = append(ids, in.ProductID)
		}
		out[uid] = ids
	}
	return out
}
