// Package snapshot 定义一次训练产出的全部模型工件，以及它们的磁盘存取。
package snapshot

import (
	"time"

	"github.com/rushteam/shoprec/core"
)

// Version 是快照格式版本号；格式变更时递增，旧版本快照按损坏处理。
const Version = 1

// Snapshot 是一次训练运行产出的完整模型包。
//
// 生命周期：每次训练全量新建、覆盖磁盘上的旧快照；进程启动后
// 首次请求时惰性加载进内存。所有矩阵与 ID 列表同批生成，
// 不可跨训练混用（类目 one-hot 列集合在不同训练之间不稳定）。
type Snapshot struct {
	// Engine 引擎名称；不同引擎（如 basic / hybrid）的快照相互独立，禁止交叉加载
	Engine string `json:"engine"`

	// Version 快照格式版本
	Version int `json:"version"`

	// TrainedAt 训练完成时间
	TrainedAt time.Time `json:"trained_at"`

	// ProductIDs 商品顺序（目录迭代序），是所有矩阵的列/行基准
	ProductIDs []int64 `json:"product_ids"`

	// UserIDs 有行为用户的顺序（升序），是用户-商品矩阵的行基准
	UserIDs []int64 `json:"user_ids"`

	// Features 商品特征矩阵（每行一个商品）
	Features [][]float64 `json:"features"`

	// ProductSim 商品相似度矩阵（对称，对角线为 1）
	ProductSim [][]float64 `json:"product_sim"`

	// UserItem 归一化的用户-商品权重矩阵；无行为数据时为 nil
	UserItem [][]float64 `json:"user_item,omitempty"`

	// UserSim 用户相似度矩阵；活跃用户不足 2 个时为 nil
	UserSim [][]float64 `json:"user_sim,omitempty"`

	// Profiles 用户偏好画像；缺失条目即冷启动用户
	Profiles map[int64]core.PreferenceProfile `json:"profiles"`

	// History 每个用户最近的 10 条商品 ID（新→旧）
	History map[int64][]int64 `json:"history"`

	// Products 训练时的商品目录镜像，打分时用于热门度与过滤规则
	Products []core.Product `json:"products"`
}

// ProductIndex 返回商品 ID 到矩阵下标的映射。
func (s *Snapshot) ProductIndex() map[int64]int {
	idx := make(map[int64]int, len(s.ProductIDs))
	for i, id := range s.ProductIDs {
		idx[id] = i
	}
	return idx
}

// UserIndex 返回用户 ID 到矩阵行号的映射。
func (s *Snapshot) UserIndex() map[int64]int {
	idx := make(map[int64]int, len(s.UserIDs))
	for i, id := range s.UserIDs {
		idx[id] = i
	}
	return idx
}

// Stats 是快照的评估统计，用于观测模型覆盖情况。
type Stats struct {
	Users        int     `json:"users"`
	Products     int     `json:"products"`
	Interactions int     `json:"interactions"` // 非零矩阵格数
	Sparsity     float64 `json:"sparsity"`
	Coverage     float64 `json:"coverage"`
}

// Evaluate 统计用户-商品矩阵的覆盖率与稀疏度。
func (s *Snapshot) Evaluate() Stats {
	st := Stats{
		Users:    len(s.UserIDs),
		Products: len(s.ProductIDs),
	}
	if len(s.UserItem) == 0 || st.Products == 0 {
		st.Sparsity = 1
		return st
	}

	nonZero := 0
	for _, row := range s.UserItem {
		for _, v := range row {
			if v != 0 {
				nonZero++
			}
		}
	}
	st.Interactions = nonZero
	possible := len(s.UserItem) * st.Products
	st.Coverage = float64(nonZero) / float64(possible)
	st.Sparsity = 1 - st.Coverage
	return st
}
