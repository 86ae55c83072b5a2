// Package feature 负责把商品原始属性转换为训练用的数值特征矩阵。
package feature

import (
	"context"
	"sort"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/pkg/matrix"
)

// Provider 是可选的在线特征提供方（如 Feast Feature Store）。
// 返回 map[productID]map[featureName]value；缺失的商品/特征按 0 处理。
type Provider interface {
	Name() string
	ProductFeatures(ctx context.Context, productIDs []int64, featureNames []string) (map[int64]map[string]float64, error)
}

// ProductExtractor 把商品目录快照转换为稠密特征矩阵，每行一个商品。
//
// 列序固定为：[价格, 类目 one-hot..., 评分, 评论数, 补充特征...]
//   - 价格：按当前目录做 z-score 标准化；方差为 0 时整列置 0，不做除法
//   - 类目：对本次训练出现的去重类目做 one-hot（按字典序）；列集合跨训练不稳定，
//     因此相似度矩阵必须与特征矩阵同批重建，不可混用
//   - 评分：除以 5 映射到 [0,1]
//   - 评论数：除以目录内最大评论数；最大值为 0 时整列置 0
//   - 补充特征：来自 Provider 的在线特征，按特征名字典序追加；获取失败时跳过
//
// 失败策略：抽取过程中任何异常都降级为单位矩阵（每个商品与其他商品互不相似），
// 保证训练仍能以退化模式完成，而不是中断。
type ProductExtractor struct {
	// Enricher 在线特征提供方（可选）
	Enricher Provider

	// EnrichFeatures 需要追加的在线特征名列表（可选）
	EnrichFeatures []string
}

// Extract 返回特征矩阵与是否发生了降级。
// products 为空时返回空矩阵（由调用方决定如何处理空目录）。
func (e *ProductExtractor) Extract(ctx context.Context, products []core.Product) (feats [][]float64, degraded bool) {
	if len(products) == 0 {
		return [][]float64{}, false
	}

	defer func() {
		if r := recover(); r != nil {
			feats = matrix.Identity(len(products))
			degraded = true
		}
	}()

	for i := range products {
		if err := products[i].Validate(); err != nil {
			return matrix.Identity(len(products)), true
		}
	}

	// 价格 z-score
	prices := make([]float64, len(products))
	for i, p := range products {
		prices[i] = p.Price
	}
	priceMean := matrix.Mean(prices)
	priceStd := matrix.Std(prices)

	// 类目 one-hot（去重后按字典序，保证确定性）
	catSet := make(map[string]struct{})
	for _, p := range products {
		catSet[p.Category] = struct{}{}
	}
	categories := make([]string, 0, len(catSet))
	for c := range catSet {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	catIndex := make(map[string]int, len(categories))
	for i, c := range categories {
		catIndex[c] = i
	}

	// 评论数归一化分母
	var maxReviews int64
	for _, p := range products {
		if p.Reviews > maxReviews {
			maxReviews = p.Reviews
		}
	}

	// 在线补充特征（可选，失败时跳过整组补充列）
	enrichNames, enriched := e.fetchEnrichment(ctx, products)

	cols := 1 + len(categories) + 2 + len(enrichNames)
	out := make([][]float64, len(products))
	for i, p := range products {
		row := make([]float64, cols)
		if priceStd > 0 {
			row[0] = (p.Price - priceMean) / priceStd
		}
		row[1+catIndex[p.Category]] = 1
		row[1+len(categories)] = p.Rating / 5.0
		if maxReviews > 0 {
			row[1+len(categories)+1] = float64(p.Reviews) / float64(maxReviews)
		}
		for j, name := range enrichNames {
			if vals, ok := enriched[p.ID]; ok {
				row[1+len(categories)+2+j] = vals[name]
			}
		}
		out[i] = row
	}
	return out, false
}

// fetchEnrichment 拉取在线补充特征；未配置或失败时返回空列集合。
func (e *ProductExtractor) fetchEnrichment(ctx context.Context, products []core.Product) ([]string, map[int64]map[string]float64) {
	if e.Enricher == nil || len(e.EnrichFeatures) == 0 {
		return nil, nil
	}

	ids := make([]int64, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}

	vals, err := e.Enricher.ProductFeatures(ctx, ids, e.EnrichFeatures)
	if err != nil || len(vals) == 0 {
		return nil, nil
	}

	names := make([]string, len(e.EnrichFeatures))
	copy(names, e.EnrichFeatures)
	sort.Strings(names)
	return names, vals
}
