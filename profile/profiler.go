// Package profile 从行为日志中提炼每个用户的偏好摘要。
package profile

import (
	"sort"

	"github.com/rushteam/shoprec/core"
)

// Build 为每个有行为的用户构建偏好画像。
//
// 对每个用户：取其交互过且存在于目录中的商品（去重），统计众数类目
// （并列时全部保留，按字典序）、平均价格、行为条数、平均评分。
// 用户交互的商品全部不在目录中时不产出画像条目，画像缺失即冷启动信号。
func Build(products []core.Product, interactions []core.Interaction) map[int64]core.PreferenceProfile {
	profiles := make(map[int64]core.PreferenceProfile)
	if len(interactions) == 0 || len(products) == 0 {
		return profiles
	}

	byID := make(map[int64]core.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	type userAgg struct {
		count    int
		products map[int64]core.Product
	}
	aggs := make(map[int64]*userAgg)
	for _, in := range interactions {
		agg := aggs[in.UserID]
		if agg == nil {
			agg = &userAgg{products: make(map[int64]core.Product)}
			aggs[in.UserID] = agg
		}
		agg.count++
		if p, ok := byID[in.ProductID]; ok {
			agg.products[in.ProductID] = p
		}
	}

	for uid, agg := range aggs {
		if len(agg.products) == 0 {
			continue
		}

		catCount := make(map[string]int)
		var priceSum, ratingSum float64
		for _, p := range agg.products {
			catCount[p.Category]++
			priceSum += p.Price
			ratingSum += p.Rating
		}

		maxCount := 0
		for _, c := range catCount {
			if c > maxCount {
				maxCount = c
			}
		}
		cats := make([]string, 0, 1)
		for cat, c := range catCount {
			if c == maxCount {
				cats = append(cats, cat)
			}
		}
		sort.Strings(cats)

		n := float64(len(agg.products))
		profiles[uid] = core.PreferenceProfile{
			PreferredCategories: cats,
			AvgPrice:            priceSum / n,
			InteractionCount:    agg.count,
			AvgRating:           ratingSum / n,
		}
	}
	return profiles
}
