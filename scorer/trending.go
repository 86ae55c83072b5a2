package scorer

import (
	"sort"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/pkg/utils"
)

// Trending 按 评分降序 → 评论数降序 → 目录序 返回热门商品。
// 这是整条兜底链的终点：目录非空时永远给得出结果。
func Trending(products []core.Product) []*core.Item {
	idx := make([]int, len(products))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		pa, pb := products[idx[a]], products[idx[b]]
		if pa.Rating != pb.Rating {
			return pa.Rating > pb.Rating
		}
		return pa.Reviews > pb.Reviews
	})

	out := make([]*core.Item, 0, len(products))
	for _, i := range idx {
		it := core.NewItem(products[i].ID)
		it.Score = popularityOf(products[i])
		it.PutLabel("score_source", utils.Label{Value: "trending", Source: "scorer"})
		out = append(out, it)
	}
	return out
}

func popularityOf(p core.Product) float64 {
	s := popularity([]core.Product{p})
	return s[p.ID]
}
