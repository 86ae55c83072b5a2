package filter

import (
	"context"

	"github.com/rushteam/shoprec/core"
)

// SeenFilter 剔除请求用户已经交互过的商品。
// 已购/已看的商品再推荐没有价值，即便热门度信号会把它们顶到前排。
type SeenFilter struct {
	// Seen 用户已触达的商品 ID 集合（来自交互矩阵的非零列）
	Seen map[int64]struct{}
}

func NewSeenFilter(seen map[int64]struct{}) *SeenFilter {
	return &SeenFilter{Seen: seen}
}

func (f *SeenFilter) Name() string { return "filter.seen" }

func (f *SeenFilter) Keep(_ context.Context, _ *core.RecommendContext, it *core.Item) (bool, error) {
	if f.Seen == nil || it == nil {
		return true, nil
	}
	_, seen := f.Seen[it.ID]
	return !seen, nil
}
