// Package filter 提供打分结果的服务端过滤：已交互剔除、CEL 业务规则。
package filter

import (
	"context"

	"github.com/rushteam/shoprec/core"
)

// Filter 判断单个候选是否保留。
// 返回 (true, nil) 保留；(false, nil) 剔除；出错时由 Apply 按 fail-open 处理。
type Filter interface {
	Name() string
	Keep(ctx context.Context, rctx *core.RecommendContext, it *core.Item) (bool, error)
}

// Apply 依次对每个候选执行所有过滤器，保留通过全部过滤器的候选。
// 单个过滤器出错时该过滤器对该候选视为放行（fail-open）：
// 过滤规则的故障不应让推荐结果整体消失。
func Apply(ctx context.Context, rctx *core.RecommendContext, items []*core.Item, filters ...Filter) []*core.Item {
	if len(filters) == 0 {
		return items
	}

	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		keep := true
		for _, f := range filters {
			ok, err := f.Keep(ctx, rctx, it)
			if err != nil {
				continue
			}
			if !ok {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, it)
		}
	}
	return out
}
