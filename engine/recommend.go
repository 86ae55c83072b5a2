package engine

import (
	"context"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/filter"
	"github.com/rushteam/shoprec/scorer"
	"github.com/rushteam/shoprec/snapshot"
)

// RecommendForUser 为用户返回个性化推荐。
// 无画像（冷启动）或引擎未训练时降级为热门兜底。
func (e *Engine) RecommendForUser(ctx context.Context, userID int64, n int) Result {
	return e.recommend(ctx, userID, 0, n, StatusPersonalized)
}

// RecommendSimilar 返回与给定商品相似的商品（内容信号 + 热门度融合）。
func (e *Engine) RecommendSimilar(ctx context.Context, productID int64, n int) Result {
	return e.recommend(ctx, 0, productID, n, StatusSimilar)
}

// RecommendHybrid 融合用户与商品双路信号的推荐。
// userID / productID 任一为 0 表示该维度缺失。
func (e *Engine) RecommendHybrid(ctx context.Context, userID, productID int64, n int) Result {
	return e.recommend(ctx, userID, productID, n, StatusHybrid)
}

// Trending 返回全局热门商品：评分降序 → 评论数降序。
// 目录为空时返回空列表，永不报错。
func (e *Engine) Trending(ctx context.Context, n int) Result {
	return e.trending(ctx, n, "")
}

// recommend 是所有推荐入口的共同实现。
//
// 兜底链（自上而下）：
//   1. 引擎未训练（快照缺失/损坏）→ 热门
//   2. 无用户无商品且无任何行为数据 → 热门
//   3. 用户存在但无画像（冷启动）→ 热门，协同路直接跳过
//   4. 打分过程任何 panic → 捕获、记录、热门
//
// 打分接口永不向调用方抛错。
func (e *Engine) recommend(ctx context.Context, userID, productID int64, n int, status Status) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("scoring panic recovered, falling back to trending",
				"engine", e.name, "user", userID, "product", productID, "panic", r)
			res = e.trending(ctx, n, ReasonError)
		}
	}()

	snap := e.current()
	if snap == nil {
		return e.trending(ctx, n, ReasonUntrained)
	}
	if userID == 0 && productID == 0 && len(snap.UserItem) == 0 {
		return e.trending(ctx, n, ReasonNoSignal)
	}
	if userID != 0 {
		if _, ok := snap.Profiles[userID]; !ok {
			return e.trending(ctx, n, ReasonColdStart)
		}
	}

	rctx := &core.RecommendContext{UserID: userID, ProductID: productID, Scene: string(status)}
	items, err := e.scorer.Score(ctx, snap, rctx)
	if err != nil {
		e.logger.Error("scoring failed, falling back to trending", "engine", e.name, "err", err)
		return e.trending(ctx, n, ReasonError)
	}

	items = e.applyFilters(ctx, snap, rctx, items)
	ids := truncateIDs(items, n)
	if len(ids) == 0 {
		return Result{ProductIDs: []int64{}, Status: StatusEmpty}
	}
	return Result{ProductIDs: ids, Status: status}
}

// applyFilters 执行服务端过滤：用户已交互剔除 + 配置的业务规则。
// CEL 规则需要商品属性，先把目录镜像挂到候选 Meta 上。
func (e *Engine) applyFilters(ctx context.Context, s *snapshot.Snapshot, rctx *core.RecommendContext, items []*core.Item) []*core.Item {
	if len(e.filters) > 0 {
		prodIndex := s.ProductIndex()
		for _, it := range items {
			if idx, ok := prodIndex[it.ID]; ok {
				filter.ProductMeta(it, s.Products[idx])
			}
		}
	}

	// 已交互商品与相似推荐的锚定商品本身都不进入结果
	seen := scorer.SeenProducts(s, rctx.UserID)
	if rctx.ProductID != 0 {
		if seen == nil {
			seen = make(map[int64]struct{}, 1)
		}
		seen[rctx.ProductID] = struct{}{}
	}

	filters := make([]filter.Filter, 0, len(e.filters)+1)
	if len(seen) > 0 {
		filters = append(filters, filter.NewSeenFilter(seen))
	}
	filters = append(filters, e.filters...)
	return filter.Apply(ctx, rctx, items, filters...)
}

// trending 热门兜底：优先读实时目录（评分/评论数最新），
// 目录不可用时退回快照里的目录镜像。
func (e *Engine) trending(ctx context.Context, n int, reason string) Result {
	products, err := e.catalog.ListProducts(ctx)
	if err != nil || len(products) == 0 {
		if s := e.snap.Load(); s != nil {
			products = s.Products
		}
	}

	items := scorer.Trending(products)
	return Result{
		ProductIDs: truncateIDs(items, n),
		Status:     StatusTrending,
		Reason:     reason,
	}
}

func truncateIDs(items []*core.Item, n int) []int64 {
	if n > 0 && len(items) > n {
		items = items[:n]
	}
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	return ids
}
