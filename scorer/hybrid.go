// Package scorer 实现混合打分：协同过滤、内容相似、热门度三路信号的加权融合。
package scorer

import (
	"context"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/pkg/utils"
	"github.com/rushteam/shoprec/snapshot"
)

// BlendWeights 是三路信号的融合权重。
type BlendWeights struct {
	Collaborative float64
	Content       float64
	Popularity    float64
}

// DefaultBlendWeights 返回默认融合权重。
func DefaultBlendWeights() BlendWeights {
	return BlendWeights{
		Collaborative: 0.4,
		Content:       0.35,
		Popularity:    0.25,
	}
}

// Hybrid 基于已加载的模型快照做混合打分。
//
// 三路组件分数（每路是 商品ID → 实数 的映射）：
//  1. 协同过滤：取最相似的 5 个用户，把他们交互过、而目标用户没碰过的
//     商品按 相似度×权重 累加
//  2. 内容相似：给定商品的相似度行（剔除自身）
//  3. 热门度：0.6×(评分/5) + 0.4×min(评论数/100, 1)，永远可用
//
// 融合：对每个候选商品求 Σ score_i × weight_i，再除以"给了该商品非零分数"
// 的组件权重和。只被一路组件提到的商品拿到完整的相对贡献，
// 不会被对它沉默的组件稀释。该归一化行为由测试显式固定。
//
// Hybrid 只负责打分与排序，不做截断与过滤；两者由引擎层处理。
type Hybrid struct {
	// Weights 融合权重，零值时使用 DefaultBlendWeights
	Weights BlendWeights

	// Neighbors 协同过滤考虑的相似用户数，<=0 时取 5
	Neighbors int
}

// Score 对一次请求打分，返回按分数降序（并列按目录序）的候选列表。
// 三路组件并发计算后融合。
func (h *Hybrid) Score(ctx context.Context, snap *snapshot.Snapshot, rctx *core.RecommendContext) ([]*core.Item, error) {
	if snap == nil || rctx == nil || len(snap.ProductIDs) == 0 {
		return nil, nil
	}

	w := h.Weights
	if w.Collaborative == 0 && w.Content == 0 && w.Popularity == 0 {
		w = DefaultBlendWeights()
	}

	var (
		collab  map[int64]float64
		content map[int64]float64
		popular map[int64]float64
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		collab = h.collaborative(egCtx, snap, rctx.UserID)
		return nil
	})
	eg.Go(func() error {
		content = h.contentBased(egCtx, snap, rctx.ProductID)
		return nil
	})
	eg.Go(func() error {
		popular = popularity(snap.Products)
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	type component struct {
		scores map[int64]float64
		weight float64
		name   string
	}
	components := make([]component, 0, 3)
	if collab != nil {
		components = append(components, component{collab, w.Collaborative, "collaborative"})
	}
	if content != nil {
		components = append(components, component{content, w.Content, "content"})
	}
	components = append(components, component{popular, w.Popularity, "popularity"})

	// 候选集合 = 各存在组件键的并集
	candidates := make(map[int64]struct{})
	for _, c := range components {
		for pid := range c.scores {
			candidates[pid] = struct{}{}
		}
	}

	prodIndex := snap.ProductIndex()
	items := make([]*core.Item, 0, len(candidates))
	for pid := range candidates {
		var combined, totalWeight float64
		var sources []string
		for _, c := range components {
			score := c.scores[pid]
			combined += score * c.weight
			if score != 0 {
				totalWeight += c.weight
				sources = append(sources, c.name)
			}
		}
		if totalWeight <= 0 {
			continue
		}

		it := core.NewItem(pid)
		it.Score = combined / totalWeight
		for _, src := range sources {
			it.PutLabel("score_source", utils.Label{Value: src, Source: "scorer"})
		}
		items = append(items, it)
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return prodIndex[items[i].ID] < prodIndex[items[j].ID]
	})
	return items, nil
}

// collaborative 计算协同过滤分数。
// 需要：用户在矩阵中有行、且用户相似度矩阵存在；否则返回 nil（该路信号缺席）。
func (h *Hybrid) collaborative(_ context.Context, snap *snapshot.Snapshot, userID int64) map[int64]float64 {
	if userID == 0 || len(snap.UserSim) == 0 || len(snap.UserItem) == 0 {
		return nil
	}
	userIdx, ok := snap.UserIndex()[userID]
	if !ok {
		return nil
	}

	topK := h.Neighbors
	if topK <= 0 {
		topK = 5
	}

	// 相似用户降序排列（剔除自身，相似度并列按行号升序）
	type neighbor struct {
		idx int
		sim float64
	}
	neighbors := make([]neighbor, 0, len(snap.UserSim[userIdx])-1)
	for j, sim := range snap.UserSim[userIdx] {
		if j == userIdx {
			continue
		}
		neighbors = append(neighbors, neighbor{idx: j, sim: sim})
	}
	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].sim > neighbors[j].sim
	})
	if len(neighbors) > topK {
		neighbors = neighbors[:topK]
	}

	// 邻居交互过、目标用户没碰过的商品：按 相似度×权重 累加
	target := snap.UserItem[userIdx]
	scores := make(map[int64]float64)
	for _, nb := range neighbors {
		row := snap.UserItem[nb.idx]
		for col, weight := range row {
			if weight <= 0 || target[col] != 0 {
				continue
			}
			scores[snap.ProductIDs[col]] += nb.sim * weight
		}
	}
	return scores
}

// contentBased 返回给定商品的相似度行（剔除商品自身）。
// 商品缺失或未知时返回 nil（该路信号缺席）。
func (h *Hybrid) contentBased(_ context.Context, snap *snapshot.Snapshot, productID int64) map[int64]float64 {
	if productID == 0 || len(snap.ProductSim) == 0 {
		return nil
	}
	idx, ok := snap.ProductIndex()[productID]
	if !ok {
		return nil
	}

	row := snap.ProductSim[idx]
	scores := make(map[int64]float64, len(row)-1)
	for j, sim := range row {
		if j == idx {
			continue
		}
		scores[snap.ProductIDs[j]] = sim
	}
	return scores
}

// popularity 计算全目录热门度分数：质量（评分）与需求证明（评论量）的有界单调组合。
// 零行为数据时依然可用。
func popularity(products []core.Product) map[int64]float64 {
	scores := make(map[int64]float64, len(products))
	for _, p := range products {
		ratingScore := p.Rating / 5.0
		reviewScore := math.Min(float64(p.Reviews)/100.0, 1.0)
		scores[p.ID] = ratingScore*0.6 + reviewScore*0.4
	}
	return scores
}

// SeenProducts 返回用户在交互矩阵中已触达的商品集合，用于服务端已购/已看过滤。
func SeenProducts(snap *snapshot.Snapshot, userID int64) map[int64]struct{} {
	if snap == nil || userID == 0 || len(snap.UserItem) == 0 {
		return nil
	}
	userIdx, ok := snap.UserIndex()[userID]
	if !ok {
		return nil
	}
	seen := make(map[int64]struct{})
	for col, v := range snap.UserItem[userIdx] {
		if v != 0 {
			seen[snap.ProductIDs[col]] = struct{}{}
		}
	}
	return seen
}
