// Package engine 组装推荐引擎：模型生命周期（训练/保存/加载/服务）与对外打分接口。
package engine

import (
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/feature"
	"github.com/rushteam/shoprec/filter"
	"github.com/rushteam/shoprec/scorer"
	"github.com/rushteam/shoprec/snapshot"
)

// Engine 是一个显式持有模型快照的推荐引擎实例。
//
// 没有全局单例：每个实例拥有自己的快照、存储与配置，通过依赖注入交给
// 调用方，测试可以构造隔离实例。
//
// 并发模型：
//   - 服务读走 atomic.Pointer 读快照，无锁，可被任意多请求并发调用
//   - 训练全量重建后整体换指针并原子落盘；并发训练互不协调，最后写完者胜出
//   - 首次请求的惰性加载用 singleflight 合并
type Engine struct {
	name      string
	catalog   core.CatalogStore
	inters    core.InteractionStore
	files     *snapshot.FileStore
	extractor *feature.ProductExtractor
	scorer    *scorer.Hybrid
	filters   []filter.Filter
	logger    *slog.Logger

	snap      atomic.Pointer[snapshot.Snapshot]
	loadGroup singleflight.Group
}

// Option 是引擎的配置选项。
type Option func(*Engine)

// WithName 设置引擎名称（快照归属校验用），缺省 "hybrid"。
func WithName(name string) Option {
	return func(e *Engine) {
		if name != "" {
			e.name = name
		}
	}
}

// WithInteractionStore 设置行为日志存储；不设置时协同信号不可用。
func WithInteractionStore(s core.InteractionStore) Option {
	return func(e *Engine) { e.inters = s }
}

// WithSnapshotPath 设置快照文件路径；不设置时模型只存在于内存。
func WithSnapshotPath(path string) Option {
	return func(e *Engine) {
		if path != "" {
			e.files = snapshot.NewFileStore(path)
		}
	}
}

// WithBlendWeights 设置三路信号的融合权重。
func WithBlendWeights(w scorer.BlendWeights) Option {
	return func(e *Engine) { e.scorer.Weights = w }
}

// WithNeighbors 设置协同过滤考虑的相似用户数。
func WithNeighbors(n int) Option {
	return func(e *Engine) { e.scorer.Neighbors = n }
}

// WithFilters 追加服务端过滤器（业务规则等），在打分后、截断前执行。
func WithFilters(filters ...filter.Filter) Option {
	return func(e *Engine) { e.filters = append(e.filters, filters...) }
}

// WithEnricher 设置在线特征提供方及要追加的特征列（如 Feast）。
func WithEnricher(p feature.Provider, featureNames []string) Option {
	return func(e *Engine) {
		e.extractor.Enricher = p
		e.extractor.EnrichFeatures = featureNames
	}
}

// WithLogger 设置结构化日志器，缺省 slog.Default()。
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New 创建引擎实例。catalog 是必需依赖：没有商品目录时连热门兜底都给不出。
func New(catalog core.CatalogStore, opts ...Option) (*Engine, error) {
	if catalog == nil {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput, "engine: catalog store is required")
	}

	e := &Engine{
		name:      "hybrid",
		catalog:   catalog,
		extractor: &feature.ProductExtractor{},
		scorer:    &scorer.Hybrid{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Name 返回引擎名称。
func (e *Engine) Name() string { return e.name }

// current 返回内存中的快照；为空时尝试从磁盘惰性加载（singleflight 合并并发请求）。
// 加载失败（缺失/损坏）按未训练处理，返回 nil。
func (e *Engine) current() *snapshot.Snapshot {
	if s := e.snap.Load(); s != nil {
		return s
	}
	if e.files == nil {
		return nil
	}

	v, _, _ := e.loadGroup.Do("load", func() (any, error) {
		if s := e.snap.Load(); s != nil {
			return s, nil
		}
		s, err := e.files.Load(e.name)
		if err != nil {
			e.logger.Warn("snapshot unavailable, serving trending until trained",
				"engine", e.name, "path", e.files.Path, "err", err)
			return (*snapshot.Snapshot)(nil), nil
		}
		e.snap.Store(s)
		e.logger.Info("snapshot loaded",
			"engine", e.name, "products", len(s.ProductIDs), "users", len(s.UserIDs),
			"trained_at", s.TrainedAt)
		return s, nil
	})
	s, _ := v.(*snapshot.Snapshot)
	return s
}

// Evaluate 返回当前快照的覆盖率统计；未训练时 ok 为 false。
func (e *Engine) Evaluate() (snapshot.Stats, bool) {
	s := e.current()
	if s == nil {
		return snapshot.Stats{}, false
	}
	return s.Evaluate(), true
}
