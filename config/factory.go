package config

import (
	"log/slog"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/engine"
	"github.com/rushteam/shoprec/feast"
	"github.com/rushteam/shoprec/filter"
	"github.com/rushteam/shoprec/scorer"
	"github.com/rushteam/shoprec/store"
)

// BuildEngine 按配置装配一个推荐引擎实例。
//
// 依赖装配顺序：存储（Redis 或内存）→ 目录/行为日志适配器 →
// 可选的 Feast 特征增强 → CEL 业务规则 → 引擎选项。
func BuildEngine(cfg *Config, logger *slog.Logger) (*engine.Engine, error) {
	if cfg == nil {
		cfg = Default()
	}
	if logger == nil {
		logger = slog.Default()
	}

	var (
		kv        core.ListStore
		keyPrefix string
		err       error
	)
	if cfg.Redis != nil {
		kv, err = store.NewRedisStore(cfg.Redis.Addr, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		keyPrefix = cfg.Redis.KeyPrefix
	} else {
		kv = store.NewMemoryStore()
	}

	catalog := store.NewCatalogAdapter(kv, keyPrefix)
	inters := store.NewInteractionAdapter(kv, keyPrefix)

	opts := []engine.Option{
		engine.WithName(cfg.Engine),
		engine.WithInteractionStore(inters),
		engine.WithSnapshotPath(cfg.SnapshotPath),
		engine.WithLogger(logger),
	}
	if cfg.Neighbors > 0 {
		opts = append(opts, engine.WithNeighbors(cfg.Neighbors))
	}
	if w := cfg.Blend; w.Collaborative != 0 || w.Content != 0 || w.Popularity != 0 {
		opts = append(opts, engine.WithBlendWeights(scorer.BlendWeights{
			Collaborative: w.Collaborative,
			Content:       w.Content,
			Popularity:    w.Popularity,
		}))
	}

	if cfg.Feast != nil {
		client, err := feast.NewGrpcClient(cfg.Feast.Host, cfg.Feast.Port, cfg.Feast.Project)
		if err != nil {
			return nil, err
		}
		provider := feast.NewProductFeatureProvider(client, cfg.Feast.EntityKey)
		opts = append(opts, engine.WithEnricher(provider, cfg.Feast.Features))
	}

	if len(cfg.Rules) > 0 {
		filters := make([]filter.Filter, 0, len(cfg.Rules))
		for _, expr := range cfg.Rules {
			f, err := filter.NewCELFilter(expr)
			if err != nil {
				return nil, err
			}
			filters = append(filters, f)
		}
		opts = append(opts, engine.WithFilters(filters...))
	}

	return engine.New(catalog, opts...)
}
