// Package shoprec 是一个电商混合推荐引擎（Shop Recommender）。
//
// 设计要点：
// - Snapshot-first: 训练产出不可变快照（特征/相似度/画像），服务只读快照，无锁并发
// - 三路融合: 协同过滤 + 内容相似 + 热门度按权重融合，缺路自动重归一化
// - 永不报错的读路径: 未训练/冷启动/打分异常一律降级为热门兜底，Result 带状态与原因
package shoprec

import (
	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/engine"
)

// 轻量 facade：便于用户直接 import "shoprec" 使用核心抽象。
type Engine = engine.Engine
type Result = engine.Result
type Option = engine.Option

type Product = core.Product
type Interaction = core.Interaction
type PreferenceProfile = core.PreferenceProfile

const (
	StatusPersonalized = engine.StatusPersonalized
	StatusSimilar      = engine.StatusSimilar
	StatusHybrid       = engine.StatusHybrid
	StatusTrending     = engine.StatusTrending
	StatusEmpty        = engine.StatusEmpty
)

// New 创建推荐引擎实例，等价于 engine.New。
func New(catalog core.CatalogStore, opts ...Option) (*Engine, error) {
	return engine.New(catalog, opts...)
}
