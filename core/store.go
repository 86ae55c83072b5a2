package core

import "context"

// CatalogStore 是商品目录的只读接口，由外部应用提供实现。
// 返回的切片顺序即训练时的商品迭代顺序（决定矩阵列序与打分并列时的先后）。
type CatalogStore interface {
	ListProducts(ctx context.Context) ([]Product, error)
}

// InteractionStore 是行为日志接口：训练侧全量读取，写入侧追加。
// AppendInteraction 是 fire-and-forget 语义：调用方只关心创建成功/失败。
type InteractionStore interface {
	ListInteractions(ctx context.Context) ([]Interaction, error)
	AppendInteraction(ctx context.Context, in *Interaction) error
}

// Store 是通用 KV 存储接口（Redis / Memory / ...）。
// 引擎通过适配器把 CatalogStore / InteractionStore 架在任意 Store 之上。
type Store interface {
	Name() string
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl ...int) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// ListStore 是支持 list 结构的 KV 存储扩展接口，用于追加式行为日志。
type ListStore interface {
	Store

	// RPush 在 key 对应的 list 尾部追加元素（保持时间序）
	RPush(ctx context.Context, key string, values ...[]byte) error

	// LRange 读取 list 的 [start, stop] 区间（含两端），-1 表示末尾
	LRange(ctx context.Context, key string, start, stop int64) ([][]byte, error)
}
