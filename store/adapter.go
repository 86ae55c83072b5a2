package store

import (
	"context"
	"encoding/json"

	"github.com/rushteam/shoprec/core"
)

// CatalogAdapter 是基于 core.Store 的商品目录适配器。
// 外部应用把商品目录镜像成一个 JSON 数组写到 {KeyPrefix}:products，
// 引擎训练时整体读出，数组顺序即训练时的商品迭代顺序。
type CatalogAdapter struct {
	store core.Store

	// KeyPrefix 是存储 key 的前缀，商品目录位于 {KeyPrefix}:products
	KeyPrefix string
}

// NewCatalogAdapter 创建一个基于 core.Store 的目录适配器。
func NewCatalogAdapter(s core.Store, keyPrefix string) *CatalogAdapter {
	if keyPrefix == "" {
		keyPrefix = "catalog"
	}
	return &CatalogAdapter{store: s, KeyPrefix: keyPrefix}
}

var _ core.CatalogStore = (*CatalogAdapter)(nil)

func (a *CatalogAdapter) ListProducts(ctx context.Context) ([]core.Product, error) {
	data, err := a.store.Get(ctx, a.KeyPrefix+":products")
	if err != nil {
		if core.IsStoreNotFound(err) {
			return []core.Product{}, nil
		}
		return nil, err
	}

	var products []core.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeCorrupt, "catalog: decode products: "+err.Error())
	}
	return products, nil
}

// SaveProducts 把商品目录整体写入存储（镜像语义，覆盖写）。
func (a *CatalogAdapter) SaveProducts(ctx context.Context, products []core.Product) error {
	for i := range products {
		if err := products[i].Validate(); err != nil {
			return err
		}
	}
	data, err := json.Marshal(products)
	if err != nil {
		return err
	}
	return a.store.Set(ctx, a.KeyPrefix+":products", data)
}

// InteractionAdapter 是基于 core.ListStore 的行为日志适配器。
// 每条行为记录 JSON 编码后追加到 {KeyPrefix}:log，保持写入时间序。
type InteractionAdapter struct {
	store core.ListStore

	// KeyPrefix 是存储 key 的前缀，日志位于 {KeyPrefix}:log
	KeyPrefix string
}

// NewInteractionAdapter 创建一个基于 core.ListStore 的行为日志适配器。
func NewInteractionAdapter(s core.ListStore, keyPrefix string) *InteractionAdapter {
	if keyPrefix == "" {
		keyPrefix = "interactions"
	}
	return &InteractionAdapter{store: s, KeyPrefix: keyPrefix}
}

var _ core.InteractionStore = (*InteractionAdapter)(nil)

func (a *InteractionAdapter) ListInteractions(ctx context.Context) ([]core.Interaction, error) {
	rows, err := a.store.LRange(ctx, a.KeyPrefix+":log", 0, -1)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return []core.Interaction{}, nil
		}
		return nil, err
	}

	out := make([]core.Interaction, 0, len(rows))
	for _, row := range rows {
		var in core.Interaction
		if err := json.Unmarshal(row, &in); err != nil {
			// 单条损坏记录跳过，不让训练因此失败
			continue
		}
		out = append(out, in)
	}
	return out, nil
}

func (a *InteractionAdapter) AppendInteraction(ctx context.Context, in *core.Interaction) error {
	if in == nil {
		return core.NewDomainError(core.ModuleInteraction, core.ErrorCodeInvalidInput, "interaction is nil")
	}
	if err := in.Normalize(); err != nil {
		return err
	}
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return a.store.RPush(ctx, a.KeyPrefix+":log", data)
}
