package core

// Product 是推荐引擎消费的商品快照（只读输入）。
// 由外部应用（商品目录）提供，引擎不负责其持久化。
type Product struct {
	ID       int64   `json:"id"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Rating   float64 `json:"rating"`  // 聚合评分，取值 [0, 5]
	Reviews  int64   `json:"reviews"` // 累计评论数
}

// Validate 校验商品不变量：价格非负、评分在 [0,5] 区间。
func (p *Product) Validate() error {
	if p.Price < 0 {
		return NewDomainError(ModuleCatalog, ErrorCodeInvalidInput, "product price must be >= 0")
	}
	if p.Rating < 0 || p.Rating > 5 {
		return NewDomainError(ModuleCatalog, ErrorCodeInvalidInput, "product rating must be in [0, 5]")
	}
	return nil
}
