package core

import "time"

// InteractionKind 是用户行为类型。
// 不同行为代表不同强度的兴趣信号，权重由 WeightFor 统一给定。
type InteractionKind string

const (
	KindView     InteractionKind = "view"     // 浏览商品
	KindClick    InteractionKind = "click"    // 点击商品
	KindCart     InteractionKind = "cart"     // 加入购物车
	KindWishlist InteractionKind = "wishlist" // 加入心愿单
	KindPurchase InteractionKind = "purchase" // 购买
	KindRating   InteractionKind = "rating"   // 评分
)

// interactionWeights 是行为类型到权重的固定映射表。
// 权重在写入时确定性赋值，训练阶段不再修改。
var interactionWeights = map[InteractionKind]float64{
	KindView:     1.0,
	KindClick:    2.0,
	KindWishlist: 2.5,
	KindCart:     3.0,
	KindRating:   4.0,
	KindPurchase: 5.0,
}

// WeightFor 返回行为类型对应的权重；未知类型按最弱信号处理（1.0）。
func WeightFor(kind InteractionKind) float64 {
	if w, ok := interactionWeights[kind]; ok {
		return w
	}
	return 1.0
}

// Interaction 是一条用户-商品行为记录（追加式日志的一行）。
type Interaction struct {
	UserID      int64           `json:"user_id"`
	ProductID   int64           `json:"product_id"`
	Kind        InteractionKind `json:"kind"`
	RatingValue *int            `json:"rating_value,omitempty"` // 仅 kind=rating 时存在，取值 1-5
	Weight      float64         `json:"weight"`
	Timestamp   time.Time       `json:"timestamp"`
}

// Normalize 补全并校验一条行为记录：
//   - Weight 为 0 时按行为类型自动赋权
//   - RatingValue 只允许出现在 kind=rating 的记录上，且取值 1-5
func (in *Interaction) Normalize() error {
	if in.Weight == 0 {
		in.Weight = WeightFor(in.Kind)
	}
	if in.Weight <= 0 {
		return NewDomainError(ModuleInteraction, ErrorCodeInvalidInput, "interaction weight must be > 0")
	}
	if in.RatingValue != nil {
		if in.Kind != KindRating {
			return NewDomainError(ModuleInteraction, ErrorCodeInvalidInput, "rating_value only allowed for rating interactions")
		}
		if *in.RatingValue < 1 || *in.RatingValue > 5 {
			return NewDomainError(ModuleInteraction, ErrorCodeInvalidInput, "rating_value must be in [1, 5]")
		}
	}
	if in.Timestamp.IsZero() {
		in.Timestamp = time.Now()
	}
	return nil
}
