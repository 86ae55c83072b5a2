package core

// PreferenceProfile 是单个用户的偏好摘要，每次训练全量重建。
// 它是描述性元数据：只用于判断用户是否具备个性化资格（冷启动检测）
// 与推荐解释，不直接参与混合打分。
type PreferenceProfile struct {
	// PreferredCategories 交互最多的类目；出现并列时全部保留（按字典序）
	PreferredCategories []string `json:"preferred_categories"`

	// AvgPrice 交互过的商品（去重后）的平均价格
	AvgPrice float64 `json:"avg_price"`

	// InteractionCount 行为记录条数（不去重）
	InteractionCount int `json:"interaction_count"`

	// AvgRating 交互过的商品（去重后）的平均评分
	AvgRating float64 `json:"avg_rating"`
}
