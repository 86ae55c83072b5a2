package core

// RecommendContext 承载一次推荐请求的用户/商品/场景信息，贯穿打分链路透传。
// UserID / ProductID 为 0 表示该维度缺失（匿名请求或非详情页场景）。
type RecommendContext struct {
	UserID    int64
	ProductID int64
	Scene     string

	// Params 请求级上下文参数（device_type、session_id 等），按需透传给过滤规则
	Params map[string]any
}
