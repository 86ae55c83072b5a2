package engine

// Status 标识一次推荐结果是如何产生的。
// 调用方和测试可以据此区分"无数据所以为空"与"故障兜底"，
// 而不是把两者都折叠成看起来一样的空列表。
type Status string

const (
	StatusPersonalized Status = "personalized" // 基于用户画像的个性化结果
	StatusSimilar      Status = "similar"      // 基于给定商品的相似结果
	StatusHybrid       Status = "hybrid"       // 用户+商品双信号混合结果
	StatusTrending     Status = "trending"     // 热门兜底（原因见 Reason）
	StatusEmpty        Status = "empty"        // 正常打分但无候选可推
)

// 热门兜底原因
const (
	ReasonUntrained = "untrained" // 快照缺失/损坏，引擎处于未训练状态
	ReasonColdStart = "cold_start" // 用户无画像（冷启动）
	ReasonNoSignal  = "no_signal"  // 无任何个性化信号（匿名请求且无行为数据）
	ReasonError     = "error"      // 打分过程异常，已捕获并记录
)

// Result 是一次推荐调用的结果。推荐接口永不向调用方抛错：
// 最坏情况是 StatusTrending + Reason 说明兜底原因。
type Result struct {
	// ProductIDs 推荐的商品 ID，按分数降序，长度 <= 请求的 n
	ProductIDs []int64

	// Status 结果的产生方式
	Status Status

	// Reason 兜底原因；非兜底结果为空串
	Reason string
}
