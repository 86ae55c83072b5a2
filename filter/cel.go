package filter

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/shoprec/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
	celEnvErr  error
)

func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("product", cel.DynType),
			cel.Variable("item", cel.DynType),
			cel.Variable("rctx", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// CELFilter 用 CEL (Common Expression Language) 表达式做业务规则过滤。
// 表达式返回 true 表示候选保留。
//
// 表达式可访问的变量：
//   - product: 商品属性 map（id, category, price, rating, reviews）
//   - item: 打分结果 map（id, score）
//   - rctx: 请求上下文 map（user_id, product_id, scene）
//
// 示例：
//   - `product.price < 500.0` → 只推 500 以内的商品
//   - `product.category != "adult"` → 剔除受限类目
//   - `item.score > 0.1` → 截掉长尾低分
type CELFilter struct {
	// Expr 原始表达式（用于日志/观测）
	Expr string

	prg cel.Program
}

// NewCELFilter 编译表达式并返回过滤器。编译一次，Keep 时复用。
func NewCELFilter(expr string) (*CELFilter, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, err
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %v", issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %v", err)
	}
	return &CELFilter{Expr: expr, prg: prg}, nil
}

func (f *CELFilter) Name() string { return "filter.cel" }

func (f *CELFilter) Keep(_ context.Context, rctx *core.RecommendContext, it *core.Item) (bool, error) {
	if f.prg == nil || it == nil {
		return true, nil
	}

	out, _, err := f.prg.Eval(buildInput(rctx, it))
	if err != nil {
		return false, fmt.Errorf("eval error: %v", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据
func buildInput(rctx *core.RecommendContext, it *core.Item) map[string]interface{} {
	productMap := map[string]interface{}{}
	if p, ok := it.Meta["product"].(map[string]interface{}); ok {
		productMap = p
	}

	rctxMap := map[string]interface{}{}
	if rctx != nil {
		rctxMap["user_id"] = rctx.UserID
		rctxMap["product_id"] = rctx.ProductID
		rctxMap["scene"] = rctx.Scene
	}

	return map[string]interface{}{
		"product": productMap,
		"item": map[string]interface{}{
			"id":    it.ID,
			"score": it.Score,
		},
		"rctx": rctxMap,
	}
}

// ProductMeta 把商品属性转为 CEL 可访问的 map，并挂到候选的 Meta 上。
func ProductMeta(it *core.Item, p core.Product) {
	if it == nil {
		return
	}
	if it.Meta == nil {
		it.Meta = make(map[string]any)
	}
	it.Meta["product"] = map[string]interface{}{
		"id":       p.ID,
		"category": p.Category,
		"price":    p.Price,
		"rating":   p.Rating,
		"reviews":  p.Reviews,
	}
}
