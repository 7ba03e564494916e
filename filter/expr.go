package filter

import (
	"context"

	"github.com/rushteam/shopkit/core"
	"github.com/rushteam/shopkit/pkg/dsl"
)

// ExprFilter 是表达式过滤器：用 CEL 表达式描述剔除规则，命中即过滤。
// 运营侧可以从配置下发规则而不改代码，例如：
//   - label.recall_source == "popular" && item.score < 1.0
//   - label.category == "tobacco"
type ExprFilter struct {
	// Expr 是 CEL 表达式，空表达式不过滤任何商品
	Expr string
}

func (f *ExprFilter) Name() string {
	return "filter.expr"
}

func (f *ExprFilter) ShouldFilter(
	ctx context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if f.Expr == "" {
		return false, nil
	}

	matched, err := dsl.NewEval(item, rctx).Evaluate(f.Expr)
	if err != nil {
		// 表达式错误不中断链路，按保留处理
		return false, nil
	}
	return matched, nil
}
