package executor

// 结构化查询执行器：按规则类型分发到对应的解析器，
// "没查到"是可恢复条件，折叠为空结果而不是错误向上抛

import (
	"errors"
	"fmt"

	"github.com/3kaiu/reader-sub001/analyzer"
	"github.com/3kaiu/reader-sub001/rule"
	"go.uber.org/zap"
)

type QueryExecutor struct {
	logger *zap.Logger
}

func NewQuery(logger *zap.Logger) *QueryExecutor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QueryExecutor{logger: logger}
}

func (e *QueryExecutor) Name() string {
	return "query"
}

// 非脚本规则都能走结构化查询
func (e *QueryExecutor) CanHandle(code string) bool {
	return rule.Detect(code, "") != rule.TypeJs
}

func (e *QueryExecutor) Execute(code string, ctx *rule.Context) (rule.Result, error) {
	t := rule.Detect(code, ctx.Content)
	a := analyzer.For(t, e.logger)
	if a == nil {
		return rule.None(), fmt.Errorf("query executor: no analyzer for rule type %s", t)
	}
	s, err := a.GetString(code, ctx.Content)
	if err != nil {
		if errors.Is(err, analyzer.ErrNoResult) {
			return rule.None(), nil
		}
		return rule.None(), err
	}
	return rule.StringResult(s), nil
}
