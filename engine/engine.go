package engine

// 规则求值引擎的总入口：一条规则+当前内容+上下文进来，
// 脚本规则走执行器工厂（本地编译优先、外部运行时兜底），
// 其余规则走对应语法的结构化查询解析器。
// 求值是同步无状态的，可以在多个工作协程上对独立规则并发调用

import (
	"errors"

	"github.com/3kaiu/reader-sub001/analyzer"
	"github.com/3kaiu/reader-sub001/executor"
	"github.com/3kaiu/reader-sub001/rule"
	"github.com/3kaiu/reader-sub001/stats"
	"go.uber.org/zap"
)

type Engine struct {
	options
	factory *executor.Factory
}

func New(opts ...Option) *Engine {
	options := defaultOptions
	for _, opt := range opts {
		opt(&options)
	}
	e := &Engine{options: options}
	e.factory = executor.NewFactory(
		executor.WithLogger(options.logger),
		executor.WithStore(options.store),
		executor.WithStats(options.collector),
		executor.WithCacheCapacity(options.cacheCapacity),
		executor.WithCacheTTL(options.cacheTTL),
		executor.WithRuntime(options.runtime),
	)
	return e
}

// 顶层求值入口，任何规则类型都返回Result
func (e *Engine) Evaluate(rawRule string, ctx *rule.Context) (rule.Result, error) {
	return e.factory.Execute(rawRule, ctx)
}

// 单值查询：结构化规则零匹配返回analyzer.ErrNoResult，调用方可恢复
func (e *Engine) GetString(rawRule string, ctx *rule.Context) (string, error) {
	t := rule.Detect(rawRule, ctx.Content)
	if t == rule.TypeJs {
		result, err := e.Evaluate(rawRule, ctx)
		if err != nil {
			return "", err
		}
		return result.String(), nil
	}
	return analyzer.For(t, e.logger).GetString(rawRule, ctx.Content)
}

// 列表查询：零匹配返回空列表
func (e *Engine) GetList(rawRule string, ctx *rule.Context) ([]string, error) {
	t := rule.Detect(rawRule, ctx.Content)
	if t == rule.TypeJs {
		result, err := e.Evaluate(rawRule, ctx)
		if err != nil {
			return nil, err
		}
		return result.List(), nil
	}
	return analyzer.For(t, e.logger).GetList(rawRule, ctx.Content)
}

// 片段查询：返回序列化的子片段，供下级规则继续在片段上求值
func (e *Engine) GetElements(rawRule string, ctx *rule.Context) ([]string, error) {
	t := rule.Detect(rawRule, ctx.Content)
	if t == rule.TypeJs {
		result, err := e.Evaluate(rawRule, ctx)
		if err != nil {
			return nil, err
		}
		return result.List(), nil
	}
	return analyzer.For(t, e.logger).GetElements(rawRule, ctx.Content)
}

/*
输入字段名到规则的映射与上下文，输出字段名到提取值的映射

批量提取对单条坏规则保持韧性：查不到折叠为空串，
执行失败记录警告后同样折叠为空串，绝不让一条规则中断整批字段
*/
func (e *Engine) ExtractFields(fields map[string]string, ctx *rule.Context) map[string]string {
	out := make(map[string]string, len(fields))
	for name, rawRule := range fields {
		s, err := e.GetString(rawRule, ctx)
		if err != nil && !errors.Is(err, analyzer.ErrNoResult) {
			e.logger.Warn("field extraction failed",
				zap.String("field", name),
				zap.String("rule", rawRule),
				zap.Error(err))
		}
		out[name] = s
	}
	return out
}

// 调用计数快照
func (e *Engine) Stats() stats.Snapshot {
	return e.collector.Snapshot()
}
