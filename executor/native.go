package executor

// 本地执行器：脚本规则先查编译产物缓存，未命中时在锁外解析编译，
// 编译出的计划是对操作树的纯解释执行，不再发生二次编译

import (
	"fmt"

	"github.com/3kaiu/reader-sub001/cache"
	"github.com/3kaiu/reader-sub001/native"
	"github.com/3kaiu/reader-sub001/rule"
	"github.com/3kaiu/reader-sub001/script"
	"github.com/3kaiu/reader-sub001/stats"
	"github.com/3kaiu/reader-sub001/store"
)

type NativeExecutor struct {
	cache     *cache.Cache
	store     store.Store
	collector stats.Collector
}

func NewNative(planCache *cache.Cache, kv store.Store, collector stats.Collector) *NativeExecutor {
	if collector == nil {
		collector = stats.Nop{}
	}
	return &NativeExecutor{cache: planCache, store: kv, collector: collector}
}

func (e *NativeExecutor) Name() string {
	return "native"
}

// 取缓存的分析结果，未命中时现场编译并回填；
// 同一条新规则的并发首次编译允许竞争，编译幂等，后写者覆盖
func (e *NativeExecutor) Analyze(code string) *script.Analysis {
	if e.cache != nil {
		if v, ok := e.cache.Get(code); ok {
			return v.(*script.Analysis)
		}
	}
	analysis := script.ParseAndAnalyze(code)
	if analysis.IsNative() {
		e.collector.RecordPatternHit()
	} else {
		e.collector.RecordPatternMiss()
	}
	if e.cache != nil {
		e.cache.Add(code, analysis)
	}
	return analysis
}

func (e *NativeExecutor) CanHandle(code string) bool {
	return e.Analyze(code).IsNative()
}

func (e *NativeExecutor) Execute(code string, ctx *rule.Context) (rule.Result, error) {
	analysis := e.Analyze(code)
	if !analysis.IsNative() {
		reason := analysis.Reason()
		return rule.None(), fmt.Errorf("native executor: %s: %s", reason.Kind, reason.Detail)
	}
	env := &native.Env{Ctx: ctx, Store: e.store}
	v, err := analysis.Plan().Run(env)
	if err != nil {
		return rule.None(), err
	}
	e.collector.RecordNative()
	if v.Kind() == native.KindList {
		return rule.ListResult(v.ListVal()), nil
	}
	return rule.StringResult(v.AsString()), nil
}
