package executor

// 执行器工厂：持有编译产物缓存与三种执行器，
// 选择策略——脚本规则先尝试本地编译，证明不了的带原因移交外部运行时，
// 其余规则类型走结构化查询

import (
	"github.com/3kaiu/reader-sub001/cache"
	"github.com/3kaiu/reader-sub001/rule"
	"go.uber.org/zap"
)

type Factory struct {
	options
	planCache *cache.Cache
	native    *NativeExecutor
	query     *QueryExecutor
	runtime   Executor
}

func NewFactory(opts ...Option) *Factory {
	options := defaultOptions
	for _, opt := range opts {
		opt(&options)
	}
	f := &Factory{options: options}
	f.planCache = cache.New(options.cacheCapacity, options.cacheTTL)
	f.native = NewNative(f.planCache, options.store, options.collector)
	f.query = NewQuery(options.logger)
	f.runtime = options.runtime
	if f.runtime == nil {
		f.runtime = NewJSRuntime(options.store, options.logger)
	}
	return f
}

/*
输入规则文本与当前内容，输出应当处理这条规则的执行器

脚本类型的规则先做本地编译能力探测，编译不了的记录原因并选择外部运行时；
非脚本规则一律交给结构化查询执行器
*/
func (f *Factory) Select(code string, content string) Executor {
	if rule.Detect(code, content) != rule.TypeJs {
		return f.query
	}
	analysis := f.native.Analyze(code)
	if analysis.IsNative() {
		return f.native
	}
	reason := analysis.Reason()
	f.logger.Debug("delegating to js runtime",
		zap.String("rule", code),
		zap.String("reason_kind", reason.Kind.String()),
		zap.String("reason", reason.Detail))
	return f.runtime
}

// 选择并执行，调用计数在这里统一记录移交
func (f *Factory) Execute(code string, ctx *rule.Context) (rule.Result, error) {
	exec := f.Select(code, ctx.Content)
	if exec == f.runtime {
		f.collector.RecordJS()
	}
	return exec.Execute(code, ctx)
}

// 编译产物缓存的当前条目数，观测用
func (f *Factory) CacheLen() int {
	return f.planCache.Len()
}
