package executor

import (
	"time"

	"github.com/3kaiu/reader-sub001/stats"
	"github.com/3kaiu/reader-sub001/store"
	"go.uber.org/zap"
)

type Option func(opts *options)

// 执行器工厂配置选项
type options struct {
	logger        *zap.Logger
	store         store.Store     // 键值缓存层，缓存辅助函数的落地
	collector     stats.Collector // 调用计数收集器
	cacheCapacity int             // 编译产物缓存条目上限
	cacheTTL      time.Duration   // 编译产物缓存存活时间
	runtime       Executor        // 外部脚本运行时能力，nil时使用内置的otto实现
}

var defaultOptions = options{
	logger:        zap.NewNop(),
	collector:     stats.Nop{},
	cacheCapacity: 200,
	cacheTTL:      10 * time.Minute,
}

func WithLogger(logger *zap.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

func WithStore(s store.Store) Option {
	return func(opts *options) {
		opts.store = s
	}
}

func WithStats(collector stats.Collector) Option {
	return func(opts *options) {
		opts.collector = collector
	}
}

func WithCacheCapacity(capacity int) Option {
	return func(opts *options) {
		opts.cacheCapacity = capacity
	}
}

func WithCacheTTL(ttl time.Duration) Option {
	return func(opts *options) {
		opts.cacheTTL = ttl
	}
}

func WithRuntime(runtime Executor) Option {
	return func(opts *options) {
		opts.runtime = runtime
	}
}
