package engine

import (
	"time"

	"github.com/3kaiu/reader-sub001/executor"
	"github.com/3kaiu/reader-sub001/stats"
	"github.com/3kaiu/reader-sub001/store"
	"go.uber.org/zap"
)

type Option func(opts *options)

// 引擎配置选项
type options struct {
	logger        *zap.Logger
	store         store.Store
	collector     stats.Collector
	cacheCapacity int
	cacheTTL      time.Duration
	runtime       executor.Executor // 外部脚本运行时，nil用内置实现
}

var defaultOptions = options{
	logger:        zap.NewNop(),
	collector:     stats.New(),
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

func WithRuntime(runtime executor.Executor) Option {
	return func(opts *options) {
		opts.runtime = runtime
	}
}
