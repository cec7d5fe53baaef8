package sqlstore

import "go.uber.org/zap"

type Option func(opts *options)

// MySQL存储配置选项
type options struct {
	sqlURL string      // 数据库连接串
	table  string      // 键值表名
	logger *zap.Logger // 日志
}

var defaultOptions = options{
	table:  "kv_cache",
	logger: zap.NewNop(),
}

func WithSQLURL(sqlURL string) Option {
	return func(opts *options) {
		opts.sqlURL = sqlURL
	}
}

func WithTable(table string) Option {
	return func(opts *options) {
		opts.table = table
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}
