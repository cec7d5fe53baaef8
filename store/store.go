package store

// 键值缓存层的统一接口，规则脚本中的缓存辅助函数经由这里落地，
// 键不存在和已过期对调用方一律表现为未命中

import "time"

type Store interface {
	// 读取键值，未命中（不存在或已过期）时ok为false
	Get(key string) (value string, ok bool)
	// 写入键值，ttl为0表示永不过期
	Set(key string, value string, ttl time.Duration) error
}
