package memstore

// 进程内键值存储，基于go-cache实现过期清理，适用于单机部署和测试

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type MemStore struct {
	cache *gocache.Cache
}

// 创建内存存储，defaultTTL是未显式指定过期时间时使用的默认值，
// 后台每cleanup间隔清理一次过期键
func New(defaultTTL time.Duration, cleanup time.Duration) *MemStore {
	return &MemStore{
		cache: gocache.New(defaultTTL, cleanup),
	}
}

func (m *MemStore) Get(key string) (string, bool) {
	v, ok := m.cache.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func (m *MemStore) Set(key string, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	m.cache.Set(key, value, ttl)
	return nil
}
