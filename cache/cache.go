package cache

// 编译产物缓存：条目数有界（LRU淘汰）+ 存活时间双重约束。
// 锁只护住映射结构本身的读写，编译工作永远发生在锁外，
// 同一条新规则的首次编译允许并发竞争，后写者覆盖——编译是确定且幂等的

import (
	"sync"
	"time"

	"github.com/golang/groupcache/lru"
)

type entry struct {
	value    interface{}
	storedAt time.Time
}

type Cache struct {
	mu  sync.Mutex
	lru *lru.Cache
	ttl time.Duration
	now func() time.Time
}

// 创建缓存，capacity<=0表示条目数不设上限，ttl<=0表示条目永不过期
func New(capacity int, ttl time.Duration) *Cache {
	if capacity < 0 {
		capacity = 0
	}
	return &Cache{
		lru: lru.New(capacity),
		ttl: ttl,
		now: time.Now,
	}
}

// 读取条目，过期条目当场移除并按未命中处理
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	e := v.(entry)
	if c.ttl > 0 && c.now().Sub(e.storedAt) > c.ttl {
		c.lru.Remove(key)
		return nil, false
	}
	return e.value, true
}

// 写入条目，超出容量时由LRU淘汰最久未用的条目
func (c *Cache) Add(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Add(key, entry{value: value, storedAt: c.now()})
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}
