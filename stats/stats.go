package stats

// 调用计数收集器：显式构造、显式注入，不做进程级环境状态，
// 测试里每个用例注入独立实例即可互不干扰

import "sync/atomic"

type Collector interface {
	RecordNative()      // 一次本地计划执行
	RecordJS()          // 一次外部运行时移交
	RecordPatternHit()  // 一次模式识别成功
	RecordPatternMiss() // 一次模式识别失败
	Snapshot() Snapshot
	Reset()
}

// 某一时刻的计数快照
type Snapshot struct {
	Native      uint64
	JS          uint64
	PatternHit  uint64
	PatternMiss uint64
}

type collector struct {
	native      atomic.Uint64
	js          atomic.Uint64
	patternHit  atomic.Uint64
	patternMiss atomic.Uint64
}

func New() Collector {
	return &collector{}
}

func (c *collector) RecordNative()      { c.native.Add(1) }
func (c *collector) RecordJS()          { c.js.Add(1) }
func (c *collector) RecordPatternHit()  { c.patternHit.Add(1) }
func (c *collector) RecordPatternMiss() { c.patternMiss.Add(1) }

func (c *collector) Snapshot() Snapshot {
	return Snapshot{
		Native:      c.native.Load(),
		JS:          c.js.Load(),
		PatternHit:  c.patternHit.Load(),
		PatternMiss: c.patternMiss.Load(),
	}
}

func (c *collector) Reset() {
	c.native.Store(0)
	c.js.Store(0)
	c.patternHit.Store(0)
	c.patternMiss.Store(0)
}

// 丢弃所有记录的空收集器，未注入收集器时的默认实现
type Nop struct{}

func (Nop) RecordNative()      {}
func (Nop) RecordJS()          {}
func (Nop) RecordPatternHit()  {}
func (Nop) RecordPatternMiss() {}
func (Nop) Snapshot() Snapshot { return Snapshot{} }
func (Nop) Reset()             {}
