package stats

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollector(t *testing.T) {
	c := New()

	c.RecordNative()
	c.RecordNative()
	c.RecordJS()
	c.RecordPatternHit()
	c.RecordPatternMiss()
	c.RecordPatternMiss()
	c.RecordPatternMiss()

	snap := c.Snapshot()
	assert.Equal(t, uint64(2), snap.Native)
	assert.Equal(t, uint64(1), snap.JS)
	assert.Equal(t, uint64(1), snap.PatternHit)
	assert.Equal(t, uint64(3), snap.PatternMiss)

	c.Reset()
	assert.Equal(t, Snapshot{}, c.Snapshot())
}

func TestConcurrentRecord(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				c.RecordNative()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, uint64(8000), c.Snapshot().Native)
}

func TestNop(t *testing.T) {
	var c Collector = Nop{}
	c.RecordNative()
	c.RecordJS()
	assert.Equal(t, Snapshot{}, c.Snapshot())
}
