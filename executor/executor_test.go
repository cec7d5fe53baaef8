package executor

import (
	"testing"
	"time"

	"github.com/3kaiu/reader-sub001/rule"
	"github.com/3kaiu/reader-sub001/stats"
	"github.com/3kaiu/reader-sub001/store/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 记录被移交脚本的桩运行时
type stubRuntime struct {
	calls []string
}

func (s *stubRuntime) Name() string { return "stub" }

func (s *stubRuntime) CanHandle(string) bool { return true }

func (s *stubRuntime) Execute(code string, _ *rule.Context) (rule.Result, error) {
	s.calls = append(s.calls, code)
	return rule.StringResult("from-stub"), nil
}

func newTestFactory(runtime Executor, collector stats.Collector) *Factory {
	return NewFactory(
		WithStore(memstore.New(time.Minute, time.Minute)),
		WithStats(collector),
		WithRuntime(runtime),
		WithCacheCapacity(16),
		WithCacheTTL(time.Minute),
	)
}

func TestSelect(t *testing.T) {
	stub := &stubRuntime{}
	f := newTestFactory(stub, stats.New())

	tests := []struct {
		name string
		code string
		want string
	}{
		{name: "css rule", code: "@css:div.title@text", want: "query"},
		{name: "jsonpath rule", code: "$.store.book[0].title", want: "query"},
		{name: "regex rule", code: "##(\\d+)", want: "query"},
		{name: "compilable script", code: "@js:result.trim()", want: "native"},
		{name: "uncompilable script", code: "@js:result + 'x'", want: "stub"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Select(tt.code, "<div>x</div>").Name())
		})
	}
}

func TestExecuteNativePath(t *testing.T) {
	stub := &stubRuntime{}
	collector := stats.New()
	f := newTestFactory(stub, collector)

	ctx := rule.NewContext("<div>x</div>", "").WithPreviousResult("  padded  ")
	res, err := f.Execute("@js:result.trim()", ctx)
	require.NoError(t, err)
	assert.Equal(t, "padded", res.String())
	assert.Empty(t, stub.calls)

	snap := collector.Snapshot()
	assert.Equal(t, uint64(1), snap.Native)
	assert.Equal(t, uint64(0), snap.JS)
	assert.Equal(t, uint64(1), snap.PatternHit)
}

func TestExecuteListResult(t *testing.T) {
	f := newTestFactory(&stubRuntime{}, stats.New())

	ctx := rule.NewContext("", "").WithPreviousResult("a,b,c")
	res, err := f.Execute("@js:result.split(',')", ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, res.List())
}

func TestExecuteDelegation(t *testing.T) {
	stub := &stubRuntime{}
	collector := stats.New()
	f := newTestFactory(stub, collector)

	ctx := rule.NewContext("", "").WithPreviousResult("x")
	res, err := f.Execute("@js:result + '!'", ctx)
	require.NoError(t, err)
	assert.Equal(t, "from-stub", res.String())
	assert.Equal(t, []string{"@js:result + '!'"}, stub.calls)

	snap := collector.Snapshot()
	assert.Equal(t, uint64(1), snap.JS)
	assert.Equal(t, uint64(1), snap.PatternMiss)
	assert.Equal(t, uint64(0), snap.Native)
}

// 分析结果缓存：同一规则重复执行只识别一次，否定结果同样缓存
func TestAnalysisCached(t *testing.T) {
	stub := &stubRuntime{}
	collector := stats.New()
	f := newTestFactory(stub, collector)
	ctx := rule.NewContext("", "").WithPreviousResult("x")

	for i := 0; i < 3; i++ {
		_, err := f.Execute("@js:result.trim()", ctx)
		require.NoError(t, err)
		_, err = f.Execute("@js:result + '!'", ctx)
		require.NoError(t, err)
	}

	snap := collector.Snapshot()
	assert.Equal(t, uint64(1), snap.PatternHit)
	assert.Equal(t, uint64(1), snap.PatternMiss)
	assert.Equal(t, uint64(3), snap.Native)
	assert.Equal(t, uint64(3), snap.JS)
	assert.Equal(t, 2, f.CacheLen())
}

func TestExecuteQueryPath(t *testing.T) {
	f := newTestFactory(&stubRuntime{}, stats.New())

	ctx := rule.NewContext(`<div class="title">Hello</div>`, "")
	res, err := f.Execute("@css:div.title@text", ctx)
	require.NoError(t, err)
	assert.Equal(t, "Hello", res.String())

	// 没查到折叠为空结果
	res, err = f.Execute("@css:span.missing@text", ctx)
	require.NoError(t, err)
	assert.True(t, res.IsNone())
}

func TestNativeExecuteRejectsDelegated(t *testing.T) {
	exec := NewNative(nil, nil, nil)
	_, err := exec.Execute("@js:result + 'x'", rule.NewContext("", ""))
	assert.Error(t, err)
}
