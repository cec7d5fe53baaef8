package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// 字符串与列表转换是全函数：空结果和空列表都折叠为空串，列表换行连接
func TestResultCoercion(t *testing.T) {
	tests := []struct {
		name       string
		result     Result
		wantString string
		wantList   []string
	}{
		{name: "none", result: None(), wantString: "", wantList: []string{}},
		{name: "empty list", result: ListResult([]string{}), wantString: "", wantList: []string{}},
		{name: "single", result: StringResult("a"), wantString: "a", wantList: []string{"a"}},
		{name: "list", result: ListResult([]string{"a", "b"}), wantString: "a\nb", wantList: []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantString, tt.result.String())
			assert.Equal(t, tt.wantList, tt.result.List())
		})
	}
}

// 上下文的builder写法产生副本，原上下文保持不变
func TestContextImmutable(t *testing.T) {
	ctx := NewContext("body", "https://example.com")
	next := ctx.WithVariable("k", "v").WithPreviousResult("prev").WithContent("other")

	assert.Equal(t, "body", ctx.Content)
	assert.Empty(t, ctx.PreviousResult)
	_, ok := ctx.Variable("k")
	assert.False(t, ok)

	assert.Equal(t, "other", next.Content)
	assert.Equal(t, "prev", next.PreviousResult)
	v, ok := next.Variable("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}
