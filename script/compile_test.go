package script

import (
	"testing"
	"time"

	"github.com/3kaiu/reader-sub001/native"
	"github.com/3kaiu/reader-sub001/rule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapStore struct {
	data map[string]string
}

func (s *mapStore) Get(key string) (string, bool) {
	v, ok := s.data[key]
	return v, ok
}

func (s *mapStore) Set(key string, value string, _ time.Duration) error {
	s.data[key] = value
	return nil
}

func testEnv() *native.Env {
	ctx := rule.NewContext("  Content  ", "https://example.com").
		WithPreviousResult("hello world").
		WithVariable("token", "abc")
	return &native.Env{
		Ctx:   ctx,
		Store: &mapStore{data: map[string]string{}},
	}
}

// 可识别形态编译为本地计划并正确求值
func TestCompileRecognizedShapes(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{name: "context ref", code: "@js:result", want: "hello world"},
		{name: "base url", code: "@js:baseUrl", want: "https://example.com"},
		{name: "content trim", code: "@js:src.trim()", want: "Content"},
		{name: "string literal method", code: "@js:'aBc'.toUpperCase()", want: "ABC"},
		{name: "helper call", code: "@js:java.md5Encode(result)", want: "5eb63bbbe01eeed093cb22bb8f5acdc3"},
		{name: "nested helper calls", code: "@js:java.base64Encode(java.md5Encode(result))", want: "NWViNjNiYmJlMDFlZWVkMDkzY2IyMmJiOGY1YWNkYzM="},
		{name: "method chain", code: "@js:result.replace('world','go').toUpperCase()", want: "HELLO GO"},
		{name: "method on helper result", code: "@js:java.base64Encode(result).substring(0, 4)", want: "aGVs"},
		{name: "context variable", code: "@js:java.get('token')", want: "abc"},
		{name: "inline tag wrapper", code: "<js>result.trim()</js>", want: "hello world"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := ParseAndAnalyze(tt.code)
			require.True(t, analysis.IsNative(), "reason: %+v", analysis.Reason())

			v, err := analysis.Plan().Run(testEnv())
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.AsString())
		})
	}
}

// split产出列表类别的计划
func TestCompileListKind(t *testing.T) {
	analysis := ParseAndAnalyze("@js:result.split(' ')")
	require.True(t, analysis.IsNative())
	assert.Equal(t, native.KindList, analysis.Plan().Kind())

	v, err := analysis.Plan().Run(testEnv())
	require.NoError(t, err)
	assert.Equal(t, []string{"hello", "world"}, v.ListVal())
}

// 保守性：出现任何未识别节点时整个片段被拒绝，绝不编译可识别的前缀部分
func TestCompileWholeSnippetRejection(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{name: "binary operator", code: "@js:java.md5Encode(result) + 'x'"},
		{name: "unknown identifier", code: "@js:java.md5Encode(document)"},
		{name: "unknown helper", code: "@js:java.ajax(result)"},
		{name: "unknown method", code: "@js:result.reverse()"},
		{name: "bare call", code: "@js:parse(result)"},
		{name: "member access without call", code: "@js:result.length"},
		{name: "computed member access", code: "@js:java['md5Encode'](result)"},
		{name: "recognized call with unrecognized arg", code: "@js:java.base64Encode(result + 'x')"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := ParseAndAnalyze(tt.code)
			require.False(t, analysis.IsNative())
			assert.Nil(t, analysis.Plan())
			assert.Equal(t, ReasonSyntax, analysis.Reason().Kind)
			assert.NotEmpty(t, analysis.Reason().Detail)
		})
	}
}

// 类别不匹配是编译期拒绝，不是运行期强转
func TestCompileKindMismatch(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{name: "string where number wanted", code: "@js:java.timeFormat(result)"},
		{name: "number where string wanted", code: "@js:java.md5Encode(42)"},
		{name: "list receiver for string method", code: "@js:result.split(',').trim()"},
		{name: "wrong arity", code: "@js:java.md5Encode(result, result)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := ParseAndAnalyze(tt.code)
			require.False(t, analysis.IsNative())
			assert.Equal(t, ReasonSyntax, analysis.Reason().Kind)
		})
	}
}

// 同一片段重复分析结果一致，编译是确定且幂等的
func TestAnalyzeIdempotent(t *testing.T) {
	first := ParseAndAnalyze("@js:result.trim()")
	second := ParseAndAnalyze("@js:result.trim()")
	require.True(t, first.IsNative())
	require.True(t, second.IsNative())

	env := testEnv()
	v1, err1 := first.Plan().Run(env)
	v2, err2 := second.Plan().Run(env)
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, v1, v2)
}
