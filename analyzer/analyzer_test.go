package analyzer

import (
	"testing"

	"github.com/3kaiu/reader-sub001/rule"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// 五种语法共享的零匹配契约：GetString报ErrNoResult，GetList与GetElements返回空列表
func TestZeroMatchContract(t *testing.T) {
	tests := []struct {
		name    string
		rule    string
		content string
	}{
		{name: "css", rule: "@css:span.missing", content: `<div>x</div>`},
		{name: "jsonpath", rule: "$.missing", content: `{"name":"x"}`},
		{name: "xpath", rule: "//missing", content: `<root><a/></root>`},
		{name: "regex", rule: `##(zzz)`, content: "abc"},
		{name: "default", rule: "class.missing.0", content: `<div>x</div>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := For(rule.Detect(tt.rule, tt.content), zap.NewNop())

			_, err := a.GetString(tt.rule, tt.content)
			assert.ErrorIs(t, err, ErrNoResult)

			items, err := a.GetList(tt.rule, tt.content)
			assert.NoError(t, err)
			assert.NotNil(t, items)
			assert.Empty(t, items)

			elements, err := a.GetElements(tt.rule, tt.content)
			assert.NoError(t, err)
			assert.Empty(t, elements)
		})
	}
}

// 类型到解析器的映射是封闭的，脚本类型没有结构化解析器
func TestFor(t *testing.T) {
	assert.IsType(t, &CSSAnalyzer{}, For(rule.TypeCss, nil))
	assert.IsType(t, &JSONPathAnalyzer{}, For(rule.TypeJSONPath, nil))
	assert.IsType(t, &XPathAnalyzer{}, For(rule.TypeXPath, nil))
	assert.IsType(t, &RegexAnalyzer{}, For(rule.TypeRegex, nil))
	assert.IsType(t, &DefaultAnalyzer{}, For(rule.TypeDefault, nil))
	assert.Nil(t, For(rule.TypeJs, nil))
}
