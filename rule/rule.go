package rule

// 规则类型判定：一条规则文本只属于一种语法，由前缀标记决定，
// 无标记时最后参考内容形态做一次启发式回退

import "strings"

// 规则语法类型，封闭枚举
type Type int

const (
	TypeDefault Type = iota // 默认紧凑语法
	TypeCss                 // CSS选择器
	TypeJSONPath            // JSONPath
	TypeXPath               // XPath
	TypeRegex               // 正则
	TypeJs                  // JavaScript脚本
)

// 返回类型的稳定名称，用于日志和诊断
func (t Type) String() string {
	switch t {
	case TypeCss:
		return "css"
	case TypeJSONPath:
		return "jsonpath"
	case TypeXPath:
		return "xpath"
	case TypeRegex:
		return "regex"
	case TypeJs:
		return "js"
	default:
		return "default"
	}
}

const (
	JsPrefix    = "@js:"
	JsOpenTag   = "<js>"
	JsCloseTag  = "</js>"
	CssPrefix   = "@css:"
	XPathPrefix = "@XPath:"
	JSONPrefix  = "@json:"
	RegexMark   = "##"
)

/*
输入一条规则文本和当前待解析内容，输出规则的语法类型

按优先级依次检查显式标记：脚本标记、CSS标记、XPath标记或裸//、JSON标记或$.与$[、
正则的##前缀；全部未命中时检查内容形态，内容以{或[开头按JSONPath处理，否则按默认语法处理。
内容形态回退是刻意保留的启发式：对JSON形态内容书写默认语法规则的作者会被误判，
这里保持既有行为不做二次猜测
*/
func Detect(rawRule string, content string) Type {
	r := strings.TrimSpace(rawRule)
	switch {
	case strings.HasPrefix(r, JsPrefix) || strings.Contains(r, JsOpenTag):
		return TypeJs
	case strings.HasPrefix(r, CssPrefix):
		return TypeCss
	case strings.HasPrefix(r, XPathPrefix) || strings.HasPrefix(r, "//"):
		return TypeXPath
	case strings.HasPrefix(r, JSONPrefix) || strings.HasPrefix(r, "$.") || strings.HasPrefix(r, "$["):
		return TypeJSONPath
	case strings.HasPrefix(r, RegexMark):
		return TypeRegex
	}
	c := strings.TrimSpace(content)
	if strings.HasPrefix(c, "{") || strings.HasPrefix(c, "[") {
		return TypeJSONPath
	}
	return TypeDefault
}
