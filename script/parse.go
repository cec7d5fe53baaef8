package script

// 脚本片段的规整与解析：去掉规则包装惯例（@js:前缀或<js>标签对），
// 启发式判断裸表达式还是多语句脚本，再交给otto的语法解析器；
// 解析失败原样保留诊断文本，方便排查规则书写问题

import (
	"regexp"
	"strings"

	"github.com/3kaiu/reader-sub001/rule"
	"github.com/robertkrimen/otto/parser"
)

// 语句引导关键字，命中任意一个就按多语句脚本处理，不做表达式包裹
var statementKeywordRe = regexp.MustCompile(
	`(^|[^\w$])(var|let|const|function|class|if|else|for|while|do|return|switch|try|throw)([^\w$]|$)`)

// 去掉规则包装：@js:前缀，或首个<js>与最后一个</js>之间取脚本体
func Normalize(raw string) string {
	code := strings.TrimSpace(raw)
	if strings.HasPrefix(code, rule.JsPrefix) {
		return strings.TrimSpace(code[len(rule.JsPrefix):])
	}
	if i := strings.Index(code, rule.JsOpenTag); i >= 0 {
		body := code[i+len(rule.JsOpenTag):]
		if j := strings.LastIndex(body, rule.JsCloseTag); j >= 0 {
			body = body[:j]
		}
		return strings.TrimSpace(body)
	}
	return code
}

// 是否按多语句脚本解析：包含语句关键字，或存在非末尾的分号
func looksLikeScript(code string) bool {
	if statementKeywordRe.MatchString(code) {
		return true
	}
	trimmed := strings.TrimSuffix(code, ";")
	return strings.Contains(trimmed, ";")
}

/*
输入一段原始脚本规则，输出分析结果

规整后按启发式决定是否包裹成分组表达式再解析；
解析成功则交给模式匹配器编译，失败则带着解析器诊断整体移交外部运行时
*/
func ParseAndAnalyze(raw string) *Analysis {
	code := Normalize(raw)
	src := code
	if !looksLikeScript(code) {
		// 裸表达式包一层分组，避免{开头被当作语句块解析
		src = "(" + strings.TrimSuffix(code, ";") + ")"
	}
	program, err := parser.ParseFile(nil, "", src, 0)
	if err != nil {
		return requiresJS(code, ReasonParse, err.Error())
	}
	return compileProgram(code, program)
}
