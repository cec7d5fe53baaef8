package rule

import "strings"

// 求值结果的标签联合：单值、列表、空三种形态，
// 到字符串和到列表的转换都是全函数，永不失败

type resultKind int

const (
	resultNone resultKind = iota
	resultString
	resultList
)

type Result struct {
	kind resultKind
	str  string
	list []string
}

// 空结果
func None() Result {
	return Result{kind: resultNone}
}

func StringResult(s string) Result {
	return Result{kind: resultString, str: s}
}

func ListResult(items []string) Result {
	return Result{kind: resultList, list: items}
}

func (r Result) IsNone() bool {
	return r.kind == resultNone
}

// 字符串强制转换：空结果和空列表都折叠为空串，列表用换行符连接
func (r Result) String() string {
	switch r.kind {
	case resultString:
		return r.str
	case resultList:
		return strings.Join(r.list, "\n")
	default:
		return ""
	}
}

// 列表强制转换：空结果得到空列表，单值得到单元素列表
func (r Result) List() []string {
	switch r.kind {
	case resultList:
		out := make([]string, len(r.list))
		copy(out, r.list)
		return out
	case resultString:
		return []string{r.str}
	default:
		return []string{}
	}
}
