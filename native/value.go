package native

// 本地操作库的值模型：编译期声明的四种值类别，
// 以及执行期在这四种类别间流转的值容器

import (
	"strconv"
	"strings"
)

// 值类别，编译器据此做参数类别检查
type Kind int

const (
	KindString Kind = iota
	KindList
	KindNumber
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindList:
		return "list"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "string"
	}
}

// 执行期的值，携带自身类别
type Value struct {
	kind Kind
	str  string
	list []string
	num  float64
	b    bool
}

func String(s string) Value {
	return Value{kind: KindString, str: s}
}

func List(items []string) Value {
	return Value{kind: KindList, list: items}
}

func Number(n float64) Value {
	return Value{kind: KindNumber, num: n}
}

func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) Str() string {
	return v.str
}

func (v Value) ListVal() []string {
	return v.list
}

func (v Value) Num() float64 {
	return v.num
}

func (v Value) BoolVal() bool {
	return v.b
}

// 字符串强制转换，全函数：列表用换行连接，数字去掉无意义的小数位
func (v Value) AsString() string {
	switch v.kind {
	case KindList:
		return strings.Join(v.list, "\n")
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return v.str
	}
}
