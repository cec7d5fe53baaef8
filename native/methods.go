package native

// 字符串接收者上的链式方法表，覆盖规则脚本里高频出现的变换，
// 与函数表共享类别声明，供编译器检查接收者与参数

import "strings"

type Method struct {
	Name    string
	Recv    Kind
	Args    []Kind
	MinArgs int
	Ret     Kind
	Call    func(recv Value, args []Value) (Value, error)
}

func (m Method) Arity(n int) bool {
	min := m.MinArgs
	if min == 0 {
		min = len(m.Args)
	}
	return n >= min && n <= len(m.Args)
}

// 按名称查找链式方法
func LookupMethod(name string) (Method, bool) {
	m, ok := methods[name]
	return m, ok
}

var methods = map[string]Method{
	"trim": {
		Name: "trim", Recv: KindString, Args: []Kind{}, Ret: KindString,
		Call: func(recv Value, _ []Value) (Value, error) {
			return String(strings.TrimSpace(recv.Str())), nil
		},
	},
	"toUpperCase": {
		Name: "toUpperCase", Recv: KindString, Args: []Kind{}, Ret: KindString,
		Call: func(recv Value, _ []Value) (Value, error) {
			return String(strings.ToUpper(recv.Str())), nil
		},
	},
	"toLowerCase": {
		Name: "toLowerCase", Recv: KindString, Args: []Kind{}, Ret: KindString,
		Call: func(recv Value, _ []Value) (Value, error) {
			return String(strings.ToLower(recv.Str())), nil
		},
	},
	// 替换所有出现位置，与脚本运行时的全局替换习惯一致
	"replace": {
		Name: "replace", Recv: KindString, Args: []Kind{KindString, KindString}, Ret: KindString,
		Call: func(recv Value, args []Value) (Value, error) {
			return String(strings.ReplaceAll(recv.Str(), args[0].Str(), args[1].Str())), nil
		},
	},
	"split": {
		Name: "split", Recv: KindString, Args: []Kind{KindString}, Ret: KindList,
		Call: func(recv Value, args []Value) (Value, error) {
			return List(strings.Split(recv.Str(), args[0].Str())), nil
		},
	},
	// 下标越界按脚本语义收拢到合法区间，不报错
	"substring": {
		Name: "substring", Recv: KindString, Args: []Kind{KindNumber, KindNumber}, MinArgs: 1, Ret: KindString,
		Call: func(recv Value, args []Value) (Value, error) {
			runes := []rune(recv.Str())
			start := clamp(int(args[0].Num()), len(runes))
			end := len(runes)
			if len(args) == 2 {
				end = clamp(int(args[1].Num()), len(runes))
			}
			if start > end {
				start, end = end, start
			}
			return String(string(runes[start:end])), nil
		},
	},
	"indexOf": {
		Name: "indexOf", Recv: KindString, Args: []Kind{KindString}, Ret: KindNumber,
		Call: func(recv Value, args []Value) (Value, error) {
			return Number(float64(strings.Index(recv.Str(), args[0].Str()))), nil
		},
	},
	"contains": {
		Name: "contains", Recv: KindString, Args: []Kind{KindString}, Ret: KindBool,
		Call: func(recv Value, args []Value) (Value, error) {
			return Bool(strings.Contains(recv.Str(), args[0].Str())), nil
		},
	},
	"startsWith": {
		Name: "startsWith", Recv: KindString, Args: []Kind{KindString}, Ret: KindBool,
		Call: func(recv Value, args []Value) (Value, error) {
			return Bool(strings.HasPrefix(recv.Str(), args[0].Str())), nil
		},
	},
	"endsWith": {
		Name: "endsWith", Recv: KindString, Args: []Kind{KindString}, Ret: KindBool,
		Call: func(recv Value, args []Value) (Value, error) {
			return Bool(strings.HasSuffix(recv.Str(), args[0].Str())), nil
		},
	},
}

func clamp(i int, max int) int {
	if i < 0 {
		return 0
	}
	if i > max {
		return max
	}
	return i
}
