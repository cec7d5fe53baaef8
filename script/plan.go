package script

// 本地执行计划：有限无环的操作树，每个节点携带声明的值类别，
// 树在编译期定型，执行只是对树的纯解释，不再发生任何编译

import (
	"github.com/3kaiu/reader-sub001/native"
)

type Operation interface {
	// 节点的声明输出类别
	Kind() native.Kind
	// 在给定环境下求值
	Run(env *native.Env) (native.Value, error)
}

// 字面量节点
type literalOp struct {
	val native.Value
}

func (o *literalOp) Kind() native.Kind {
	return o.val.Kind()
}

func (o *literalOp) Run(_ *native.Env) (native.Value, error) {
	return o.val, nil
}

// 上下文引用节点
type contextField int

const (
	fieldContent contextField = iota // src：当前内容
	fieldResult                      // result：上一条规则的输出
	fieldBaseURL                     // baseUrl：内容来源地址
)

type contextOp struct {
	field contextField
}

func (o *contextOp) Kind() native.Kind {
	return native.KindString
}

func (o *contextOp) Run(env *native.Env) (native.Value, error) {
	if env.Ctx == nil {
		return native.String(""), nil
	}
	switch o.field {
	case fieldResult:
		return native.String(env.Ctx.PreviousResult), nil
	case fieldBaseURL:
		return native.String(env.Ctx.BaseURL), nil
	default:
		return native.String(env.Ctx.Content), nil
	}
}

// java命名空间函数调用节点，参数类别已在编译期对过签名
type callOp struct {
	fn   native.Func
	args []Operation
}

func (o *callOp) Kind() native.Kind {
	return o.fn.Ret
}

func (o *callOp) Run(env *native.Env) (native.Value, error) {
	args, err := runAll(env, o.args)
	if err != nil {
		return native.Value{}, err
	}
	return o.fn.Call(env, args)
}

// 链式方法调用节点，接收者本身也是一个操作
type methodOp struct {
	method native.Method
	recv   Operation
	args   []Operation
}

func (o *methodOp) Kind() native.Kind {
	return o.method.Ret
}

func (o *methodOp) Run(env *native.Env) (native.Value, error) {
	recv, err := o.recv.Run(env)
	if err != nil {
		return native.Value{}, err
	}
	args, err := runAll(env, o.args)
	if err != nil {
		return native.Value{}, err
	}
	return o.method.Call(recv, args)
}

func runAll(env *native.Env, ops []Operation) ([]native.Value, error) {
	values := make([]native.Value, len(ops))
	for i, op := range ops {
		v, err := op.Run(env)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}
