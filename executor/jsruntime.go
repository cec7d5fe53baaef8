package executor

// 外部脚本运行时的内置实现：基于otto的完整JavaScript求值，
// 编译器证明不了的片段整体移交到这里，src/result/baseUrl和java函数表
// 以注入变量的方式暴露给脚本，语义与本地计划保持一致

import (
	"fmt"

	"github.com/3kaiu/reader-sub001/native"
	"github.com/3kaiu/reader-sub001/rule"
	"github.com/3kaiu/reader-sub001/script"
	"github.com/3kaiu/reader-sub001/store"
	"github.com/robertkrimen/otto"
	"go.uber.org/zap"
)

type JSRuntime struct {
	store  store.Store
	logger *zap.Logger
}

func NewJSRuntime(kv store.Store, logger *zap.Logger) *JSRuntime {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JSRuntime{store: kv, logger: logger}
}

func (e *JSRuntime) Name() string {
	return "otto"
}

// 完整运行时对任意脚本都兜底
func (e *JSRuntime) CanHandle(_ string) bool {
	return true
}

func (e *JSRuntime) Execute(code string, ctx *rule.Context) (rule.Result, error) {
	vm := otto.New()
	env := &native.Env{Ctx: ctx, Store: e.store}
	if ctx != nil {
		vm.Set("src", ctx.Content)
		vm.Set("result", ctx.PreviousResult)
		vm.Set("baseUrl", ctx.BaseURL)
	}
	vm.Set(native.Namespace, e.bindings(vm, env))

	v, err := vm.Run(script.Normalize(code))
	if err != nil {
		return rule.None(), fmt.Errorf("js runtime: %w", err)
	}
	return toResult(v)
}

// 把整张本地函数表按名字桥接成JavaScript函数，
// 参数按otto值的实际类型映射到函数表的值类别
func (e *JSRuntime) bindings(vm *otto.Otto, env *native.Env) map[string]interface{} {
	out := make(map[string]interface{})
	for _, name := range native.FuncNames() {
		fn, _ := native.Lookup(name)
		out[name] = func(call otto.FunctionCall) otto.Value {
			args := make([]native.Value, len(call.ArgumentList))
			for i, a := range call.ArgumentList {
				switch {
				case a.IsNumber():
					f, _ := a.ToFloat()
					args[i] = native.Number(f)
				case a.IsBoolean():
					b, _ := a.ToBoolean()
					args[i] = native.Bool(b)
				default:
					args[i] = native.String(a.String())
				}
			}
			if !fn.Arity(len(args)) {
				return otto.UndefinedValue()
			}
			res, err := fn.Call(env, args)
			if err != nil {
				e.logger.Warn("js helper failed",
					zap.String("helper", fn.Name), zap.Error(err))
				return otto.UndefinedValue()
			}
			value, err := vm.ToValue(res.AsString())
			if err != nil {
				return otto.UndefinedValue()
			}
			return value
		}
	}
	return out
}

// otto求值结果到引擎结果的全函数转换
func toResult(v otto.Value) (rule.Result, error) {
	if !v.IsDefined() || v.IsNull() {
		return rule.None(), nil
	}
	exported, err := v.Export()
	if err != nil {
		return rule.None(), err
	}
	switch t := exported.(type) {
	case nil:
		return rule.None(), nil
	case string:
		return rule.StringResult(t), nil
	case []string:
		return rule.ListResult(t), nil
	case []interface{}:
		items := make([]string, 0, len(t))
		for _, item := range t {
			items = append(items, fmt.Sprint(item))
		}
		return rule.ListResult(items), nil
	default:
		return rule.StringResult(fmt.Sprint(t)), nil
	}
}
