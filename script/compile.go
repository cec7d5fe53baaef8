package script

// 模式匹配器：在语法树上识别固定可枚举的调用形态——
// java命名空间的本地函数调用、字符串结果上的链式方法、以及两者的任意嵌套；
// 识别是保守的：出现任何不在清单上的节点，整个片段立即移交外部运行时，
// 绝不编译片段的一部分而忽略其余——部分编译会悄悄产出错误的提取结果

import (
	"fmt"

	"github.com/3kaiu/reader-sub001/native"
	"github.com/robertkrimen/otto/ast"
)

// 上下文引用标识符
const (
	identContent = "src"
	identResult  = "result"
	identBaseURL = "baseUrl"
)

// 程序级编译：只接受恰好一条表达式语句，其余都是语句级结构
func compileProgram(code string, program *ast.Program) *Analysis {
	if len(program.Body) != 1 {
		return requiresJS(code, ReasonStatement,
			fmt.Sprintf("%d statements, want a single expression", len(program.Body)))
	}
	stmt, ok := program.Body[0].(*ast.ExpressionStatement)
	if !ok {
		return requiresJS(code, ReasonStatement,
			fmt.Sprintf("statement-level construct %T", program.Body[0]))
	}
	op, reason := compileExpression(stmt.Expression)
	if reason != nil {
		return requiresJS(code, reason.Kind, reason.Detail)
	}
	return nativeAnalysis(code, op)
}

// 表达式级编译，返回操作节点或首个未识别节点的原因
func compileExpression(node ast.Expression) (Operation, *Reason) {
	switch n := node.(type) {
	case *ast.StringLiteral:
		return &literalOp{val: native.String(n.Value)}, nil
	case *ast.NumberLiteral:
		switch v := n.Value.(type) {
		case int64:
			return &literalOp{val: native.Number(float64(v))}, nil
		case float64:
			return &literalOp{val: native.Number(v)}, nil
		default:
			return nil, reject(ReasonSyntax, fmt.Sprintf("number literal %q", n.Literal))
		}
	case *ast.BooleanLiteral:
		return &literalOp{val: native.Bool(n.Value)}, nil
	case *ast.Identifier:
		switch n.Name {
		case identContent:
			return &contextOp{field: fieldContent}, nil
		case identResult:
			return &contextOp{field: fieldResult}, nil
		case identBaseURL:
			return &contextOp{field: fieldBaseURL}, nil
		default:
			return nil, reject(ReasonSyntax, fmt.Sprintf("unknown identifier %q", n.Name))
		}
	case *ast.CallExpression:
		return compileCall(n)
	default:
		return nil, reject(ReasonSyntax, fmt.Sprintf("unsupported syntax node %T", node))
	}
}

// 调用编译：被调方必须是成员访问——java.fn(...)或<接收者>.method(...)
func compileCall(call *ast.CallExpression) (Operation, *Reason) {
	dot, ok := call.Callee.(*ast.DotExpression)
	if !ok {
		return nil, reject(ReasonSyntax, fmt.Sprintf("call on %T", call.Callee))
	}
	if ident, ok := dot.Left.(*ast.Identifier); ok && ident.Name == native.Namespace {
		return compileHelperCall(dot.Identifier.Name, call.ArgumentList)
	}
	return compileMethodCall(dot, call.ArgumentList)
}

// java命名空间函数：查签名、对参数个数与类别，任何不符都整体拒绝
func compileHelperCall(name string, argNodes []ast.Expression) (Operation, *Reason) {
	fn, ok := native.Lookup(name)
	if !ok {
		return nil, reject(ReasonSyntax, fmt.Sprintf("unknown helper %s.%s", native.Namespace, name))
	}
	if !fn.Arity(len(argNodes)) {
		return nil, reject(ReasonSyntax,
			fmt.Sprintf("%s.%s takes %d args, got %d", native.Namespace, name, len(fn.Args), len(argNodes)))
	}
	args, reason := compileArgs(argNodes, fn.Args, native.Namespace+"."+name)
	if reason != nil {
		return nil, reason
	}
	return &callOp{fn: fn, args: args}, nil
}

// 链式方法：接收者先编译，其声明输出类别必须满足方法的接收者类别
func compileMethodCall(dot *ast.DotExpression, argNodes []ast.Expression) (Operation, *Reason) {
	name := dot.Identifier.Name
	method, ok := native.LookupMethod(name)
	if !ok {
		return nil, reject(ReasonSyntax, fmt.Sprintf("unknown method %q", name))
	}
	recv, reason := compileExpression(dot.Left)
	if reason != nil {
		return nil, reason
	}
	if recv.Kind() != method.Recv {
		return nil, reject(ReasonSyntax,
			fmt.Sprintf("method %q wants %s receiver, got %s", name, method.Recv, recv.Kind()))
	}
	if !method.Arity(len(argNodes)) {
		return nil, reject(ReasonSyntax,
			fmt.Sprintf("method %q takes %d args, got %d", name, len(method.Args), len(argNodes)))
	}
	args, reason := compileArgs(argNodes, method.Args, name)
	if reason != nil {
		return nil, reason
	}
	return &methodOp{method: method, recv: recv, args: args}, nil
}

// 参数逐个编译并与声明类别比对，类别不符是编译期拒绝而非运行期强转
func compileArgs(argNodes []ast.Expression, kinds []native.Kind, callee string) ([]Operation, *Reason) {
	args := make([]Operation, len(argNodes))
	for i, argNode := range argNodes {
		op, reason := compileExpression(argNode)
		if reason != nil {
			return nil, reason
		}
		if op.Kind() != kinds[i] {
			return nil, reject(ReasonSyntax,
				fmt.Sprintf("%s arg %d wants %s, got %s", callee, i, kinds[i], op.Kind()))
		}
		args[i] = op
	}
	return args, nil
}

func reject(kind ReasonKind, detail string) *Reason {
	return &Reason{Kind: kind, Detail: detail}
}
