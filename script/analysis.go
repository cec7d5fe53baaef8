package script

// 脚本分析结果的标签联合：要么编译成了可直接执行的本地计划，
// 要么带着原因整体移交外部脚本运行时，不存在部分编译的中间态

// 移交原因的类别
type ReasonKind int

const (
	ReasonParse     ReasonKind = iota // 语法解析失败
	ReasonSyntax                      // 不支持的语法节点
	ReasonStatement                   // 语句级结构，编译器不做归约
)

func (k ReasonKind) String() string {
	switch k {
	case ReasonParse:
		return "parse_failure"
	case ReasonStatement:
		return "statement"
	default:
		return "unsupported_syntax"
	}
}

type Reason struct {
	Kind   ReasonKind
	Detail string // 解析失败时保留底层诊断原文
}

type Analysis struct {
	Original string    // 规整后的脚本原文
	plan     Operation // 非nil表示可本地执行
	reason   *Reason
}

func nativeAnalysis(code string, plan Operation) *Analysis {
	return &Analysis{Original: code, plan: plan}
}

func requiresJS(code string, kind ReasonKind, detail string) *Analysis {
	return &Analysis{Original: code, reason: &Reason{Kind: kind, Detail: detail}}
}

func (a *Analysis) IsNative() bool {
	return a.plan != nil
}

// 本地执行计划，仅IsNative为真时非nil
func (a *Analysis) Plan() Operation {
	return a.plan
}

// 移交原因，仅IsNative为假时非nil
func (a *Analysis) Reason() *Reason {
	return a.reason
}
