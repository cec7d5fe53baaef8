package executor

// 规则执行器的统一抽象：本地计划执行、结构化查询、外部脚本运行时
// 三种实现共用一个接口，由工厂按能力探测选择

import "github.com/3kaiu/reader-sub001/rule"

type Executor interface {
	// 稳定名称，用于诊断与日志
	Name() string
	// 廉价的能力探测，选择阶段使用
	CanHandle(code string) bool
	// 在给定上下文下执行一条规则
	Execute(code string, ctx *rule.Context) (rule.Result, error)
}
