package analyzer

// 结构化查询解析器的公共契约：五种语法各自独立实现，
// 零匹配与格式错误的处理语义在所有实现间保持一致——
// GetString查不到返回ErrNoResult，GetList查不到返回空列表，
// 规则本身无法解析时降级为空结果并记录警告，绝不让单条坏规则中断批量解析

import (
	"errors"

	"github.com/3kaiu/reader-sub001/rule"
	"go.uber.org/zap"
)

// 单值查询零匹配时返回的可恢复错误，调用方用errors.Is区分"没查到"和真正的失败
var ErrNoResult = errors.New("analyzer: no result")

type Analyzer interface {
	// 单值查询，零匹配返回ErrNoResult
	GetString(rawRule string, content string) (string, error)
	// 列表查询，零匹配返回空列表
	GetList(rawRule string, content string) ([]string, error)
	// 片段查询，返回序列化的子片段而非拍平的文本
	GetElements(rawRule string, content string) ([]string, error)
}

// 按规则类型取对应的解析器，脚本类型没有结构化解析器，返回nil
func For(t rule.Type, logger *zap.Logger) Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch t {
	case rule.TypeCss:
		return NewCSS(logger)
	case rule.TypeJSONPath:
		return NewJSONPath(logger)
	case rule.TypeXPath:
		return NewXPath(logger)
	case rule.TypeRegex:
		return NewRegex(logger)
	case rule.TypeDefault:
		return NewDefault(logger)
	default:
		return nil
	}
}
