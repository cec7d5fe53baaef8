package analyzer

// JSONPath解析：内容解析为JSON文档后求值路径表达式，
// 路径命中数组时列表查询逐元素取字符串形态，单值查询取首元素；
// 标量以外的值按"找第一个标量"的方针收敛——数组递归取首元素，
// 对象因Go的map没有稳定顺序，序列化为紧凑JSON代替"首个成员"

import (
	"math"
	"strconv"
	"strings"

	"github.com/3kaiu/reader-sub001/rule"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"go.uber.org/zap"
)

type JSONPathAnalyzer struct {
	logger *zap.Logger
}

func NewJSONPath(logger *zap.Logger) *JSONPathAnalyzer {
	return &JSONPathAnalyzer{logger: logger}
}

// 解析内容与路径并求值，内容或路径非法时ok为false并记录警告，
// ok为false是格式错误而非零匹配，两者对调用方的表现不同
func (a *JSONPathAnalyzer) query(rawRule string, content string) (results []interface{}, ok bool) {
	path := strings.TrimSpace(rawRule)
	path = strings.TrimPrefix(path, rule.JSONPrefix)

	doc, err := oj.ParseString(content)
	if err != nil {
		a.logger.Warn("parse json content failed", zap.Error(err))
		return nil, false
	}
	expr, err := jp.ParseString(path)
	if err != nil {
		a.logger.Warn("invalid jsonpath",
			zap.String("path", path), zap.Error(err))
		return nil, false
	}
	return expr.Get(doc), true
}

func (a *JSONPathAnalyzer) GetString(rawRule string, content string) (string, error) {
	results, ok := a.query(rawRule, content)
	if !ok {
		return "", nil
	}
	if len(results) == 0 {
		return "", ErrNoResult
	}
	return jsonString(results[0]), nil
}

func (a *JSONPathAnalyzer) GetList(rawRule string, content string) ([]string, error) {
	results, _ := a.query(rawRule, content)
	if len(results) == 0 {
		return []string{}, nil
	}
	// 路径命中单个数组值时展开其元素，否则逐个命中值取字符串形态
	if len(results) == 1 {
		if arr, ok := results[0].([]interface{}); ok {
			values := make([]string, 0, len(arr))
			for _, v := range arr {
				values = append(values, jsonString(v))
			}
			return values, nil
		}
	}
	values := make([]string, 0, len(results))
	for _, v := range results {
		values = append(values, jsonString(v))
	}
	return values, nil
}

// JSON没有独立的片段概念，对象和数组的片段即其序列化结果
func (a *JSONPathAnalyzer) GetElements(rawRule string, content string) ([]string, error) {
	results, _ := a.query(rawRule, content)
	elements := make([]string, 0, len(results))
	for _, v := range results {
		switch v.(type) {
		case map[string]interface{}, []interface{}:
			elements = append(elements, oj.JSON(v))
		default:
			elements = append(elements, jsonString(v))
		}
	}
	return elements, nil
}

// JSON值到字符串的全函数转换
func jsonString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		if math.IsNaN(t) {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []interface{}:
		if len(t) == 0 {
			return ""
		}
		return jsonString(t[0])
	case map[string]interface{}:
		return oj.JSON(t)
	default:
		return oj.JSON(t)
	}
}
