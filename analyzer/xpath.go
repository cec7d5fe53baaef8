package analyzer

// XPath解析：底层求值器要求内容是良构XML，而抓到的页面往往不是，
// 所以求值前做尽力而为的规整——去掉doctype声明、给无根片段包一层合成根；
// 仍然解析不了的按宽松HTML解析，两条路径共用同一套取值逻辑

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/3kaiu/reader-sub001/rule"
	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"go.uber.org/zap"
)

type XPathAnalyzer struct {
	logger *zap.Logger
}

func NewXPath(logger *zap.Logger) *XPathAnalyzer {
	return &XPathAnalyzer{logger: logger}
}

var doctypeRe = regexp.MustCompile(`(?i)<!DOCTYPE[^>]*>`)

// 规整并解析内容，返回可供求值的导航器构造结果
func (a *XPathAnalyzer) parse(content string) (xpath.NodeNavigator, bool) {
	normalized := doctypeRe.ReplaceAllString(content, "")
	if doc, err := xmlquery.Parse(strings.NewReader(normalized)); err == nil {
		return xmlquery.CreateXPathNavigator(doc), true
	}
	// 无根片段包一层合成根再试
	if doc, err := xmlquery.Parse(strings.NewReader("<root>" + normalized + "</root>")); err == nil {
		return xmlquery.CreateXPathNavigator(doc), true
	}
	if doc, err := htmlquery.Parse(strings.NewReader(content)); err == nil {
		return htmlquery.CreateXPathNavigator(doc), true
	}
	a.logger.Warn("xpath content not parseable")
	return nil, false
}

/*
输入规则与内容，输出节点字符串值列表、序列化片段列表、结果是否为节点集、求值是否成功

标量结果（字符串、数字、布尔）直接转字符串，NaN数字转为空串；
节点集逐节点取修剪后的字符串值，片段取节点含自身的序列化结果
*/
func (a *XPathAnalyzer) evaluate(rawRule string, content string) (values []string, elements []string, nodeset bool, ok bool) {
	path := strings.TrimSpace(rawRule)
	path = strings.TrimPrefix(path, rule.XPathPrefix)

	expr, err := xpath.Compile(path)
	if err != nil {
		a.logger.Warn("invalid xpath", zap.String("path", path), zap.Error(err))
		return nil, nil, false, false
	}
	nav, parsed := a.parse(content)
	if !parsed {
		return nil, nil, false, false
	}

	switch v := expr.Evaluate(nav).(type) {
	case *xpath.NodeIterator:
		for v.MoveNext() {
			cur := v.Current()
			values = append(values, strings.TrimSpace(cur.Value()))
			elements = append(elements, serializeNode(cur))
		}
		return values, elements, true, true
	case string:
		return []string{v}, []string{v}, false, true
	case float64:
		if math.IsNaN(v) {
			return []string{""}, []string{""}, false, true
		}
		s := strconv.FormatFloat(v, 'f', -1, 64)
		return []string{s}, []string{s}, false, true
	case bool:
		s := strconv.FormatBool(v)
		return []string{s}, []string{s}, false, true
	default:
		return nil, nil, false, true
	}
}

// 依据导航器的具体类型序列化当前节点自身，兜底返回节点字符串值
func serializeNode(nav xpath.NodeNavigator) string {
	switch t := nav.(type) {
	case *xmlquery.NodeNavigator:
		return t.Current().OutputXML(true)
	case *htmlquery.NodeNavigator:
		return htmlquery.OutputHTML(t.Current(), true)
	default:
		return nav.Value()
	}
}

func (a *XPathAnalyzer) GetString(rawRule string, content string) (string, error) {
	values, _, nodeset, ok := a.evaluate(rawRule, content)
	if !ok {
		return "", nil
	}
	if nodeset && len(values) == 0 {
		return "", ErrNoResult
	}
	return strings.Join(values, "\n"), nil
}

func (a *XPathAnalyzer) GetList(rawRule string, content string) ([]string, error) {
	values, _, _, ok := a.evaluate(rawRule, content)
	if !ok || values == nil {
		return []string{}, nil
	}
	return values, nil
}

func (a *XPathAnalyzer) GetElements(rawRule string, content string) ([]string, error) {
	_, elements, _, ok := a.evaluate(rawRule, content)
	if !ok || elements == nil {
		return []string{}, nil
	}
	return elements, nil
}
