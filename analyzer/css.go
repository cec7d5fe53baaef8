package analyzer

// CSS选择器解析：规则形如<selector>@<attr>，在最后一个@处切分，
// 选择器本身可以合法地包含@（如属性选择器），所以不能从前往后找

import (
	"strings"

	"github.com/3kaiu/reader-sub001/rule"
	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"go.uber.org/zap"
)

type CSSAnalyzer struct {
	logger *zap.Logger
}

func NewCSS(logger *zap.Logger) *CSSAnalyzer {
	return &CSSAnalyzer{logger: logger}
}

// 去掉@css:标记后在最后一个@处切分出选择器和属性名，没有@时属性默认为text
func splitSelectorRule(rawRule string) (selector string, attr string) {
	r := strings.TrimSpace(rawRule)
	r = strings.TrimPrefix(r, rule.CssPrefix)
	if i := strings.LastIndex(r, "@"); i >= 0 {
		return r[:i], r[i+1:]
	}
	return r, "text"
}

// 编译选择器并返回匹配集，选择器非法时返回nil并记录警告
func (a *CSSAnalyzer) find(selector string, content string) *goquery.Selection {
	matcher, err := cascadia.Compile(selector)
	if err != nil {
		a.logger.Warn("invalid css selector",
			zap.String("selector", selector), zap.Error(err))
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		a.logger.Warn("parse html failed", zap.Error(err))
		return nil
	}
	return doc.FindMatcher(matcher)
}

func (a *CSSAnalyzer) GetString(rawRule string, content string) (string, error) {
	selector, attr := splitSelectorRule(rawRule)
	sel := a.find(selector, content)
	if sel == nil {
		return "", nil
	}
	if sel.Length() == 0 {
		return "", ErrNoResult
	}
	values, err := selectionValues(sel, attr)
	if err != nil {
		return "", err
	}
	return strings.Join(values, "\n"), nil
}

func (a *CSSAnalyzer) GetList(rawRule string, content string) ([]string, error) {
	selector, attr := splitSelectorRule(rawRule)
	sel := a.find(selector, content)
	if sel == nil || sel.Length() == 0 {
		return []string{}, nil
	}
	values, err := selectionValues(sel, attr)
	if err != nil {
		a.logger.Warn("css attr extraction failed",
			zap.String("rule", rawRule), zap.Error(err))
		return []string{}, nil
	}
	return values, nil
}

func (a *CSSAnalyzer) GetElements(rawRule string, content string) ([]string, error) {
	selector, _ := splitSelectorRule(rawRule)
	sel := a.find(selector, content)
	if sel == nil {
		return []string{}, nil
	}
	return selectionElements(sel), nil
}

// 依据属性名从匹配集提取值：
// text或空取各节点修剪后的文本并剔除空项，html/outerHtml取含自身的序列化结果，
// innerHtml只取子节点序列化结果，其余按具名属性取值，首个节点缺失该属性即报错
func selectionValues(sel *goquery.Selection, attr string) ([]string, error) {
	values := make([]string, 0, sel.Length())
	switch attr {
	case "", "text":
		sel.Each(func(_ int, s *goquery.Selection) {
			if t := strings.TrimSpace(s.Text()); t != "" {
				values = append(values, t)
			}
		})
		return values, nil
	case "html", "outerHtml":
		return selectionElements(sel), nil
	case "innerHtml":
		var outerErr error
		sel.Each(func(_ int, s *goquery.Selection) {
			h, err := s.Html()
			if err != nil {
				outerErr = err
				return
			}
			values = append(values, h)
		})
		return values, outerErr
	default:
		if _, ok := sel.Eq(0).Attr(attr); !ok {
			return nil, ErrNoResult
		}
		sel.Each(func(_ int, s *goquery.Selection) {
			if v, ok := s.Attr(attr); ok {
				values = append(values, v)
			}
		})
		return values, nil
	}
}

// 序列化每个匹配节点自身，序列化失败的节点直接跳过
func selectionElements(sel *goquery.Selection) []string {
	elements := make([]string, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		if h, err := goquery.OuterHtml(s); err == nil {
			elements = append(elements, h)
		}
	})
	return elements
}
