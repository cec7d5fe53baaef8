package analyzer

// 默认紧凑语法解析：class/tag/id定位步骤用@串联，
// 每步形如class.名称.序号，序号可省略（取全部）也可为负（从尾部数），
// 末段若不是定位步骤则视作属性名，属性语义与CSS解析器一致

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

type DefaultAnalyzer struct {
	logger *zap.Logger
}

func NewDefault(logger *zap.Logger) *DefaultAnalyzer {
	return &DefaultAnalyzer{logger: logger}
}

// 末段是否为定位步骤
func isStep(segment string) bool {
	switch strings.SplitN(segment, ".", 2)[0] {
	case "class", "tag", "id":
		return true
	default:
		return false
	}
}

// 切分规则为定位步骤序列与属性名
func splitDefaultRule(rawRule string) (steps []string, attr string) {
	segments := strings.Split(strings.TrimSpace(rawRule), "@")
	attr = "text"
	if n := len(segments); n > 1 && !isStep(segments[n-1]) {
		attr = segments[n-1]
		segments = segments[:n-1]
	}
	return segments, attr
}

// 逐步在匹配集上收窄，步骤非法时返回nil并记录警告
func (a *DefaultAnalyzer) walk(steps []string, content string) *goquery.Selection {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		a.logger.Warn("parse html failed", zap.Error(err))
		return nil
	}
	sel := doc.Selection
	for _, step := range steps {
		fields := strings.Split(step, ".")
		if len(fields) < 2 {
			a.logger.Warn("invalid default rule step", zap.String("step", step))
			return nil
		}
		switch fields[0] {
		case "class":
			sel = sel.Find("." + fields[1])
		case "tag":
			sel = sel.Find(fields[1])
		case "id":
			sel = sel.Find("#" + fields[1])
		default:
			a.logger.Warn("invalid default rule step", zap.String("step", step))
			return nil
		}
		if len(fields) >= 3 {
			idx, err := strconv.Atoi(fields[2])
			if err != nil {
				a.logger.Warn("invalid default rule index", zap.String("step", step))
				return nil
			}
			sel = sel.Eq(idx)
		}
	}
	return sel
}

func (a *DefaultAnalyzer) GetString(rawRule string, content string) (string, error) {
	steps, attr := splitDefaultRule(rawRule)
	sel := a.walk(steps, content)
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

func (a *DefaultAnalyzer) GetList(rawRule string, content string) ([]string, error) {
	steps, attr := splitDefaultRule(rawRule)
	sel := a.walk(steps, content)
	if sel == nil || sel.Length() == 0 {
		return []string{}, nil
	}
	values, err := selectionValues(sel, attr)
	if err != nil {
		a.logger.Warn("default rule attr extraction failed",
			zap.String("rule", rawRule), zap.Error(err))
		return []string{}, nil
	}
	return values, nil
}

func (a *DefaultAnalyzer) GetElements(rawRule string, content string) ([]string, error) {
	steps, _ := splitDefaultRule(rawRule)
	sel := a.walk(steps, content)
	if sel == nil {
		return []string{}, nil
	}
	return selectionElements(sel), nil
}
