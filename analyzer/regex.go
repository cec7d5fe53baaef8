package analyzer

// 正则解析：规则形如##pattern##或##pattern##replacement，
// 超过两段##分隔内容属于格式错误；
// 带替换串时整条规则作用为对内容的替换，
// 不带时有捕获组取第1组、无捕获组取整个匹配

import (
	"errors"
	"regexp"
	"strings"

	"github.com/3kaiu/reader-sub001/rule"
	"go.uber.org/zap"
)

type RegexAnalyzer struct {
	logger *zap.Logger
}

func NewRegex(logger *zap.Logger) *RegexAnalyzer {
	return &RegexAnalyzer{logger: logger}
}

// 切分规则为编译好的模式与可选的替换串
func (a *RegexAnalyzer) compile(rawRule string) (re *regexp.Regexp, replacement string, hasReplacement bool, err error) {
	r := strings.TrimSpace(rawRule)
	parts := strings.Split(r, rule.RegexMark)
	if len(parts) < 2 || parts[0] != "" {
		return nil, "", false, errors.New("regex rule must start with ##")
	}
	if len(parts) > 3 {
		return nil, "", false, errors.New("regex rule has more than two ## segments")
	}
	re, err = regexp.Compile(parts[1])
	if err != nil {
		return nil, "", false, err
	}
	// 第三段非空才是替换模式，##pattern##的空尾段仍是提取模式
	if len(parts) == 3 && parts[2] != "" {
		return re, parts[2], true, nil
	}
	return re, "", false, nil
}

// 提取模式下取所有匹配，优先捕获组1
func (a *RegexAnalyzer) matches(re *regexp.Regexp, content string) []string {
	found := re.FindAllStringSubmatch(content, -1)
	values := make([]string, 0, len(found))
	for _, m := range found {
		if re.NumSubexp() >= 1 {
			values = append(values, m[1])
		} else {
			values = append(values, m[0])
		}
	}
	return values
}

func (a *RegexAnalyzer) GetString(rawRule string, content string) (string, error) {
	re, replacement, hasReplacement, err := a.compile(rawRule)
	if err != nil {
		a.logger.Warn("invalid regex rule", zap.String("rule", rawRule), zap.Error(err))
		return "", nil
	}
	if hasReplacement {
		return re.ReplaceAllString(content, replacement), nil
	}
	m := re.FindStringSubmatch(content)
	if m == nil {
		return "", ErrNoResult
	}
	if re.NumSubexp() >= 1 {
		return m[1], nil
	}
	return m[0], nil
}

func (a *RegexAnalyzer) GetList(rawRule string, content string) ([]string, error) {
	re, replacement, hasReplacement, err := a.compile(rawRule)
	if err != nil {
		a.logger.Warn("invalid regex rule", zap.String("rule", rawRule), zap.Error(err))
		return []string{}, nil
	}
	if hasReplacement {
		return []string{re.ReplaceAllString(content, replacement)}, nil
	}
	return a.matches(re, content), nil
}

// 平面文本没有独立的片段概念，片段查询与列表查询等价
func (a *RegexAnalyzer) GetElements(rawRule string, content string) ([]string, error) {
	return a.GetList(rawRule, content)
}
