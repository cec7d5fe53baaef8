package rule

// 一次规则求值的上下文，由调用方构造并持有，引擎只读不写，
// 所有"修改"都通过With*方法产生新副本

type Context struct {
	Content        string            // 当前待解析内容
	BaseURL        string            // 内容来源地址，用于相对链接补全
	Variables      map[string]string // 规则变量表
	PreviousResult string            // 链式规则中上一条规则的输出
}

func NewContext(content string, baseURL string) *Context {
	return &Context{
		Content: content,
		BaseURL: baseURL,
	}
}

// 返回携带新内容的副本
func (c *Context) WithContent(content string) *Context {
	next := c.clone()
	next.Content = content
	return next
}

// 返回携带上一条规则输出的副本
func (c *Context) WithPreviousResult(result string) *Context {
	next := c.clone()
	next.PreviousResult = result
	return next
}

// 返回追加了一个变量的副本，原变量表不受影响
func (c *Context) WithVariable(key string, value string) *Context {
	next := c.clone()
	if next.Variables == nil {
		next.Variables = make(map[string]string)
	}
	next.Variables[key] = value
	return next
}

// 读取变量，缺失时返回空串与false
func (c *Context) Variable(key string) (string, bool) {
	v, ok := c.Variables[key]
	return v, ok
}

func (c *Context) clone() *Context {
	next := &Context{
		Content:        c.Content,
		BaseURL:        c.BaseURL,
		PreviousResult: c.PreviousResult,
	}
	if len(c.Variables) > 0 {
		next.Variables = make(map[string]string, len(c.Variables))
		for k, v := range c.Variables {
			next.Variables[k] = v
		}
	}
	return next
}
