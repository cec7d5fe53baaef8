package fetch

// 内容抓取层：向引擎供给(content, baseUrl)，引擎自身从不发起请求。
// 响应统一做编码探测并转码为UTF-8，规则求值只面对UTF-8文本

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// 一次抓取请求
type Request struct {
	URL      string
	Cookie   string
	Timeout  time.Duration
	WaitTime time.Duration // 请求前随机休眠的上限，0表示不休眠
	Proxy    ProxyFunc     // 代理选择函数，nil走直连
	Limit    RateLimiter   // 限速器，nil不限速
}

type Fetcher interface {
	// 抓取并返回UTF-8编码的响应体
	Get(req *Request) ([]byte, error)
}

type FetchType int

const (
	BaseFetchType    FetchType = iota // 朴素抓取
	BrowserFetchType                  // 模拟浏览器行为的抓取
)

// 按类型创建抓取器
func NewFetcher(typ FetchType, logger *zap.Logger) Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch typ {
	case BaseFetchType:
		return &baseFetch{logger: logger}
	default:
		return &browserFetch{logger: logger}
	}
}

type baseFetch struct {
	logger *zap.Logger
}

func (f *baseFetch) Get(req *Request) ([]byte, error) {
	resp, err := http.Get(req.URL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error status code: %d", resp.StatusCode)
	}
	return readUTF8(resp.Body, f.logger)
}

type browserFetch struct {
	logger *zap.Logger
}

// 限速、随机休眠、代理、Cookie与UA伪装后发起GET
func (f *browserFetch) Get(request *Request) ([]byte, error) {
	if request.Limit != nil {
		if err := request.Limit.Wait(context.Background()); err != nil {
			return nil, err
		}
	}
	if request.WaitTime > 0 {
		time.Sleep(time.Duration(rand.Int63n(int64(request.WaitTime))))
	}

	client := &http.Client{Timeout: request.Timeout}
	if request.Proxy != nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.Proxy = request.Proxy
		client.Transport = transport
	}

	req, err := http.NewRequest("GET", request.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request failed: %w", err)
	}
	if len(request.Cookie) > 0 {
		req.Header.Set("Cookie", request.Cookie)
	}
	req.Header.Set("User-Agent", randomUA())

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return readUTF8(resp.Body, f.logger)
}

// 探测响应编码并转码为UTF-8
func readUTF8(body io.Reader, logger *zap.Logger) ([]byte, error) {
	bodyReader := bufio.NewReader(body)
	e := determineEncoding(bodyReader, logger)
	utf8Reader := transform.NewReader(bodyReader, e.NewDecoder())
	return io.ReadAll(utf8Reader)
}

func determineEncoding(r *bufio.Reader, logger *zap.Logger) encoding.Encoding {
	peek, err := r.Peek(1024)
	if err != nil && len(peek) == 0 {
		logger.Warn("peek body failed", zap.Error(err))
		return unicode.UTF8
	}
	e, _, _ := charset.DetermineEncoding(peek, "")
	return e
}

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/118.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
}

func randomUA() string {
	return userAgents[rand.Intn(len(userAgents))]
}
