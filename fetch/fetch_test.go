package fetch

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/time/rate"
)

func TestBaseFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer srv.Close()

	f := NewFetcher(BaseFetchType, nil)
	body, err := f.Get(&Request{URL: srv.URL})
	require.NoError(t, err)
	assert.Contains(t, string(body), "hello")
}

func TestBaseFetchBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewFetcher(BaseFetchType, nil)
	_, err := f.Get(&Request{URL: srv.URL})
	assert.Error(t, err)
}

// GBK响应转码为UTF-8后再交给规则求值
func TestFetchTranscodesToUTF8(t *testing.T) {
	gbk, err := simplifiedchinese.GBK.NewEncoder().Bytes([]byte("<html><body>你好</body></html>"))
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=gbk")
		w.Write(gbk)
	}))
	defer srv.Close()

	f := NewFetcher(BrowserFetchType, nil)
	body, err := f.Get(&Request{URL: srv.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)
	assert.Contains(t, string(body), "你好")
}

func TestBrowserFetchHeaders(t *testing.T) {
	var gotUA, gotCookie string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotCookie = r.Header.Get("Cookie")
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	f := NewFetcher(BrowserFetchType, nil)
	_, err := f.Get(&Request{URL: srv.URL, Cookie: "session=abc", Timeout: 5 * time.Second})
	require.NoError(t, err)
	assert.Contains(t, userAgents, gotUA)
	assert.Equal(t, "session=abc", gotCookie)
}

func TestRoundRobinProxySwitcher(t *testing.T) {
	_, err := RoundRobinProxySwitcher()
	assert.Error(t, err)

	p, err := RoundRobinProxySwitcher("http://127.0.0.1:8888", "http://127.0.0.1:9999")
	require.NoError(t, err)

	u1, err := p(nil)
	require.NoError(t, err)
	u2, err := p(nil)
	require.NoError(t, err)
	u3, err := p(nil)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8888", u1.Host)
	assert.Equal(t, "127.0.0.1:9999", u2.Host)
	assert.Equal(t, "127.0.0.1:8888", u3.Host)
}

func TestMultiLimiter(t *testing.T) {
	fast := rate.NewLimiter(Per(100, time.Second), 1)
	slow := rate.NewLimiter(Per(10, time.Second), 1)
	m := Multi(fast, slow)

	// 组合限速器的速率取最慢的那个
	assert.Equal(t, slow.Limit(), m.Limit())
}
