package extract

// extract子命令：对一份本地文件或抓取到的页面内容执行一条提取规则，
// 结果打印到标准输出，主要用于书源规则的调试

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/3kaiu/reader-sub001/analyzer"
	"github.com/3kaiu/reader-sub001/engine"
	"github.com/3kaiu/reader-sub001/fetch"
	"github.com/3kaiu/reader-sub001/log"
	"github.com/3kaiu/reader-sub001/rule"
	"github.com/3kaiu/reader-sub001/store/memstore"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var ExtractCmd = &cobra.Command{
	Use:   "extract",
	Short: "run an extraction rule against content.",
	Long:  "run an extraction rule against a local file or a fetched page.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		Run()
	},
}

var (
	ruleText   string
	filePath   string
	pageURL    string
	configPath string
	asList     bool
)

func init() {
	ExtractCmd.Flags().StringVar(&ruleText, "rule", "", "extraction rule text")
	ExtractCmd.Flags().StringVar(&filePath, "file", "", "read content from file")
	ExtractCmd.Flags().StringVar(&pageURL, "url", "", "fetch content from url")
	ExtractCmd.Flags().StringVar(&configPath, "config", "", "config file path")
	ExtractCmd.Flags().BoolVar(&asList, "list", false, "return all matches instead of the first")
	ExtractCmd.MarkFlagRequired("rule")
}

func Run() {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}

	var plugin log.Plugin
	if cfg.LogFile != "" {
		var closer interface{ Close() error }
		plugin, closer = log.NewFilePlugin(cfg.LogFile, log.ParseLevel(cfg.LogLevel))
		defer closer.Close()
	} else {
		plugin = log.NewStdoutPlugin(log.ParseLevel(cfg.LogLevel))
	}
	logger := log.NewLogger(plugin)
	defer logger.Sync()

	content, baseURL, err := loadContent(cfg, logger)
	if err != nil {
		logger.Error("load content failed", zap.Error(err))
		os.Exit(1)
	}

	e := engine.New(
		engine.WithLogger(logger),
		engine.WithStore(memstore.New(time.Duration(cfg.CacheTTLSeconds)*time.Second, time.Minute)),
		engine.WithCacheCapacity(cfg.CacheCapacity),
		engine.WithCacheTTL(time.Duration(cfg.CacheTTLSeconds)*time.Second),
	)
	ctx := rule.NewContext(content, baseURL)

	if asList {
		items, err := e.GetList(ruleText, ctx)
		if err != nil {
			logger.Error("rule evaluation failed", zap.Error(err))
			os.Exit(1)
		}
		for _, item := range items {
			fmt.Println(item)
		}
		return
	}

	s, err := e.GetString(ruleText, ctx)
	if err != nil {
		if errors.Is(err, analyzer.ErrNoResult) {
			logger.Warn("rule matched nothing", zap.String("rule", ruleText))
			return
		}
		logger.Error("rule evaluation failed", zap.Error(err))
		os.Exit(1)
	}
	fmt.Println(s)
}

// 取内容：优先本地文件，其次抓取URL
func loadContent(cfg Config, logger *zap.Logger) (content string, baseURL string, err error) {
	switch {
	case filePath != "":
		data, err := os.ReadFile(filePath)
		return string(data), "", err
	case pageURL != "":
		req := &fetch.Request{
			URL:     pageURL,
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		}
		if len(cfg.Proxies) > 0 {
			proxy, err := fetch.RoundRobinProxySwitcher(cfg.Proxies...)
			if err != nil {
				return "", "", err
			}
			req.Proxy = proxy
		}
		fetcher := fetch.NewFetcher(fetch.BrowserFetchType, logger)
		data, err := fetcher.Get(req)
		return string(data), pageURL, err
	default:
		return "", "", errors.New("either --file or --url is required")
	}
}
