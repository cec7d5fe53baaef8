package extract

import (
	"os"

	"gopkg.in/yaml.v3"
)

// 运行配置，来自YAML配置文件
type Config struct {
	LogFile         string   `yaml:"log_file"`          // 日志文件路径，空则输出到stdout
	LogLevel        string   `yaml:"log_level"`         // debug/info/warn/error
	CacheCapacity   int      `yaml:"cache_capacity"`    // 编译产物缓存条目上限
	CacheTTLSeconds int      `yaml:"cache_ttl_seconds"` // 编译产物缓存存活秒数
	TimeoutSeconds  int      `yaml:"timeout_seconds"`   // 抓取超时秒数
	Proxies         []string `yaml:"proxies"`           // 代理地址列表
}

var defaultConfig = Config{
	LogLevel:        "info",
	CacheCapacity:   200,
	CacheTTLSeconds: 600,
	TimeoutSeconds:  30,
}

// 读取配置文件，路径为空时直接返回默认配置
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
