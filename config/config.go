package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Crawler   CrawlerConfig   `yaml:"crawler"`
	Selection SelectionConfig `yaml:"selection"`
	Output    OutputConfig    `yaml:"output"`

	StartTime  time.Time
	StartTsStr string

	// 落盘文件
	SnapshotFile  string
	SelectionFile string
	ReportFile    string
}

type CrawlerConfig struct {
	MinSectorRecords int `yaml:"min_sector_records"` // 提取结果低于此条数触发重试
	TopSectors       int `yaml:"top_sectors"`        // 入选板块数
	StocksPerSector  int `yaml:"stocks_per_sector"`  // 每板块抓取的成份股数
	HistoryDays      int `yaml:"history_days"`       // 个股历史K线天数
	MaxRetries       int `yaml:"max_retries"`
	TimeoutSec       int `yaml:"timeout_sec"`
}

type SelectionConfig struct {
	FactorType  string `yaml:"factor_type"`  // momentum / momentum_15day / phase_composite
	MarketPhase string `yaml:"market_phase"` // uptrend / range / downtrend
	TopN        int    `yaml:"top_n"`
}

type OutputConfig struct {
	Path string `yaml:"path"`
}

func InitOutputPath(outputPath string) error {
	cleanPath := filepath.Clean(outputPath)

	if fi, err := os.Stat(cleanPath); err == nil {
		if !fi.IsDir() {
			return fmt.Errorf("%s 已存在但不是目录", cleanPath)
		}
		return nil
	}

	if err := os.MkdirAll(cleanPath, 0755); err != nil {
		return fmt.Errorf("无法创建目录 %s: %w", cleanPath, err)
	}
	return nil
}

// LoadConfig 读取 config.yaml 与 .env，文件缺失时全部走默认值。
func LoadConfig() (*Config, error) {
	// .env 只用于本地覆盖，不存在不报错
	_ = godotenv.Load()

	var cfg Config
	if f, err := os.Open("config.yaml"); err == nil {
		decoder := yaml.NewDecoder(f)
		err = decoder.Decode(&cfg)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("config.yaml 解析失败: %w", err)
		}
	}
	cfg.applyDefaults()

	if env := os.Getenv("FUNDFLOW_OUTPUT"); env != "" {
		cfg.Output.Path = env
	}
	if cfg.Output.Path == "" {
		cfg.Output.Path = filepath.Join(".", "output", time.Now().Format("2006-01-02"))
	} else {
		cfg.Output.Path = filepath.Join(cfg.Output.Path, time.Now().Format("2006-01-02"))
	}
	if err := InitOutputPath(cfg.Output.Path); err != nil {
		return &cfg, err
	}

	cfg.StartTime = time.Now()
	cfg.StartTsStr = cfg.StartTime.Format("2006-01-02T15-04-05")
	cfg.SnapshotFile = filepath.Join(cfg.Output.Path, fmt.Sprintf("FundFlow_Snapshot_%s.json", cfg.StartTsStr))
	cfg.SelectionFile = filepath.Join(cfg.Output.Path, fmt.Sprintf("Selected_Stocks_%s.json", cfg.StartTsStr))
	cfg.ReportFile = filepath.Join(cfg.Output.Path, fmt.Sprintf("FundFlow_Report_%s.html", cfg.StartTsStr))

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Crawler.MinSectorRecords <= 0 {
		c.Crawler.MinSectorRecords = 5
	}
	if c.Crawler.TopSectors <= 0 {
		c.Crawler.TopSectors = 5
	}
	if c.Crawler.StocksPerSector <= 0 {
		c.Crawler.StocksPerSector = 30
	}
	if c.Crawler.HistoryDays <= 0 {
		c.Crawler.HistoryDays = 30
	}
	if c.Crawler.MaxRetries <= 0 {
		c.Crawler.MaxRetries = 3
	}
	if c.Crawler.TimeoutSec <= 0 {
		c.Crawler.TimeoutSec = 15
	}
	if c.Selection.FactorType == "" {
		c.Selection.FactorType = "momentum"
	}
	if c.Selection.MarketPhase == "" {
		c.Selection.MarketPhase = "range"
	}
	if c.Selection.TopN <= 0 {
		c.Selection.TopN = 10
	}
}
