package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"wealth-dashboard/internal/types"
)

// Env variable names for the two optional credentials. Absence of either
// independently degrades only that subsystem to its offline fallback.
const (
	MarketAPIKeyEnv = "FINNHUB_API_KEY"
	GeminiAPIKeyEnv = "GEMINI_API_KEY"
)

type Config struct {
	Mode          string `yaml:"mode"`
	DefaultSymbol string `yaml:"default_symbol"`
	DataDir       string `yaml:"data_dir"`
	Server        struct {
		Host string `yaml:"host"`
		Port string `yaml:"port"`
	} `yaml:"server"`
	Market struct {
		BaseURL            string `yaml:"base_url"`
		DailyWindowDays    int    `yaml:"daily_window_days"`
		IntradayWindowDays int    `yaml:"intraday_window_days"`
		SimLatencyMS       int    `yaml:"sim_latency_ms"`
	} `yaml:"market"`
	Insight struct {
		Model string `yaml:"model"`
	} `yaml:"insight"`
	News NewsConfig `yaml:"news"`
}

// NewsConfig controls the optional headline enrichment for insights.
type NewsConfig struct {
	Enabled      bool `yaml:"enabled"`
	MaxHeadlines int  `yaml:"max_headlines"`
	CacheMinutes int  `yaml:"cache_minutes"`
}

func (c *Config) Validate() error {
	if c.Mode != string(types.ModeSimulated) && c.Mode != string(types.ModeLive) {
		return fmt.Errorf("invalid mode '%s': must be 'SIMULATED' or 'LIVE'", c.Mode)
	}
	if c.DefaultSymbol == "" {
		return fmt.Errorf("default_symbol cannot be empty")
	}
	if c.Market.DailyWindowDays <= 0 || c.Market.IntradayWindowDays <= 0 {
		return fmt.Errorf("market windows must be positive, got daily=%d intraday=%d",
			c.Market.DailyWindowDays, c.Market.IntradayWindowDays)
	}
	if c.News.MaxHeadlines < 0 {
		return fmt.Errorf("news.max_headlines cannot be negative, got %d", c.News.MaxHeadlines)
	}
	return nil
}

// MarketAPIKey returns the market data provider credential, if configured.
func (c *Config) MarketAPIKey() string { return os.Getenv(MarketAPIKeyEnv) }

// GeminiAPIKey returns the generative text credential, if configured.
func (c *Config) GeminiAPIKey() string { return os.Getenv(GeminiAPIKeyEnv) }

// EffectiveMode is the configured mode with the credential rule applied:
// without a market data credential the whole application runs SIMULATED.
func (c *Config) EffectiveMode() types.MarketMode {
	if c.MarketAPIKey() == "" {
		return types.ModeSimulated
	}
	return types.MarketMode(c.Mode)
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	applyDefaults(&c)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &c, nil
}

func applyDefaults(c *Config) {
	if c.Mode == "" {
		c.Mode = string(types.ModeSimulated)
	}
	if c.DefaultSymbol == "" {
		c.DefaultSymbol = "AAPL"
	}
	if c.DataDir == "" {
		c.DataDir = "data"
	}
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Market.BaseURL == "" {
		c.Market.BaseURL = "https://finnhub.io/api/v1"
	}
	if c.Market.DailyWindowDays == 0 {
		c.Market.DailyWindowDays = 90
	}
	if c.Market.IntradayWindowDays == 0 {
		c.Market.IntradayWindowDays = 30
	}
	if c.Insight.Model == "" {
		c.Insight.Model = "gemini-2.5-flash"
	}
	if c.News.MaxHeadlines == 0 {
		c.News.MaxHeadlines = 5
	}
	if c.News.CacheMinutes == 0 {
		c.News.CacheMinutes = 60
	}
}
