package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging      LoggingConfig      `yaml:"logging"`
	GeminiModel  string             `yaml:"gemini_model"`
	Cache        CacheConfig        `yaml:"cache"`
	HTTP         HTTPConfig         `yaml:"http"`
	SummaryQuota SummaryQuotaConfig `yaml:"summary_quota"`
	NewsAPI      NewsAPIConfig      `yaml:"newsapi"`
	AlphaVantage AlphaVantageConfig `yaml:"alphavantage"`
	RSSFeeds     []RSSFeedSource    `yaml:"rss_feeds"`
	CNN          CNNConfig          `yaml:"cnn"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type CacheConfig struct {
	// Dir is the root directory for cache files. Relative paths are resolved
	// against the config file location.
	Dir string `yaml:"dir"`

	// TTLHours is the default entry lifetime. 0 or below means 24 hours.
	TTLHours int `yaml:"ttl_hours"`
}

type HTTPConfig struct {
	// RequestTimeoutSeconds bounds outbound API/feed requests.
	// 0 or below means 30 seconds.
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds"`

	// ListenAddr is the API server bind address, e.g. ":8080".
	ListenAddr string `yaml:"listen_addr"`
}

// SummaryQuotaConfig defines rate/daily limits for summarization LLM calls.
type SummaryQuotaConfig struct {
	// RequestsPerMinute caps summarization calls per minute.
	// 0 or below means no limit.
	RequestsPerMinute int `yaml:"requests_per_minute"`

	// RequestsPerDay caps summarization calls per day.
	// 0 or below means no limit.
	RequestsPerDay int `yaml:"requests_per_day"`
}

type NewsAPIConfig struct {
	Country  string `yaml:"country"`
	Category string `yaml:"category"`
	PageSize int    `yaml:"page_size"`
}

type AlphaVantageConfig struct {
	Tickers string `yaml:"tickers"`
	Topics  string `yaml:"topics"`
}

// RSSFeedSource is a single financial RSS feed configuration item.
type RSSFeedSource struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type CNNConfig struct {
	// SectionURL is the section index page that gets scraped for headlines.
	SectionURL string `yaml:"section_url"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	var c AppConfig
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		panic(err)
	}
	config = &c
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

// CacheTTL returns the configured cache TTL, defaulting to 24 hours.
func (c AppConfig) CacheTTL() time.Duration {
	if c.Cache.TTLHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.Cache.TTLHours) * time.Hour
}

// RequestTimeout returns the outbound HTTP timeout, defaulting to 30 seconds.
func (c AppConfig) RequestTimeout() time.Duration {
	if c.HTTP.RequestTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.HTTP.RequestTimeoutSeconds) * time.Second
}

// CacheDir resolves the cache directory, defaulting to data/cache under the
// project base path.
func (c AppConfig) CacheDir() string {
	dir := c.Cache.Dir
	if dir == "" {
		dir = filepath.Join("data", "cache")
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(GetBasePath(), dir)
	}
	return dir
}

// API keys come from the environment only, never from config.yaml,
// and must never be logged.

func NewsAPIKey() string {
	return os.Getenv("NEWSAPI_API_KEY")
}

func AlphaVantageAPIKey() string {
	return os.Getenv("ALPHAVANTAGE_API_KEY")
}

func GeminiAPIKey() string {
	return os.Getenv("GEMINI_API_KEY")
}

func HuggingFaceToken() string {
	return os.Getenv("HF_API_TOKEN")
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
