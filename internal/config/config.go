// Package config provides configuration management for the crawler.
// It handles loading, validation, and access to configuration values from
// YAML files and environment variables via Viper.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Crawler defaults.
const (
	DefaultBaseURL        = "https://ling.auf.net"
	DefaultStartPath      = "/lingbuzz"
	DefaultDocumentPrefix = "/lingbuzz/"
	DefaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRetries     = 2
	DefaultRetryDelay     = 2 * time.Second
	DefaultMaxBodySize    = 10 * 1024 * 1024 // 10MB
)

// DefaultCorpusPath is where the snapshot lands when not configured.
const DefaultCorpusPath = "corpus.json"

// CrawlerConfig holds the crawl loop and fetcher settings.
type CrawlerConfig struct {
	// BaseURL is the origin every path is resolved against.
	BaseURL string `mapstructure:"base_url"`
	// StartPath is the first listing page path.
	StartPath string `mapstructure:"start_path"`
	// DocumentPrefix is prepended to a ref to form a document page path.
	DocumentPrefix string `mapstructure:"document_prefix"`
	// UserAgent is sent on every request.
	UserAgent string `mapstructure:"user_agent"`
	// RequestTimeout bounds each HTTP request.
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	// MaxRetries is the number of re-attempts after a failed fetch.
	MaxRetries int `mapstructure:"max_retries"`
	// RetryDelay is the pause between re-attempts.
	RetryDelay time.Duration `mapstructure:"retry_delay"`
	// MaxBodySize caps how many response bytes are read per page.
	MaxBodySize int64 `mapstructure:"max_body_size"`
}

// CorpusConfig holds the snapshot location.
type CorpusConfig struct {
	Path string `mapstructure:"path"`
}

// LoggerConfig holds logging settings.
type LoggerConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
	Encoding    string `mapstructure:"encoding"`
}

// Config represents the application configuration.
type Config struct {
	Crawler CrawlerConfig `mapstructure:"crawler"`
	Corpus  CorpusConfig  `mapstructure:"corpus"`
	Logger  LoggerConfig  `mapstructure:"logger"`
}

// Init configures Viper: .env file, environment variables, defaults, and an
// optional config file. Must be called before Load.
func Init(cfgFile string) error {
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetEnvPrefix("LINGCRAWL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("read config file: %w", err)
		}
		return nil
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	_ = viper.ReadInConfig()
	return nil
}

// setDefaults sets default configuration values.
func setDefaults() {
	viper.SetDefault("crawler", map[string]any{
		"base_url":        DefaultBaseURL,
		"start_path":      DefaultStartPath,
		"document_prefix": DefaultDocumentPrefix,
		"user_agent":      DefaultUserAgent,
		"request_timeout": DefaultRequestTimeout,
		"max_retries":     DefaultMaxRetries,
		"retry_delay":     DefaultRetryDelay,
		"max_body_size":   DefaultMaxBodySize,
	})
	viper.SetDefault("corpus", map[string]any{
		"path": DefaultCorpusPath,
	})
	viper.SetDefault("logger", map[string]any{
		"level":       "info",
		"development": false,
		"encoding":    "console",
	})
}

// Load unmarshals the current Viper state into a validated Config.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for values the crawler cannot run with.
func (c *Config) Validate() error {
	if err := c.Crawler.Validate(); err != nil {
		return fmt.Errorf("crawler: %w", err)
	}
	if c.Corpus.Path == "" {
		return errors.New("corpus: path must not be empty")
	}
	return nil
}

// Validate checks the crawler section.
func (c *CrawlerConfig) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base_url %q is not an absolute URL", c.BaseURL)
	}
	if c.StartPath == "" {
		return errors.New("start_path must not be empty")
	}
	if c.UserAgent == "" {
		return errors.New("user_agent must not be empty")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request_timeout must be positive")
	}
	if c.MaxRetries < 0 {
		return errors.New("max_retries must not be negative")
	}
	if c.MaxBodySize <= 0 {
		return errors.New("max_body_size must be positive")
	}
	return nil
}
