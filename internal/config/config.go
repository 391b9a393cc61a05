package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Version    int               `toml:"version"`
	Scrape     ScrapeConfig      `toml:"scrape"`
	Analysis   AnalysisConfig    `toml:"analysis"`
	Telegram   TelegramConfig    `toml:"telegram"`
	Store      StoreConfig       `toml:"store"`
	Watchlists []WatchlistConfig `toml:"watchlists"`
}

// ScrapeConfig is the recognized browser/extraction option set. It is a
// closed struct merged over Default(); options outside it have no effect.
type ScrapeConfig struct {
	Headless          bool     `toml:"headless"`
	NavigationTimeout int      `toml:"navigation_timeout_secs"`
	WaitTimeout       int      `toml:"wait_timeout_secs"`
	UserAgent         string   `toml:"user_agent"`
	ViewportWidth     int      `toml:"viewport_width"`
	ViewportHeight    int      `toml:"viewport_height"`
	BlockedResources  []string `toml:"blocked_resources"`
}

// NavigationTimeoutDuration returns the navigation timeout as a duration.
func (s ScrapeConfig) NavigationTimeoutDuration() time.Duration {
	return time.Duration(s.NavigationTimeout) * time.Second
}

// WaitTimeoutDuration returns the content-wait timeout as a duration.
func (s ScrapeConfig) WaitTimeoutDuration() time.Duration {
	return time.Duration(s.WaitTimeout) * time.Second
}

type AnalysisConfig struct {
	Provider string `toml:"provider"` // "openai" or "anthropic"
	Endpoint string `toml:"endpoint"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
}

type TelegramConfig struct {
	BotToken string `toml:"bot_token"`
	ChatID   string `toml:"chat_id"`
}

type StoreConfig struct {
	Path string `toml:"path"`
}

// WatchlistConfig names a set of post URLs analyzed on a cron schedule.
type WatchlistConfig struct {
	Name     string   `toml:"name"`
	Schedule string   `toml:"schedule"`
	URLs     []string `toml:"urls"`
}

// Providers recognized by AnalysisConfig.Provider.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Version: 1,
		Scrape: ScrapeConfig{
			Headless:          true,
			NavigationTimeout: 30,
			WaitTimeout:       10,
			UserAgent:         DefaultUserAgent,
			ViewportWidth:     1920,
			ViewportHeight:    1080,
			BlockedResources:  []string{"image", "stylesheet", "font", "media"},
		},
		Analysis: AnalysisConfig{
			Provider: ProviderOpenAI,
			Endpoint: "https://api.openai.com/v1/chat/completions",
			Model:    "gpt-4o-mini",
		},
		Store: StoreConfig{
			Path: "", // resolved to the user data dir when empty
		},
	}
}

// DefaultUserAgent is a realistic Chrome user agent
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// ConfigDir returns the platform-appropriate config directory
func ConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "analyzer"), nil
}

// ConfigPath returns the full path to the config file
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// CacheDir returns the platform-appropriate cache directory
func CacheDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, "analyzer"), nil
}

// Load reads config from disk, merges it over defaults, and applies
// environment overrides for secrets. A .env file in the working directory is
// honored when present.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads config from an explicit path.
func LoadFrom(path string) (*Config, error) {
	var fileCfg Config
	md, err := toml.DecodeFile(path, &fileCfg)
	if err != nil {
		return nil, err
	}

	cfg := Merge(Default(), &fileCfg)
	// TOML gives no zero-vs-absent distinction for booleans, so headless is
	// only taken from the file when the key is actually present.
	if md.IsDefined("scrape", "headless") {
		cfg.Scrape.Headless = fileCfg.Scrape.Headless
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// Merge overlays non-zero recognized options from override onto base.
func Merge(base, override *Config) *Config {
	merged := *base

	if override.Version != 0 {
		merged.Version = override.Version
	}

	merged.Scrape = mergeScrape(base.Scrape, override.Scrape)

	if override.Analysis.Provider != "" {
		merged.Analysis.Provider = override.Analysis.Provider
	}
	if override.Analysis.Endpoint != "" {
		merged.Analysis.Endpoint = override.Analysis.Endpoint
	}
	if override.Analysis.Model != "" {
		merged.Analysis.Model = override.Analysis.Model
	}
	if override.Analysis.APIKey != "" {
		merged.Analysis.APIKey = override.Analysis.APIKey
	}

	if override.Telegram.BotToken != "" {
		merged.Telegram.BotToken = override.Telegram.BotToken
	}
	if override.Telegram.ChatID != "" {
		merged.Telegram.ChatID = override.Telegram.ChatID
	}

	if override.Store.Path != "" {
		merged.Store.Path = override.Store.Path
	}

	if len(override.Watchlists) > 0 {
		merged.Watchlists = override.Watchlists
	}

	return &merged
}

// mergeScrape overlays recognized scrape options; headless is handled by the
// caller because a bool carries no presence information.
func mergeScrape(base, override ScrapeConfig) ScrapeConfig {
	merged := base
	if override.NavigationTimeout > 0 {
		merged.NavigationTimeout = override.NavigationTimeout
	}
	if override.WaitTimeout > 0 {
		merged.WaitTimeout = override.WaitTimeout
	}
	if override.UserAgent != "" {
		merged.UserAgent = override.UserAgent
	}
	if override.ViewportWidth > 0 {
		merged.ViewportWidth = override.ViewportWidth
	}
	if override.ViewportHeight > 0 {
		merged.ViewportHeight = override.ViewportHeight
	}
	if override.BlockedResources != nil {
		merged.BlockedResources = override.BlockedResources
	}
	return merged
}

// envOverrides maps environment variables onto config fields.
const (
	envAPIKey        = "ANALYZER_API_KEY"
	envModel         = "ANALYZER_MODEL"
	envTelegramToken = "TELEGRAM_BOT_TOKEN"
	envTelegramChat  = "TELEGRAM_CHAT_ID"
)

// ApplyEnv overrides secret-bearing fields from the environment. A .env file
// in the working directory is honored when present.
func (c *Config) ApplyEnv() {
	// A missing .env file is fine; explicit environment always applies.
	_ = godotenv.Load()

	if v := os.Getenv(envAPIKey); v != "" {
		c.Analysis.APIKey = v
	}
	if v := os.Getenv(envModel); v != "" {
		c.Analysis.Model = v
	}
	if v := os.Getenv(envTelegramToken); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv(envTelegramChat); v != "" {
		c.Telegram.ChatID = v
	}
}

// Save writes config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(c)
}
