package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

var (
	ErrEmptyStoragePath   = errors.New("error getting PC_STORAGE_PATH: variable not specified or contains an empty string")
	ErrInvalidConcurrency = errors.New("error getting PC_CRAWL_CONCURRENCY: value must be at least 1")
)

type Config struct {
	Env           string // Env is the current environment: local, development, production.
	StoragePath   string
	HTTPAddr      string
	SitesFile     string // SitesFile is an optional YAML file with site definitions.
	RetentionDays int    // RetentionDays of price history; 0 keeps everything.
	Tg            Telegram
	Crawl         Crawl
	Alerts        Alerts
}

type Telegram struct {
	Token   string        // Token is an unique telegram bot token. Empty disables the bot.
	Timeout time.Duration // Timeout is a poller timeout duration.
}

type Crawl struct {
	Interval    time.Duration // Interval between monitoring cycles.
	Delay       time.Duration // Delay between any two page requests.
	Timeout     time.Duration // Timeout of a single page fetch.
	Concurrency int
	UserAgent   string
}

type Alerts struct {
	Threshold float64 // Threshold is the minimum absolute change in percent.
	Lookback  time.Duration
}

// MustLoad loads the configuration from environment variables and returns a Config struct.
func MustLoad() *Config {
	// Automatically binds environment variables to config keys
	viper.SetEnvPrefix("PC")
	viper.AutomaticEnv()

	// optional args
	viper.SetDefault("ENV", "production")
	viper.SetDefault("HTTP_ADDR", ":8080")
	viper.SetDefault("TELEGRAM_TIMEOUT", "15s")
	viper.SetDefault("CRAWL_INTERVAL", "6h")
	viper.SetDefault("CRAWL_DELAY", "1s")
	viper.SetDefault("CRAWL_TIMEOUT", "30s")
	viper.SetDefault("CRAWL_CONCURRENCY", 1)
	viper.SetDefault("ALERT_THRESHOLD", 10.0)
	viper.SetDefault("ALERT_LOOKBACK", "24h")
	viper.SetDefault("RETENTION_DAYS", 90)

	if viper.GetString("STORAGE_PATH") == "" {
		panic(ErrEmptyStoragePath)
	}
	if viper.GetInt("CRAWL_CONCURRENCY") < 1 {
		panic(ErrInvalidConcurrency)
	}

	return &Config{
		Env:           viper.GetString("ENV"),
		StoragePath:   viper.GetString("STORAGE_PATH"),
		HTTPAddr:      viper.GetString("HTTP_ADDR"),
		SitesFile:     viper.GetString("SITES_FILE"),
		RetentionDays: viper.GetInt("RETENTION_DAYS"),
		Tg: Telegram{
			Token:   viper.GetString("TELEGRAM_TOKEN"),
			Timeout: viper.GetDuration("TELEGRAM_TIMEOUT"),
		},
		Crawl: Crawl{
			Interval:    viper.GetDuration("CRAWL_INTERVAL"),
			Delay:       viper.GetDuration("CRAWL_DELAY"),
			Timeout:     viper.GetDuration("CRAWL_TIMEOUT"),
			Concurrency: viper.GetInt("CRAWL_CONCURRENCY"),
			UserAgent:   viper.GetString("USER_AGENT"),
		},
		Alerts: Alerts{
			Threshold: viper.GetFloat64("ALERT_THRESHOLD"),
			Lookback:  viper.GetDuration("ALERT_LOOKBACK"),
		},
	}
}
