package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// GitHub holds the remote data client settings.
type GitHub struct {
	BaseURL string        `mapstructure:"base_url"`
	Token   string        `mapstructure:"token"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Redis holds the cache store settings.
type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Postgres holds the optional history store settings.
type Postgres struct {
	DSN string `mapstructure:"dsn"`
}

// Search holds the orchestrator tunables.
type Search struct {
	MinResultsThreshold int     `mapstructure:"min_results_threshold"`
	MinScore            float64 `mapstructure:"min_score"`
	EnrichWorkers       int     `mapstructure:"enrich_workers"`
}

// AI holds the job-description parser settings.
type AI struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	GeminiModel  string `mapstructure:"gemini_model"`
}

// Telegram holds the watch-mode notifier settings.
type Telegram struct {
	Token  string `mapstructure:"token"`
	ChatID int64  `mapstructure:"chat_id"`
}

// Watch holds the saved-search checker settings.
type Watch struct {
	Interval time.Duration `mapstructure:"interval"`
}

type Config struct {
	GitHub   GitHub   `mapstructure:"github"`
	Redis    Redis    `mapstructure:"redis"`
	Postgres Postgres `mapstructure:"postgres"`
	Search   Search   `mapstructure:"search"`
	AI       AI       `mapstructure:"ai"`
	Telegram Telegram `mapstructure:"telegram"`
	Watch    Watch    `mapstructure:"watch"`
}

// Load reads settings from environment variables (SCOUT_* prefix) on top of
// defaults. CLI flags override individual fields after loading.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("github.base_url", "https://api.github.com")
	v.SetDefault("github.timeout", 10*time.Second)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("search.min_results_threshold", 10)
	v.SetDefault("search.min_score", 0.1)
	v.SetDefault("search.enrich_workers", 8)
	v.SetDefault("ai.gemini_model", "gemini-2.5-flash")
	v.SetDefault("watch.interval", time.Hour)

	v.SetEnvPrefix("SCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("github.token", "SCOUT_GITHUB_TOKEN", "GITHUB_TOKEN")
	_ = v.BindEnv("github.base_url", "SCOUT_GITHUB_BASE_URL")
	_ = v.BindEnv("redis.addr", "SCOUT_REDIS_ADDR")
	_ = v.BindEnv("redis.password", "SCOUT_REDIS_PASSWORD")
	_ = v.BindEnv("redis.db", "SCOUT_REDIS_DB")
	_ = v.BindEnv("postgres.dsn", "SCOUT_POSTGRES_DSN")
	_ = v.BindEnv("ai.gemini_api_key", "SCOUT_GEMINI_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("telegram.token", "SCOUT_TELEGRAM_TOKEN")
	_ = v.BindEnv("telegram.chat_id", "SCOUT_TELEGRAM_CHAT_ID")
	_ = v.BindEnv("watch.interval", "SCOUT_WATCH_INTERVAL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.GitHub.BaseURL == "" {
		return fmt.Errorf("github base URL is empty")
	}

	if c.GitHub.Timeout < time.Second {
		return fmt.Errorf("github timeout too small: %v", c.GitHub.Timeout)
	}

	if c.Search.MinResultsThreshold < 1 {
		return fmt.Errorf("min results threshold must be at least 1")
	}

	if c.Search.MinScore < 0 || c.Search.MinScore > 1 {
		return fmt.Errorf("min score must be between 0 and 1")
	}

	if c.Search.EnrichWorkers < 1 || c.Search.EnrichWorkers > 64 {
		return fmt.Errorf("enrich workers must be between 1 and 64")
	}

	if c.Watch.Interval < time.Minute {
		return fmt.Errorf("watch interval too small: %v", c.Watch.Interval)
	}

	return nil
}
