package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Environment string          `mapstructure:"environment"`
	LogLevel    string          `mapstructure:"log_level"`
	Server      ServerConfig    `mapstructure:"server"`
	Database    DatabaseConfig  `mapstructure:"database"`
	Redis       RedisConfig     `mapstructure:"redis"`
	StatsAPI    StatsAPIConfig  `mapstructure:"stats_api"`
	OddsAPI     OddsAPIConfig   `mapstructure:"odds_api"`
	Scheduler   SchedulerConfig `mapstructure:"scheduler"`
	Cache       CacheConfig     `mapstructure:"cache"`
}

type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxConns int32  `mapstructure:"max_conns"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// StatsAPIConfig points at the league stats API the collectors pull the
// per-horizon stat tables from.
type StatsAPIConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	Season       string        `mapstructure:"season"`
	SeasonType   string        `mapstructure:"season_type"`
	PerMode      string        `mapstructure:"per_mode"`
	Timeout      time.Duration `mapstructure:"timeout"`
	RequestDelay time.Duration `mapstructure:"request_delay"`
}

// OddsAPIConfig points at the events feed the schedule collector reads.
// Timezone defines what calendar day counts as "today's slate".
type OddsAPIConfig struct {
	BaseURL  string        `mapstructure:"base_url"`
	APIKey   string        `mapstructure:"api_key"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Timezone string        `mapstructure:"timezone"`
}

type SchedulerConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	CronSpec string `mapstructure:"cron_spec"`
	Timezone string `mapstructure:"timezone"`
}

type CacheConfig struct {
	SlateTTL      time.Duration `mapstructure:"slate_ttl"`
	ProjectionTTL time.Duration `mapstructure:"projection_ttl"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	// Set default values
	setDefaults()

	// Enable environment variable support
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.BindEnv("odds_api.api_key", "ODDS_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind ODDS_API_KEY environment variable: %w", err)
	}

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		// Config file not found, use defaults and environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.Environment = strings.ToLower(config.Environment)

	if _, err := time.LoadLocation(config.OddsAPI.Timezone); err != nil {
		return nil, fmt.Errorf("invalid odds_api.timezone: %w", err)
	}
	if _, err := time.LoadLocation(config.Scheduler.Timezone); err != nil {
		return nil, fmt.Errorf("invalid scheduler.timezone: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	// Environment
	viper.SetDefault("environment", "development")
	viper.SetDefault("log_level", "info")

	// Server
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Database
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.dbname", "nba_sharp")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.max_conns", 25)

	// Redis
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// Stats API
	viper.SetDefault("stats_api.base_url", "https://stats.nba.com/stats")
	viper.SetDefault("stats_api.season", "2025-26")
	viper.SetDefault("stats_api.season_type", "Regular Season")
	viper.SetDefault("stats_api.per_mode", "PerGame")
	viper.SetDefault("stats_api.timeout", "30s")
	viper.SetDefault("stats_api.request_delay", "600ms")

	// Odds API
	viper.SetDefault("odds_api.base_url", "https://api.the-odds-api.com/v4/sports")
	viper.SetDefault("odds_api.api_key", "")
	viper.SetDefault("odds_api.timeout", "20s")
	viper.SetDefault("odds_api.timezone", "America/New_York")

	// Scheduler
	viper.SetDefault("scheduler.enabled", true)
	viper.SetDefault("scheduler.cron_spec", "0 12 * * *")
	viper.SetDefault("scheduler.timezone", "America/New_York")

	// Cache
	viper.SetDefault("cache.slate_ttl", "36h")
	viper.SetDefault("cache.projection_ttl", "12h")
}
