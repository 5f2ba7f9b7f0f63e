package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	// Database (sqlite file path, or a postgres:// URL)
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Redis (empty disables the stats cache)
	RedisURL string `mapstructure:"REDIS_URL"`

	// CORS
	CorsOrigins []string `mapstructure:"CORS_ORIGINS"`

	// Catalog
	PlayersDataSource      string        `mapstructure:"PLAYERS_DATA_SOURCE"`
	CatalogRefreshInterval time.Duration `mapstructure:"CATALOG_REFRESH_INTERVAL"`

	// Squad building
	SquadBudget     float64 `mapstructure:"SQUAD_BUDGET"`
	SuggestionLimit int     `mapstructure:"SUGGESTION_LIMIT"`

	// Reporting
	StatsCacheTTL int `mapstructure:"STATS_CACHE_TTL"`

	// API
	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST"`
	ShareBaseURL   string  `mapstructure:"SHARE_BASE_URL"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("DATABASE_URL", "valor_explorer.db")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")
	viper.SetDefault("PLAYERS_DATA_SOURCE", "./data/players_data.json")
	viper.SetDefault("CATALOG_REFRESH_INTERVAL", "0s") // single load at startup
	viper.SetDefault("SQUAD_BUDGET", 1000.0)
	viper.SetDefault("SUGGESTION_LIMIT", 3)
	viper.SetDefault("STATS_CACHE_TTL", 300) // seconds
	viper.SetDefault("RATE_LIMIT_RPS", 50.0)
	viper.SetDefault("RATE_LIMIT_BURST", 100)
	viper.SetDefault("SHARE_BASE_URL", "https://valor-explorer.app")

	// Read from environment
	viper.AutomaticEnv()

	// Read config file if exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Parse CORS origins from comma-separated string
	if corsStr := viper.GetString("CORS_ORIGINS"); corsStr != "" {
		config.CorsOrigins = strings.Split(corsStr, ",")
	}

	return &config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
