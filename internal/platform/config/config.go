package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	RunMigrations bool

	// RecorderSaveRetries bounds how often a serialization conflict is
	// retried when saving a ledger entry.
	RecorderSaveRetries int

	// RateLimitPeriod is the limiter window, e.g. "1m-100" (100 req/min).
	RateLimitPeriod string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("RUN_MIGRATIONS", true)
	viper.SetDefault("RECORDER_SAVE_RETRIES", 3)
	viper.SetDefault("RATE_LIMIT_PERIOD", "1m-300")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.RunMigrations = viper.GetBool("RUN_MIGRATIONS")

	cfg.RecorderSaveRetries = viper.GetInt("RECORDER_SAVE_RETRIES")
	if cfg.RecorderSaveRetries <= 0 {
		cfg.RecorderSaveRetries = 3
		log.Printf("Warning: Invalid RECORDER_SAVE_RETRIES. Defaulting to %d.\n", cfg.RecorderSaveRetries)
	}

	cfg.RateLimitPeriod = viper.GetString("RATE_LIMIT_PERIOD")

	return cfg, nil
}
