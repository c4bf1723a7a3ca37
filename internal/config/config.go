package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
// An empty DatabaseURL switches the service to placeholder mode (in-memory
// demo data, nothing persisted); an empty RedisURL disables caching, the job
// queue and the alert cron.
type Config struct {
	// Server
	Port           int    `mapstructure:"PORT"`
	Env            string `mapstructure:"APP_ENV"` // development | production
	WorkerPoolSize int    `mapstructure:"WORKER_POOL_SIZE"`

	// Database
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Redis
	RedisURL        string        `mapstructure:"REDIS_URL"`
	RecetasCacheTTL time.Duration `mapstructure:"RECETAS_CACHE_TTL"`

	// SMTP
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUser     string `mapstructure:"SMTP_USER"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`

	// Alertas de stock bajo
	AlertEmailTo string `mapstructure:"ALERT_EMAIL_TO"`
	AlertCron    string `mapstructure:"ALERT_CRON"`

	// Business
	PDFStoragePath string `mapstructure:"PDF_STORAGE_PATH"`
}

// ModoDemo reports whether the service runs without a database.
func (c *Config) ModoDemo() bool { return c.DatabaseURL == "" }

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("PORT", 8000)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("WORKER_POOL_SIZE", 2)
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("RECETAS_CACHE_TTL", "10m")
	viper.SetDefault("SMTP_HOST", "")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_USER", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("ALERT_EMAIL_TO", "")
	viper.SetDefault("ALERT_CRON", "0 7 * * *")
	viper.SetDefault("PDF_STORAGE_PATH", "/tmp/abbafoods/pedidos")

	// Optional .env file for local development; does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
