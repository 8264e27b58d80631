package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Remote court API.
	CourtAPIURL        string `mapstructure:"COURT_API_URL"`
	CourtAPITimeoutSec int    `mapstructure:"COURT_API_TIMEOUT_SEC"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB   int    `mapstructure:"REDIS_CACHE_DB"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisTaskDB    int    `mapstructure:"REDIS_TASK_DB"`

	// Booking flow tuning.
	SnapshotTTLSec   int `mapstructure:"SNAPSHOT_TTL_SEC"`
	SessionTTLMin    int `mapstructure:"SESSION_TTL_MIN"`
	PaymentWindowMin int `mapstructure:"PAYMENT_WINDOW_MIN"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("COURT_API_URL", "http://localhost:9000/api")
	viper.SetDefault("COURT_API_TIMEOUT_SEC", 10)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_SESSION_DB", 1)
	viper.SetDefault("REDIS_TASK_DB", 2)
	viper.SetDefault("SNAPSHOT_TTL_SEC", 30)
	viper.SetDefault("SESSION_TTL_MIN", 30)
	viper.SetDefault("PAYMENT_WINDOW_MIN", 15)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// CourtAPITimeout returns the outbound request timeout for the court API.
func CourtAPITimeout() time.Duration {
	return time.Duration(AppConfig.CourtAPITimeoutSec) * time.Second
}

// SessionTTL returns how long an idle selection session is kept.
func SessionTTL() time.Duration {
	return time.Duration(AppConfig.SessionTTLMin) * time.Minute
}

// SnapshotTTL returns how long a per-date booking snapshot may be served from cache.
func SnapshotTTL() time.Duration {
	return time.Duration(AppConfig.SnapshotTTLSec) * time.Second
}

// PaymentWindow returns the countdown a pending booking gets before it expires.
func PaymentWindow() time.Duration {
	return time.Duration(AppConfig.PaymentWindowMin) * time.Minute
}
