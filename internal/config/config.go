package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Database    DatabaseConfig
	Redis       RedisConfig
	Auth        AuthConfig
	AIVision    AIVisionConfig
	Order       OrderConfig
	LogLevel    string
}

type DatabaseConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MigrationsPath string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type AIVisionConfig struct {
	Endpoint string
	APIKey   string
}

type OrderConfig struct {
	MinimumValue float64
	CartTTL      time.Duration
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("MIGRATIONS_PATH", "./migrations")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("TOKEN_TTL_HOURS", "24")
	viper.SetDefault("ORDER_MINIMUM_VALUE", "200")
	viper.SetDefault("CART_TTL_HOURS", "168")
	viper.SetDefault("LOG_LEVEL", "info")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	minimumValue, err := strconv.ParseFloat(getEnvOrViper("ORDER_MINIMUM_VALUE", "200"), 64)
	if err != nil || minimumValue < 0 {
		return nil, fmt.Errorf("ORDER_MINIMUM_VALUE must be a non-negative number")
	}

	cartTTLHours, err := strconv.Atoi(getEnvOrViper("CART_TTL_HOURS", "168"))
	if err != nil || cartTTLHours < 1 {
		return nil, fmt.Errorf("CART_TTL_HOURS must be a positive integer")
	}

	tokenTTLHours, err := strconv.Atoi(getEnvOrViper("TOKEN_TTL_HOURS", "24"))
	if err != nil || tokenTTLHours < 1 {
		return nil, fmt.Errorf("TOKEN_TTL_HOURS must be a positive integer")
	}

	redisDB, err := strconv.Atoi(getEnvOrViper("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("REDIS_DB must be an integer")
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Database: DatabaseConfig{
			Host:           getEnvOrViper("DB_HOST", "localhost"),
			Port:           getEnvOrViper("DB_PORT", "5432"),
			User:           getEnvOrViper("DB_USER", "postgres"),
			Password:       getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:         getEnvOrViper("DB_NAME", "storeapi"),
			SSLMode:        getEnvOrViper("DB_SSLMODE", "disable"),
			MigrationsPath: getEnvOrViper("MIGRATIONS_PATH", "./migrations"),
		},
		Redis: RedisConfig{
			Addr:     getEnvOrViper("REDIS_ADDR", "localhost:6379"),
			Password: getEnvOrViper("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Auth: AuthConfig{
			JWTSecret: getEnvOrViper("JWT_SECRET", ""),
			TokenTTL:  time.Duration(tokenTTLHours) * time.Hour,
		},
		AIVision: AIVisionConfig{
			Endpoint: getEnvOrViper("AI_VISION_URL", ""),
			APIKey:   getEnvOrViper("AI_VISION_API_KEY", ""),
		},
		Order: OrderConfig{
			MinimumValue: minimumValue,
			CartTTL:      time.Duration(cartTTLHours) * time.Hour,
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
