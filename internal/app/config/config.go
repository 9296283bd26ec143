// Package config はアプリケーション設定を環境変数から読み込みます。
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingJWTSecret is returned by Load when JWT_SECRET is empty.
var ErrMissingJWTSecret = errors.New("JWT_SECRET is not set")

// DefaultDatabaseURL is used when DATABASE_URL is empty.
const DefaultDatabaseURL = "sqlite://quotes.db"

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Gemini   GeminiConfig
	Redis    RedisConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port             string
	CORSAllowOrigins []string
	ShutdownTimeout  time.Duration
}

type DatabaseConfig struct {
	// URL selects the backend by scheme: postgres://, mongodb://, sqlite://.
	URL            string
	MongoDBName    string
	RunMigrations  bool
	ConnectTimeout time.Duration
}

type AuthConfig struct {
	JWTSecret  string
	JWTTTL     time.Duration
	BcryptCost int
}

type GeminiConfig struct {
	APIKey          string
	Model           string
	MaxOutputTokens int
	Timeout         time.Duration
}

type RedisConfig struct {
	Host      string
	Port      string
	Password  string
	QuotesTTL time.Duration
}

// Enabled reports whether a Redis host was configured.
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

// Addr returns host:port, defaulting the port to 6379.
func (c RedisConfig) Addr() string {
	port := c.Port
	if port == "" {
		port = "6379"
	}
	return c.Host + ":" + port
}

type LogConfig struct {
	Level  string
	Format string
}

// Load は.envファイル（存在する場合）と環境変数から設定を読み込みます。
// JWT_SECRETが未設定の場合は ErrMissingJWTSecret を返し、サーバーは起動しません。
func Load() (*Config, error) {
	// Load .env if it exists (local dev), ignore if not
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:             getEnv("PORT", "3001"),
			CORSAllowOrigins: getEnvAsList("CORS_ALLOW_ORIGINS"),
			ShutdownTimeout:  getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			URL:            getEnv("DATABASE_URL", DefaultDatabaseURL),
			MongoDBName:    getEnv("MONGO_DB_NAME", "quotes"),
			RunMigrations:  getEnvAsBool("RUN_MIGRATIONS", true),
			ConnectTimeout: getEnvAsDuration("DB_CONNECT_TIMEOUT", 60*time.Second),
		},
		Auth: AuthConfig{
			JWTSecret:  os.Getenv("JWT_SECRET"),
			JWTTTL:     getEnvAsDuration("JWT_TTL", time.Hour),
			BcryptCost: getEnvAsInt("BCRYPT_COST", 10),
		},
		Gemini: GeminiConfig{
			APIKey:          os.Getenv("GEMINI_API_KEY"),
			Model:           getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			MaxOutputTokens: getEnvAsInt("GEMINI_MAX_OUTPUT_TOKENS", 256),
			Timeout:         getEnvAsDuration("GEMINI_TIMEOUT", 15*time.Second),
		},
		Redis: RedisConfig{
			Host:      os.Getenv("REDIS_HOST"),
			Port:      os.Getenv("REDIS_PORT"),
			Password:  os.Getenv("REDIS_PASSWORD"),
			QuotesTTL: getEnvAsDuration("QUOTES_CACHE_TTL", 5*time.Minute),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if cfg.Auth.JWTSecret == "" {
		return cfg, ErrMissingJWTSecret
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvAsList splits a comma separated value, dropping blanks.
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
