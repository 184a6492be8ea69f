package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Backend  BackendConfig
	Cache    CacheConfig
	Database DatabaseConfig
	LogLevel string
}

type ServerConfig struct {
	Port          string
	Mode          string
	AllowedOrigin string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
}

// BackendConfig points at the business REST API. An empty BaseURL selects the
// seeded in-memory backend.
type BackendConfig struct {
	BaseURL     string
	Timeout     time.Duration
	TokenSecret string
}

type CacheConfig struct {
	RedisURL      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	ReportTTL     time.Duration
}

type DatabaseConfig struct {
	URL string
}

// Enabled reports whether a redis connection was configured.
func (c CacheConfig) Enabled() bool {
	return c.RedisURL != "" || c.RedisAddr != ""
}

// NewViper returns a viper instance with every default registered and the
// environment (plus an optional .env file) bound.
func NewViper() *viper.Viper {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("SERVER_MODE", "release")
	v.SetDefault("ALLOWED_ORIGIN", "http://127.0.0.1:5173")
	v.SetDefault("SERVER_READ_TIMEOUT_SECONDS", 10)
	v.SetDefault("SERVER_WRITE_TIMEOUT_SECONDS", 30)
	v.SetDefault("BACKEND_URL", "http://localhost:3000/api")
	v.SetDefault("BACKEND_TIMEOUT_SECONDS", 10)
	v.SetDefault("BACKEND_TOKEN_SECRET", "")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REPORT_TTL_MINUTES", 30)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()
	return v
}

func Load() Config {
	return FromViper(NewViper())
}

func FromViper(v *viper.Viper) Config {
	return Config{
		Server: ServerConfig{
			Port:          v.GetString("PORT"),
			Mode:          strings.ToLower(v.GetString("SERVER_MODE")),
			AllowedOrigin: v.GetString("ALLOWED_ORIGIN"),
			ReadTimeout:   seconds(v.GetInt("SERVER_READ_TIMEOUT_SECONDS"), 10),
			WriteTimeout:  seconds(v.GetInt("SERVER_WRITE_TIMEOUT_SECONDS"), 30),
		},
		Backend: BackendConfig{
			BaseURL:     strings.TrimSpace(v.GetString("BACKEND_URL")),
			Timeout:     seconds(v.GetInt("BACKEND_TIMEOUT_SECONDS"), 10),
			TokenSecret: strings.TrimSpace(v.GetString("BACKEND_TOKEN_SECRET")),
		},
		Cache: CacheConfig{
			RedisURL:      v.GetString("REDIS_URL"),
			RedisAddr:     v.GetString("REDIS_ADDR"),
			RedisPassword: v.GetString("REDIS_PASSWORD"),
			RedisDB:       v.GetInt("REDIS_DB"),
			ReportTTL:     minutes(v.GetInt("REPORT_TTL_MINUTES"), 30),
		},
		Database: DatabaseConfig{
			URL: v.GetString("DATABASE_URL"),
		},
		LogLevel: v.GetString("LOG_LEVEL"),
	}
}

func (c Config) Address() string {
	port := strings.TrimSpace(c.Server.Port)
	if port == "" {
		port = "8080"
	}
	return fmt.Sprintf(":%s", port)
}

func seconds(n int, fallback int) time.Duration {
	if n < 1 {
		n = fallback
	}
	return time.Duration(n) * time.Second
}

func minutes(n int, fallback int) time.Duration {
	if n < 1 {
		n = fallback
	}
	return time.Duration(n) * time.Minute
}
