package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// DefaultBaseURL is the root of the prediction/chat backend used when nothing is configured
const DefaultBaseURL = "http://127.0.0.1:5000"

// Config holds all configuration for the application
type Config struct {
	Service    ServiceConfig
	Server     ServerConfig
	PostgreSQL PostgreSQLConfig
	Redis      RedisConfig
	Logging    LoggingConfig
	Chat       ChatConfig
}

// ServiceConfig describes the remote prediction/chat service
type ServiceConfig struct {
	BaseURL string
	Timeout time.Duration // 0 means no client-side timeout
}

// PredictURL returns the predict endpoint
func (s ServiceConfig) PredictURL() string {
	return s.BaseURL + "/predict"
}

// ChatURL returns the chat endpoint
func (s ServiceConfig) ChatURL() string {
	return s.BaseURL + "/chat"
}

// ReportURL returns the PDF report endpoint
func (s ServiceConfig) ReportURL() string {
	return s.BaseURL + "/report"
}

// ServerConfig holds portal server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins []string
}

// PostgreSQLConfig holds the optional prediction history database configuration
type PostgreSQLConfig struct {
	DSN                string
	MaxConnections     int
	MaxIdleConnections int
}

// Enabled reports whether prediction history should be persisted
func (p PostgreSQLConfig) Enabled() bool {
	return p.DSN != ""
}

// RedisConfig holds the optional chat transcript store configuration
type RedisConfig struct {
	URL        string
	SessionTTL time.Duration
}

// Enabled reports whether transcripts should be kept in Redis
func (r RedisConfig) Enabled() bool {
	return r.URL != ""
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// ChatConfig holds chat widget configuration
type ChatConfig struct {
	Greeting   string
	SessionTTL time.Duration
}

// DefaultGreeting seeds every new chat transcript
const DefaultGreeting = "Hi! I'm your AI loan assistant. Ask me anything about loan eligibility or your prediction results."

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		Service: loadService(),
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		PostgreSQL: PostgreSQLConfig{
			DSN:                getEnv("DATABASE_URL", getEnv("PG_DSN", "")),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 10),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 2),
		},
		Redis: RedisConfig{
			URL:        getEnv("REDIS_URL", ""),
			SessionTTL: getEnvAsDuration("REDIS_SESSION_TTL", 24*time.Hour),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
		Chat: ChatConfig{
			Greeting:   getEnv("CHAT_GREETING", DefaultGreeting),
			SessionTTL: getEnvAsDuration("CHAT_SESSION_TTL", time.Hour),
		},
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return nil, fmt.Errorf("invalid SERVER_PORT %d", cfg.Server.Port)
	}

	return cfg, nil
}

// LoadService reads only the backend settings, for tools that need no server config
func LoadService() ServiceConfig {
	_ = godotenv.Load()
	return loadService()
}

func loadService() ServiceConfig {
	return ServiceConfig{
		BaseURL: strings.TrimSuffix(getEnv("LOAN_API_BASE_URL", DefaultBaseURL), "/"),
		Timeout: getEnvAsDuration("LOAN_API_TIMEOUT", 0),
	}
}

// Addr returns the listen address of the portal server
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warnf("Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		// bare numbers are seconds
		secs, convErr := strconv.Atoi(valueStr)
		if convErr != nil {
			log.Warnf("Invalid duration value for %s, using default %s", key, defaultValue)
			return defaultValue
		}
		return time.Duration(secs) * time.Second
	}
	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
