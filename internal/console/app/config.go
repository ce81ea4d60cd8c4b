package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/aussiebroadwan/ideadesk/pkg/httpx"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Data sources.
const (
	SourceDemo = "demo"
	SourceAPI  = "api"
)

// Session store drivers.
const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

type Config struct {
	APIBaseURL     string        `yaml:"api_base_url"`    // Required for the api source
	Source         string        `yaml:"source"`          // Optional: demo or api (default: demo)
	Store          string        `yaml:"store"`           // Optional: sqlite, redis or memory (default: sqlite)
	DatabaseFile   string        `yaml:"database_file"`   // Optional: sqlite file (default: ./ideadesk.db)
	RedisAddr      string        `yaml:"redis_addr"`      // Required for the redis store
	RedisNamespace string        `yaml:"redis_namespace"` // Optional: key namespace inside redis
	FlashTTL       time.Duration `yaml:"flash_ttl"`       // Optional: how long flash messages stay (default: 4s)
	RequestTimeout time.Duration `yaml:"request_timeout"` // Optional: outbound request timeout, 0 is none (default: 0)
	OutboundRPS    float64       `yaml:"outbound_rps"`    // Optional: outbound requests per second, 0 is unlimited
	DemoLatency    time.Duration `yaml:"demo_latency"`    // Optional: simulated round trip for the demo source

	Env                 string        `yaml:"env"`                   // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        `yaml:"log_level"`             // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        `yaml:"log_format"`            // Log format (json, text) (default: json)
	Port                int           `yaml:"port"`                  // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration `yaml:"shutdown_grace_period"` // Graceful shutdown timeout (default: 10s)

	LoginLimit httpx.RateLimitConfig `yaml:"-"`
}

func defaultConfig() Config {
	return Config{
		Source:              SourceDemo,
		Store:               StoreSQLite,
		DatabaseFile:        "ideadesk.db",
		FlashTTL:            4 * time.Second,
		Env:                 "dev",
		LogLevel:            "info",
		LogFormat:           "json",
		Port:                8080,
		ShutdownGracePeriod: 10 * time.Second,
	}
}

// LoadConfig reads .env (when present), then the YAML file named by
// IDEADESK_CONFIG (when set), then the environment. Later sources win.
func LoadConfig() (Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	cfg := defaultConfig()
	if path := os.Getenv("IDEADESK_CONFIG"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg.APIBaseURL = getEnvOrDefault("IDEADESK_API_BASE_URL", cfg.APIBaseURL)
	cfg.Source = getEnvOrDefault("IDEADESK_SOURCE", cfg.Source)
	cfg.Store = getEnvOrDefault("IDEADESK_STORE", cfg.Store)
	cfg.DatabaseFile = getEnvOrDefault("IDEADESK_DATABASE_FILE", cfg.DatabaseFile)
	cfg.RedisAddr = getEnvOrDefault("IDEADESK_REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisNamespace = getEnvOrDefault("IDEADESK_REDIS_NAMESPACE", cfg.RedisNamespace)
	cfg.FlashTTL = getEnvDurationOrDefault("IDEADESK_FLASH_TTL", cfg.FlashTTL)
	cfg.RequestTimeout = getEnvDurationOrDefault("IDEADESK_REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.OutboundRPS = getEnvFloatOrDefault("IDEADESK_OUTBOUND_RPS", cfg.OutboundRPS)
	cfg.DemoLatency = getEnvDurationOrDefault("IDEADESK_DEMO_LATENCY", cfg.DemoLatency)
	cfg.Env = getEnvOrDefault("ENV", cfg.Env)
	cfg.LogLevel = getEnvOrDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnvOrDefault("LOG_FORMAT", cfg.LogFormat)
	cfg.Port = getEnvIntOrDefault("PORT", cfg.Port)
	cfg.ShutdownGracePeriod = getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", cfg.ShutdownGracePeriod)
	cfg.LoginLimit = httpx.ParseRateLimitFromEnv("LOGIN", httpx.LoginLimit)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first inconsistent setting.
func (c Config) Validate() error {
	switch c.Source {
	case SourceDemo:
	case SourceAPI:
		if c.APIBaseURL == "" {
			return errors.New("IDEADESK_API_BASE_URL is required for the api source")
		}
	default:
		return fmt.Errorf("unknown source %q (want demo or api)", c.Source)
	}

	switch c.Store {
	case StoreSQLite:
		if c.DatabaseFile == "" {
			return errors.New("IDEADESK_DATABASE_FILE is required for the sqlite store")
		}
	case StoreRedis:
		if c.RedisAddr == "" {
			return errors.New("IDEADESK_REDIS_ADDR is required for the redis store")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown store %q (want sqlite, redis or memory)", c.Store)
	}

	if c.OutboundRPS < 0 {
		return errors.New("IDEADESK_OUTBOUND_RPS must not be negative")
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// "4s", "1m30s"
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are seconds.
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
