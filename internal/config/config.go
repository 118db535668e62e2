package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Session   SessionConfig   `yaml:"session"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

type ServerConfig struct {
	Port         string   `yaml:"port"`
	GinMode      string   `yaml:"gin_mode"`
	AllowOrigins []string `yaml:"allow_origins"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type SessionConfig struct {
	Backend       string        `yaml:"backend"`
	TTL           time.Duration `yaml:"ttl"`
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	SQLitePath    string        `yaml:"sqlite_path"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

var ErrInvalidConfig = errors.New("invalid configuration")

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:         "8080",
			GinMode:      "release",
			AllowOrigins: []string{"*"},
		},
		Log: LogConfig{Level: "info"},
		Session: SessionConfig{
			Backend:    BackendMemory,
			TTL:        24 * time.Hour,
			RedisAddr:  "localhost:6379",
			SQLitePath: "./astro_sessions.db",
		},
		RateLimit: RateLimitConfig{RPS: 5, Burst: 10},
	}
}

// Load reads .env (if present), then the optional YAML file named by
// ASTRO_CONFIG, then environment variables. Later sources win.
func Load() (Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	cfg := Default()
	if path := strings.TrimSpace(os.Getenv("ASTRO_CONFIG")); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse YAML in %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Server.Port = getEnv("PORT", cfg.Server.Port)
	cfg.Server.GinMode = getEnv("GIN_MODE", cfg.Server.GinMode)
	cfg.Server.AllowOrigins = getEnvAsList("CORS_ALLOW_ORIGINS", cfg.Server.AllowOrigins)

	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)

	cfg.Session.Backend = strings.ToLower(getEnv("SESSION_BACKEND", cfg.Session.Backend))
	cfg.Session.TTL = getEnvAsDuration("SESSION_TTL", cfg.Session.TTL)
	cfg.Session.RedisAddr = getEnv("REDIS_ADDR", cfg.Session.RedisAddr)
	cfg.Session.RedisPassword = getEnv("REDIS_PASSWORD", cfg.Session.RedisPassword)
	cfg.Session.RedisDB = getEnvAsInt("REDIS_DB", cfg.Session.RedisDB)
	cfg.Session.SQLitePath = getEnv("SQLITE_PATH", cfg.Session.SQLitePath)

	cfg.RateLimit.RPS = getEnvAsFloat("RATE_LIMIT_RPS", cfg.RateLimit.RPS)
	cfg.RateLimit.Burst = getEnvAsInt("RATE_LIMIT_BURST", cfg.RateLimit.Burst)
}

// Validate checks that the configuration can start a server.
func (c Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("%w: port must be set", ErrInvalidConfig)
	}
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("%w: port %q is not a number", ErrInvalidConfig, c.Server.Port)
	}

	switch c.Session.Backend {
	case BackendMemory:
	case BackendRedis:
		if c.Session.RedisAddr == "" {
			return fmt.Errorf("%w: redis backend needs REDIS_ADDR", ErrInvalidConfig)
		}
	case BackendSQLite:
		if c.Session.SQLitePath == "" {
			return fmt.Errorf("%w: sqlite backend needs SQLITE_PATH", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown session backend %q", ErrInvalidConfig, c.Session.Backend)
	}

	if c.Session.TTL < 0 {
		return fmt.Errorf("%w: session ttl cannot be negative", ErrInvalidConfig)
	}
	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("%w: rate limit values cannot be negative", ErrInvalidConfig)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
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

func getEnvAsList(key string, defaultValue []string) []string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
