package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

type Config struct {
	Server    ServerConfig    `json:"server" toml:"server"`
	Database  DatabaseConfig  `json:"database" toml:"database"`
	Redis     RedisConfig     `json:"redis" toml:"redis"`
	Board     BoardConfig     `json:"board" toml:"board"`
	RateLimit RateLimitConfig `json:"rate_limit" toml:"rate_limit"`
}

type ServerConfig struct {
	Host           string        `json:"host" toml:"host"`
	Port           string        `json:"port" toml:"port"`
	ReadTimeout    time.Duration `json:"read_timeout" toml:"-"`
	WriteTimeout   time.Duration `json:"write_timeout" toml:"-"`
	IdleTimeout    time.Duration `json:"idle_timeout" toml:"-"`
	Environment    string        `json:"environment" toml:"environment"`
	AllowedOrigins []string      `json:"allowed_origins" toml:"allowed_origins"`
}

type DatabaseConfig struct {
	Driver          string        `json:"driver" toml:"driver"`
	SQLitePath      string        `json:"sqlite_path" toml:"sqlite_path"`
	Host            string        `json:"host" toml:"host"`
	Port            string        `json:"port" toml:"port"`
	User            string        `json:"user" toml:"user"`
	Password        string        `json:"password" toml:"password"`
	Name            string        `json:"name" toml:"name"`
	SSLMode         string        `json:"ssl_mode" toml:"ssl_mode"`
	MaxOpenConns    int           `json:"max_open_conns" toml:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns" toml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime" toml:"-"`
	ConnMaxIdleTime time.Duration `json:"conn_max_idle_time" toml:"-"`
	LogLevel        string        `json:"log_level" toml:"log_level"`
}

type RedisConfig struct {
	Enabled      bool          `json:"enabled" toml:"enabled"`
	Host         string        `json:"host" toml:"host"`
	Port         string        `json:"port" toml:"port"`
	Password     string        `json:"password" toml:"password"`
	DB           int           `json:"db" toml:"db"`
	PoolSize     int           `json:"pool_size" toml:"pool_size"`
	MinIdleConns int           `json:"min_idle_conns" toml:"min_idle_conns"`
	MaxRetries   int           `json:"max_retries" toml:"max_retries"`
	DialTimeout  time.Duration `json:"dial_timeout" toml:"-"`
	ReadTimeout  time.Duration `json:"read_timeout" toml:"-"`
	WriteTimeout time.Duration `json:"write_timeout" toml:"-"`
	ListTTL      time.Duration `json:"list_ttl" toml:"-"`
}

// BoardConfig holds the task/tag behaviour knobs.
type BoardConfig struct {
	TagPolicy       string `json:"tag_policy" toml:"tag_policy"`
	DefaultTagColor string `json:"default_tag_color" toml:"default_tag_color"`
	Locale          string `json:"locale" toml:"locale"`
	Timezone        string `json:"timezone" toml:"timezone"`
	SeedFile        string `json:"seed_file" toml:"seed_file"`
}

type RateLimitConfig struct {
	Enabled         bool          `json:"enabled" toml:"enabled"`
	RequestsPerMin  int           `json:"requests_per_minute" toml:"requests_per_minute"`
	BurstSize       int           `json:"burst_size" toml:"burst_size"`
	CleanupInterval time.Duration `json:"cleanup_interval" toml:"-"`
}

const (
	TagPolicyCreateMissing = "create-missing"
	TagPolicyRejectUnknown = "reject-unknown"
)

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "localhost",
			Port:           "8080",
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   30 * time.Second,
			IdleTimeout:    60 * time.Second,
			Environment:    "development",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Database: DatabaseConfig{
			Driver:          "sqlite",
			SQLitePath:      "taskboard.db",
			Host:            "localhost",
			Port:            "5432",
			User:            "postgres",
			Name:            "taskboard",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    10,
			ConnMaxLifetime: time.Hour,
			ConnMaxIdleTime: 30 * time.Minute,
			LogLevel:        "warn",
		},
		Redis: RedisConfig{
			Enabled:      false,
			Host:         "localhost",
			Port:         "6379",
			PoolSize:     10,
			MinIdleConns: 5,
			MaxRetries:   3,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			ListTTL:      5 * time.Minute,
		},
		Board: BoardConfig{
			TagPolicy:       TagPolicyCreateMissing,
			DefaultTagColor: "blue",
			Locale:          "en",
			Timezone:        "Local",
		},
		RateLimit: RateLimitConfig{
			Enabled:         true,
			RequestsPerMin:  100,
			BurstSize:       10,
			CleanupInterval: 10 * time.Minute,
		},
	}
}

// LoadConfig builds the configuration from defaults, then the TOML file named
// by CONFIG_FILE (if any), then environment variables. Durations are only
// read from the environment.
func LoadConfig() (*Config, error) {
	config := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := config.mergeFile(path); err != nil {
			return nil, err
		}
	}

	config.applyEnv()

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.Host = getEnv("HOST", c.Server.Host)
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Server.ReadTimeout = getEnvAsDuration("READ_TIMEOUT", c.Server.ReadTimeout)
	c.Server.WriteTimeout = getEnvAsDuration("WRITE_TIMEOUT", c.Server.WriteTimeout)
	c.Server.IdleTimeout = getEnvAsDuration("IDLE_TIMEOUT", c.Server.IdleTimeout)
	c.Server.Environment = getEnv("ENVIRONMENT", c.Server.Environment)
	c.Server.AllowedOrigins = getEnvAsList("ALLOWED_ORIGINS", c.Server.AllowedOrigins)

	c.Database.Driver = getEnv("DB_DRIVER", c.Database.Driver)
	c.Database.SQLitePath = getEnv("DB_SQLITE_PATH", c.Database.SQLitePath)
	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	c.Database.Port = getEnv("DB_PORT", c.Database.Port)
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	c.Database.Name = getEnv("DB_NAME", c.Database.Name)
	c.Database.SSLMode = getEnv("DB_SSL_MODE", c.Database.SSLMode)
	c.Database.MaxOpenConns = getEnvAsInt("DB_MAX_OPEN_CONNS", c.Database.MaxOpenConns)
	c.Database.MaxIdleConns = getEnvAsInt("DB_MAX_IDLE_CONNS", c.Database.MaxIdleConns)
	c.Database.ConnMaxLifetime = getEnvAsDuration("DB_CONN_MAX_LIFETIME", c.Database.ConnMaxLifetime)
	c.Database.ConnMaxIdleTime = getEnvAsDuration("DB_CONN_MAX_IDLE_TIME", c.Database.ConnMaxIdleTime)
	c.Database.LogLevel = getEnv("DB_LOG_LEVEL", c.Database.LogLevel)

	c.Redis.Enabled = getEnvAsBool("REDIS_ENABLED", c.Redis.Enabled)
	c.Redis.Host = getEnv("REDIS_HOST", c.Redis.Host)
	c.Redis.Port = getEnv("REDIS_PORT", c.Redis.Port)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)
	c.Redis.DB = getEnvAsInt("REDIS_DB", c.Redis.DB)
	c.Redis.PoolSize = getEnvAsInt("REDIS_POOL_SIZE", c.Redis.PoolSize)
	c.Redis.MinIdleConns = getEnvAsInt("REDIS_MIN_IDLE_CONNS", c.Redis.MinIdleConns)
	c.Redis.MaxRetries = getEnvAsInt("REDIS_MAX_RETRIES", c.Redis.MaxRetries)
	c.Redis.DialTimeout = getEnvAsDuration("REDIS_DIAL_TIMEOUT", c.Redis.DialTimeout)
	c.Redis.ReadTimeout = getEnvAsDuration("REDIS_READ_TIMEOUT", c.Redis.ReadTimeout)
	c.Redis.WriteTimeout = getEnvAsDuration("REDIS_WRITE_TIMEOUT", c.Redis.WriteTimeout)
	c.Redis.ListTTL = getEnvAsDuration("REDIS_LIST_TTL", c.Redis.ListTTL)

	c.Board.TagPolicy = getEnv("TAG_POLICY", c.Board.TagPolicy)
	c.Board.DefaultTagColor = getEnv("TAG_DEFAULT_COLOR", c.Board.DefaultTagColor)
	c.Board.Locale = getEnv("APP_LOCALE", c.Board.Locale)
	c.Board.Timezone = getEnv("APP_TIMEZONE", c.Board.Timezone)
	c.Board.SeedFile = getEnv("SEED_FILE", c.Board.SeedFile)

	c.RateLimit.Enabled = getEnvAsBool("RATE_LIMIT_ENABLED", c.RateLimit.Enabled)
	c.RateLimit.RequestsPerMin = getEnvAsInt("RATE_LIMIT_RPM", c.RateLimit.RequestsPerMin)
	c.RateLimit.BurstSize = getEnvAsInt("RATE_LIMIT_BURST", c.RateLimit.BurstSize)
	c.RateLimit.CleanupInterval = getEnvAsDuration("RATE_LIMIT_CLEANUP", c.RateLimit.CleanupInterval)
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	switch c.Board.TagPolicy {
	case TagPolicyCreateMissing, TagPolicyRejectUnknown:
	default:
		return fmt.Errorf("unsupported tag policy %q", c.Board.TagPolicy)
	}

	if _, err := time.LoadLocation(c.Board.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Board.Timezone, err)
	}

	if c.IsProduction() && c.Database.Driver == "postgres" && c.Database.Password == "" {
		return fmt.Errorf("database password is required in production")
	}

	return nil
}

func (c *Config) GetDatabaseDSN() string {
	if c.Database.Driver == "sqlite" {
		return c.Database.SQLitePath
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Location returns the time zone used to decide what "today" is.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Board.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
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

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
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
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
