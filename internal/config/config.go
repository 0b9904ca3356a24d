package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ErrUnknownProfile is returned when ENVIRONMENT names no known profile.
var ErrUnknownProfile = errors.New("unknown environment profile")

// Profile selects the environment-specific configuration variant
type Profile string

const (
	ProfileDevelopment Profile = "DEV"
	ProfileStaging     Profile = "STAGING"
	ProfileProduction  Profile = "PROD"
)

// ParseProfile resolves an environment name case-insensitively.
func ParseProfile(name string) (Profile, error) {
	switch p := Profile(strings.ToUpper(strings.TrimSpace(name))); p {
	case ProfileDevelopment, ProfileStaging, ProfileProduction:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q (must be DEV, STAGING or PROD)", ErrUnknownProfile, name)
	}
}

// profileSettings holds what differs between profiles.
type profileSettings struct {
	description string
	debug       bool
	testing     bool
	hostVar     string
	dbNameVar   string
}

var profiles = map[Profile]profileSettings{
	ProfileDevelopment: {
		description: "Development Settings",
		debug:       true,
		hostVar:     "POSTGRES_DEV_HOST",
		dbNameVar:   "POSTGRES_DEV_DB",
	},
	ProfileStaging: {
		description: "Staging / Testing Settings",
		debug:       true,
		testing:     true,
		hostVar:     "POSTGRES_TEST_HOST",
		dbNameVar:   "POSTGRES_TEST_DB",
	},
	ProfileProduction: {
		description: "Production Settings",
		hostVar:     "POSTGRES_HOST",
		dbNameVar:   "POSTGRES_DB",
	},
}

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Database DatabaseConfig
	App      AppConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string
	APIPrefix       string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	Schema          string
	SSLMode         string
	ConnMaxLifetime time.Duration
	QueryTimeout    time.Duration
	PoolSize        int
	MaxOverflow     int
	Echo            bool
	AutoMigrate     bool
}

// AppConfig holds profile-level flags
type AppConfig struct {
	Profile     Profile
	Description string
	// IdempotencyTTL is how long a stored POST response can be replayed.
	IdempotencyTTL           time.Duration
	IdempotencyPurgeInterval time.Duration
	Debug                    bool
	Testing                  bool
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level string // debug, info, warn, error
}

var loadOnce = sync.OnceValues(Load)

// Get returns the process-wide configuration. The environment is read on the
// first call only; later calls return the same result.
func Get() (*Config, error) {
	return loadOnce()
}

// Load reads the profile named by ENVIRONMENT and builds its configuration
// from environment variables with sensible defaults.
func Load() (*Config, error) {
	profile, err := ParseProfile(getEnv("ENVIRONMENT", string(ProfileDevelopment)))
	if err != nil {
		return nil, err
	}
	settings := profiles[profile]

	defaultLevel := "info"
	if settings.debug {
		defaultLevel = "debug"
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8000"),
			APIPrefix:       getEnv("API_PREFIX", "/v1"),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", "15s"),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", "15s"),
			IdleTimeout:     getEnvAsDuration("SERVER_IDLE_TIMEOUT", "60s"),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", "30s"),
		},
		Database: DatabaseConfig{
			Host:            getEnv(settings.hostVar, "localhost"),
			Port:            getEnv("POSTGRES_PORT", "5432"),
			User:            getEnv("POSTGRES_USERNAME", "postgres"),
			Password:        getEnv("POSTGRES_PASSWORD", "postgres"),
			DBName:          getEnv(settings.dbNameVar, "accounts"),
			Schema:          getEnv("POSTGRES_SCHEMA", "public"),
			SSLMode:         getEnv("POSTGRES_SSLMODE", "disable"),
			PoolSize:        getEnvAsInt("DB_POOL_SIZE", 5),
			MaxOverflow:     getEnvAsInt("DB_MAX_OVERFLOW", 10),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", "5m"),
			QueryTimeout:    getEnvAsDuration("DB_QUERY_TIMEOUT", "5s"),
			Echo:            getEnvAsBool("POSTGRES_ECHO", false),
			AutoMigrate:     getEnvAsBool("DB_AUTO_MIGRATE", true),
		},
		App: AppConfig{
			Profile:                  profile,
			Description:              settings.description,
			IdempotencyTTL:           getEnvAsDuration("IDEMPOTENCY_TTL", "24h"),
			IdempotencyPurgeInterval: getEnvAsDuration("IDEMPOTENCY_PURGE_INTERVAL", "1h"),
			Debug:                    settings.debug,
			Testing:                  settings.testing,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", defaultLevel),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port cannot be empty")
	}
	if !strings.HasPrefix(c.Server.APIPrefix, "/") {
		return fmt.Errorf("api prefix must start with '/', got %q", c.Server.APIPrefix)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host cannot be empty")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database name cannot be empty")
	}
	if c.Database.PoolSize <= 0 {
		return fmt.Errorf("pool size must be positive, got %d", c.Database.PoolSize)
	}
	if c.Database.MaxOverflow < 0 {
		return fmt.Errorf("max overflow cannot be negative, got %d", c.Database.MaxOverflow)
	}

	if c.App.IdempotencyTTL <= 0 {
		return fmt.Errorf("idempotency ttl must be positive, got %s", c.App.IdempotencyTTL)
	}
	if c.App.IdempotencyPurgeInterval <= 0 {
		return fmt.Errorf("idempotency purge interval must be positive, got %s", c.App.IdempotencyPurgeInterval)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	return nil
}

// MaxOpenConns is the hard ceiling on concurrent connections: the pool plus its overflow.
func (c *DatabaseConfig) MaxOpenConns() int {
	return c.PoolSize + c.MaxOverflow
}

// DSN returns the PostgreSQL connection string. Values are quoted so that
// passwords may contain spaces, quotes and backslashes.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s",
		quoteDSNValue(c.Host),
		quoteDSNValue(c.Port),
		quoteDSNValue(c.User),
		quoteDSNValue(c.Password),
		quoteDSNValue(c.DBName),
		quoteDSNValue(c.SSLMode),
		quoteDSNValue(c.Schema),
	)
}

var dsnEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func quoteDSNValue(value string) string {
	return "'" + dsnEscaper.Replace(value) + "'"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to parsing the default if provided value is invalid
		duration, err = time.ParseDuration(defaultValue)
		if err != nil {
			return 0
		}
	}
	return duration
}
