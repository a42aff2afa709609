package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StateStoreMemory   = "memory"
	StateStorePostgres = "postgres"
	StateStoreRedis    = "redis"
)

type Config struct {
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	App        AppConfig
	State      StateConfig
	Attendance AttendanceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration time.Duration
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	Timezone       string
	AllowedOrigins []string
}

// StateConfig selects where today's check-in state lives
type StateConfig struct {
	Store         string
	KeyPrefix     string
	PruneInterval time.Duration
}

type AttendanceConfig struct {
	Profile            string
	AbsentCutoffHour   int
	DefaultSubjectSeed int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	config := &Config{}
	var err error

	// Database configuration
	dbPort, err := getEnvInt("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "dayflow"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Redis configuration
	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	config.Redis = RedisConfig{
		Addr:     getEnv("REDIS_ADDR", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
	}

	// Application configuration
	appPort, err := getEnvInt("APP_PORT", 8080)
	if err != nil {
		return nil, err
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Timezone:       getEnv("APP_TIMEZONE", "Asia/Kolkata"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	// JWT configuration
	accessExpiration, err := getEnvDuration("JWT_ACCESS_EXPIRATION_TIME", time.Hour)
	if err != nil {
		return nil, err
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: accessExpiration,
	}

	// Today-state storage
	pruneInterval, err := getEnvDuration("STATE_PRUNE_INTERVAL", time.Hour)
	if err != nil {
		return nil, err
	}

	config.State = StateConfig{
		Store:         strings.ToLower(getEnv("STATE_STORE", StateStoreMemory)),
		KeyPrefix:     getEnv("STATE_KEY_PREFIX", "employeeAttendance"),
		PruneInterval: pruneInterval,
	}

	// Attendance synthesis
	cutoff, err := getEnvInt("ATTENDANCE_ABSENT_CUTOFF_HOUR", 14)
	if err != nil {
		return nil, err
	}
	seed, err := getEnvInt("ATTENDANCE_DEFAULT_SUBJECT_SEED", 7)
	if err != nil {
		return nil, err
	}

	config.Attendance = AttendanceConfig{
		Profile:            getEnv("ATTENDANCE_PROFILE", "standard"),
		AbsentCutoffHour:   cutoff,
		DefaultSubjectSeed: seed,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	var errs []error

	if c.JWT.Secret == "" {
		errs = append(errs, fmt.Errorf("JWT_SECRET_KEY is required"))
	}
	if c.JWT.AccessExpiration <= 0 {
		errs = append(errs, fmt.Errorf("JWT_ACCESS_EXPIRATION_TIME must be positive"))
	}

	switch c.State.Store {
	case StateStoreMemory:
	case StateStorePostgres:
		if c.Database.Password == "" {
			errs = append(errs, fmt.Errorf("DB_PASSWORD is required when STATE_STORE=postgres"))
		}
	case StateStoreRedis:
		if c.Redis.Addr == "" {
			errs = append(errs, fmt.Errorf("REDIS_ADDR is required when STATE_STORE=redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("STATE_STORE must be one of: memory, postgres, redis"))
	}
	if c.State.KeyPrefix == "" {
		errs = append(errs, fmt.Errorf("STATE_KEY_PREFIX must not be empty"))
	}
	if c.State.PruneInterval <= 0 {
		errs = append(errs, fmt.Errorf("STATE_PRUNE_INTERVAL must be positive"))
	}

	if c.Attendance.AbsentCutoffHour < 0 || c.Attendance.AbsentCutoffHour > 23 {
		errs = append(errs, fmt.Errorf("ATTENDANCE_ABSENT_CUTOFF_HOUR must be between 0 and 23"))
	}
	if c.Attendance.DefaultSubjectSeed < 0 {
		errs = append(errs, fmt.Errorf("ATTENDANCE_DEFAULT_SUBJECT_SEED must not be negative"))
	}

	if _, err := c.Location(); err != nil {
		errs = append(errs, fmt.Errorf("invalid APP_TIMEZONE: %w", err))
	}

	return errors.Join(errs...)
}

// Location resolves APP_TIMEZONE. "Today" and check-in times are read in it.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.App.Timezone)
}

// SlogLevel maps LOG_LEVEL onto slog, defaulting to info
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.App.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
