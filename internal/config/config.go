package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Payroll  PayrollConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// PayrollConfig holds the environment-level fallback defaults for the payroll
// settings resolver. Stored per-company settings take precedence over these.
type PayrollConfig struct {
	OvertimeMultiplier     float64
	DailyOvertimeThreshold float64
	StandardWorkdayHours   float64
	RoundingPrecision      int
	DefaultPeriodType      string
	ThresholdPolicy        string
}

func Load() (*Config, error) {
	// .env is optional outside local development
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "sitecrew_workforce"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Payroll defaults
	overtimeMultiplier, err := getEnvFloat("PAYROLL_OVERTIME_MULTIPLIER", 1.5)
	if err != nil {
		return nil, err
	}
	dailyThreshold, err := getEnvFloat("PAYROLL_DAILY_OVERTIME_THRESHOLD", 8.0)
	if err != nil {
		return nil, err
	}
	workdayHours, err := getEnvFloat("PAYROLL_STANDARD_WORKDAY_HOURS", 8.0)
	if err != nil {
		return nil, err
	}
	precision, err := strconv.Atoi(getEnv("PAYROLL_ROUNDING_PRECISION", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_ROUNDING_PRECISION: %w", err)
	}

	config.Payroll = PayrollConfig{
		OvertimeMultiplier:     overtimeMultiplier,
		DailyOvertimeThreshold: dailyThreshold,
		StandardWorkdayHours:   workdayHours,
		RoundingPrecision:      precision,
		DefaultPeriodType:      getEnv("PAYROLL_DEFAULT_PERIOD_TYPE", "weekly"),
		ThresholdPolicy:        getEnv("PAYROLL_THRESHOLD_POLICY", "per_interval"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Payroll.StandardWorkdayHours <= 0 {
		return fmt.Errorf("PAYROLL_STANDARD_WORKDAY_HOURS must be positive")
	}
	switch c.Payroll.ThresholdPolicy {
	case "per_interval", "per_day":
	default:
		return fmt.Errorf("PAYROLL_THRESHOLD_POLICY must be per_interval or per_day")
	}
	return nil
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

func getEnvFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}
