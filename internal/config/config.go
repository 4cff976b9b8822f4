package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	App      AppConfig
	JWT      JWTConfig
	Policy   PolicyConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
	MinConns int
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// JWTConfig holds the key used to verify service tokens presented by
// dashboard and reporting clients. Token issuance lives in the external
// auth system.
type JWTConfig struct {
	Secret string
}

// PolicyConfig holds the attendance reconciliation policy. Every value here
// is a business policy subject to periodic review, not a physical constant.
type PolicyConfig struct {
	GracePeriodMinutes        int           // window around shift start for a standard check-in
	LateCheckoutThresholdMins int           // minutes past shift end before a checkout counts as late
	LatenessCutoff            string        // HH:MM time-of-day after which a check-in is flagged late
	HeadcountWindowDays       int           // trailing window for the expected-headcount baseline
	MissingPunchOutCredit     float64       // hours credited to a record with no punch-out
	ResolverInterval          time.Duration // how often the open punch-out scan runs
	BatchChunkSize            int           // records per chunk in batch recomputation
	BiometricCapacity         int           // employees the terminals can enroll; the remainder are punch-exempt
	SnapshotCacheTTL          time.Duration
}

func Load() (*Config, error) {
	// .env is optional; real deployments configure via the environment.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	minConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendance-engine"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: maxConns,
		MinConns: minConns,
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

	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	policy, err := loadPolicy()
	if err != nil {
		return nil, err
	}
	config.Policy = policy

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadPolicy() (PolicyConfig, error) {
	grace, err := strconv.Atoi(getEnv("GRACE_PERIOD_MINUTES", "30"))
	if err != nil {
		return PolicyConfig{}, fmt.Errorf("invalid GRACE_PERIOD_MINUTES: %w", err)
	}

	lateCheckout, err := strconv.Atoi(getEnv("LATE_CHECKOUT_THRESHOLD_MINUTES", "60"))
	if err != nil {
		return PolicyConfig{}, fmt.Errorf("invalid LATE_CHECKOUT_THRESHOLD_MINUTES: %w", err)
	}

	windowDays, err := strconv.Atoi(getEnv("HEADCOUNT_WINDOW_DAYS", "30"))
	if err != nil {
		return PolicyConfig{}, fmt.Errorf("invalid HEADCOUNT_WINDOW_DAYS: %w", err)
	}

	credit, err := strconv.ParseFloat(getEnv("MISSING_PUNCHOUT_CREDIT_HOURS", "7.5"), 64)
	if err != nil {
		return PolicyConfig{}, fmt.Errorf("invalid MISSING_PUNCHOUT_CREDIT_HOURS: %w", err)
	}

	resolverInterval, err := time.ParseDuration(getEnv("RESOLVER_INTERVAL", "5m"))
	if err != nil {
		return PolicyConfig{}, fmt.Errorf("invalid RESOLVER_INTERVAL: %w", err)
	}

	chunkSize, err := strconv.Atoi(getEnv("BATCH_CHUNK_SIZE", "100"))
	if err != nil {
		return PolicyConfig{}, fmt.Errorf("invalid BATCH_CHUNK_SIZE: %w", err)
	}

	capacity, err := strconv.Atoi(getEnv("BIOMETRIC_CAPACITY", "0"))
	if err != nil {
		return PolicyConfig{}, fmt.Errorf("invalid BIOMETRIC_CAPACITY: %w", err)
	}

	cacheTTL, err := time.ParseDuration(getEnv("SNAPSHOT_CACHE_TTL", "60s"))
	if err != nil {
		return PolicyConfig{}, fmt.Errorf("invalid SNAPSHOT_CACHE_TTL: %w", err)
	}

	return PolicyConfig{
		GracePeriodMinutes:        grace,
		LateCheckoutThresholdMins: lateCheckout,
		LatenessCutoff:            getEnv("LATENESS_CUTOFF", "09:30"),
		HeadcountWindowDays:       windowDays,
		MissingPunchOutCredit:     credit,
		ResolverInterval:          resolverInterval,
		BatchChunkSize:            chunkSize,
		BiometricCapacity:         capacity,
		SnapshotCacheTTL:          cacheTTL,
	}, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Database.MaxConns <= 0 || c.Database.MinConns < 0 || c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MAX_CONNS/DB_MIN_CONNS must satisfy 0 <= min <= max, max > 0")
	}
	if c.Policy.GracePeriodMinutes < 0 {
		return fmt.Errorf("GRACE_PERIOD_MINUTES must not be negative")
	}
	if c.Policy.HeadcountWindowDays <= 0 {
		return fmt.Errorf("HEADCOUNT_WINDOW_DAYS must be positive")
	}
	if c.Policy.MissingPunchOutCredit <= 0 {
		return fmt.Errorf("MISSING_PUNCHOUT_CREDIT_HOURS must be positive")
	}
	if c.Policy.BatchChunkSize <= 0 {
		return fmt.Errorf("BATCH_CHUNK_SIZE must be positive")
	}
	if _, err := time.Parse("15:04", c.Policy.LatenessCutoff); err != nil {
		return fmt.Errorf("LATENESS_CUTOFF must be in HH:MM format: %w", err)
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
