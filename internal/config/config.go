package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	APIKey      string // API key for authentication
	LogLevel    string
	LogFormat   string
	Environment string
	Version     string
	LogDir      string // optional; empty logs to stdout only

	TrustedProxies []string

	StoreBackend string // "postgres", "sqlite" or "memory"

	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	SQLitePath  string
	CatalogPath string

	RedemptionTimeout time.Duration
	ScanDebounce      time.Duration

	MemberCacheSize int
	MemberCacheTTL  time.Duration

	EventMaxRetries     int
	EventRetryDelay     time.Duration
	EventDeadLetterPath string // empty disables the dead-letter file
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:       getEnv("API_KEY", ""),
		LogLevel:     strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:    strings.ToLower(getEnv("LOG_FORMAT", "text")),
		Environment:  getEnv("ENVIRONMENT", "dev"),
		Version:      getEnv("VERSION", "dev"),
		LogDir:       getEnv("LOG_DIR", ""),
		StoreBackend: strings.ToLower(getEnv("STORE_BACKEND", BackendPostgres)),

		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "qrhunt"),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),

		SQLitePath:  getEnv("SQLITE_PATH", DefaultSQLitePath),
		CatalogPath: getEnv("CATALOG_PATH", ""),

		RedemptionTimeout: getEnvAsDuration("REDEMPTION_TIMEOUT", DefaultRedemptionTimeout),
		ScanDebounce:      getEnvAsDuration("SCAN_DEBOUNCE", DefaultScanDebounce),

		MemberCacheSize: getEnvAsInt("MEMBER_CACHE_SIZE", DefaultMemberCacheSize),
		MemberCacheTTL:  getEnvAsDuration("MEMBER_CACHE_TTL", DefaultMemberCacheTTL),

		EventMaxRetries:     getEnvAsInt("EVENT_MAX_RETRIES", DefaultEventMaxRetries),
		EventRetryDelay:     getEnvAsDuration("EVENT_RETRY_DELAY", DefaultEventRetryDelay),
		EventDeadLetterPath: getEnv("EVENT_DEADLETTER_PATH", DefaultEventDeadLetterPath),
	}

	if proxies := getEnv("TRUSTED_PROXIES", ""); proxies != "" {
		for _, p := range strings.Split(proxies, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, p)
			}
		}
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	switch cfg.StoreBackend {
	case BackendPostgres, BackendSQLite, BackendMemory:
	default:
		return nil, fmt.Errorf("invalid STORE_BACKEND %q: expected one of %s, %s, %s",
			cfg.StoreBackend, BackendPostgres, BackendSQLite, BackendMemory)
	}

	if cfg.RedemptionTimeout <= 0 {
		return nil, fmt.Errorf("REDEMPTION_TIMEOUT must be positive, got %s", cfg.RedemptionTimeout)
	}
	if cfg.ScanDebounce < 0 {
		return nil, fmt.Errorf("SCAN_DEBOUNCE must not be negative, got %s", cfg.ScanDebounce)
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an integer environment variable, falling back to the default when unset or malformed
func getEnvAsInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

// getEnvAsDuration retrieves a time.ParseDuration value, falling back to the default when unset or malformed
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
