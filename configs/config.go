package configs

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Backend modes.
const (
	BackendREST     = "rest"
	BackendPostgres = "postgres"
)

type Config struct {
	Server    ServerConfig
	Backend   BackendConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Email     EmailConfig
	Content   ContentConfig
	Cache     CacheConfig
	Log       LogConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Host           string
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	TLSCertFile    string
	TLSKeyFile     string
	AllowedOrigins []string
}

// BackendConfig selects where catalog and profile data lives. In rest mode the
// hosted backend's REST interface is used; in postgres mode the database is
// queried directly.
type BackendConfig struct {
	Mode       string
	URL        string
	AnonKey    string
	ServiceKey string
	Timeout    time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	DSN      string
	// Connection pool settings
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	MigrationsPath  string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
	// Pool and timeout settings
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolTimeout  time.Duration
	IdleTimeout  time.Duration
	KeyPrefix    string
	TTL          time.Duration
}

// JWTConfig verifies access tokens minted by the backend auth service.
type JWTConfig struct {
	Secret   string
	Issuer   string
	Audience string
}

type EmailConfig struct {
	SendGridAPIKey string // empty disables outgoing mail
	FromEmail      string
	FromName       string
	StoreName      string
	BaseURL        string
}

type ContentConfig struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

// CacheConfig tunes the in-process request cache and the loader.
type CacheConfig struct {
	DefaultTTL     time.Duration
	MaxEntries     int
	CatalogTTL     time.Duration
	CategoryTTL    time.Duration
	FeaturedLimit  int
	RetryOnError   bool
	MaxAttempts    int
	BaseDelay      time.Duration
	MinLoadingTime time.Duration
}

type LogConfig struct {
	Level  string
	Format string // json or text
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerMinute int
	BurstMultiplier   float64
	Window            time.Duration
	KeyPrefix         string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnv("SERVER_PORT", "8080"),
			ReadTimeout:    getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:   getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:    getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),
			TLSCertFile:    getEnv("TLS_CERT_FILE", ""),
			TLSKeyFile:     getEnv("TLS_KEY_FILE", ""),
			AllowedOrigins: getListEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Backend: BackendConfig{
			Mode:       strings.ToLower(getEnv("BACKEND_MODE", BackendREST)),
			URL:        strings.TrimRight(getEnv("BACKEND_URL", ""), "/"),
			AnonKey:    getEnv("BACKEND_ANON_KEY", ""),
			ServiceKey: getEnv("BACKEND_SERVICE_KEY", ""),
			Timeout:    getDurationEnv("BACKEND_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			DBName:          getEnv("DB_NAME", "storefront"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns:    getIntEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnMaxIdleTime: getDurationEnv("DB_CONN_MAX_IDLE_TIME", 5*time.Minute),
			MigrationsPath:  getEnv("DB_MIGRATIONS_PATH", "migrations"),
		},
		Redis: RedisConfig{
			Enabled:      getBoolEnv("REDIS_ENABLED", false),
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getIntEnv("REDIS_DB", 0),
			PoolSize:     getIntEnv("REDIS_POOL_SIZE", 10),
			MinIdleConns: getIntEnv("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDurationEnv("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDurationEnv("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDurationEnv("REDIS_WRITE_TIMEOUT", 3*time.Second),
			PoolTimeout:  getDurationEnv("REDIS_POOL_TIMEOUT", 4*time.Second),
			IdleTimeout:  getDurationEnv("REDIS_IDLE_TIMEOUT", 5*time.Minute),
			KeyPrefix:    getEnv("REDIS_KEY_PREFIX", "storefront"),
			TTL:          getDurationEnv("REDIS_TTL", 5*time.Minute),
		},
		JWT: JWTConfig{
			Secret:   getEnv("JWT_SECRET", ""),
			Issuer:   getEnv("JWT_ISSUER", ""),
			Audience: getEnv("JWT_AUDIENCE", "authenticated"),
		},
		Email: EmailConfig{
			SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
			FromEmail:      getEnv("FROM_EMAIL", "noreply@example.com"),
			FromName:       getEnv("FROM_NAME", "Storefront"),
			StoreName:      getEnv("STORE_NAME", "Storefront"),
			BaseURL:        getEnv("BASE_URL", "http://localhost:3000"),
		},
		Content: ContentConfig{
			URL:     strings.TrimRight(getEnv("CONTENT_API_URL", ""), "/"),
			APIKey:  getEnv("CONTENT_API_KEY", ""),
			Timeout: getDurationEnv("CONTENT_API_TIMEOUT", 20*time.Second),
		},
		Cache: CacheConfig{
			DefaultTTL:     getDurationEnv("CACHE_DEFAULT_TTL", 60*time.Second),
			MaxEntries:     getIntEnv("CACHE_MAX_ENTRIES", 0),
			CatalogTTL:     getDurationEnv("CACHE_CATALOG_TTL", 60*time.Second),
			CategoryTTL:    getDurationEnv("CACHE_CATEGORY_TTL", 5*time.Minute),
			FeaturedLimit:  getIntEnv("CACHE_FEATURED_LIMIT", 8),
			RetryOnError:   getBoolEnv("CACHE_RETRY_ON_ERROR", true),
			MaxAttempts:    getIntEnv("CACHE_MAX_ATTEMPTS", 3),
			BaseDelay:      getDurationEnv("CACHE_RETRY_BASE_DELAY", time.Second),
			MinLoadingTime: getDurationEnv("CACHE_MIN_LOADING_TIME", 500*time.Millisecond),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		RateLimit: RateLimitConfig{
			Enabled:           getBoolEnv("RATE_LIMIT_ENABLED", true),
			RequestsPerMinute: getIntEnv("RATE_LIMIT_RPM", 120),
			BurstMultiplier:   getFloatEnv("RATE_LIMIT_BURST", 2.0),
			Window:            getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),
			KeyPrefix:         getEnv("RATE_LIMIT_KEY_PREFIX", "ratelimit:client"),
		},
	}

	// Build database DSN
	cfg.Database.DSN = getEnv("DATABASE_URL", fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.DBName,
		cfg.Database.SSLMode,
	))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every missing or inconsistent setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	switch c.Backend.Mode {
	case BackendREST:
		if c.Backend.URL == "" {
			errs = append(errs, errors.New("BACKEND_URL is required in rest mode"))
		}
		if c.Backend.ServiceKey == "" {
			errs = append(errs, errors.New("BACKEND_SERVICE_KEY is required in rest mode"))
		}
	case BackendPostgres:
		if c.Database.DSN == "" {
			errs = append(errs, errors.New("DATABASE_URL is required in postgres mode"))
		}
	default:
		errs = append(errs, fmt.Errorf("BACKEND_MODE must be %q or %q, got %q", BackendREST, BackendPostgres, c.Backend.Mode))
	}
	if c.Cache.MaxAttempts < 1 {
		errs = append(errs, errors.New("CACHE_MAX_ATTEMPTS must be at least 1"))
	}
	if c.Cache.MinLoadingTime < 0 {
		errs = append(errs, errors.New("CACHE_MIN_LOADING_TIME must not be negative"))
	}
	if (c.Server.TLSCertFile == "") != (c.Server.TLSKeyFile == "") {
		errs = append(errs, errors.New("TLS_CERT_FILE and TLS_KEY_FILE must be set together"))
	}
	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getListEnv splits a comma separated value, dropping blanks.
func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
