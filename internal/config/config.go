package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port            string        `json:"port" validate:"required,numeric"`
	Env             string        `json:"env" validate:"oneof=development staging production test"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" validate:"gt=0"`
	HTTPTimeout     time.Duration `json:"http_timeout" validate:"gt=0"`
	RequestTimeout  time.Duration `json:"request_timeout" validate:"gt=0"`

	// Record store
	StoreBackend   string `json:"store_backend" validate:"oneof=postgres file"`
	DatabaseURL    string `json:"database_url" validate:"required_if=StoreBackend postgres"`
	DBMaxOpenConns int    `json:"db_max_open_conns" validate:"min=1"`
	DBAutoMigrate  bool   `json:"db_auto_migrate"`
	DataDir        string `json:"data_dir" validate:"required_if=StoreBackend file"`

	// Cache
	CacheBackend        string        `json:"cache_backend" validate:"oneof=redis memory"`
	RedisURL            string        `json:"redis_url" validate:"required_if=CacheBackend redis"`
	RedisPrefix         string        `json:"redis_prefix"`
	CacheSchemaVersion  string        `json:"cache_schema_version" validate:"required,alphanum"`
	CacheTTLShort       time.Duration `json:"cache_ttl_short" validate:"gt=0"`
	CacheTTLMedium      time.Duration `json:"cache_ttl_medium" validate:"gtfield=CacheTTLShort"`
	CacheTTLLong        time.Duration `json:"cache_ttl_long" validate:"gtfield=CacheTTLMedium"`
	CacheMemoryCapacity uint64        `json:"cache_memory_capacity"`
	CacheSingleFlight   bool          `json:"cache_single_flight"`

	// Feeds
	HomeMediaLimit        int `json:"home_media_limit" validate:"min=1,max=48"`
	HomeOrganizationLimit int `json:"home_organization_limit" validate:"min=0"`
	GalleryDefaultLimit   int `json:"gallery_default_limit" validate:"min=1,max=24"`

	// Media URLs
	MediaBaseURL string `json:"media_base_url"`

	// CloudFlare R2 Configuration
	R2Endpoint   string        `json:"r2_endpoint" validate:"omitempty,url"`
	R2AccessKey  string        `json:"r2_access_key"`
	R2SecretKey  string        `json:"r2_secret_key"`
	R2Bucket     string        `json:"r2_bucket"`
	R2PresignTTL time.Duration `json:"r2_presign_ttl"`

	// Logging
	LogLevel  string `json:"log_level" validate:"oneof=debug info warn error fatal panic disabled trace"`
	LogFile   string `json:"log_file"`
	LogPretty bool   `json:"log_pretty"`

	// Security
	AdminAPIKey string `json:"admin_api_key"`
}

// Load loads configuration from environment variables and validates it
func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg := FromEnv()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	return cfg
}

// FromEnv reads the configuration without loading .env or validating.
func FromEnv() *Config {
	return &Config{
		// Server configuration
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("APP_ENV", "development"),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		HTTPTimeout:     getEnvAsDuration("HTTP_TIMEOUT", 30*time.Second),
		RequestTimeout:  getEnvAsDuration("REQUEST_TIMEOUT", 10*time.Second),

		// Record store
		StoreBackend:   getEnv("STORE_BACKEND", "postgres"),
		DatabaseURL:    getEnv("DATABASE_URL", "postgres://localhost:5432/content?sslmode=disable"),
		DBMaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
		DBAutoMigrate:  getEnvAsBool("DB_AUTO_MIGRATE", false),
		DataDir:        getEnv("DATA_DIR", "./data"),

		// Cache
		CacheBackend:        getEnv("CACHE_BACKEND", "redis"),
		RedisURL:            getEnv("REDIS_URL", "redis://localhost:6379/0"),
		RedisPrefix:         getEnv("REDIS_PREFIX", "contentfeed:"),
		CacheSchemaVersion:  getEnv("CACHE_SCHEMA_VERSION", "1"),
		CacheTTLShort:       getEnvAsDuration("CACHE_TTL_SHORT", 5*time.Minute),
		CacheTTLMedium:      getEnvAsDuration("CACHE_TTL_MEDIUM", 30*time.Minute),
		CacheTTLLong:        getEnvAsDuration("CACHE_TTL_LONG", 24*time.Hour),
		CacheMemoryCapacity: uint64(getEnvAsInt64("CACHE_MEMORY_CAPACITY", 10000)),
		CacheSingleFlight:   getEnvAsBool("CACHE_SINGLE_FLIGHT", false),

		// Feeds
		HomeMediaLimit:        getEnvAsInt("HOME_MEDIA_LIMIT", 8),
		HomeOrganizationLimit: getEnvAsInt("HOME_ORGANIZATION_LIMIT", 0),
		GalleryDefaultLimit:   getEnvAsInt("GALLERY_DEFAULT_LIMIT", 12),

		MediaBaseURL: getEnv("MEDIA_BASE_URL", "/storage/"),

		// CloudFlare R2 Configuration
		R2Endpoint:   getEnv("R2_ENDPOINT", ""),
		R2AccessKey:  getEnv("R2_ACCESS_KEY", ""),
		R2SecretKey:  getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2Bucket:     getEnv("R2_BUCKET", ""),
		R2PresignTTL: getEnvAsDuration("R2_PRESIGN_TTL", 48*time.Hour),

		// Logging
		LogLevel:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFile:   getEnv("LOG_FILE", ""),
		LogPretty: getEnvAsBool("LOG_PRETTY", false),

		// Security
		AdminAPIKey: getEnv("ADMIN_API_KEY", ""),
	}
}

// R2Enabled reports whether uploaded media should be served through presigned R2 URLs.
func (c *Config) R2Enabled() bool {
	return c.R2Endpoint != "" && c.R2Bucket != "" && c.R2AccessKey != "" && c.R2SecretKey != ""
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	// Presigned URLs end up inside cached documents and must outlive them.
	if c.R2Enabled() && c.R2PresignTTL <= c.CacheTTLLong {
		return fmt.Errorf("config: R2_PRESIGN_TTL (%s) must exceed CACHE_TTL_LONG (%s)", c.R2PresignTTL, c.CacheTTLLong)
	}
	return nil
}

// Helper functions for environment variable handling
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(name string, defaultVal int) int {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %d", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsInt64(name string, defaultVal int64) int64 {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %d", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %t", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %v", name, err, defaultVal)
		return defaultVal
	}
	return value
}
