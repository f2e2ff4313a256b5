package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage driver names accepted for STORAGE_DRIVER.
const (
	StorageDriverLocal = "local"
	StorageDriverMinio = "minio"
)

// Config stores the application configuration.
type Config struct {
	ServerAddr string
	AppEnv     string // "development" or "production"

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Storage backend selection, resolved once at startup.
	StorageDriver string // "local" or "minio"
	UploadDir     string // Root directory for the local backend
	MaxFileSize   int64  // Upload size cap in bytes

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioRegion    string
	MinioUseSSL    bool
	MinioPublicURL string // Base URL used when resolving object URLs, e.g. a CDN front

	JWTSecret string
	JWTExpiry time.Duration

	// Rate limiting windows.
	AuthRateLimit    int // attempts per window per IP
	AuthRateWindow   time.Duration
	UploadRateLimit  int // uploads per window per user
	UploadRateWindow time.Duration

	LogLevel  string
	LogOutput string // Log file path; empty means stdout only
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvInt64 gets an environment variable as int64 or returns a default value.
func getEnvInt64(key string, fallback int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool gets an environment variable as bool or returns a default value.
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvDuration gets an environment variable as a duration or returns a default value.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// Load loads configuration from environment variables (via .env file) or defaults.
func Load() *Config {
	// godotenv.Load() will not override existing env vars.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on existing environment variables and defaults.")
	}

	return &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8080"),
		AppEnv:     strings.ToLower(getEnv("APP_ENV", "development")),

		DBHost:     getEnv("DB_HOST", "127.0.0.1"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "root"),
		DBPassword: os.Getenv("DB_PASSWORD"), // No hardcoded default for the password
		DBName:     getEnv("DB_NAME", "audioshare"),

		RedisHost:     getEnv("REDIS_HOST", "127.0.0.1"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverLocal)),
		UploadDir:     getEnv("UPLOAD_DIR", filepath.Join("uploads", "audio")),
		MaxFileSize:   getEnvInt64("MAX_FILE_SIZE", 10<<20), // 10 MB

		MinioEndpoint:  getEnv("MINIO_ENDPOINT", "127.0.0.1:9000"),
		MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:    getEnv("MINIO_BUCKET", "audioshare"),
		MinioRegion:    getEnv("MINIO_REGION", "us-east-1"),
		MinioUseSSL:    getEnvBool("MINIO_USE_SSL", false),
		MinioPublicURL: getEnv("MINIO_PUBLIC_URL", ""),

		JWTSecret: getEnv("JWT_SECRET", "change-me-in-production"),
		JWTExpiry: getEnvDuration("JWT_EXPIRY", 24*time.Hour),

		AuthRateLimit:    getEnvInt("AUTH_RATE_LIMIT", 10),
		AuthRateWindow:   getEnvDuration("AUTH_RATE_WINDOW", 15*time.Minute),
		UploadRateLimit:  getEnvInt("UPLOAD_RATE_LIMIT", 20),
		UploadRateWindow: getEnvDuration("UPLOAD_RATE_WINDOW", time.Hour),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogOutput: getEnv("LOG_OUTPUT", ""),
	}
}

// IsProduction reports whether the app runs in a production-like configuration.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
