package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// MinIO holds the object storage settings used when StorageDriver is "minio".
type MinIO struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Region    string
}

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret string
	JWTExpiry time.Duration

	// Uploads
	StorageDriver  string
	UploadDir      string
	UploadMaxBytes int64
	UploadMaxFiles int
	MinIO          MinIO

	// Observability
	SentryDSN    string
	AppEnv       string
	LogRetention time.Duration

	// Server
	Port        string
	CORSOrigins string
}

const (
	StorageLocal = "local"
	StorageMinIO = "minio"
)

// Load reads a .env file when present, then builds the configuration from the
// environment. The returned value is not modified after startup.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug(".env file not loaded, using process environment", "error", err)
	}

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "cms_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTExpiry: parseDuration(getEnv("JWT_EXPIRES_IN", "24h"), 24*time.Hour),

		StorageDriver:  getEnv("STORAGE_DRIVER", StorageLocal),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		UploadMaxBytes: getEnvInt64("UPLOAD_MAX_MB", 25) * 1024 * 1024,
		UploadMaxFiles: int(getEnvInt64("UPLOAD_MAX_FILES", 5)),
		MinIO: MinIO{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "uploads"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			Region:    getEnv("MINIO_REGION", "us-east-1"),
		},

		SentryDSN:    getEnv("SENTRY_DSN", ""),
		AppEnv:       getEnv("APP_ENV", "development"),
		LogRetention: parseDuration(getEnv("LOG_RETENTION", "720h"), 720*time.Hour),

		Port:        getEnv("PORT", "4000"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

// BodyLimit is the largest request body the transport accepts: a full
// multipart form plus headroom for the non-file fields.
func (c *Config) BodyLimit() int {
	return int(c.UploadMaxBytes)*c.UploadMaxFiles + 1024*1024
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.ParseInt(val, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		// "1d" style values are accepted for day granularity.
		if n := len(s); n > 1 && s[n-1] == 'd' {
			if days, convErr := strconv.Atoi(s[:n-1]); convErr == nil && days > 0 {
				return time.Duration(days) * 24 * time.Hour
			}
		}
		return fallback
	}
	return d
}
