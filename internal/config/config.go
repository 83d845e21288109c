package config

import (
	"os"
	"strconv"
	"time"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for the report archive.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// RedisConfig holds connection settings for the Redis memory backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// MemoryConfig selects the temporal memory backend.
type MemoryConfig struct {
	Backend string // "inmemory" or "redis"
	TTLSec  int
}

// EngineConfig toggles the optional enhancement modules of the analysis core.
type EngineConfig struct {
	QuantumEnabled  bool
	BioEnabled      bool
	TemporalEnabled bool
	DefaultLanguage string
}

// StressConfig holds defaults for load tests.
type StressConfig struct {
	DurationSec int
	Workers     int
	RateLimit   float64 // queries per second across all workers, 0 = unlimited
	TargetURL   string  // empty = in-process core

	// Caps for POST /stress.
	MaxWorkers     int
	MaxDurationSec int
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level   string
	Service string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string
	Port     string
	Location *time.Location
	Database DatabaseConfig
	MinIO    MinIOConfig
	Redis    RedisConfig
	Memory   MemoryConfig
	Engine   EngineConfig
	Stress   StressConfig
	Log      LogConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
func Load() *AppConfig {
	return &AppConfig{
		AppHost:  getEnv("APP_HOST", "localhost:8080"),
		Port:     getEnv("PORT", "8080"),
		Location: getEnvLocation("APP_TIMEZONE", time.UTC),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", "atlas-reports"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Memory: MemoryConfig{
			Backend: getEnv("MEMORY_BACKEND", "inmemory"),
			TTLSec:  getEnvInt("MEMORY_TTL_SEC", 0),
		},
		Engine: EngineConfig{
			QuantumEnabled:  getEnvBool("ENGINE_QUANTUM_ENABLED", true),
			BioEnabled:      getEnvBool("ENGINE_BIO_ENABLED", true),
			TemporalEnabled: getEnvBool("ENGINE_TEMPORAL_ENABLED", true),
			DefaultLanguage: getEnv("ENGINE_DEFAULT_LANGUAGE", "en"),
		},
		Stress: StressConfig{
			DurationSec: getEnvInt("STRESS_DURATION_SEC", 30),
			Workers:     getEnvInt("STRESS_WORKERS", 10),
			RateLimit:   getEnvFloat("STRESS_RATE_LIMIT", 0),
			TargetURL:   getEnv("STRESS_TARGET_URL", ""),

			MaxWorkers:     getEnvInt("STRESS_MAX_WORKERS", 50),
			MaxDurationSec: getEnvInt("STRESS_MAX_DURATION_SEC", 60),
		},
		Log: LogConfig{
			Level:   getEnv("LOG_LEVEL", "info"),
			Service: getEnv("LOG_SERVICE", "atlas"),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

func getEnvLocation(key string, def *time.Location) *time.Location {
	if v := os.Getenv(key); v != "" {
		loc, err := time.LoadLocation(v)
		if err == nil {
			return loc
		}
	}
	return def
}
