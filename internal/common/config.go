package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	OCR      OCRConfig
	LLM      LLMConfig
	Ingest   IngestConfig
}

// DatabaseConfig holds database-related configuration.
// Either DSN (Postgres) or SQLitePath must be set; SQLitePath wins when
// both are present so local runs stay self-contained.
type DatabaseConfig struct {
	DSN              string
	SQLitePath       string
	MaxConns         int32
	MinConns         int32
	MaxConnLifetime  time.Duration
	MaxConnIdleTime  time.Duration
	DialTimeout      time.Duration
	StatementTimeout time.Duration
}

// OCRConfig holds OCR-related configuration
type OCRConfig struct {
	TessdataDir         string
	TesseractLang       string
	DPI                 int
	MaxPages            int
	EnableTSVConfidence bool
}

// LLMConfig holds LLM-related configuration
type LLMConfig struct {
	Provider    string // "openai" | "gemini"
	Model       string
	APIKey      string
	Temperature float32
	Timeout     time.Duration
}

// IngestConfig holds filesystem ingestion configuration
type IngestConfig struct {
	WatchDir     string
	DefaultUser  string
	ExportDir    string
	QueueSize    int
	Workers      int
	ProcessLimit time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			DSN:              getEnv("DB_URL", ""),
			SQLitePath:       getEnv("SQLITE_PATH", ""),
			MaxConns:         getEnvAsInt32("DB_MAX_CONNS", 20),
			MinConns:         getEnvAsInt32("DB_MIN_CONNS", 5),
			MaxConnLifetime:  getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime:  getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:      getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
			StatementTimeout: getEnvAsDuration("DB_STATEMENT_TIMEOUT", 0),
		},
		OCR: OCRConfig{
			TessdataDir:         getEnv("TESSDATA_PREFIX", ""),
			TesseractLang:       getEnv("TESSERACT_LANG", "eng"),
			DPI:                 getEnvAsInt("OCR_DPI", 300),
			MaxPages:            getEnvAsInt("OCR_MAX_PAGES", 10),
			EnableTSVConfidence: getEnvAsBool("OCR_TSV_CONFIDENCE", true),
		},
		LLM: LLMConfig{
			Provider:    getEnv("LLM_PROVIDER", "openai"),
			Model:       getEnv("LLM_MODEL", ""),
			APIKey:      getEnv("LLM_API_KEY", ""),
			Temperature: getEnvAsFloat32("LLM_TEMPERATURE", 0.0),
			Timeout:     getEnvAsDuration("LLM_TIMEOUT", 45*time.Second),
		},
		Ingest: IngestConfig{
			WatchDir:     getEnv("RECEIPTS_DIR", "./receipts"),
			DefaultUser:  getEnv("RECEIPTS_USER", "default"),
			ExportDir:    getEnv("EXPORT_DIR", "./exports"),
			QueueSize:    getEnvAsInt("INGEST_QUEUE_SIZE", 64),
			Workers:      getEnvAsInt("INGEST_WORKERS", 2),
			ProcessLimit: getEnvAsDuration("INGEST_PROCESS_TIMEOUT", 2*time.Minute),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Database.DSN == "" && c.Database.SQLitePath == "" {
		return NewAppError("CONFIG_ERROR", "one of DB_URL or SQLITE_PATH is required", ErrInvalidInput)
	}
	if c.LLM.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "LLM_API_KEY is required", ErrInvalidInput)
	}
	switch c.LLM.Provider {
	case "openai", "gemini":
	default:
		return NewAppError("CONFIG_ERROR", "LLM_PROVIDER must be openai or gemini", ErrInvalidInput)
	}
	if c.Ingest.Workers <= 0 {
		return NewAppError("CONFIG_ERROR", "INGEST_WORKERS must be positive", ErrInvalidInput)
	}
	return nil
}
