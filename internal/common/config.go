package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	OCR    OCRConfig
	LLM    LLMConfig
	Store  StoreConfig
	Export ExportConfig
}

// OCRConfig holds text-acquisition configuration
type OCRConfig struct {
	Pdftotext     string
	Pdftoppm      string
	Tesseract     string
	TesseractLang string
	DPI           int
	MaxPages      int
	TessdataDir   string
}

// LLMConfig holds generative-capability configuration
type LLMConfig struct {
	BaseURL     string
	Model       string
	APIKey      string
	Temperature float32
	Timeout     time.Duration
}

// StoreConfig holds learned-range store configuration
type StoreConfig struct {
	// Backend is "sqlite" (default) or "json".
	Backend string
	// Path is the database file for sqlite, or the mapping file for json.
	Path string
}

// ExportConfig holds artifact-export configuration
type ExportConfig struct {
	OutputDir string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		OCR: OCRConfig{
			Pdftotext:     getEnv("PDFTOTEXT_BIN", "pdftotext"),
			Pdftoppm:      getEnv("PDFTOPPM_BIN", "pdftoppm"),
			Tesseract:     getEnv("TESSERACT_BIN", "tesseract"),
			TesseractLang: getEnv("TESSERACT_LANG", "eng"),
			DPI:           getEnvAsInt("OCR_DPI", 300),
			MaxPages:      getEnvAsInt("OCR_MAX_PAGES", 0),
			TessdataDir:   getEnv("TESSDATA_PREFIX", ""),
		},
		LLM: LLMConfig{
			BaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			Temperature: getEnvAsFloat32("OPENAI_TEMPERATURE", 0.0),
			Timeout:     getEnvAsDuration("OPENAI_TIMEOUT", 45*time.Second),
		},
		Store: StoreConfig{
			Backend: getEnv("REFERENCE_STORE_BACKEND", "sqlite"),
			Path:    getEnv("REFERENCE_STORE_PATH", ""),
		},
		Export: ExportConfig{
			OutputDir: getEnv("OUTPUT_DIR", "."),
		},
	}
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "OPENAI_API_KEY is required", ErrInvalidInput)
	}
	if c.Store.Backend != "sqlite" && c.Store.Backend != "json" {
		return NewAppError("CONFIG_ERROR", "REFERENCE_STORE_BACKEND must be sqlite or json", ErrInvalidInput)
	}
	return nil
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

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
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
