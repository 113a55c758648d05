package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Database
	DatabaseURL string

	// Server
	Port        string
	PublicURL   string // external base URL used to build LNURL callbacks
	CORSOrigins []string
	Env         string

	// Funding node (lnbits-compatible)
	Funding FundingConfig

	// Rate limiting for the public LNURL endpoints
	LnurlRateLimit int // requests per minute per client IP
	LnurlBurstSize int
}

// FundingConfig holds the connection settings for the funding node
type FundingConfig struct {
	APIURL string // e.g. https://funding.example.com
	WSURL  string // optional, derived from APIURL when empty
	APIKey string // service wallet key, used for the settlement subscription
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL: getEnv("DATABASE_URL", ""),
		Port:        getEnv("PORT", "8080"),
		PublicURL:   strings.TrimRight(getEnv("PUBLIC_URL", ""), "/"),
		CORSOrigins: strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		Env:         getEnv("ENV", "development"),
		Funding: FundingConfig{
			APIURL: strings.TrimRight(getEnv("FUNDING_API_URL", ""), "/"),
			WSURL:  getEnv("FUNDING_WS_URL", ""),
			APIKey: getEnv("FUNDING_API_KEY", ""),
		},
		LnurlRateLimit: getEnvInt("LNURL_RATE_LIMIT", 60),
		LnurlBurstSize: getEnvInt("LNURL_BURST_SIZE", 10),
	}

	if cfg.Funding.WSURL == "" && cfg.Funding.APIURL != "" {
		cfg.Funding.WSURL = deriveWSURL(cfg.Funding.APIURL)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.PublicURL == "" {
		return fmt.Errorf("PUBLIC_URL is required")
	}
	if c.Funding.APIURL == "" {
		return fmt.Errorf("FUNDING_API_URL is required")
	}
	if c.Funding.APIKey == "" {
		return fmt.Errorf("FUNDING_API_KEY is required")
	}
	return nil
}

// deriveWSURL rewrites an http(s) base URL to its ws(s) counterpart
func deriveWSURL(apiURL string) string {
	switch {
	case strings.HasPrefix(apiURL, "https://"):
		return "wss://" + strings.TrimPrefix(apiURL, "https://")
	case strings.HasPrefix(apiURL, "http://"):
		return "ws://" + strings.TrimPrefix(apiURL, "http://")
	default:
		return apiURL
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
