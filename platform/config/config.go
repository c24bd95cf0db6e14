// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetRateLimitRPS() float64
	GetRateLimitBurst() int
}

// CarrierConfig provides settings for the Nova Poshta carrier API.
type CarrierConfig interface {
	GetCarrierAPIURL() string
	GetCarrierAPIKey() string
	GetCarrierTimeout() time.Duration
	IsCarrierConfigured() bool
}

// DeclarationConfig provides counterparty settings for declaration creation.
type DeclarationConfig interface {
	GetSenderRef() string
	GetContactSenderRef() string
	AllowDemoDeclarations() bool
}

// CacheConfig provides settings for the server-side lookup cache.
type CacheConfig interface {
	GetRedisAddr() string
	GetWarehouseCacheTTL() time.Duration
	GetCityCacheTTL() time.Duration
	IsCacheEnabled() bool
}

// ClientConfig provides settings for the terminal client.
type ClientConfig interface {
	GetClientAPIURL() string
}

// apiKeyPlaceholder is the sample value shipped in .env templates; treated as unset.
const apiKeyPlaceholder = "your_api_key_here"

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env              string
	HTTPAddr         string
	CORSAllowAll     bool
	CORSOrigins      []string
	RateLimitRPS     float64
	RateLimitBurst   int
	CarrierAPIURL    string
	CarrierAPIKey    string
	CarrierTimeout   time.Duration
	SenderRef        string
	ContactSenderRef string
	AllowDemo        bool
	RedisAddr        string
	WarehouseTTL     time.Duration
	CityTTL          time.Duration
	ClientAPIURL     string
}

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetRateLimitRPS() float64 { return c.RateLimitRPS }
func (c *Config) GetRateLimitBurst() int   { return c.RateLimitBurst }

// CarrierConfig implementation
func (c *Config) GetCarrierAPIURL() string         { return c.CarrierAPIURL }
func (c *Config) GetCarrierAPIKey() string         { return c.CarrierAPIKey }
func (c *Config) GetCarrierTimeout() time.Duration { return c.CarrierTimeout }
func (c *Config) IsCarrierConfigured() bool {
	return c.CarrierAPIKey != "" && c.CarrierAPIKey != apiKeyPlaceholder
}

// DeclarationConfig implementation
func (c *Config) GetSenderRef() string        { return c.SenderRef }
func (c *Config) GetContactSenderRef() string { return c.ContactSenderRef }
func (c *Config) AllowDemoDeclarations() bool { return c.AllowDemo }

// CacheConfig implementation
func (c *Config) GetRedisAddr() string                { return c.RedisAddr }
func (c *Config) GetWarehouseCacheTTL() time.Duration { return c.WarehouseTTL }
func (c *Config) GetCityCacheTTL() time.Duration      { return c.CityTTL }
func (c *Config) IsCacheEnabled() bool                { return c.RedisAddr != "" }

// ClientConfig implementation
func (c *Config) GetClientAPIURL() string { return c.ClientAPIURL }

// Load reads configuration from environment variables.
// A missing carrier API key is not an error here: the health endpoint must be
// able to report the misconfigured state while the server keeps running.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:              getEnv("APP_ENV", "development"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:     strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true"),
		CORSOrigins:      splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		RateLimitRPS:     mustFloat(getEnv("RATE_LIMIT_RPS", "10")),
		RateLimitBurst:   mustInt(getEnv("RATE_LIMIT_BURST", "20")),
		CarrierAPIURL:    getEnv("NOVA_POSHTA_API_URL", "https://api.novaposhta.ua/v2.0/json/"),
		CarrierAPIKey:    getEnv("NOVA_POSHTA_API_KEY", ""),
		CarrierTimeout:   mustDuration(getEnv("CARRIER_TIMEOUT", "15s")),
		SenderRef:        getEnv("NOVA_POSHTA_SENDER_REF", ""),
		ContactSenderRef: getEnv("NOVA_POSHTA_CONTACT_SENDER_REF", ""),
		AllowDemo:        strings.EqualFold(getEnv("NOVA_POSHTA_ALLOW_DEMO_DECLARATIONS", "false"), "true"),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		WarehouseTTL:     mustDuration(getEnv("WAREHOUSE_CACHE_TTL", "10m")),
		CityTTL:          mustDuration(getEnv("CITY_CACHE_TTL", "1m")),
		ClientAPIURL:     getEnv("SHIPDESK_API_URL", "http://localhost:8080"),
	}

	if containsWildcard(cfg.CORSOrigins) {
		cfg.CORSAllowAll = true
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
