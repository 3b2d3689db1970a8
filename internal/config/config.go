package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Airtable  AirtableConfig
	Translate TranslateConfig
	Scraper   ScraperConfig
	CORS      CORSConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port     string
	Env      string
	LogLevel string
}

// AirtableConfig holds credentials and table identifiers for the record
// store. None of it is validated at startup: a missing key or table ID
// surfaces as a store error when a run first touches it.
type AirtableConfig struct {
	APIURL string
	APIKey string
	BaseID string
	Tables TablesConfig
}

// TablesConfig names the main listings table and the six reference tables.
type TablesConfig struct {
	Listings    string
	Stations    string
	Layouts     string
	PropTypes   string
	Areas       string
	PriceRanges string
	PropKinds   string
}

// TranslateConfig holds the machine-translation endpoint settings.
type TranslateConfig struct {
	APIURL string
	Source string
	Target string
}

// ScraperConfig holds the page-fetch settings and the optional alias file.
type ScraperConfig struct {
	UserAgent    string
	FetchTimeout time.Duration
	AliasesFile  string
}

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	Origins []string
}

// Load reads configuration from the environment, after merging a local
// .env file when one exists. Defaults cover everything except the store
// credentials.
func Load() (*Config, error) {
	// A missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "")
	v.SetDefault("AIRTABLE_API_URL", "https://api.airtable.com")
	v.SetDefault("TRANSLATE_API_URL", "https://translate.googleapis.com")
	v.SetDefault("TRANSLATE_SOURCE", "ja")
	v.SetDefault("TRANSLATE_TARGET", "en")
	v.SetDefault("USER_AGENT", "Mozilla/5.0")
	v.SetDefault("FETCH_TIMEOUT_SECONDS", 30)
	v.SetDefault("ALIASES_FILE", "")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:8501")

	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Port:     v.GetString("PORT"),
			Env:      v.GetString("ENV"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		Airtable: AirtableConfig{
			APIURL: v.GetString("AIRTABLE_API_URL"),
			APIKey: v.GetString("AIRTABLE_API_KEY"),
			BaseID: v.GetString("BASE_ID"),
			Tables: TablesConfig{
				Listings:    v.GetString("TABLE_ID"),
				Stations:    v.GetString("STATIONS_TABLE_ID"),
				Layouts:     v.GetString("LAYOUTS_TABLE_ID"),
				PropTypes:   v.GetString("PROP_TYPES_TABLE_ID"),
				Areas:       v.GetString("AREAS_TABLE_ID"),
				PriceRanges: v.GetString("PRICE_RANGE_TABLE_ID"),
				PropKinds:   v.GetString("PROPERTY_KIND_TABLE_ID"),
			},
		},
		Translate: TranslateConfig{
			APIURL: v.GetString("TRANSLATE_API_URL"),
			Source: v.GetString("TRANSLATE_SOURCE"),
			Target: v.GetString("TRANSLATE_TARGET"),
		},
		Scraper: ScraperConfig{
			UserAgent:    v.GetString("USER_AGENT"),
			FetchTimeout: time.Duration(v.GetInt("FETCH_TIMEOUT_SECONDS")) * time.Second,
			AliasesFile:  v.GetString("ALIASES_FILE"),
		},
		CORS: CORSConfig{
			Origins: parseOrigins(v.GetString("CORS_ORIGINS")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the fields the server needs to boot. Store credentials
// and table IDs are left unchecked here; absent ones surface as store
// errors at run time.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Airtable.APIURL == "" {
		return fmt.Errorf("AIRTABLE_API_URL is required")
	}
	if c.Translate.APIURL == "" {
		return fmt.Errorf("TRANSLATE_API_URL is required")
	}

	if c.Scraper.UserAgent == "" {
		return fmt.Errorf("USER_AGENT is required")
	}
	if c.Scraper.FetchTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT_SECONDS must be positive")
	}

	if len(c.CORS.Origins) == 0 {
		return fmt.Errorf("CORS_ORIGINS is required")
	}

	return nil
}

// parseOrigins splits a comma-separated string of origins into a slice.
func parseOrigins(origins string) []string {
	if origins == "" {
		return []string{}
	}

	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
