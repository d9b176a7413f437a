package core

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config represents the main configuration for the Civic Sights article service
type Config struct {
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	Security SecurityConfig `json:"security"`
	Articles ArticlesConfig `json:"articles"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Port int    `json:"port"`
	Host string `json:"host"`
}

// DatabaseConfig contains database-related configuration.
// Driver selects the durable backend: "sqlite" (Path) or "postgres" (DSN).
type DatabaseConfig struct {
	Driver string `json:"driver"`
	Path   string `json:"path"`
	DSN    string `json:"dsn"`
}

// SecurityConfig contains the gateway-only access control configuration
type SecurityConfig struct {
	GatewayOnly    bool     `json:"gateway_only"`
	GatewayToken   string   `json:"-"`
	AllowedIPs     []string `json:"allowed_ips"`
	AllowedOrigins []string `json:"allowed_origins"`
}

// ArticlesConfig contains article listing configuration
type ArticlesConfig struct {
	DefaultPageSize int `json:"default_page_size"`
	MaxPageSize     int `json:"max_page_size"`
}

// Supported database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnvAsInt("CIVIC_PORT", 8080),
			Host: getEnvOrDefault("CIVIC_HOST", "0.0.0.0"),
		},
		Database: DatabaseConfig{
			Driver: getEnvOrDefault("CIVIC_DB_DRIVER", DriverSQLite),
			Path:   getEnvOrDefault("CIVIC_DB_PATH", "./civic-sights.db"),
			DSN:    getEnvOrDefault("CIVIC_DB_DSN", ""),
		},
		Security: SecurityConfig{
			GatewayOnly:    getEnvAsBool("CIVIC_GATEWAY_ONLY", true),
			GatewayToken:   getEnvOrDefault("CIVIC_GATEWAY_TOKEN", ""),
			AllowedIPs:     getEnvAsList("CIVIC_ALLOWED_IPS", []string{"127.0.0.1", "localhost", "::1"}),
			AllowedOrigins: getEnvAsList("CIVIC_ALLOWED_ORIGINS", []string{"http://localhost:8000"}),
		},
		Articles: ArticlesConfig{
			DefaultPageSize: getEnvAsInt("CIVIC_DEFAULT_PAGE_SIZE", 25),
			MaxPageSize:     getEnvAsInt("CIVIC_MAX_PAGE_SIZE", 100),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("database path is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database DSN is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if c.Security.GatewayOnly && c.Security.GatewayToken == "" {
		return fmt.Errorf("gateway token is required when gateway-only mode is enabled")
	}

	if c.Articles.DefaultPageSize < 1 {
		return fmt.Errorf("default page size must be at least 1")
	}

	if c.Articles.MaxPageSize < c.Articles.DefaultPageSize {
		return fmt.Errorf("max page size must not be smaller than the default page size")
	}

	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parts := strings.Split(value, ",")
	list := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			list = append(list, trimmed)
		}
	}

	if len(list) == 0 {
		return defaultValue
	}
	return list
}
