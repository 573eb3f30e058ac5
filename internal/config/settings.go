package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces the environment variables read by LoadSettings
const EnvPrefix = "AFFORDO"

// Settings holds process-level options, as opposed to a scenario file
type Settings struct {
	LogLevel     string
	LogFormat    string
	OutputFormat string
	Port         string
	Env          string
	CORSOrigins  []string
}

// LoadSettings reads AFFORDO_* environment variables over development defaults
func LoadSettings() (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("FORMAT", "console")
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")

	v.AutomaticEnv()

	s := &Settings{
		LogLevel:     strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFormat:    strings.ToLower(v.GetString("LOG_FORMAT")),
		OutputFormat: v.GetString("FORMAT"),
		Port:         v.GetString("PORT"),
		Env:          strings.ToLower(v.GetString("ENV")),
		CORSOrigins:  parseOrigins(v.GetString("CORS_ORIGINS")),
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("settings validation failed: %w", err)
	}
	return s, nil
}

// Validate checks that the settings are usable
func (s *Settings) Validate() error {
	switch s.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%s_LOG_LEVEL must be debug, info, warn or error, got %q", EnvPrefix, s.LogLevel)
	}
	switch s.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%s_LOG_FORMAT must be console or json, got %q", EnvPrefix, s.LogFormat)
	}
	if s.Port == "" {
		return fmt.Errorf("%s_PORT is required", EnvPrefix)
	}
	return nil
}

// IsProduction reports whether the process runs in the production environment
func (s *Settings) IsProduction() bool {
	return s.Env == "production"
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
