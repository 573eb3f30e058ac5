package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearSettingsEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"LOG_LEVEL", "LOG_FORMAT", "FORMAT", "PORT", "ENV", "CORS_ORIGINS"} {
		t.Setenv(EnvPrefix+"_"+key, "")
	}
}

func TestLoadSettings_Defaults(t *testing.T) {
	clearSettingsEnv(t)

	s, err := LoadSettings()
	require.NoError(t, err)

	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, "console", s.LogFormat)
	assert.Equal(t, "console", s.OutputFormat)
	assert.Equal(t, "8080", s.Port)
	assert.Equal(t, "development", s.Env)
	assert.Len(t, s.CORSOrigins, 2)
	assert.False(t, s.IsProduction())
}

func TestLoadSettings_FromEnvironment(t *testing.T) {
	clearSettingsEnv(t)
	t.Setenv("AFFORDO_LOG_LEVEL", "DEBUG")
	t.Setenv("AFFORDO_LOG_FORMAT", "json")
	t.Setenv("AFFORDO_FORMAT", "csv")
	t.Setenv("AFFORDO_PORT", "9090")
	t.Setenv("AFFORDO_ENV", "production")
	t.Setenv("AFFORDO_CORS_ORIGINS", "https://a.example.com, https://b.example.com,")

	s, err := LoadSettings()
	require.NoError(t, err)

	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, "json", s.LogFormat)
	assert.Equal(t, "csv", s.OutputFormat)
	assert.Equal(t, "9090", s.Port)
	assert.True(t, s.IsProduction())
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, s.CORSOrigins)
}

func TestLoadSettings_Invalid(t *testing.T) {
	clearSettingsEnv(t)
	t.Setenv("AFFORDO_LOG_LEVEL", "verbose")

	_, err := LoadSettings()
	assert.ErrorContains(t, err, "AFFORDO_LOG_LEVEL")
}

func TestParseOrigins(t *testing.T) {
	assert.Equal(t, []string{}, parseOrigins(""))
	assert.Equal(t, []string{"a", "b"}, parseOrigins(" a ,,b "))
}
