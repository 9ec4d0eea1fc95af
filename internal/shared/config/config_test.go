package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEnv(t *testing.T) {
	tests := map[string]string{
		"prod":        EnvProduction,
		" Production": EnvProduction,
		"staging":     EnvStaging,
		"dev":         EnvDevelopment,
		"":            EnvDevelopment,
		"whatever":    EnvDevelopment,
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeEnv(in), "input %q", in)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENV", "dev")
	for _, key := range []string{"PORT", "LLM_PROVIDER", "LLM_MODEL", "CORS_ALLOW_ORIGINS"} {
		unsetenv(t, key)
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "openai", cfg.LLMProvider)
	assert.Equal(t, "gpt-3.5-turbo", cfg.LLMModel)
	assert.Contains(t, cfg.CORSAllowOrigins, "http://localhost:5173")
}

func TestValidateProductionRequiresSecrets(t *testing.T) {
	cfg := Config{Env: EnvProduction}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "DATABASE_URL")

	cfg.JWTSecret = "s3cret"
	cfg.DatabaseURL = "postgres://localhost/resumes"
	assert.NoError(t, cfg.Validate())
}

func TestAllowedOriginsIncludesClientURL(t *testing.T) {
	cfg := Config{
		ClientURL:        "https://app.example.com",
		CORSAllowOrigins: []string{"http://localhost:5173", " https://app.example.com ", ""},
	}
	assert.Equal(t, []string{"https://app.example.com", "http://localhost:5173"}, cfg.AllowedOrigins())
}

func unsetenv(t *testing.T, key string) {
	t.Helper()
	prev, ok := os.LookupEnv(key)
	_ = os.Unsetenv(key)
	t.Cleanup(func() {
		if ok {
			_ = os.Setenv(key, prev)
		}
	})
}
