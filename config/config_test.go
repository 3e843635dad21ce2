package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"APP_ENV", "PORT", "LOG_LEVEL", "LOG_FORMAT", "LOG_OUTPUT", "LOG_FILE_PATH", "CERTBOOK_DB_PATH"} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearConfigEnv(t)

	cfg := Load()
	assert.Equal(t, EnvDev, cfg.Env)
	assert.True(t, cfg.IsDev())
	assert.False(t, cfg.IsProd())
	assert.Equal(t, "8090", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, "stdout", cfg.LogOutput)
	assert.Equal(t, "certbook.db", cfg.DBPath)
}

func TestLoad_ProdDefaults(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("APP_ENV", "prod")

	cfg := Load()
	assert.Equal(t, EnvProd, cfg.Env)
	assert.True(t, cfg.IsProd())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("CERTBOOK_DB_PATH", "/var/lib/certbook/certbook.db")

	cfg := Load()
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "/var/lib/certbook/certbook.db", cfg.DBPath)
}

func TestParseEnv(t *testing.T) {
	assert.Equal(t, EnvProd, parseEnv("prod"))
	assert.Equal(t, EnvProd, parseEnv("PRODUCTION"))
	assert.Equal(t, EnvProd, parseEnv(" prod "))
	assert.Equal(t, EnvDev, parseEnv("dev"))
	assert.Equal(t, EnvDev, parseEnv("anything"))
	assert.Equal(t, EnvDev, parseEnv(""))
}
