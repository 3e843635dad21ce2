package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment represents the application environment.
type Environment string

const (
	EnvDev  Environment = "dev"
	EnvProd Environment = "prod"
)

// Config holds application configuration.
type Config struct {
	Env         Environment
	Port        string
	LogLevel    string
	LogFormat   string
	LogOutput   string
	LogFilePath string
	DBPath      string
}

// Load reads configuration from the environment, optionally seeded from a .env file.
// No credential or connection default is embedded; DBPath points at a local file.
func Load() Config {
	_ = godotenv.Load()

	env := parseEnv(getEnv("APP_ENV", "dev"))

	return Config{
		Env:         env,
		Port:        getEnv("PORT", "8090"),
		LogLevel:    getEnv("LOG_LEVEL", defaultLogLevel(env)),
		LogFormat:   getEnv("LOG_FORMAT", defaultLogFormat(env)),
		LogOutput:   getEnv("LOG_OUTPUT", "stdout"),
		LogFilePath: getEnv("LOG_FILE_PATH", ""),
		DBPath:      getEnv("CERTBOOK_DB_PATH", "certbook.db"),
	}
}

// IsDev returns true if the environment is development.
func (c Config) IsDev() bool {
	return c.Env == EnvDev
}

// IsProd returns true if the environment is production.
func (c Config) IsProd() bool {
	return c.Env == EnvProd
}

func parseEnv(s string) Environment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prod", "production":
		return EnvProd
	default:
		return EnvDev
	}
}

func defaultLogLevel(env Environment) string {
	switch env {
	case EnvProd:
		return "info"
	default:
		return "debug"
	}
}

func defaultLogFormat(env Environment) string {
	switch env {
	case EnvProd:
		return "json"
	default:
		return "console"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
