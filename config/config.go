package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type Config struct {
	Port           string
	Backend        string
	DataPath       string
	RedisURL       string
	RedisKey       string
	PostgresURL    string
	DocumentName   string
	AllowedOrigins []string
	Verbose        bool
}

// Load reads the configuration from the environment. Values from a .env file
// in the working directory are applied first when the file exists.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:           getEnv("PORT", "5000"),
		Backend:        strings.ToLower(getEnv("STORE_BACKEND", BackendFile)),
		DataPath:       getEnv("DATA_PATH", "data.json"),
		RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379/0"),
		RedisKey:       getEnv("REDIS_KEY", "feed:document"),
		PostgresURL:    getEnv("POSTGRES_URL", ""),
		DocumentName:   getEnv("DOCUMENT_NAME", "feed"),
		AllowedOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
		Verbose:        getBool("LOG_VERBOSE", false),
	}
}

func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("$PORT not set")
	}

	switch c.Backend {
	case BackendFile:
		if c.DataPath == "" {
			return errors.New("$DATA_PATH not set")
		}
	case BackendRedis:
		if c.RedisURL == "" || c.RedisKey == "" {
			return errors.New("$REDIS_URL and $REDIS_KEY must be set for the redis backend")
		}
	case BackendPostgres:
		if c.PostgresURL == "" {
			return errors.New("$POSTGRES_URL not set")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Backend)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
