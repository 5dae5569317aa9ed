package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Redis   RedisConfig
	Storage StorageConfig
	Session SessionConfig
	Poller  PollerConfig
	CORS    CORSConfig
}

type ServerConfig struct {
	Port        string
	GinMode     string
	Environment string
}

// BackendConfig points at the upstream NutriLeaf API that owns all
// business logic. The gateway is purely a client of it.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// StorageConfig controls the durable client-state keyspace. All keys are
// namespaced under Prefix so several gateway deployments can share one
// redis instance.
type StorageConfig struct {
	Prefix string
}

type SessionConfig struct {
	// StrictRole demotes a cached admin role to a plain user role when
	// backend role verification fails, instead of trusting the cache.
	StrictRole bool
}

type PollerConfig struct {
	// Cron expression for the fallback profile re-check. The broadcaster
	// covers every in-process mutation; the poll only catches writes made
	// by another process bypassing it.
	ProfileRefreshCron string
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "7070"),
			GinMode:     getEnv("GIN_MODE", "debug"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Backend: BackendConfig{
			BaseURL: getEnv("BACKEND_BASE_URL", "http://localhost:8080/api"),
			Timeout: parseDuration(getEnv("BACKEND_TIMEOUT", "30s")),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       parseInt(getEnv("REDIS_DB", "0")),
		},
		Storage: StorageConfig{
			Prefix: getEnv("STORAGE_PREFIX", "nutrileaf:"),
		},
		Session: SessionConfig{
			StrictRole: getEnv("SESSION_STRICT_ROLE", "false") == "true",
		},
		Poller: PollerConfig{
			ProfileRefreshCron: getEnv("PROFILE_REFRESH_CRON", "@every 5m"),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		},
	}

	return config, nil
}

// Addr returns the redis host:port pair.
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default 30s", s)
		return 30 * time.Second
	}
	return duration
}

func parseInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("Invalid integer %s, using 0", s)
		return 0
	}
	return n
}

func parseSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	var result []string
	for i := 0; i < len(s); {
		end := i
		for end < len(s) && s[end] != ',' {
			end++
		}
		result = append(result, s[i:end])
		i = end + 1
	}
	return result
}
