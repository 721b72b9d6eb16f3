// Package config loads the application settings. Port and environment
// come from flags in main; everything else is environment variables
// with sensible defaults, so the binary runs without any configuration.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/zlahmar/EcoTri-sub000/internal/cache"
	"github.com/zlahmar/EcoTri-sub000/internal/opendata"
)

// Config holds all the settings for the service.
type Config struct {
	Port int
	Env  string

	OpenDataBaseURL string
	OpenDataDataset string

	CacheTTL      time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Load reads the environment-variable half of the configuration.
func Load() Config {
	return Config{
		OpenDataBaseURL: getEnv("ECOTRI_OPENDATA_URL", opendata.DefaultBaseURL),
		OpenDataDataset: getEnv("ECOTRI_OPENDATA_DATASET", opendata.DefaultDataset),
		CacheTTL:        getDurationEnv("ECOTRI_CACHE_TTL", cache.DefaultTTL),
		RedisAddr:       getEnv("ECOTRI_REDIS_ADDR", ""),
		RedisPassword:   getEnv("ECOTRI_REDIS_PASSWORD", ""),
		RedisDB:         getIntEnv("ECOTRI_REDIS_DB", 0),
	}
}

// RedisEnabled reports whether the Redis cache backend is configured.
func (c Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}

func getIntEnv(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
