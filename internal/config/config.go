package config

import (
	"os"
	"strconv"
)

// Config holds process-level configuration loaded from the environment
type Config struct {
	MongoURI     string
	DatabaseName string
	RedisAddr    string
	HTTPPort     string

	// DashboardTotal, when > 0, is the combined response total the
	// dashboard presents; stored metrics are normalized to it on read.
	DashboardTotal int

	// ClassifyDelayMS is the pause between inference calls during a
	// batch run, to avoid overwhelming the external endpoint.
	ClassifyDelayMS int
}

// Load reads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DatabaseName:    getEnv("MONGO_DB", "surveypulse"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		DashboardTotal:  getEnvInt("DASHBOARD_TOTAL", 0),
		ClassifyDelayMS: getEnvInt("CLASSIFY_DELAY_MS", 200),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}
