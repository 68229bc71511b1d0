package config

import (
	"os"
	"strconv"
	"strings"
)

// LoadEnv reads KEY=VALUE lines from the first .env file found in the
// current directory or its parents. Variables already set in the
// environment win.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env", "../.env", "../../.env"}
	}
	for _, envPath := range paths {
		data, err := os.ReadFile(envPath)
		if err != nil {
			continue
		}
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			key, value, ok := strings.Cut(line, "=")
			if !ok {
				continue
			}
			key = strings.TrimSpace(key)
			value = strings.Trim(strings.TrimSpace(value), `"'`)
			if _, set := os.LookupEnv(key); !set {
				if err := os.Setenv(key, value); err != nil {
					return err
				}
			}
		}
		return nil
	}
	return nil
}

// GetEnv gets environment variable with default
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvInt gets integer environment variable with default
func GetEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetEnvBool gets boolean environment variable with default
func GetEnvBool(key string, defaultValue bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	}
	return defaultValue
}

// ServerConfig is the environment of the HTTP server.
type ServerConfig struct {
	HTTPAddr        string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	RedisKey        string
	ModelPath       string
	CorrectorConfig string
	CacheSize       int
	LogLevel        string
	LogJSON         bool
}

// LoadServerConfig reads ServerConfig from the environment.
func LoadServerConfig() ServerConfig {
	return ServerConfig{
		HTTPAddr:        GetEnv("HTTP_ADDR", ":8080"),
		RedisAddr:       GetEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         GetEnvInt("REDIS_DB", 0),
		RedisKey:        GetEnv("REDIS_KEY", "custom_dict"),
		ModelPath:       GetEnv("MODEL_PATH", "model.gz"),
		CorrectorConfig: os.Getenv("CORRECTOR_CONFIG"),
		CacheSize:       GetEnvInt("CACHE_SIZE", 4096),
		LogLevel:        GetEnv("LOG_LEVEL", "info"),
		LogJSON:         GetEnvBool("LOG_JSON", false),
	}
}
