// internal/config/config.go
//
// Runtime configuration for the Brain Buzzer server.
// Values come from the process environment; a `.env` file in the working
// directory is loaded first if present (development convenience).
//
// Environment variables (defaults in parentheses):
//   PORT              (5000)   listen port
//   LOG_LEVEL         (info)   zerolog level: trace|debug|info|warn|error
//   LOG_FORMAT        (json)   json | console
//   LOG_FILE          ("")     optional rolling log file, teed with stdout
//   CLIENT_ORIGINS    (*)      comma-separated CORS origins
//   PUZZLES_FILE      ("")     YAML riddle catalog
//   PUZZLES_DB        ("")     SQLite riddle catalog (wins over PUZZLES_FILE)
//   METRICS_ENABLED   (true)   expose /metrics and instrument requests
//   REQUEST_TIMEOUT   (10s)    per-request handler timeout
//   SHUTDOWN_TIMEOUT  (5s)     graceful shutdown budget

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port string

	LogLevel  string
	LogFormat string
	LogFile   string

	ClientOrigins []string

	PuzzlesFile string
	PuzzlesDB   string

	MetricsEnabled bool

	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// Load reads `.env` (if any) and then the environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, relying on environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() Config {
	return Config{
		Port:            getEnv("PORT", "5000"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
		LogFile:         getEnv("LOG_FILE", ""),
		ClientOrigins:   splitList(getEnv("CLIENT_ORIGINS", "*")),
		PuzzlesFile:     getEnv("PUZZLES_FILE", ""),
		PuzzlesDB:       getEnv("PUZZLES_DB", ""),
		MetricsEnabled:  getEnvBool("METRICS_ENABLED", true),
		RequestTimeout:  getEnvDuration("REQUEST_TIMEOUT", 10*time.Second),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 5*time.Second),
	}
}

// getEnv returns the value of key or fallback if unset/empty.
func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
