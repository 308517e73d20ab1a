package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SessionStoreMemory    = "memory"
	SessionStoreRedis     = "redis"
	SessionStoreFirestore = "firestore"
)

type Config struct {
	ServerPort  string
	Environment string

	BackendURL     string
	BackendTimeout time.Duration

	SessionSecret string
	SessionTTL    time.Duration
	SessionCookie string
	SessionStore  string

	RedisAddr string

	FirestoreProject   string
	ServiceAccountJSON string
	ServiceAccountPath string

	WorkspaceIdle time.Duration

	DisplayTimezone    string
	LoginRatePerMinute int
	CORSOrigins        []string
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		BackendURL:     strings.TrimRight(getEnv("BACKEND_URL", "http://localhost:3000"), "/"),
		BackendTimeout: time.Duration(getEnvAsInt64("BACKEND_TIMEOUT_SECONDS", 0)) * time.Second,

		SessionSecret: getEnv("SESSION_SECRET", "change-me"),
		SessionTTL:    time.Duration(getEnvAsInt64("SESSION_TTL_HOURS", 7*24)) * time.Hour,
		SessionCookie: getEnv("SESSION_COOKIE", "agc_session"),
		SessionStore:  strings.ToLower(getEnv("SESSION_STORE", SessionStoreMemory)),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),

		FirestoreProject:   getEnv("FIRESTORE_PROJECT_ID", ""),
		ServiceAccountJSON: getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),
		ServiceAccountPath: getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", ""),

		WorkspaceIdle: time.Duration(getEnvAsInt64("WORKSPACE_IDLE_MINUTES", 30)) * time.Minute,

		DisplayTimezone:    getEnv("DISPLAY_TIMEZONE", "Africa/Abidjan"),
		LoginRatePerMinute: int(getEnvAsInt64("LOGIN_RATE_PER_MINUTE", 5)),
		CORSOrigins:        splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	switch config.SessionStore {
	case SessionStoreMemory, SessionStoreRedis:
	case SessionStoreFirestore:
		if config.FirestoreProject == "" {
			return nil, fmt.Errorf("FIRESTORE_PROJECT_ID is required when SESSION_STORE=%s", SessionStoreFirestore)
		}
	default:
		return nil, fmt.Errorf("unknown SESSION_STORE %q", config.SessionStore)
	}

	if config.SessionTTL <= 0 {
		config.SessionTTL = 7 * 24 * time.Hour
	}

	if config.WorkspaceIdle <= 0 {
		config.WorkspaceIdle = 30 * time.Minute
	}
	if config.LoginRatePerMinute <= 0 {
		config.LoginRatePerMinute = 5
	}

	return config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Location resolves DisplayTimezone, falling back to UTC when the zone
// database does not know it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.DisplayTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
