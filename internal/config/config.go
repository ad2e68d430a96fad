package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port           string
	Environment    string
	FrontendURL    string
	AllowedOrigins []string
	StaticDir      string

	// DBDriver selects the round archive: "postgres", "sqlite" or "" for none.
	DBDriver             string
	DatabaseURL          string
	SQLitePath           string
	DBMaxOpenConns       int
	DBMaxIdleConns       int
	DBConnMaxLifetimeMin int

	RedisEnabled  bool
	RedisURL      string
	RedisPassword string

	OpponentStrategy string
	OpponentSeed     int64

	MonitorInterval      time.Duration
	SessionWarnThreshold int
}

var AppConfig *Config

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")
	environment := GetEnv("ENVIRONMENT", "development")

	// Frontend & CORS
	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:3000")
	allowedOriginsStr := GetEnv("ALLOWED_ORIGINS", "")

	// Build allowed origins list (Frontend URL + Localhost + CSV values)
	allowedOrigins := []string{
		frontendURL,
		"http://localhost:5173", // Local development
	}
	if allowedOriginsStr != "" {
		extras := strings.Split(allowedOriginsStr, ",")
		for _, origin := range extras {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	// Round archive
	dbURL := GetEnv("DATABASE_URL", GetEnv("DATABASE_URI", ""))
	dbDriver := strings.ToLower(GetEnv("DB_DRIVER", ""))
	if dbDriver == "" && dbURL != "" {
		dbDriver = "postgres"
	}
	switch dbDriver {
	case "", "postgres", "sqlite":
	default:
		log.Printf("Unknown DB_DRIVER %q, round archive disabled", dbDriver)
		dbDriver = ""
	}

	AppConfig = &Config{
		Port:                 port,
		Environment:          environment,
		FrontendURL:          frontendURL,
		AllowedOrigins:       allowedOrigins,
		StaticDir:            GetEnv("STATIC_DIR", "./static"),
		DBDriver:             dbDriver,
		DatabaseURL:          dbURL,
		SQLitePath:           GetEnv("SQLITE_PATH", "data/results.db"),
		DBMaxOpenConns:       GetEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:       GetEnvAsInt("DB_MAX_IDLE_CONNS", 25),
		DBConnMaxLifetimeMin: GetEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", 5),
		RedisEnabled:         GetEnvAsBool("REDIS_ENABLED", false),
		RedisURL:             GetEnv("REDIS_URL", "localhost:6379"),
		RedisPassword:        GetEnv("REDIS_PASSWORD", ""),
		OpponentStrategy:     GetEnv("OPPONENT_STRATEGY", "random"),
		OpponentSeed:         int64(GetEnvAsInt("OPPONENT_SEED", 0)),
		MonitorInterval:      GetEnvAsDuration("MONITOR_INTERVAL", time.Hour),
		SessionWarnThreshold: GetEnvAsInt("SESSION_WARN_THRESHOLD", 10000),
	}

	return AppConfig
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Invalid boolean value for %s: %s, using default: %t", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid duration value for %s: %s, using default: %s", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
