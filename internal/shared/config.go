package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	LogLevel    string
	HTTPAddr    string
	MetricsAddr string

	StorageDriver string // memory|sqlite|mysql|redis
	SessionDriver string // memory|redis
	SessionTTL    time.Duration
	SQLitePath    string
	MySQLDSN      string
	RedisAddr     string
	RedisDB       int
	RedisPass     string
	RedisPrefix   string

	RepositoryMode    string // local|remote
	BaseURL           string
	RemoteRPS         int
	RemoteMaxInFlight int

	AdminPassword string
	APIDelay      time.Duration
	HotelShape    string
	SeedPath      string
}

// Load reads .env (if present) and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg(".env could not be parsed")
	}
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		LogLevel:    env("LOG_LEVEL", "info"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ""),

		StorageDriver: env("STORAGE_DRIVER", "sqlite"),
		SessionDriver: env("SESSION_DRIVER", "memory"),
		SessionTTL:    time.Duration(atoi("SESSION_TTL_SECONDS", 1800)) * time.Second,
		SQLitePath:    env("SQLITE_PATH", "data/hotel_booking.db"),
		MySQLDSN:      env("MYSQL_DSN", "root:root@tcp(localhost:3306)/hotel_booking?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:     env("REDIS_ADDR", "localhost:6379"),
		RedisDB:       atoi("REDIS_DB", 0),
		RedisPass:     env("REDIS_PASSWORD", ""),
		RedisPrefix:   env("REDIS_PREFIX", "hotel_booking:"),

		RepositoryMode:    env("REPOSITORY_MODE", "local"),
		BaseURL:           env("BASE_URL", "http://localhost:8080"),
		RemoteRPS:         atoi("REMOTE_RPS", 10),
		RemoteMaxInFlight: atoi("REMOTE_MAX_IN_FLIGHT", 4),

		AdminPassword: env("ADMIN_PASSWORD", ""),
		APIDelay:      time.Duration(atoi("API_DELAY_MS", 500)) * time.Millisecond,
		HotelShape:    env("HOTEL_SHAPE", "catalog"),
		SeedPath:      env("SEED_PATH", ""),
	}
	if c.AdminPassword == "" {
		log.Warn().Msg("ADMIN_PASSWORD is empty; admin login is disabled")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
