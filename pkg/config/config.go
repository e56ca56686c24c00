package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

type Config struct {
	AppEnv   string
	HTTPAddr string
	LogLevel string

	// StoreDriver selects where blocks and bookings live: "memory" (default) or "postgres".
	StoreDriver    string
	MigrationsPath string

	// Hosted Postgres convenience:
	// - DATABASE_URL: runtime connection (often a pooler)
	// - DIRECT_URL: direct connection for migrations
	DatabaseURL string
	DirectURL   string

	DB DBConfig

	Scheduling SchedulingConfig

	// StaffAllowedOrigins is the CORS allowlist for the staff endpoints. Example:
	//   https://schichten.example.de,http://localhost:5173
	StaffAllowedOrigins []string
}

type DBConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

type SchedulingConfig struct {
	// Location is the fixed label stamped on every block.
	Location string
	Timezone string
	// CapacityPolicy is "lax" or "strict".
	CapacityPolicy string
	SeedDemoBlocks bool
}

func (c Config) IsProd() bool {
	return c.AppEnv == "prod"
}

func Load() Config {
	// Convenience for local dev: load variables from .env if present.
	_ = godotenv.Load()

	// Cloud Run sets PORT. Prefer it when HTTP_ADDR isn't explicitly set.
	httpAddr := os.Getenv("HTTP_ADDR")
	if httpAddr == "" {
		if port := os.Getenv("PORT"); port != "" {
			httpAddr = ":" + port
		} else {
			httpAddr = ":8081"
		}
	}

	appEnv := env("APP_ENV", "dev")

	return Config{
		AppEnv:         appEnv,
		HTTPAddr:       httpAddr,
		LogLevel:       env("LOG_LEVEL", "info"),
		StoreDriver:    strings.ToLower(env("STORE_DRIVER", StoreMemory)),
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DirectURL:      os.Getenv("DIRECT_URL"),
		DB: DBConfig{
			Host:     env("DB_HOST", "localhost"),
			Port:     env("DB_PORT", "5432"),
			Name:     env("DB_NAME", "shiftblocks"),
			User:     env("DB_USER", "shiftblocks"),
			Password: env("DB_PASSWORD", "shiftblocks"),
			SSLMode:  env("DB_SSLMODE", "disable"),
		},
		Scheduling: SchedulingConfig{
			Location:       env("BLOCK_LOCATION", "Duisburg"),
			Timezone:       env("DISPLAY_TIMEZONE", "Europe/Berlin"),
			CapacityPolicy: env("CAPACITY_POLICY", "lax"),
			SeedDemoBlocks: envBool("SEED_DEMO_BLOCKS", appEnv != "prod"),
		},

		StaffAllowedOrigins: envList("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:4173"),
	}
}

func env(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envList(key, fallbackCSV string) []string {
	v := os.Getenv(key)
	if v == "" {
		v = fallbackCSV
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
