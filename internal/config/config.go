// Package config loads the server configuration from the environment, with an
// optional .env file applied first.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

const (
	DriverPgx      = "pgx"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Calendar  CalendarConfig
	LogLevel  slog.Level
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Driver   string
	User     string
	Password string
	Host     string
	Port     string
	Name     string
	Path     string
	SeedFile string
}

// DSN is the connection string for Driver: a postgres URL, or the sqlite
// file path.
func (d DatabaseConfig) DSN() string {
	if d.Driver == DriverSQLite {
		return d.Path
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	CacheTTL time.Duration
}

// Enabled reports whether a redis host was configured.
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

type AuthConfig struct {
	JWTSecret string
	Issuer    string
}

type RateLimitConfig struct {
	Limit  int
	Window time.Duration
}

type CalendarConfig struct {
	Location     *time.Location
	FirstWeekday time.Weekday
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080"},
		Database: DatabaseConfig{
			Driver: DriverPgx,
			Host:   "localhost",
			Port:   "5432",
			Path:   "./data/fokus.db",
		},
		Redis: RedisConfig{
			Port:     "6379",
			CacheTTL: 5 * time.Minute,
		},
		Auth: AuthConfig{Issuer: "fokus-engine"},
		RateLimit: RateLimitConfig{
			Limit:  100,
			Window: time.Minute,
		},
		Calendar: CalendarConfig{
			Location:     time.Local,
			FirstWeekday: time.Monday,
		},
		LogLevel: slog.LevelInfo,
	}
}

// Load applies envFiles (".env" when none are given) and then reads the
// environment over the defaults. Missing env files are not an error.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", f, err)
		}
	}

	cfg := DefaultConfig()

	cfg.Server.Port = getEnv("PORT", cfg.Server.Port)

	cfg.Database.Driver = strings.ToLower(getEnv("DB_DRIVER", cfg.Database.Driver))
	switch cfg.Database.Driver {
	case DriverPgx, DriverPostgres, DriverSQLite, DriverMemory:
	default:
		return nil, fmt.Errorf("config: unsupported DB_DRIVER %q", cfg.Database.Driver)
	}
	cfg.Database.User = getEnv("DB_USER", cfg.Database.User)
	cfg.Database.Password = getEnv("DB_PASSWORD", cfg.Database.Password)
	cfg.Database.Host = getEnv("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = getEnv("DB_PORT", cfg.Database.Port)
	cfg.Database.Name = getEnv("DB_NAME", cfg.Database.Name)
	cfg.Database.Path = getEnv("DB_PATH", cfg.Database.Path)
	cfg.Database.SeedFile = os.Getenv("SEED_FILE")

	cfg.Redis.Host = getEnv("REDIS_HOST", cfg.Redis.Host)
	cfg.Redis.Port = getEnv("REDIS_PORT", cfg.Redis.Port)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)

	var err error
	if cfg.Redis.DB, err = getInt("REDIS_DB", cfg.Redis.DB); err != nil {
		return nil, err
	}
	if cfg.Redis.CacheTTL, err = getDuration("CACHE_TTL", cfg.Redis.CacheTTL); err != nil {
		return nil, err
	}

	cfg.Auth.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("config: JWT_SECRET is required")
	}
	cfg.Auth.Issuer = getEnv("JWT_ISSUER", cfg.Auth.Issuer)

	if cfg.RateLimit.Limit, err = getInt("RATE_LIMIT", cfg.RateLimit.Limit); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Window, err = getDuration("RATE_WINDOW", cfg.RateLimit.Window); err != nil {
		return nil, err
	}

	if tz := os.Getenv("FOKUS_TIMEZONE"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("config: FOKUS_TIMEZONE: %w", err)
		}
		cfg.Calendar.Location = loc
	}
	if wd := os.Getenv("FOKUS_FIRST_WEEKDAY"); wd != "" {
		if cfg.Calendar.FirstWeekday, err = ParseWeekday(wd); err != nil {
			return nil, err
		}
	}

	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(lvl)); err != nil {
			return nil, fmt.Errorf("config: LOG_LEVEL: %w", err)
		}
	}

	return cfg, nil
}

// ParseWeekday accepts English weekday names, case-insensitively, in full or
// as three-letter abbreviations.
func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if name == full || name == full[:3] {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("config: invalid weekday %q", s)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}
