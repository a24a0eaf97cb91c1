package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Load reads the environment, after merging a .env file from the working
// directory if there is one. Real environment variables win over .env.
func Load() App {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("could not read .env", "err", err)
	}

	cfg := App{
		Port:        getenv("APP_PORT", "8080"),
		DatabaseURL: must("DATABASE_URL"),
		JWTSecret:   getenv("JWT_SECRET", "local_dev_secret"),
		Env:         getenv("APP_ENV", "dev"),
		Location:    location(getenv("APP_TZ", "Local")),
		LogLevel:    level(getenv("LOG_LEVEL", "info")),
		AutoMigrate: boolean("DB_AUTO_MIGRATE", true),
		MaxConns:    int32(number("DB_MAX_CONNS", 10)),
	}
	// PORT is what most hosting platforms inject
	if p := os.Getenv("PORT"); p != "" {
		cfg.Port = p
	}
	if cfg.IsProd() && cfg.JWTSecret == "local_dev_secret" {
		slog.Error("JWT_SECRET must be set in production")
		panic("missing env JWT_SECRET")
	}
	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		slog.Error("required env missing", "key", k)
		panic("missing env " + k)
	}
	return v
}

func location(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		slog.Warn("unknown APP_TZ, using Local", "tz", name, "err", err)
		return time.Local
	}
	return loc
}

func level(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo
	}
	return l
}

func boolean(k string, def bool) bool {
	v, err := strconv.ParseBool(os.Getenv(k))
	if err != nil {
		return def
	}
	return v
}

func number(k string, def int) int {
	v, err := strconv.Atoi(os.Getenv(k))
	if err != nil || v <= 0 {
		return def
	}
	return v
}
