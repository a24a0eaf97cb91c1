package config

import (
	"log/slog"
	"time"
)

type App struct {
	Port        string `env:"APP_PORT" default:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	JWTSecret   string `env:"JWT_SECRET,required"`
	Env         string `env:"APP_ENV" default:"dev"`
	// Location is where "today" starts and ends for statistics.
	Location    *time.Location `env:"APP_TZ" default:"Local"`
	LogLevel    slog.Level     `env:"LOG_LEVEL" default:"info"`
	AutoMigrate bool           `env:"DB_AUTO_MIGRATE" default:"true"`
	MaxConns    int32          `env:"DB_MAX_CONNS" default:"10"`
}

func (a App) IsProd() bool { return a.Env == "prod" || a.Env == "production" }
