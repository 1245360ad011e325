package main

import (
	"log/slog"
	"time"

	"github.com/besobot/besitos/internal/config"
)

type apiConfig struct {
	Port            uint16        `env:"APP_PORT" default:"8080"`
	LogLevel        slog.Level    `env:"APP_LOG_LEVEL" default:"INFO"`
	ShutdownTimeout time.Duration `env:"APP_SHUTDOWN_TIMEOUT" default:"10s"`
	SweepInterval   time.Duration `env:"APP_SWEEP_INTERVAL" default:"10m"`
	Postgres        config.PostgresConfig
}
