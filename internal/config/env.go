package config

import (
	"github.com/JaimeStill/photo-fixer/internal/transcode"
	"github.com/JaimeStill/photo-fixer/pkg/database"
	"github.com/JaimeStill/photo-fixer/pkg/logging"
	"github.com/JaimeStill/photo-fixer/pkg/middleware"
)

var loggingEnv = &logging.Env{
	Level:  "LOGGING_LEVEL",
	Format: "LOGGING_FORMAT",
}

// DatabaseEnv names the environment variables that override [database] settings.
var DatabaseEnv = &database.Env{
	Host:            "DATABASE_HOST",
	Port:            "DATABASE_PORT",
	Name:            "DATABASE_NAME",
	User:            "DATABASE_USER",
	Password:        "DATABASE_PASSWORD",
	SSLMode:         "DATABASE_SSL_MODE",
	MaxOpenConns:    "DATABASE_MAX_OPEN_CONNS",
	MaxIdleConns:    "DATABASE_MAX_IDLE_CONNS",
	ConnMaxLifetime: "DATABASE_CONN_MAX_LIFETIME",
	ConnTimeout:     "DATABASE_CONN_TIMEOUT",
}

var transcodeEnv = &transcode.Env{
	StartQuality: "TRANSCODE_START_QUALITY",
	QualityStep:  "TRANSCODE_QUALITY_STEP",
	MinQuality:   "TRANSCODE_MIN_QUALITY",
	Parallel:     "TRANSCODE_PARALLEL",
	Workers:      "TRANSCODE_WORKERS",
	MaxPixels:    "TRANSCODE_MAX_PIXELS",
}

var corsEnv = &middleware.CORSEnv{
	Enabled:          "API_CORS_ENABLED",
	Origins:          "API_CORS_ORIGINS",
	AllowedMethods:   "API_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "API_CORS_ALLOWED_HEADERS",
	AllowCredentials: "API_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "API_CORS_MAX_AGE",
}
