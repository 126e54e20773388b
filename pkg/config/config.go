package config

import (
	"time"
)

// DB configures the gorm-backed store.
type DB struct {
	Url string `envconfig:"URL"`
}

// Storage selects the persistence backend at startup. Both backends
// satisfy the same repository contract.
type Storage struct {
	Driver string `envconfig:"DRIVER" default:"file"` // file, sqlite or postgres
	Path   string `envconfig:"PATH" default:"data/users.json"`
}

// Jwt configures token issuance.
type Jwt struct {
	Secret string        `envconfig:"SECRET" default:"greenpoints-dev-secret"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"24h"`
}

// RateLimit configures the per-IP request limiter.
type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

// Log configures the process logger.
type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[greenpoints]"`
}

// Server configures the HTTP listener.
type Server struct {
	Host string `envconfig:"HOST" default:"localhost"`
	Port int    `envconfig:"PORT" default:"3000"`
}

// App is the root configuration, populated from the environment.
type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Server    *Server    `envconfig:"SERVER"`
	Log       *Log       `envconfig:"LOG"`
	DB        *DB        `envconfig:"DATABASE"`
	Storage   *Storage   `envconfig:"STORAGE"`
	Jwt       *Jwt       `envconfig:"JWT"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
}
