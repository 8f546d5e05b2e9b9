// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultPort is the port the preview server listens on.
const DefaultPort = 5173

// ErrInvalidConfig wraps every validation failure returned by Load.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the application configuration loaded from environment variables.
type Config struct {
	Host string `env:"SCICO_HOST" envDefault:"127.0.0.1"`
	Port int    `env:"SCICO_PORT" envDefault:"5173"`
	// PortOverride is the conventional PORT variable; when set it wins over
	// SCICO_PORT.
	PortOverride int `env:"PORT"`

	// DistDir is the build output served as static assets. Empty means
	// "dist" next to the executable.
	DistDir string `env:"SCICO_DIST_DIR"`
	// DBPath enables the SQLite submission outbox. Empty keeps submissions
	// in the log only.
	DBPath string `env:"SCICO_DB_PATH"`
	// ContentFile replaces the embedded content catalog and is watched for
	// changes.
	ContentFile string `env:"SCICO_CONTENT_FILE"`
	// LivePage renders the page per request instead of serving the built
	// index.html.
	LivePage bool `env:"SCICO_LIVE_PAGE"`

	LogLevel        slog.Level    `env:"SCICO_LOG_LEVEL"        envDefault:"INFO"`
	LogFormat       string        `env:"SCICO_LOG_FORMAT"       envDefault:"text"`
	ShutdownTimeout time.Duration `env:"SCICO_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// ListenAddr is the host:port the server binds.
func (c *Config) ListenAddr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// HasOutbox reports whether submissions are persisted.
func (c *Config) HasOutbox() bool { return c.DBPath != "" }

// Load reads configuration from environment variables and returns a
// validated Config. Every variable is optional: SCICO_HOST (127.0.0.1),
// SCICO_PORT or PORT (5173), SCICO_DIST_DIR (<executable dir>/dist),
// SCICO_DB_PATH, SCICO_CONTENT_FILE, SCICO_LIVE_PAGE, SCICO_LOG_LEVEL (INFO),
// SCICO_LOG_FORMAT (text), SCICO_SHUTDOWN_TIMEOUT (10s).
func Load() (*Config, error) {
	return load(os.Executable)
}

func load(executable func() (string, error)) (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.PortOverride != 0 {
		cfg.Port = cfg.PortOverride
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, cfg.Port)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("%w: SCICO_LOG_FORMAT must be text or json, got %q", ErrInvalidConfig, cfg.LogFormat)
	}
	if cfg.ShutdownTimeout <= 0 {
		return nil, fmt.Errorf("%w: SCICO_SHUTDOWN_TIMEOUT must be positive", ErrInvalidConfig)
	}

	if cfg.DistDir == "" {
		exe, err := executable()
		if err != nil {
			return nil, fmt.Errorf("locate executable: %w", err)
		}
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		cfg.DistDir = filepath.Join(filepath.Dir(exe), "dist")
	}

	return &cfg, nil
}

// NewLogger builds the process logger from the configured level and format.
func (c *Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
