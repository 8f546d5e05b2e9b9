package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allConfigKeys lists every env var that Load() reads.
var allConfigKeys = []string{
	"SCICO_HOST",
	"SCICO_PORT",
	"PORT",
	"SCICO_DIST_DIR",
	"SCICO_DB_PATH",
	"SCICO_CONTENT_FILE",
	"SCICO_LIVE_PAGE",
	"SCICO_LOG_LEVEL",
	"SCICO_LOG_FORMAT",
	"SCICO_SHUTDOWN_TIMEOUT",
}

// isolateConfigEnv saves and unsets all config env vars so tests don't
// inherit values from the host environment (e.g. a running dev server).
// t.Cleanup restores original values after the test.
func isolateConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range allConfigKeys {
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

func fakeExecutable(path string) func() (string, error) {
	return func() (string, error) { return path, nil }
}

func TestLoad_Success(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("SCICO_HOST", "0.0.0.0")
	t.Setenv("SCICO_PORT", "8080")
	t.Setenv("SCICO_DIST_DIR", "/srv/site")
	t.Setenv("SCICO_DB_PATH", "/tmp/test.db")
	t.Setenv("SCICO_CONTENT_FILE", "/etc/scico/site.yaml")
	t.Setenv("SCICO_LIVE_PAGE", "true")
	t.Setenv("SCICO_LOG_LEVEL", "debug")
	t.Setenv("SCICO_LOG_FORMAT", "json")
	t.Setenv("SCICO_SHUTDOWN_TIMEOUT", "3s")

	cfg, err := load(fakeExecutable("/opt/scico/scico"))

	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", cfg.ListenAddr())
	assert.Equal(t, "/srv/site", cfg.DistDir)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.True(t, cfg.HasOutbox())
	assert.Equal(t, "/etc/scico/site.yaml", cfg.ContentFile)
	assert.True(t, cfg.LivePage)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfigEnv(t)
	exe := filepath.Join(t.TempDir(), "scico")

	cfg, err := load(fakeExecutable(exe))

	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:5173", cfg.ListenAddr())
	assert.Equal(t, filepath.Join(filepath.Dir(exe), "dist"), cfg.DistDir)
	assert.False(t, cfg.HasOutbox())
	assert.False(t, cfg.LivePage)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_PortOverride(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("SCICO_PORT", "8080")
	t.Setenv("PORT", "3000")

	cfg, err := load(fakeExecutable("/opt/scico/scico"))

	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Port)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
	}{
		{name: "port out of range", env: map[string]string{"SCICO_PORT": "70000"}, wantErr: ErrInvalidConfig},
		{name: "port zero", env: map[string]string{"SCICO_PORT": "0"}, wantErr: ErrInvalidConfig},
		{name: "unknown log format", env: map[string]string{"SCICO_LOG_FORMAT": "xml"}, wantErr: ErrInvalidConfig},
		{name: "negative shutdown timeout", env: map[string]string{"SCICO_SHUTDOWN_TIMEOUT": "-1s"}, wantErr: ErrInvalidConfig},
		{name: "port not a number", env: map[string]string{"SCICO_PORT": "http"}},
		{name: "bad duration", env: map[string]string{"SCICO_SHUTDOWN_TIMEOUT": "soon"}},
		{name: "bad log level", env: map[string]string{"SCICO_LOG_LEVEL": "loud"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateConfigEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := load(fakeExecutable("/opt/scico/scico"))

			require.Error(t, err)
			assert.Nil(t, cfg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestLoad_ExecutableError(t *testing.T) {
	isolateConfigEnv(t)

	_, err := load(func() (string, error) { return "", errors.New("no proc") })

	assert.ErrorContains(t, err, "locate executable")
}

func TestNewLogger(t *testing.T) {
	cfg := &Config{LogLevel: slog.LevelWarn, LogFormat: "json"}
	logger := cfg.NewLogger()

	require.NotNil(t, logger)
	assert.False(t, logger.Enabled(t.Context(), slog.LevelInfo))
	assert.True(t, logger.Enabled(t.Context(), slog.LevelWarn))
}
