package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/scicolab/scico/internal/adapter/driven/logsink"
	sqliteadapter "github.com/scicolab/scico/internal/adapter/driven/sqlite"
	"github.com/scicolab/scico/internal/config"
	"github.com/scicolab/scico/internal/content"
	"github.com/scicolab/scico/internal/domain/port/driven"
)

var (
	// Global flags
	contentFile string
	distDir     string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "scico",
	Short: "SciCo site server, builder and motion preview",
	Long: `scico serves and builds the SciCo marketing site.

  serve   - serve the build output with SPA fallback, forms and the motion API
  build   - render index.html and its assets into the output directory
  preview - play the intro, hero ring, marquees and particle field in the terminal

Configuration is read from SCICO_* environment variables; flags override them.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&contentFile, "content", "", "Content catalog YAML (default: embedded, or SCICO_CONTENT_FILE)")
	rootCmd.PersistentFlags().StringVar(&distDir, "dist", "", "Build output directory (default: SCICO_DIST_DIR or dist next to the binary)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(previewCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the environment and applies the global flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if contentFile != "" {
		cfg.ContentFile = contentFile
	}
	if distDir != "" {
		cfg.DistDir = distDir
	}
	return cfg, nil
}

// loadContent returns a provider over the configured catalog file, or over
// the embedded catalog when none is configured.
func loadContent(cfg *config.Config) (*content.Provider, error) {
	if cfg.ContentFile == "" {
		cat, err := content.Default()
		if err != nil {
			return nil, err
		}
		return content.NewProvider(cat), nil
	}
	cat, err := content.LoadFile(cfg.ContentFile)
	if err != nil {
		return nil, err
	}
	return content.NewProvider(cat), nil
}

// openSink selects where form submissions go. With a database path they are
// queued in the SQLite outbox, which is also returned; otherwise they are
// logged. The returned close func is never nil.
func openSink(cfg *config.Config, logger *slog.Logger) (driven.SubmissionSink, driven.SubmissionOutbox, func(), error) {
	if !cfg.HasOutbox() {
		logger.Info("no database configured, submissions are logged only")
		return logsink.New(logger), nil, func() {}, nil
	}

	db, err := sqliteadapter.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, nil, err
	}
	logger.Info("database opened", "path", db.Path())

	repo := sqliteadapter.NewSubmissionRepo(db)
	closeDB := func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}
	return repo, repo, closeDB, nil
}
