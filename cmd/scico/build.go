package main

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/scicolab/scico/internal/adapter/driven/logsink"
	webhandler "github.com/scicolab/scico/internal/adapter/driving/web"
	"github.com/scicolab/scico/internal/application"
	"github.com/scicolab/scico/internal/content"
	"github.com/scicolab/scico/internal/motion/particles"
)

// Size and seed of the background snapshot written by build.
const (
	backgroundW    = 1440
	backgroundH    = 900
	backgroundSeed = 1
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the site into the output directory",
	Long: `Render index.html, the embedded static assets and the background
snapshot into the build output directory. Every file is replaced atomically
so a running server never sees a partial file.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	provider, err := loadContent(cfg)
	if err != nil {
		return err
	}

	n, err := buildSite(cmd.Context(), cfg.DistDir, provider, logger)
	if err != nil {
		return err
	}
	logger.Info("build complete", "dir", cfg.DistDir, "files", n)
	return nil
}

// buildSite writes the site into dir and returns the number of files
// written.
func buildSite(ctx context.Context, dir string, provider *content.Provider, logger *slog.Logger) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create output dir: %w", err)
	}

	// Submissions never happen during a build; the log sink satisfies the
	// form service.
	motionSvc := application.NewMotionService(provider)
	formSvc := application.NewFormService(logsink.New(logger))
	web := webhandler.NewHandler(provider, motionSvc, formSvc, logger)

	written := 0

	var page bytes.Buffer
	if err := web.RenderPage(ctx, &page); err != nil {
		return written, fmt.Errorf("render page: %w", err)
	}
	if err := writeFile(dir, "index.html", page.Bytes()); err != nil {
		return written, err
	}
	written++

	err := fs.WalkDir(webhandler.StaticFS, "static", func(name string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(webhandler.StaticFS, name)
		if err != nil {
			return fmt.Errorf("read embedded %s: %w", name, err)
		}
		if err := writeFile(dir, name, data); err != nil {
			return err
		}
		written++
		return nil
	})
	if err != nil {
		return written, err
	}

	var bg bytes.Buffer
	if _, err := particles.Snapshot(backgroundW, backgroundH, backgroundSeed).WriteTo(&bg); err != nil {
		return written, fmt.Errorf("render background: %w", err)
	}
	if err := writeFile(dir, "background.svg", bg.Bytes()); err != nil {
		return written, err
	}
	written++

	return written, nil
}

// writeFile atomically replaces dir/name, where name is slash-separated.
func writeFile(dir, name string, data []byte) error {
	target := filepath.Join(dir, filepath.FromSlash(path.Clean(name)))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", name, err)
	}
	if err := atomic.WriteFile(target, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
