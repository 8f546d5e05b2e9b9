package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httphandler "github.com/scicolab/scico/internal/adapter/driving/http"
	"github.com/scicolab/scico/internal/adapter/driving/static"
	webhandler "github.com/scicolab/scico/internal/adapter/driving/web"
	"github.com/scicolab/scico/internal/application"
	"github.com/scicolab/scico/internal/config"
	"github.com/scicolab/scico/internal/content"
	"github.com/scicolab/scico/internal/domain/port/driven"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site",
	Long: `Serve the build output directory on SCICO_HOST:SCICO_PORT (PORT wins when set).

Unknown paths fall back to index.html. Form panels, placeholder graphics,
the background snapshot and the /api/v1 motion endpoints are served
alongside. With SCICO_LIVE_PAGE the page is rendered per request instead of
read from the build output.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	// 1. Load configuration.
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := cfg.NewLogger()
	slog.SetDefault(logger)
	logger.Info("config loaded",
		"listen_addr", cfg.ListenAddr(),
		"dist_dir", cfg.DistDir,
		"content_file", cfg.ContentFile,
		"live_page", cfg.LivePage,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Content catalog, hot-reloaded when it comes from a file.
	provider, err := loadContent(cfg)
	if err != nil {
		return err
	}
	if cfg.ContentFile != "" {
		watcher, err := content.NewWatcher(cfg.ContentFile, provider)
		if err != nil {
			return err
		}
		go watcher.Run(ctx)
		logger.Info("watching content", "path", cfg.ContentFile)
	}

	// 4. Submission sink.
	sink, outbox, closeSink, err := openSink(cfg, logger)
	if err != nil {
		return err
	}
	defer closeSink()

	srv := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           newServerHandler(cfg, provider, sink, outbox, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ln, err := listen(srv.Addr)
	if err != nil {
		return err
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- fmt.Errorf("http server: %w", err)
		}
	}()

	logger.Info("Preview server running at http://" + ln.Addr().String())

	// 5. Wait for shutdown signal or a listen failure.
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-serveErr:
		return err
	}

	// 6. Graceful shutdown.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}

// listen binds addr so the reported address is the one actually bound.
func listen(addr string) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}
	return ln, nil
}

// newServerHandler wires the API, the dynamic web routes and the static
// fallback into one middleware-wrapped handler.
func newServerHandler(
	cfg *config.Config,
	provider *content.Provider,
	sink driven.SubmissionSink,
	outbox driven.SubmissionOutbox,
	logger *slog.Logger,
) http.Handler {
	motionSvc := application.NewMotionService(provider)
	formSvc := application.NewFormService(sink)

	mux := http.NewServeMux()

	apiHandler := httphandler.NewHandler(motionSvc, outbox, provider.Version, logger)
	httphandler.RegisterAPIRoutes(mux, apiHandler)

	webHandler := webhandler.NewHandler(provider, motionSvc, formSvc, logger)
	webhandler.RegisterRoutes(mux, webHandler)
	if cfg.LivePage {
		mux.HandleFunc("GET /{$}", webHandler.Index)
	}

	mux.Handle("/", static.New(cfg.DistDir, logger))

	return httphandler.ApplyMiddleware(mux, logger)
}
