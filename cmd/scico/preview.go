package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/scicolab/scico/internal/adapter/driving/terminal"
	"github.com/scicolab/scico/internal/motion"
)

var (
	previewReduced bool
	previewSeed    uint64
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Play the site motion in the terminal",
	Long: `Play the intro, then the hero ring, the marquee tracks and the particle
field in the terminal. The pointer follows the mouse and pauses the track
under it.

Keys:
  r        toggle reduced motion
  q, Esc   quit`,
	Args: cobra.NoArgs,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().BoolVar(&previewReduced, "reduced", false, "Start with reduced motion")
	previewCmd.Flags().Uint64Var(&previewSeed, "seed", 0, "Particle field seed (default: time based)")
}

func runPreview(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	provider, err := loadContent(cfg)
	if err != nil {
		return err
	}

	// The screen owns the terminal; log lines would tear it.
	logger := slog.New(slog.DiscardHandler)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed := previewSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	sched := motion.NewTickerScheduler(motion.DefaultFrameInterval)
	p := terminal.New(screen, sched, provider.Get(), terminal.Options{
		Reduced: previewReduced,
		Seed:    seed,
		Logger:  logger,
	})
	p.Start()

	runErr := p.Run(ctx)
	sched.Close()
	p.Stop()
	return runErr
}
