package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/bitdittowit/autoduo/internal/app"
	"github.com/bitdittowit/autoduo/internal/browser"
	"github.com/bitdittowit/autoduo/internal/config"
	"github.com/bitdittowit/autoduo/internal/panel"
	"github.com/bitdittowit/autoduo/internal/solver"
)

// runApp loads the config, connects to the browser, and launches the
// control panel TUI with the solver loop behind it.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := config.Load(resolveConfigPath(cmd))
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)

	level := slog.LevelInfo
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = slog.LevelDebug
	}

	// Log records flow to the panel over a channel; the handler drops
	// rather than blocking when the TUI lags.
	logCh := make(chan panel.LogLine, 256)
	logger := slog.New(panel.NewHandler(logCh, level))

	dryRun, _ := cmd.Flags().GetBool("dry-run")

	mgr := browser.NewManager(cfg.Browser, logger)
	page, err := mgr.Start(ctx)
	if err != nil {
		return fmt.Errorf("start browser: %w", err)
	}
	defer mgr.Close()

	scanner := browser.NewScanner(page, cfg.Scanner, logger, dryRun)
	registry := solver.NewRegistry(solver.Options{
		Calibration:    cfg.Calibration,
		PairClickDelay: cfg.Runner.PairClickDelay,
	}, logger)

	statusCh := make(chan browser.Status, 64)
	runner := browser.NewRunner(scanner, registry, cfg.Runner, logger, func(s browser.Status) {
		select {
		case statusCh <- s:
		default:
		}
	})

	autoStart, _ := cmd.Flags().GetBool("auto")
	return app.Run(ctx, app.Options{
		Runner:    runner,
		Status:    statusCh,
		Logs:      logCh,
		Logger:    logger,
		Limit:     cfg.Runner.MaxExercises,
		AutoStart: autoStart,
	})
}

// applyFlags overlays command line flags onto the loaded config. Flags
// win over file values only when set.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("attach") {
		cfg.Browser.Attach, _ = cmd.Flags().GetString("attach")
	}
	if cmd.Flags().Changed("headless") {
		cfg.Browser.Headless, _ = cmd.Flags().GetBool("headless")
	}
	if cmd.Flags().Changed("url") {
		cfg.Browser.URL, _ = cmd.Flags().GetString("url")
	}
	if cmd.Flags().Changed("max-exercises") {
		cfg.Runner.MaxExercises, _ = cmd.Flags().GetInt("max-exercises")
	}
}
