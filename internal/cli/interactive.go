package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yildizm/aidetect/internal/config"
	"github.com/yildizm/aidetect/internal/detect"
	"github.com/yildizm/aidetect/internal/logger"
	"github.com/yildizm/aidetect/internal/ui"
)

// runInteractive opens the detection TUI
func runInteractive(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()

	// The TUI owns the terminal, so logs only go to a file
	w, closeLog, err := openLogFile(cfg.Log.File)
	if err != nil {
		return err
	}
	defer closeLog()
	log := logger.NewWithWriter("aidetect", logger.StaticVerbose(cfg.Log.Verbose), w)

	opts := interactiveOptions(cfg, log)
	if len(args) == 1 {
		opts.InitialFile = args[0]
	}

	log.InfoWithFields("starting interactive detector", []logger.Field{
		logger.F("start_dir", opts.StartDir),
		logger.F("enforce", cfg.Validation.Enforce),
		logger.F("seed", cfg.Detection.Seed),
	})

	if _, err := ui.Run(opts); err != nil {
		return fmt.Errorf("failed to run interactive detector: %w", err)
	}
	return nil
}

// interactiveOptions builds UI options from configuration
func interactiveOptions(cfg *config.Config, log *logger.Logger) ui.Options {
	opts := ui.Options{
		Session:      newSession(cfg),
		Detector:     detect.NewSimulatedDetector(cfg.Detection.Delay, cfg.Detection.Seed),
		TickInterval: cfg.Detection.TickInterval,
		StartDir:     config.ExpandPath(cfg.UI.StartDir),
		ShowHidden:   cfg.UI.ShowHidden,
		WatchDir:     cfg.UI.WatchDir,
		Logger:       log,
	}
	if cfg.Validation.Enforce {
		opts.Hint = cfg.Rules().Hint()
	}
	return opts
}

// newSession creates a session configured for validation and tick step
func newSession(cfg *config.Config) *detect.Session {
	sessionOpts := []detect.Option{detect.WithTickStep(cfg.Detection.TickStep)}
	if cfg.Validation.Enforce {
		sessionOpts = append(sessionOpts, detect.WithValidator(detect.NewFileValidator(cfg.Rules())))
	}
	return detect.NewSession(sessionOpts...)
}
