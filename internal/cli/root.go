package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/yildizm/aidetect/internal/config"
	"github.com/yildizm/aidetect/internal/emoji"
	"github.com/yildizm/aidetect/internal/logger"
	"github.com/yildizm/aidetect/internal/ui"
)

var (
	cfgFile   string
	verbose   bool
	noColor   bool
	noEmoji   bool
	outputFmt string
	themeName string
	seed      uint64
	logFile   string

	globalConfig *config.Config
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "aidetect [file]",
		Short: "AI content detection in the terminal",
		Long: `aidetect scores documents for AI-generated content.

Run without a subcommand to open the interactive detector: browse to a file,
select it and press d to start detection. Pass a file to preselect it.
Use "aidetect score" to score files without the interactive UI.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Auto-disable emojis on Windows if not explicitly set
			if runtime.GOOS == "windows" && !cmd.Flag("no-emoji").Changed {
				noEmoji = true
			}

			cfg, err := loadGlobalConfig(cmd, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			globalConfig = cfg

			emoji.SetEmojiDisabled(!cfg.UI.Emoji)
			if !ui.SetThemeByName(cfg.UI.Theme) {
				return fmt.Errorf("unknown theme: %s", cfg.UI.Theme)
			}
			ui.ApplyColorMode(cfg.UI.ColorMode)
			return nil
		},
		RunE: runInteractive,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "text", "output format (text, json, markdown, csv)")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "color theme (default, high-contrast, minimal)")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "seed for the simulated detector (0 = random)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write diagnostic logs to this file")

	// Add subcommands
	rootCmd.AddCommand(newScoreCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

// loadGlobalConfig loads configuration and applies explicitly set flags on top
func loadGlobalConfig(cmd *cobra.Command, stderr io.Writer) (*config.Config, error) {
	warnLog := logger.NewWithWriter("config", logger.StaticVerbose(true), stderr)

	cfg, err := config.NewLoader().WithWarner(warnLog).LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Log.Verbose = verbose
	}
	if flags.Changed("no-color") && noColor {
		cfg.UI.ColorMode = "never"
	}
	if noEmoji {
		cfg.UI.Emoji = false
	}
	if flags.Changed("output") {
		cfg.Output.DefaultFormat = outputFmt
	}
	if flags.Changed("theme") {
		cfg.UI.Theme = themeName
	}
	if flags.Changed("seed") {
		cfg.Detection.Seed = seed
	}
	if flags.Changed("log-file") {
		cfg.Log.File = logFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "aidetect %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// GetGlobalConfig returns the configuration loaded for the current command
func GetGlobalConfig() *config.Config {
	if globalConfig == nil {
		return config.DefaultConfig()
	}
	return globalConfig
}

// Global helpers
func isVerbose() bool {
	return GetGlobalConfig().Log.Verbose
}

// openLogFile opens the diagnostic log file. An empty path discards logs.
func openLogFile(path string) (io.Writer, func(), error) {
	if path == "" {
		return io.Discard, func() {}, nil
	}

	f, err := os.OpenFile(config.ExpandPath(path), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
