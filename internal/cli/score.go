package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/yildizm/aidetect/internal/config"
	"github.com/yildizm/aidetect/internal/detect"
	"github.com/yildizm/aidetect/internal/formatter"
	"github.com/yildizm/aidetect/internal/logger"
	"github.com/yildizm/aidetect/internal/ui/components"
)

var (
	scoreOutputFile string
	scoreNoProgress bool
)

func newScoreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score <file> [file...]",
		Short: "Score files without the interactive UI",
		Long: `Select each file in turn, run detection and print the results.

Progress is drawn on stderr when it is a terminal. Results go to stdout in the
format chosen with --output, or to --output-file.

Examples:
  aidetect score report.pdf
  aidetect score --output json essay.txt notes.doc
  aidetect score --seed 42 --output csv --output-file scores.csv *.pdf`,
		Args: cobra.MinimumNArgs(1),
		RunE: runScore,
	}

	cmd.Flags().StringVar(&scoreOutputFile, "output-file", "", "save output to file instead of stdout")
	cmd.Flags().BoolVar(&scoreNoProgress, "no-progress", false, "do not draw a progress bar")

	return cmd
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()
	stderr := cmd.ErrOrStderr()
	log := logger.NewWithWriter("score", logger.StaticVerbose(cfg.Log.Verbose), stderr)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scorer := &fileScorer{
		session:  newSession(cfg),
		detector: detect.NewSimulatedDetector(cfg.Detection.Delay, cfg.Detection.Seed),
		runner:   detect.NewRunner(cfg.Detection.TickInterval),
		log:      log,
	}
	if showProgress(cfg, stderr) {
		scorer.progress = stderr
	}

	outcomes := scorer.ScoreAll(ctx, args)

	output, err := formatOutcomes(cfg, outcomes, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if err := writeOutput(output, scoreOutputFile, cmd.OutOrStdout()); err != nil {
		return err
	}

	failed := 0
	for _, o := range outcomes {
		if o.Failed() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be scored", failed, len(outcomes))
	}
	return nil
}

// fileScorer runs detection for files one at a time on a shared session
type fileScorer struct {
	session  *detect.Session
	detector detect.Detector
	runner   *detect.Runner
	log      *logger.Logger
	progress io.Writer
}

// ScoreAll scores every path and returns one outcome per path
func (s *fileScorer) ScoreAll(ctx context.Context, paths []string) []formatter.Outcome {
	outcomes := make([]formatter.Outcome, 0, len(paths))
	for _, path := range paths {
		outcomes = append(outcomes, s.Score(ctx, path))
	}
	return outcomes
}

// Score selects a single file and runs detection on it
func (s *fileScorer) Score(ctx context.Context, path string) formatter.Outcome {
	file, err := detect.StatFile(path)
	if err != nil {
		s.log.ErrorWithFields("cannot read file", []logger.Field{logger.File(path), logger.Error(err)})
		return formatter.Outcome{
			File:  detect.SelectedFile{Path: path, Name: filepath.Base(path)},
			Error: err.Error(),
		}
	}

	if err := s.session.Select(file); err != nil {
		s.log.Warn("%s rejected: %v", file.Name, err)
		return formatter.Outcome{File: *file, Error: userMessage(err)}
	}

	bar := s.newBar(file.Name)
	result, err := s.runner.Run(ctx, s.session, s.detector, bar)
	s.endBar()
	if err != nil {
		s.log.ErrorWithFields("detection failed", []logger.Field{logger.File(file.Name), logger.Error(err)})
		return formatter.Outcome{File: *file, Error: userMessage(err)}
	}

	s.log.InfoWithFields("detection finished", []logger.Field{
		logger.File(file.Name),
		logger.RunID(result.ID),
		logger.F("probability", result.Probability.Percent()),
		logger.Duration(result.Duration()),
	})
	return formatter.Outcome{File: *file, Result: result}
}

// newBar returns a progress callback drawing on the progress writer
func (s *fileScorer) newBar(name string) detect.ProgressFunc {
	if s.progress == nil {
		return nil
	}

	bar := components.NewProgressBar(30, nil)
	bar.SetLabel(name)
	return func(progress int) {
		fmt.Fprint(s.progress, "\r"+bar.Render(progress))
	}
}

// endBar erases the progress line
func (s *fileScorer) endBar() {
	if s.progress != nil {
		fmt.Fprint(s.progress, "\r\x1b[2K")
	}
}

// showProgress reports whether progress can be drawn on w
func showProgress(cfg *config.Config, w io.Writer) bool {
	if scoreNoProgress || !cfg.Output.ShowProgress {
		return false
	}
	return isTerminal(w)
}

// isTerminal reports whether w is a terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// formatOutcomes renders outcomes in the configured format
func formatOutcomes(cfg *config.Config, outcomes []formatter.Outcome, stdout io.Writer) ([]byte, error) {
	color := cfg.UI.ColorMode == "always" ||
		(cfg.UI.ColorMode != "never" && scoreOutputFile == "" && isTerminal(stdout))

	var f formatter.Formatter
	if cfg.Output.DefaultFormat == "" || cfg.Output.DefaultFormat == "text" {
		f = formatter.NewTerminalWithOptions(color, cfg.UI.Emoji)
	} else {
		var err error
		f, err = formatter.New(cfg.Output.DefaultFormat, color)
		if err != nil {
			return nil, err
		}
	}

	output, err := f.Format(outcomes)
	if err != nil {
		return nil, fmt.Errorf("failed to format output: %w", err)
	}
	return output, nil
}

// writeOutput writes to the output file, or to stdout when path is empty
func writeOutput(output []byte, path string, stdout io.Writer) error {
	if path == "" {
		_, err := stdout.Write(output)
		return err
	}

	if err := os.WriteFile(config.ExpandPath(path), output, 0o600); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// userMessage returns the message a user should see for err
func userMessage(err error) string {
	var detectErr *detect.Error
	if errors.As(err, &detectErr) && detectErr.Message != "" {
		return detectErr.Message
	}
	return err.Error()
}
