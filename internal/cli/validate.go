package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	apperrors "github.com/ariel-frischer/folio/internal/errors"
	"github.com/ariel-frischer/folio/internal/report"
	"github.com/ariel-frischer/folio/internal/watch"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

var validateCmd = &cobra.Command{
	Use:     "validate [dir]",
	Aliases: []string{"check"},
	Short:   "Validate portfolio content",
	Long: `Validate every content file of the site rooted at dir (default ".").

Each file is checked against the schema for its type. Asset references
(avatar, resume, project images, publication PDFs) must exist under the site
root. Short bodies, missing optional collections and duplicate titles are
reported as warnings. A completeness score and suggestions follow the report.

Exit codes:
  0 - Content is valid
  1 - Validation failed (errors, warnings with --strict, or score below --min-score)
  3 - Invalid arguments or configuration
  4 - Content directory not found

With --watch the report is reprinted after every change; validation results
never end the process, Ctrl+C does.`,
	Example: `  # Validate the current directory
  folio validate

  # Validate another site as JSON
  folio validate ~/sites/portfolio --format json

  # Treat warnings as failures
  folio validate --strict

  # Re-validate on change
  folio validate -w`,
	GroupID: GroupContent,
	Args:    maxArgs(1),
	RunE:    runValidate,
}

func init() {
	addValidateFlags(validateCmd.Flags())
	rootCmd.AddCommand(validateCmd)
}

func addValidateFlags(flags *pflag.FlagSet) {
	flags.BoolP("watch", "w", false, "Re-validate whenever content or assets change")
	flags.String("format", "text", "Output format: text or json")
	flags.Bool("strict", false, "Fail on warnings (also enabled by strict: true in config)")
	flags.Int("min-score", 0, "Fail when the completeness score is below this percentage (0 disables)")
}

type validateOptions struct {
	format   report.Format
	strict   bool
	minScore int
	verbose  bool
	watch    bool
}

func runValidate(cmd *cobra.Command, args []string) error {
	opts, err := validateFlags(cmd)
	if err != nil {
		return err
	}

	s, err := openSession(cmd, args)
	if err != nil {
		return err
	}
	opts.strict = opts.strict || s.cfg.Strict
	if !cmd.Flags().Changed("min-score") {
		opts.minScore = s.cfg.MinScore
	}

	if opts.watch {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		return watchSite(ctx, cmd.OutOrStdout(), s, opts)
	}
	return validateOnce(cmd.OutOrStdout(), s, opts)
}

func validateFlags(cmd *cobra.Command) (validateOptions, error) {
	var opts validateOptions

	formatValue, _ := cmd.Flags().GetString("format")
	format, err := report.ParseFormat(formatValue)
	if err != nil {
		return opts, apperrors.InvalidFormat(formatValue)
	}
	opts.format = format

	opts.minScore, _ = cmd.Flags().GetInt("min-score")
	if opts.minScore < 0 || opts.minScore > 100 {
		return opts, apperrors.NewArgumentErrorWithUsage(
			fmt.Sprintf("--min-score must be between 0 and 100, got %d", opts.minScore),
			"folio validate --min-score N",
		)
	}

	opts.strict, _ = cmd.Flags().GetBool("strict")
	opts.watch, _ = cmd.Flags().GetBool("watch")
	opts.verbose, _ = cmd.Flags().GetBool("verbose")
	return opts, nil
}

// validateOnce prints one report and turns a failed report into exit code 1.
func validateOnce(w io.Writer, s *session, opts validateOptions) error {
	r := s.check(opts.strict, opts.minScore)
	if err := report.Print(w, r, opts.format, report.TextOptions{Verbose: opts.verbose}); err != nil {
		return err
	}
	if !r.Passed() {
		return NewExitError(ExitValidationFailed)
	}
	return nil
}

// watchSite prints a report, then reloads and reprints after every settled
// change until ctx is cancelled.
func watchSite(ctx context.Context, w io.Writer, s *session, opts validateOptions) error {
	text := opts.format == report.FormatText
	cyan := color.New(color.FgCyan).SprintFunc()

	printPass := func() {
		r := s.check(opts.strict, opts.minScore)
		if err := report.Print(w, r, opts.format, report.TextOptions{Verbose: opts.verbose}); err != nil {
			logger.Warn("failed to print report", zap.Error(err))
		}
	}

	printPass()

	watcher, err := watch.New(watch.Options{
		ContentDir: s.paths.Content,
		AssetsDir:  s.paths.Assets,
		Debounce:   time.Duration(s.cfg.WatchDebounceMS) * time.Millisecond,
		Logger:     logger,
	}, func(paths []string) {
		if text {
			fmt.Fprintf(w, "\n%s %s\n\n", cyan("Change detected:"), describeChanges(s.paths.Root, paths))
		}
		if err := s.reload(); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return
		}
		printPass()
	})
	if err != nil {
		return apperrors.Wrap(err, apperrors.Runtime)
	}
	if err := watcher.Start(ctx); err != nil {
		return apperrors.Wrap(err, apperrors.Runtime)
	}
	defer watcher.Stop()

	if text {
		fmt.Fprintf(w, "\nWatching %s for changes (Ctrl+C to stop)\n", s.paths.Content)
	}
	<-watcher.Done()

	stats := watcher.Stats()
	logger.Info("watch stopped", zap.Int("events", stats.Events), zap.Int("revalidations", stats.Triggers))
	return nil
}

// describeChanges lists changed paths relative to root, capped at three.
func describeChanges(root string, paths []string) string {
	const shown = 3
	names := make([]string, 0, shown)
	for i, p := range paths {
		if i == shown {
			break
		}
		if rel, err := filepath.Rel(root, p); err == nil {
			p = rel
		}
		names = append(names, filepath.ToSlash(p))
	}
	out := strings.Join(names, ", ")
	if extra := len(paths) - shown; extra > 0 {
		out += fmt.Sprintf(" and %d more", extra)
	}
	return out
}
