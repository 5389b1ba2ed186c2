package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ariel-frischer/folio/internal/build"
	apperrors "github.com/ariel-frischer/folio/internal/errors"
	"github.com/ariel-frischer/folio/internal/progress"
	"github.com/ariel-frischer/folio/internal/report"
	"github.com/ariel-frischer/folio/internal/site"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// totalBuildStages covers loading, validation and the two site stages.
const totalBuildStages = 4

var buildCmd = &cobra.Command{
	Use:   "build [dir]",
	Short: "Validate content and render the static site",
	Long: `Validate the site rooted at dir (default "."), then render index.html and
copy the assets directory into the output directory.

The build is refused when validation reports any error; warnings do not
block it. The output directory defaults to output_dir from the config.`,
	Example: `  folio build
  folio build ~/sites/portfolio --out /tmp/preview`,
	GroupID: GroupSite,
	Args:    maxArgs(1),
	RunE:    runBuild,
}

func init() {
	addBuildFlags(buildCmd.Flags())
	rootCmd.AddCommand(buildCmd)
}

func addBuildFlags(flags *pflag.FlagSet) {
	flags.StringP("out", "o", "", "Output directory (overrides output_dir)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	display := newProgress(out)

	var s *session
	err := progress.Run(display, progress.StageInfo{Name: "load content", Number: 1, TotalStages: totalBuildStages}, func() (string, error) {
		var err error
		if s, err = openSession(cmd, args); err != nil {
			return "", err
		}
		return fmt.Sprintf("%d file(s)", len(s.site.Documents)+len(s.site.Failures)), nil
	})
	if err != nil {
		return err
	}

	var r *report.Report
	err = progress.Run(display, progress.StageInfo{Name: "validate", Number: 2, TotalStages: totalBuildStages}, func() (string, error) {
		r = s.check(false, 0)
		if n := r.ErrorCount(); n > 0 {
			return "", apperrors.ValidationBlocksBuild(n)
		}
		return fmt.Sprintf("%d warning(s)", r.WarningCount()), nil
	})
	if err != nil {
		if r != nil {
			fmt.Fprintln(out)
			report.PrintText(out, r, report.TextOptions{})
		}
		return err
	}

	outputDir := s.paths.Output
	if flagOut, _ := cmd.Flags().GetString("out"); flagOut != "" {
		if outputDir, err = filepath.Abs(flagOut); err != nil {
			return apperrors.NewArgumentError(fmt.Sprintf("invalid --out path: %v", err))
		}
	}

	result, err := site.Build(s.site.Portfolio(), site.Options{
		RenderOptions: site.RenderOptions{
			Title:   s.cfg.SiteTitle,
			BaseURL: s.cfg.BaseURL,
			Version: build.Version,
		},
		Root:        s.paths.Root,
		AssetsDir:   s.paths.Assets,
		OutputDir:   outputDir,
		Logger:      logger,
		Progress:    display,
		FirstStage:  3,
		TotalStages: totalBuildStages,
	})
	if err != nil {
		return apperrors.Wrap(err, apperrors.Runtime)
	}

	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(out, "\n%s Site written to %s\n", green("✓"), result.Dir)
	return nil
}

// newProgress returns a stage display for w, with a spinner only when w is
// a terminal.
func newProgress(w io.Writer) *progress.ProgressDisplay {
	var caps progress.TerminalCapabilities
	if f, ok := w.(*os.File); ok {
		caps = progress.DetectTerminalCapabilities(f)
	}
	if color.NoColor {
		caps.SupportsColor = false
	}
	return progress.NewProgressDisplay(w, caps)
}
