package cli

import (
	apperrors "github.com/ariel-frischer/folio/internal/errors"
	"github.com/ariel-frischer/folio/internal/report"
	"github.com/ariel-frischer/folio/internal/score"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var scoreCmd = &cobra.Command{
	Use:   "score [dir]",
	Short: "Show the portfolio completeness score",
	Long: `Compute the completeness score of the site rooted at dir (default ".").

Points are awarded for profile fields, skill categories, and the number of
projects, publications, positions and education entries. Files that fail to
parse do not count. Suggestions list the most valuable additions first.`,
	Example: `  folio score
  folio score --verbose
  folio score --format json`,
	GroupID: GroupContent,
	Args:    maxArgs(1),
	RunE:    runScore,
}

func init() {
	addScoreFlags(scoreCmd.Flags())
	rootCmd.AddCommand(scoreCmd)
}

func addScoreFlags(flags *pflag.FlagSet) {
	flags.String("format", "text", "Output format: text or json")
}

func runScore(cmd *cobra.Command, args []string) error {
	formatValue, _ := cmd.Flags().GetString("format")
	format, err := report.ParseFormat(formatValue)
	if err != nil {
		return apperrors.InvalidFormat(formatValue)
	}
	verbose, _ := cmd.Flags().GetBool("verbose")

	s, err := openSession(cmd, args)
	if err != nil {
		return err
	}

	result := score.Score(s.site.Portfolio())
	if format == report.FormatJSON {
		return report.PrintScoreJSON(cmd.OutOrStdout(), result)
	}
	report.PrintScore(cmd.OutOrStdout(), result, report.TextOptions{Verbose: verbose})
	return nil
}
