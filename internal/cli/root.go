// folio - Portfolio content validator and static site generator
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/folio

// Package cli provides the Cobra-based commands of folio: content checks
// (validate, score, schema), site generation (build), and configuration and
// version information.
package cli

import (
	"fmt"
	"io"
	"os"

	apperrors "github.com/ariel-frischer/folio/internal/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// Command group IDs for organizing help output
const (
	GroupContent       = "content"
	GroupSite          = "site"
	GroupConfiguration = "configuration"
)

// logger is replaced by the root command before any subcommand runs.
var logger = zap.NewNop()

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Portfolio content validator and static site generator",
	Long: `folio validates portfolio content and renders it into a static site.

Content lives in a content directory: profile.md, skills.yaml and Markdown
files under projects/, publications/, experience/ and education/. Each file is
checked against the schema for its type, asset references are resolved
against the site root, and a completeness score suggests what to add next.`,
	Example: `  # Validate the site in the current directory
  folio validate

  # Re-validate on every change
  folio validate --watch

  # Fail CI on warnings or below 70% completeness
  folio validate --strict --min-score 70

  # Show the expected fields of a project file
  folio schema project

  # Render the site into ./public
  folio build`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
			color.NoColor = true
		}

		debug, _ := cmd.Flags().GetBool("debug")
		verbose, _ := cmd.Flags().GetBool("verbose")
		logger = newLogger(cmd.ErrOrStderr(), debug, verbose)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the root command, prints any error and returns the process
// exit code.
func Execute() int {
	err := rootCmd.Execute()
	if err != nil {
		printCommandError(os.Stderr, err)
	}
	return ExitCode(err)
}

func printCommandError(w io.Writer, err error) {
	switch {
	case isExitError(err):
		// Already reported by the command.
	case apperrors.IsCLIError(err):
		apperrors.FprintError(w, apperrors.AsCLIError(err))
	default:
		fmt.Fprintf(w, "Error: %v\n", err)
	}
}

func init() {
	rootCmd.AddGroup(&cobra.Group{ID: GroupContent, Title: "Content:"})
	rootCmd.AddGroup(&cobra.Group{ID: GroupSite, Title: "Site:"})
	rootCmd.AddGroup(&cobra.Group{ID: GroupConfiguration, Title: "Configuration:"})

	rootCmd.SetHelpCommandGroupID(GroupConfiguration)
	rootCmd.SetCompletionCommandGroupID(GroupConfiguration)

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return apperrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine(),
			fmt.Sprintf("Run '%s --help' for usage", cmd.CommandPath()))
	})

	addGlobalFlags(rootCmd.PersistentFlags())
}

func addGlobalFlags(flags *pflag.FlagSet) {
	flags.StringP("config", "c", "folio.yaml", "Path to config file, relative to the site root")
	flags.BoolP("debug", "d", false, "Enable debug logging")
	flags.BoolP("verbose", "v", false, "Enable verbose output")
	flags.Bool("no-color", false, "Disable colored output")
}

// siteRootArg returns the site root argument, defaulting to ".".
func siteRootArg(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return "."
}

// maxArgs is cobra.MaximumNArgs reported as an argument error.
func maxArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > n {
			return apperrors.NewArgumentErrorWithUsage(
				fmt.Sprintf("accepts at most %d arg(s), received %d", n, len(args)),
				cmd.UseLine(),
			)
		}
		return nil
	}
}
