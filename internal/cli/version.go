package cli

import (
	"fmt"
	"runtime"

	"github.com/ariel-frischer/folio/internal/build"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information",
	Long:    "Display version, commit, build date and Go runtime information for folio",
	GroupID: GroupConfiguration,
	Args:    maxArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if plain, _ := cmd.Flags().GetBool("plain"); plain {
			fmt.Fprintln(out, build.Version)
			return nil
		}
		if build.IsDevBuild() {
			fmt.Fprintf(out, "folio %s (development build)\n", build.Version)
		} else {
			fmt.Fprintf(out, "folio %s\n", build.Version)
		}
		fmt.Fprintf(out, "  Commit:     %s\n", build.Commit)
		fmt.Fprintf(out, "  Built:      %s\n", build.BuildDate)
		fmt.Fprintf(out, "  Go version: %s\n", runtime.Version())
		fmt.Fprintf(out, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
		return nil
	},
}

func init() {
	addVersionFlags(versionCmd.Flags())
	rootCmd.AddCommand(versionCmd)
}

func addVersionFlags(flags *pflag.FlagSet) {
	flags.Bool("plain", false, "Print only the version number")
}
