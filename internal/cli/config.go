package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/ariel-frischer/folio/internal/config"
	apperrors "github.com/ariel-frischer/folio/internal/errors"
	"github.com/knadh/koanf/maps"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect folio configuration",
	Long: `Inspect folio configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (FOLIO_*, nested keys joined with __)
  2. Site config (folio.yaml in the site root, or --config)
  3. User config (~/.config/folio/config.yaml)
  4. Built-in defaults`,
	Example: `  # Show the effective configuration of the current site
  folio config show

  # Show it as JSON
  folio config show --json

  # List every key
  folio config keys

  # Override a key from the environment
  FOLIO_MIN_WORDS__PROJECT=40 folio validate`,
	GroupID: GroupConfiguration,
}

var configShowCmd = &cobra.Command{
	Use:   "show [dir]",
	Short: "Show current effective configuration",
	Long: `Display the effective configuration of the site rooted at dir (default ".").

Shows the merged result of defaults, user config, site config and
environment variables, plus the resolved directories.`,
	Args: maxArgs(1),
	RunE: runConfigShow,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List all configuration keys",
	Args:  maxArgs(0),
	RunE:  runConfigKeys,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configKeysCmd)

	addConfigShowFlags(configShowCmd.Flags())
}

func addConfigShowFlags(flags *pflag.FlagSet) {
	flags.Bool("json", false, "Output in JSON format")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	useJSON, _ := cmd.Flags().GetBool("json")
	configPath, _ := cmd.Flags().GetString("config")
	root := siteRootArg(args)

	cfg, err := config.Load(root, configPath)
	if err != nil {
		return apperrors.ConfigLoadFailed(err)
	}
	paths, err := cfg.Resolve(root)
	if err != nil {
		return apperrors.ConfigLoadFailed(err)
	}

	localPath := configPath
	if localPath != "" && !filepath.IsAbs(localPath) {
		localPath = filepath.Join(paths.Root, localPath)
	}

	fmt.Fprintf(out, "# Configuration Sources\n")
	fmt.Fprintf(out, "# User config: %s\n", config.GlobalConfigPath())
	fmt.Fprintf(out, "# Site config: %s\n", localPath)
	fmt.Fprintf(out, "# Content:     %s\n", paths.Content)
	fmt.Fprintf(out, "# Assets:      %s\n", paths.Assets)
	fmt.Fprintf(out, "# Output:      %s\n", paths.Output)
	fmt.Fprintf(out, "\n")

	configMap := maps.Unflatten(cfg.Values(), ".")

	if useJSON {
		data, err := json.MarshalIndent(configMap, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to serialize config: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	data, err := yaml.Marshal(configMap)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	fmt.Fprint(out, string(data))
	return nil
}

func runConfigKeys(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	defaults := config.GetDefaults()

	fmt.Fprintln(out, "Available configuration keys:")
	fmt.Fprintln(out)

	for _, key := range config.SortedKeys() {
		schema := config.KnownKeys[key]
		fmt.Fprintf(out, "  %-28s %-8s default: %v\n", key, schema.Type, defaults[key])
		fmt.Fprintf(out, "    %s\n", schema.Description)
		fmt.Fprintln(out)
	}

	return nil
}
