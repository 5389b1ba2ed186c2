// Package config loads folio configuration from defaults, a global config
// file, a site-local config file and FOLIO_ environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ariel-frischer/folio/internal/content"
	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix for environment overrides.
// FOLIO_MIN_SCORE -> min_score, FOLIO_MIN_WORDS__PROFILE -> min_words.profile
const EnvPrefix = "FOLIO_"

// DefaultConfigFile is the site-local config file name.
const DefaultConfigFile = "folio.yaml"

// MinWords holds the per-type body length below which a warning is reported.
type MinWords struct {
	Profile     int `koanf:"profile" validate:"min=0,max=5000"`
	Project     int `koanf:"project" validate:"min=0,max=5000"`
	Publication int `koanf:"publication" validate:"min=0,max=5000"`
	Experience  int `koanf:"experience" validate:"min=0,max=5000"`
	Education   int `koanf:"education" validate:"min=0,max=5000"`
}

// Configuration represents the folio configuration
type Configuration struct {
	ContentDir      string   `koanf:"content_dir" validate:"required"`
	AssetsDir       string   `koanf:"assets_dir" validate:"required"`
	OutputDir       string   `koanf:"output_dir" validate:"required"`
	SiteTitle       string   `koanf:"site_title"`
	BaseURL         string   `koanf:"base_url" validate:"omitempty,http_url"`
	Strict          bool     `koanf:"strict"`    // Treat warnings as failures
	MinScore        int      `koanf:"min_score" validate:"min=0,max=100"`
	WatchDebounceMS int      `koanf:"watch_debounce_ms" validate:"min=50,max=10000"`
	MinWords        MinWords `koanf:"min_words"`
}

// Load loads configuration for the site rooted at root.
// Priority: Environment variables > Local config > Global config > Defaults
// A relative localConfigPath is resolved against root; a missing file is not
// an error.
func Load(root, localConfigPath string) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to apply default %s: %w", key, err)
		}
	}

	if globalPath := GlobalConfigPath(); globalPath != "" {
		if err := loadFile(k, globalPath); err != nil {
			return nil, fmt.Errorf("failed to load global config: %w", err)
		}
	}

	if localConfigPath != "" {
		if !filepath.IsAbs(localConfigPath) {
			localConfigPath = filepath.Join(root, localConfigPath)
		}
		if err := loadFile(k, localConfigPath); err != nil {
			return nil, fmt.Errorf("failed to load local config: %w", err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFile merges a JSON or YAML config file into k when it exists. YAML files
// are syntax-checked first so errors carry line numbers.
func loadFile(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return k.Load(file.Provider(path), json.Parser())
	}

	if err := ValidateYAMLSyntax(path); err != nil {
		return err
	}
	return k.Load(file.Provider(path), yaml.Parser())
}

// GlobalConfigPath returns the per-user config file path, or "" when the
// user config directory cannot be determined.
func GlobalConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "folio", "config.yaml")
}

// envTransform converts environment variable names to config keys
// Example: FOLIO_MIN_WORDS__PROJECT -> min_words.project
func envTransform(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// Paths holds resolved absolute directories for a site.
type Paths struct {
	Root    string
	Content string
	Assets  string
	Output  string
}

// Resolve joins the configured directories onto root.
func (c *Configuration) Resolve(root string) (Paths, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return Paths{}, fmt.Errorf("resolving site root: %w", err)
	}
	return Paths{
		Root:    abs,
		Content: resolveDir(abs, c.ContentDir),
		Assets:  resolveDir(abs, c.AssetsDir),
		Output:  resolveDir(abs, c.OutputDir),
	}, nil
}

// MinWordsByType returns the short-content thresholds keyed by content type.
func (c *Configuration) MinWordsByType() map[content.Type]int {
	return map[content.Type]int{
		content.TypeProfile:     c.MinWords.Profile,
		content.TypeProject:     c.MinWords.Project,
		content.TypePublication: c.MinWords.Publication,
		content.TypeExperience:  c.MinWords.Experience,
		content.TypeEducation:   c.MinWords.Education,
	}
}

func resolveDir(root, dir string) string {
	dir = expandHomePath(dir)
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(root, dir)
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
