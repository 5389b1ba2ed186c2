package config

import (
	"fmt"
	"sort"
)

// ConfigValueType defines the expected type for a configuration value.
type ConfigValueType int

const (
	TypeBool ConfigValueType = iota
	TypeInt
	TypeString
)

// String returns the string representation of ConfigValueType.
func (t ConfigValueType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeString:
		return "string"
	default:
		return "unknown"
	}
}

// ConfigKeySchema defines a known configuration key with its expected type.
type ConfigKeySchema struct {
	Path        string          // Dotted key path (e.g., "min_words.profile")
	Type        ConfigValueType // Expected value type
	Description string          // Human-readable description for help text
}

// KnownKeys is the registry of all known configuration keys.
var KnownKeys = map[string]ConfigKeySchema{
	"content_dir":           {Path: "content_dir", Type: TypeString, Description: "Content directory, relative to the site root"},
	"assets_dir":            {Path: "assets_dir", Type: TypeString, Description: "Assets directory copied into the built site"},
	"output_dir":            {Path: "output_dir", Type: TypeString, Description: "Build output directory"},
	"site_title":            {Path: "site_title", Type: TypeString, Description: "Page title; defaults to the profile name"},
	"base_url":              {Path: "base_url", Type: TypeString, Description: "Absolute URL the site is served from"},
	"strict":                {Path: "strict", Type: TypeBool, Description: "Fail validation on warnings"},
	"min_score":             {Path: "min_score", Type: TypeInt, Description: "Fail validation below this completeness score (0 disables)"},
	"watch_debounce_ms":     {Path: "watch_debounce_ms", Type: TypeInt, Description: "Quiet period before revalidating in watch mode"},
	"min_words.profile":     {Path: "min_words.profile", Type: TypeInt, Description: "Short-content threshold for the profile bio"},
	"min_words.project":     {Path: "min_words.project", Type: TypeInt, Description: "Short-content threshold for project write-ups"},
	"min_words.publication": {Path: "min_words.publication", Type: TypeInt, Description: "Short-content threshold for publication abstracts"},
	"min_words.experience":  {Path: "min_words.experience", Type: TypeInt, Description: "Short-content threshold for experience entries"},
	"min_words.education":   {Path: "min_words.education", Type: TypeInt, Description: "Short-content threshold for education entries"},
}

// GetKeySchema returns the schema for a key.
func GetKeySchema(key string) (ConfigKeySchema, error) {
	schema, ok := KnownKeys[key]
	if !ok {
		return ConfigKeySchema{}, fmt.Errorf("unknown configuration key: %q", key)
	}
	return schema, nil
}

// SortedKeys returns all known keys in lexical order.
func SortedKeys() []string {
	keys := make([]string, 0, len(KnownKeys))
	for k := range KnownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Values flattens the configuration into the dotted keys of KnownKeys.
func (c *Configuration) Values() map[string]interface{} {
	return map[string]interface{}{
		"content_dir":           c.ContentDir,
		"assets_dir":            c.AssetsDir,
		"output_dir":            c.OutputDir,
		"site_title":            c.SiteTitle,
		"base_url":              c.BaseURL,
		"strict":                c.Strict,
		"min_score":             c.MinScore,
		"watch_debounce_ms":     c.WatchDebounceMS,
		"min_words.profile":     c.MinWords.Profile,
		"min_words.project":     c.MinWords.Project,
		"min_words.publication": c.MinWords.Publication,
		"min_words.experience":  c.MinWords.Experience,
		"min_words.education":   c.MinWords.Education,
	}
}
