package config

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"content_dir":           "content",
		"assets_dir":            "assets",
		"output_dir":            "public",
		"site_title":            "",
		"base_url":              "",
		"strict":                false,
		"min_score":             0,
		"watch_debounce_ms":     300,
		"min_words.profile":     20,
		"min_words.project":     15,
		"min_words.publication": 0,
		"min_words.experience":  0,
		"min_words.education":   0,
	}
}
