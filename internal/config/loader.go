package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "AIDETECT_"

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.aidetect.yaml",               // Project-specific config (highest priority)
	"~/.config/aidetect/config.yaml", // User config
	"/etc/aidetect/config.yaml",      // System config (lowest priority)
}

// Warner receives non-fatal loading problems
type Warner interface {
	Warn(msg string, args ...interface{})
}

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
	warner      Warner
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths,
	}
}

// WithWarner reports skipped config files through w
func (l *Loader) WithWarner(w Warner) *Loader {
	l.warner = w
	return l
}

// LoadConfig loads configuration from multiple sources with priority order:
// 1. Command line flags (handled by caller)
// 2. Environment variables
// 3. ./.aidetect.yaml
// 4. ~/.config/aidetect/config.yaml
// 5. /etc/aidetect/config.yaml
// 6. Built-in defaults
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	config := DefaultConfig()

	if customPath != "" {
		if err := validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		if err := l.loadFromFile(config, customPath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else {
		// Lowest priority first so later files win
		for i := len(l.configPaths) - 1; i >= 0; i-- {
			expandedPath := expandPath(l.configPaths[i])
			if !fileExists(expandedPath) {
				continue
			}
			if err := l.loadFromFile(config, expandedPath); err != nil {
				l.warn("Failed to load config from %s: %v", expandedPath, err)
			}
		}
	}

	if err := l.applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadFromFile decodes a YAML file on top of the existing config.
// Keys absent from the file keep their current values.
func (l *Loader) loadFromFile(config *Config, path string) error {
	// #nosec G304 - path is validated by validateConfigPath() or comes from ConfigPaths
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	merged := *config
	if err := yaml.Unmarshal(data, &merged); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	*config = merged
	return nil
}

func (l *Loader) warn(msg string, args ...interface{}) {
	if l.warner != nil {
		l.warner.Warn(msg, args...)
		return
	}
	fmt.Fprintf(os.Stderr, "Warning: "+msg+"\n", args...)
}

// applyEnvOverrides applies environment variable overrides to the config
func (l *Loader) applyEnvOverrides(config *Config) error {
	envMappings := map[string]func(string) error{
		// Detection Config
		"AIDETECT_DETECTION_DELAY":         func(v string) error { return parseDuration(v, &config.Detection.Delay) },
		"AIDETECT_DETECTION_TICK_INTERVAL": func(v string) error { return parseDuration(v, &config.Detection.TickInterval) },
		"AIDETECT_DETECTION_TICK_STEP":     func(v string) error { return parseInt(v, &config.Detection.TickStep) },
		"AIDETECT_DETECTION_SEED":          func(v string) error { return parseUint(v, &config.Detection.Seed) },

		// Validation Config
		"AIDETECT_VALIDATION_ENFORCE":        func(v string) error { return parseBool(v, &config.Validation.Enforce) },
		"AIDETECT_VALIDATION_MAX_SIZE_BYTES": func(v string) error { return parseInt64(v, &config.Validation.MaxSizeBytes) },

		// UI Config
		"AIDETECT_UI_THEME":       func(v string) error { config.UI.Theme = v; return nil },
		"AIDETECT_UI_START_DIR":   func(v string) error { config.UI.StartDir = v; return nil },
		"AIDETECT_UI_SHOW_HIDDEN": func(v string) error { return parseBool(v, &config.UI.ShowHidden) },
		"AIDETECT_UI_WATCH_DIR":   func(v string) error { return parseBool(v, &config.UI.WatchDir) },
		"AIDETECT_UI_COLOR_MODE":  func(v string) error { config.UI.ColorMode = v; return nil },
		"AIDETECT_UI_EMOJI":       func(v string) error { return parseBool(v, &config.UI.Emoji) },

		// Output Config
		"AIDETECT_OUTPUT_DEFAULT_FORMAT": func(v string) error { config.Output.DefaultFormat = v; return nil },
		"AIDETECT_OUTPUT_SHOW_PROGRESS":  func(v string) error { return parseBool(v, &config.Output.ShowProgress) },

		// Log Config
		"AIDETECT_LOG_FILE":    func(v string) error { config.Log.File = v; return nil },
		"AIDETECT_LOG_VERBOSE": func(v string) error { return parseBool(v, &config.Log.Verbose) },
	}

	for envVar, setter := range envMappings {
		if value := os.Getenv(envVar); value != "" {
			if err := setter(value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar, err)
			}
		}
	}

	// Comma-separated lists
	if exts := os.Getenv(EnvPrefix + "VALIDATION_EXTENSIONS"); exts != "" {
		config.Validation.Extensions = splitList(exts)
	}
	if types := os.Getenv(EnvPrefix + "VALIDATION_MIME_TYPES"); types != "" {
		config.Validation.MIMETypes = splitList(types)
	}

	return nil
}

// GetConfigPaths returns the list of configuration file paths that will be searched
func GetConfigPaths() []string {
	paths := make([]string, 0, len(ConfigPaths))
	for _, path := range ConfigPaths {
		paths = append(paths, expandPath(path))
	}
	return paths
}

// FindConfigFile finds the first existing config file in the search paths
func FindConfigFile() (string, bool) {
	for _, path := range ConfigPaths {
		expandedPath := expandPath(path)
		if fileExists(expandedPath) {
			return expandedPath, true
		}
	}
	return "", false
}

// Helper functions

// validateConfigPath validates that a config path is safe to read
func validateConfigPath(path string) error {
	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("config file must have .yaml or .yml extension")
	}

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if strings.HasPrefix(absPath, "/proc/") || strings.HasPrefix(absPath, "/sys/") {
		return fmt.Errorf("access to system files not allowed")
	}

	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// ExpandPath expands ~ to the home directory
func ExpandPath(path string) string {
	return expandPath(path)
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Type conversion helpers

func parseInt(s string, dst *int) error {
	val, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseInt64(s string, dst *int64) error {
	val, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseUint(s string, dst *uint64) error {
	val, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseBool(s string, dst *bool) error {
	val, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseDuration(s string, dst *time.Duration) error {
	val, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}
