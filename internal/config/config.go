package config

import (
	"fmt"
	"time"

	"github.com/yildizm/aidetect/internal/detect"
)

// Config holds the complete application configuration
type Config struct {
	Version    string           `yaml:"version" json:"version"`
	Detection  DetectionConfig  `yaml:"detection" json:"detection"`
	Validation ValidationConfig `yaml:"validation" json:"validation"`
	UI         UIConfig         `yaml:"ui" json:"ui"`
	Output     OutputConfig     `yaml:"output" json:"output"`
	Log        LogConfig        `yaml:"log" json:"log"`
}

// DetectionConfig configures the simulated detection run
type DetectionConfig struct {
	Delay        time.Duration `yaml:"delay" json:"delay"`                 // simulated analysis time
	TickInterval time.Duration `yaml:"tick_interval" json:"tick_interval"` // progress timer period
	TickStep     int           `yaml:"tick_step" json:"tick_step"`         // percent added per tick
	Seed         uint64        `yaml:"seed" json:"seed"`                   // 0 = random
}

// ValidationConfig configures which files may be selected
type ValidationConfig struct {
	Enforce      bool     `yaml:"enforce" json:"enforce"`
	Extensions   []string `yaml:"extensions" json:"extensions"`
	MIMETypes    []string `yaml:"mime_types" json:"mime_types"`
	MaxSizeBytes int64    `yaml:"max_size_bytes" json:"max_size_bytes"`
}

// UIConfig configures the interactive terminal UI
type UIConfig struct {
	Theme      string `yaml:"theme" json:"theme"`             // default|high-contrast|minimal
	StartDir   string `yaml:"start_dir" json:"start_dir"`     // initial picker directory
	ShowHidden bool   `yaml:"show_hidden" json:"show_hidden"` // list dotfiles in the picker
	WatchDir   bool   `yaml:"watch_dir" json:"watch_dir"`     // refresh listing on file system changes
	ColorMode  string `yaml:"color_mode" json:"color_mode"`   // auto|always|never
	Emoji      bool   `yaml:"emoji" json:"emoji"`
}

// OutputConfig configures headless output
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // text|json|markdown|csv
	ShowProgress  bool   `yaml:"show_progress" json:"show_progress"`
}

// LogConfig configures diagnostic logging
type LogConfig struct {
	File    string `yaml:"file" json:"file"`
	Verbose bool   `yaml:"verbose" json:"verbose"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	rules := detect.DefaultRules()

	return &Config{
		Version: "1.0",
		Detection: DetectionConfig{
			Delay:        detect.DefaultDelay,
			TickInterval: detect.DefaultTickInterval,
			TickStep:     detect.DefaultTickStep,
			Seed:         0,
		},
		Validation: ValidationConfig{
			Enforce:      false,
			Extensions:   rules.Extensions,
			MIMETypes:    rules.MIMETypes,
			MaxSizeBytes: rules.MaxSize,
		},
		UI: UIConfig{
			Theme:      "default",
			StartDir:   ".",
			ShowHidden: false,
			WatchDir:   true,
			ColorMode:  "auto",
			Emoji:      true,
		},
		Output: OutputConfig{
			DefaultFormat: "text",
			ShowProgress:  true,
		},
		Log: LogConfig{
			File:    "",
			Verbose: false,
		},
	}
}

// Rules converts the validation section into detection rules
func (c *Config) Rules() detect.Rules {
	return detect.Rules{
		Extensions: c.Validation.Extensions,
		MIMETypes:  c.Validation.MIMETypes,
		MaxSize:    c.Validation.MaxSizeBytes,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateDetectionConfig(); err != nil {
		return err
	}
	if err := c.validateValidationConfig(); err != nil {
		return err
	}
	if err := c.validateUIConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	return nil
}

// validateDetectionConfig validates detection-related configuration
func (c *Config) validateDetectionConfig() error {
	if c.Detection.Delay < 0 {
		return fmt.Errorf("delay must be non-negative")
	}
	if c.Detection.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be greater than 0")
	}
	if c.Detection.TickStep < 1 || c.Detection.TickStep > detect.MaxProgress {
		return fmt.Errorf("tick_step must be between 1 and %d", detect.MaxProgress)
	}
	return nil
}

// validateValidationConfig validates file validation configuration
func (c *Config) validateValidationConfig() error {
	if c.Validation.MaxSizeBytes < 0 {
		return fmt.Errorf("max_size_bytes must be non-negative")
	}
	for _, ext := range c.Validation.Extensions {
		if len(ext) < 2 || ext[0] != '.' {
			return fmt.Errorf("invalid extension: %q (must start with a dot)", ext)
		}
	}
	return nil
}

// validateUIConfig validates UI-related configuration
func (c *Config) validateUIConfig() error {
	if c.UI.Theme != "" {
		validThemes := map[string]bool{
			"default":       true,
			"high-contrast": true,
			"minimal":       true,
		}
		if !validThemes[c.UI.Theme] {
			return fmt.Errorf("invalid theme: %s (must be one of: default, high-contrast, minimal)", c.UI.Theme)
		}
	}
	if c.UI.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.UI.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.UI.ColorMode)
		}
	}
	return nil
}

// validateOutputConfig validates output-related configuration
func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"csv":      true,
			"json":     true,
			"markdown": true,
			"text":     true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: csv, json, markdown, text)", c.Output.DefaultFormat)
		}
	}
	return nil
}
