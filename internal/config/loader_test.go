package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	if loader == nil {
		t.Fatal("NewLoader returned nil")
	}
	if len(loader.configPaths) != 3 {
		t.Errorf("Expected 3 config paths, got %d", len(loader.configPaths))
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	loader := NewLoader()
	loader.configPaths = []string{filepath.Join(t.TempDir(), "missing.yaml")}

	cfg, err := loader.LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load default config: %v", err)
	}

	if cfg.Detection.Delay != 2*time.Second {
		t.Errorf("Expected default delay 2s, got %v", cfg.Detection.Delay)
	}
	if cfg.Output.DefaultFormat != "text" {
		t.Errorf("Expected default output format text, got %s", cfg.Output.DefaultFormat)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test-config.yaml")

	configContent := `version: "1.0"
detection:
  delay: 500ms
  tick_interval: 50ms
  seed: 1234
validation:
  extensions: [".txt", ".md"]
ui:
  theme: minimal
output:
  default_format: json
`

	if err := os.WriteFile(configPath, []byte(configContent), 0o600); err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}

	loader := NewLoader()
	cfg, err := loader.LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config from file: %v", err)
	}

	if cfg.Detection.Delay != 500*time.Millisecond {
		t.Errorf("Expected delay 500ms, got %v", cfg.Detection.Delay)
	}
	if cfg.Detection.TickInterval != 50*time.Millisecond {
		t.Errorf("Expected tick interval 50ms, got %v", cfg.Detection.TickInterval)
	}
	if cfg.Detection.Seed != 1234 {
		t.Errorf("Expected seed 1234, got %d", cfg.Detection.Seed)
	}
	if len(cfg.Validation.Extensions) != 2 || cfg.Validation.Extensions[1] != ".md" {
		t.Errorf("Expected extensions [.txt .md], got %v", cfg.Validation.Extensions)
	}
	if cfg.UI.Theme != "minimal" {
		t.Errorf("Expected theme minimal, got %s", cfg.UI.Theme)
	}
	if cfg.Output.DefaultFormat != "json" {
		t.Errorf("Expected output format json, got %s", cfg.Output.DefaultFormat)
	}
}

func TestLoadConfigKeepsUnsetBooleans(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(configPath, []byte("ui:\n  theme: minimal\n"), 0o600); err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}

	cfg, err := NewLoader().LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Validation.Enforce {
		t.Errorf("Expected enforce to keep its default of false")
	}
	if !cfg.UI.WatchDir {
		t.Errorf("Expected watch_dir to keep its default of true")
	}
	if !cfg.Output.ShowProgress {
		t.Errorf("Expected show_progress to keep its default of true")
	}
}

func TestLoadConfigExplicitFalse(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "lenient.yaml")
	if err := os.WriteFile(configPath, []byte("ui:\n  watch_dir: false\n"), 0o600); err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}

	cfg, err := NewLoader().LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.UI.WatchDir {
		t.Errorf("Expected watch_dir to be false")
	}
}

func TestLoadConfigEnablesValidation(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "strict.yaml")
	if err := os.WriteFile(configPath, []byte("validation:\n  enforce: true\n"), 0o600); err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}

	cfg, err := NewLoader().LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if !cfg.Validation.Enforce {
		t.Errorf("Expected enforce to be true")
	}
	if cfg.Rules().Hint() != "PDF, DOC, TXT (MAX. 10 MB)" {
		t.Errorf("Expected default rules hint, got %q", cfg.Rules().Hint())
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "invalid-config.yaml")

	invalidConfigContent := `version: "1.0"
detection:
  delay: 2s
output:
  default_format: "json
  show_progress: true
`

	if err := os.WriteFile(configPath, []byte(invalidConfigContent), 0o600); err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}

	_, err := NewLoader().LoadConfig(configPath)
	if err == nil {
		t.Error("Expected error loading invalid YAML config, but got none")
	}
}

func TestLoadConfigFailsValidation(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(configPath, []byte("ui:\n  theme: neon\n"), 0o600); err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}

	_, err := NewLoader().LoadConfig(configPath)
	if err == nil || !strings.Contains(err.Error(), "configuration validation failed") {
		t.Errorf("Expected validation failure, got %v", err)
	}
}

type recordingWarner struct {
	messages []string
}

func (w *recordingWarner) Warn(msg string, args ...interface{}) {
	w.messages = append(w.messages, fmt.Sprintf(msg, args...))
}

func TestLoadConfigSearchPathsPriority(t *testing.T) {
	dir := t.TempDir()
	low := filepath.Join(dir, "system.yaml")
	high := filepath.Join(dir, "project.yaml")
	broken := filepath.Join(dir, "user.yaml")

	if err := os.WriteFile(low, []byte("ui:\n  theme: minimal\ndetection:\n  seed: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(broken, []byte("ui: [\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(high, []byte("ui:\n  theme: high-contrast\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	warner := &recordingWarner{}
	loader := NewLoader().WithWarner(warner)
	loader.configPaths = []string{high, broken, low}

	cfg, err := loader.LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.UI.Theme != "high-contrast" {
		t.Errorf("Expected highest priority theme high-contrast, got %s", cfg.UI.Theme)
	}
	if cfg.Detection.Seed != 1 {
		t.Errorf("Expected seed from lower priority file, got %d", cfg.Detection.Seed)
	}
	if len(warner.messages) != 1 || !strings.Contains(warner.messages[0], broken) {
		t.Errorf("Expected one warning about %s, got %v", broken, warner.messages)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("AIDETECT_DETECTION_DELAY", "3s")
	t.Setenv("AIDETECT_DETECTION_SEED", "77")
	t.Setenv("AIDETECT_VALIDATION_ENFORCE", "true")
	t.Setenv("AIDETECT_VALIDATION_EXTENSIONS", ".txt, .md ,")
	t.Setenv("AIDETECT_UI_THEME", "high-contrast")
	t.Setenv("AIDETECT_LOG_VERBOSE", "true")

	loader := NewLoader()
	cfg := DefaultConfig()

	if err := loader.applyEnvOverrides(cfg); err != nil {
		t.Fatalf("Failed to apply env overrides: %v", err)
	}

	if cfg.Detection.Delay != 3*time.Second {
		t.Errorf("Expected delay 3s, got %v", cfg.Detection.Delay)
	}
	if cfg.Detection.Seed != 77 {
		t.Errorf("Expected seed 77, got %d", cfg.Detection.Seed)
	}
	if !cfg.Validation.Enforce {
		t.Errorf("Expected enforce to be true")
	}
	expectedExts := []string{".txt", ".md"}
	if len(cfg.Validation.Extensions) != len(expectedExts) {
		t.Fatalf("Expected extensions %v, got %v", expectedExts, cfg.Validation.Extensions)
	}
	for i, ext := range expectedExts {
		if cfg.Validation.Extensions[i] != ext {
			t.Errorf("Expected extension %s, got %s", ext, cfg.Validation.Extensions[i])
		}
	}
	if cfg.UI.Theme != "high-contrast" {
		t.Errorf("Expected theme high-contrast, got %s", cfg.UI.Theme)
	}
	if !cfg.Log.Verbose {
		t.Errorf("Expected verbose to be true")
	}
}

func TestApplyEnvOverridesInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		envVar string
		value  string
	}{
		{"invalid int", "AIDETECT_DETECTION_TICK_STEP", "not-a-number"},
		{"invalid uint", "AIDETECT_DETECTION_SEED", "-5"},
		{"invalid bool", "AIDETECT_UI_EMOJI", "not-a-bool"},
		{"invalid duration", "AIDETECT_DETECTION_DELAY", "not-a-duration"},
		{"invalid int64", "AIDETECT_VALIDATION_MAX_SIZE_BYTES", "10MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.envVar, tt.value)

			loader := NewLoader()
			cfg := DefaultConfig()

			if err := loader.applyEnvOverrides(cfg); err == nil {
				t.Error("Expected error for invalid env var value, but got none")
			}
		})
	}
}

func TestValidateConfigPath(t *testing.T) {
	tests := []struct {
		path    string
		wantErr bool
	}{
		{"config.yaml", false},
		{"config.yml", false},
		{"config.json", true},
		{"../config.yaml", true},
		{"/proc/self/config.yaml", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			err := validateConfigPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateConfigPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	if got := expandPath("~/x.yaml"); got != filepath.Join(home, "x.yaml") {
		t.Errorf("Expected %s, got %s", filepath.Join(home, "x.yaml"), got)
	}
	if got := expandPath("/abs/x.yaml"); got != "/abs/x.yaml" {
		t.Errorf("Expected path unchanged, got %s", got)
	}
}

func TestSampleConfigsParse(t *testing.T) {
	for name, content := range map[string]string{
		"full":    SampleConfig(),
		"minimal": MinimalSampleConfig(),
	} {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			if err := yaml.Unmarshal([]byte(content), cfg); err != nil {
				t.Fatalf("Sample config does not parse: %v", err)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("Sample config is invalid: %v", err)
			}
		})
	}
}

func TestParseDuration(t *testing.T) {
	var duration time.Duration

	if err := parseDuration("30s", &duration); err != nil {
		t.Errorf("Failed to parse valid duration: %v", err)
	}
	if duration != 30*time.Second {
		t.Errorf("Expected 30s, got %v", duration)
	}

	if err := parseDuration("invalid", &duration); err == nil {
		t.Error("Expected error parsing invalid duration")
	}
}
