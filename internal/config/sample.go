package config

// SampleConfig returns a fully documented configuration file
func SampleConfig() string {
	return `# aidetect configuration
version: "1.0"

# Simulated detection run
detection:
  # How long a detection takes
  delay: 2s
  # Progress timer period and increment (percent per tick)
  tick_interval: 200ms
  tick_step: 10
  # Seed for the score generator (0 = random on every start)
  seed: 0

# File selection rules
validation:
  # true rejects files that do not match the rules below and shows them as
  # a hint under the upload prompt; false accepts any file and hides the hint
  enforce: false
  extensions: [".pdf", ".doc", ".txt"]
  mime_types: ["application/pdf", "application/msword", "application/x-ole-storage", "text/plain"]
  max_size_bytes: 10000000

# Interactive terminal UI
ui:
  theme: default        # default | high-contrast | minimal
  start_dir: "."
  show_hidden: false
  watch_dir: true       # refresh the file list when the directory changes
  color_mode: auto      # auto | always | never
  emoji: true

# Headless output (aidetect score)
output:
  default_format: text  # text | json | markdown | csv
  show_progress: true

# Diagnostics
log:
  # The TUI owns the terminal, so logs only appear when a file is set
  file: ""
  verbose: false
`
}

// MinimalSampleConfig returns a compact configuration file
func MinimalSampleConfig() string {
	return `version: "1.0"
detection:
  delay: 2s
validation:
  enforce: false
ui:
  theme: default
output:
  default_format: text
`
}
