package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/yildizm/aidetect/internal/detect"
)

// Theme represents a color theme for the TUI
type Theme struct {
	Name string

	// Primary colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Accent    lipgloss.AdaptiveColor

	// Semantic colors, also used for the probability buckets
	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor

	// UI colors
	Border     lipgloss.AdaptiveColor
	Foreground lipgloss.AdaptiveColor
	Muted      lipgloss.AdaptiveColor
	Disabled   lipgloss.AdaptiveColor
	ErrorBg    lipgloss.AdaptiveColor
}

// buildTheme creates a theme with the given [light, dark] colors
func buildTheme(name string, primary, secondary, accent, success, warning, errorColor, border, foreground, muted, disabled, errorBg [2]string) Theme {
	return Theme{
		Name:       name,
		Primary:    lipgloss.AdaptiveColor{Light: primary[0], Dark: primary[1]},
		Secondary:  lipgloss.AdaptiveColor{Light: secondary[0], Dark: secondary[1]},
		Accent:     lipgloss.AdaptiveColor{Light: accent[0], Dark: accent[1]},
		Success:    lipgloss.AdaptiveColor{Light: success[0], Dark: success[1]},
		Warning:    lipgloss.AdaptiveColor{Light: warning[0], Dark: warning[1]},
		Error:      lipgloss.AdaptiveColor{Light: errorColor[0], Dark: errorColor[1]},
		Border:     lipgloss.AdaptiveColor{Light: border[0], Dark: border[1]},
		Foreground: lipgloss.AdaptiveColor{Light: foreground[0], Dark: foreground[1]},
		Muted:      lipgloss.AdaptiveColor{Light: muted[0], Dark: muted[1]},
		Disabled:   lipgloss.AdaptiveColor{Light: disabled[0], Dark: disabled[1]},
		ErrorBg:    lipgloss.AdaptiveColor{Light: errorBg[0], Dark: errorBg[1]},
	}
}

// Available themes
var (
	DefaultTheme = buildTheme("default",
		[2]string{"#4338CA", "#4F46E5"}, [2]string{"#4B5563", "#D1D5DB"}, [2]string{"#4F46E5", "#818CF8"},
		[2]string{"#059669", "#4ADE80"}, [2]string{"#D97706", "#FACC15"}, [2]string{"#DC2626", "#F87171"},
		[2]string{"#D1D5DB", "#374151"}, [2]string{"#111827", "#FFFFFF"}, [2]string{"#6B7280", "#9CA3AF"},
		[2]string{"#9CA3AF", "#374151"}, [2]string{"#FEE2E2", "#7F1D1D"})

	HighContrastTheme = buildTheme("high-contrast",
		[2]string{"#000080", "#8080FF"}, [2]string{"#000000", "#FFFFFF"}, [2]string{"#000080", "#8080FF"},
		[2]string{"#006600", "#00FF00"}, [2]string{"#CC6600", "#FFAA00"}, [2]string{"#CC0000", "#FF4444"},
		[2]string{"#000000", "#FFFFFF"}, [2]string{"#000000", "#FFFFFF"}, [2]string{"#666666", "#BBBBBB"},
		[2]string{"#999999", "#555555"}, [2]string{"#FFCCCC", "#440000"})

	MinimalTheme = buildTheme("minimal",
		[2]string{"#2D3748", "#E2E8F0"}, [2]string{"#718096", "#A0AEC0"}, [2]string{"#4A5568", "#CBD5E0"},
		[2]string{"#2F855A", "#68D391"}, [2]string{"#C05621", "#F6AD55"}, [2]string{"#C53030", "#FC8181"},
		[2]string{"#E2E8F0", "#2D3748"}, [2]string{"#2D3748", "#F7FAFC"}, [2]string{"#A0AEC0", "#718096"},
		[2]string{"#CBD5E0", "#4A5568"}, [2]string{"#FFF5F5", "#2D3748"})
)

// Current active theme
var currentTheme = DefaultTheme

// GetTheme returns the current active theme
func GetTheme() Theme {
	return currentTheme
}

// SetTheme sets the active theme
func SetTheme(theme *Theme) {
	currentTheme = *theme
}

// SetThemeByName sets the theme by name
func SetThemeByName(name string) bool {
	switch name {
	case "default", "":
		SetTheme(&DefaultTheme)
		return true
	case "high-contrast":
		SetTheme(&HighContrastTheme)
		return true
	case "minimal":
		SetTheme(&MinimalTheme)
		return true
	default:
		return false
	}
}

// GetAvailableThemes returns list of available theme names
func GetAvailableThemes() []string {
	return []string{"default", "high-contrast", "minimal"}
}

// IsColorDisabled checks if colors should be disabled
func IsColorDisabled() bool {
	return os.Getenv("NO_COLOR") != ""
}

// ApplyColorMode configures lipgloss for auto|always|never
func ApplyColorMode(mode string) {
	switch {
	case mode == "never" || IsColorDisabled():
		lipgloss.SetColorProfile(termenv.Ascii)
	case mode == "always":
		lipgloss.SetColorProfile(termenv.TrueColor)
	}
}

// BucketColor returns the color for a probability bucket
func (t *Theme) BucketColor(b detect.Bucket) lipgloss.AdaptiveColor {
	switch b {
	case detect.BucketLow:
		return t.Success
	case detect.BucketMedium:
		return t.Warning
	default:
		return t.Error
	}
}

// Styles contains all the styled components
type Styles struct {
	Theme Theme

	Title  lipgloss.Style
	Header lipgloss.Style
	Body   lipgloss.Style
	Muted  lipgloss.Style

	// Layout
	Card     lipgloss.Style
	Dropzone lipgloss.Style

	// Action control
	Button         lipgloss.Style
	ButtonDisabled lipgloss.Style
	Busy           lipgloss.Style

	// Outcome
	Result      lipgloss.Style
	ResultLabel lipgloss.Style
	ErrorBanner lipgloss.Style
}

// GetStyles returns styles for the current theme
func GetStyles() *Styles {
	theme := GetTheme()

	return &Styles{
		Theme: theme,

		Title: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Header: lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Bold(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Secondary),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(1, 2),

		Dropzone: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(theme.Muted).
			Padding(0, 1),

		Button: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 2),

		ButtonDisabled: lipgloss.NewStyle().
			Background(theme.Disabled).
			Foreground(theme.Muted).
			Padding(0, 2),

		Busy: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Result: lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1),

		ResultLabel: lipgloss.NewStyle().
			Foreground(theme.Secondary),

		ErrorBanner: lipgloss.NewStyle().
			Foreground(theme.Error).
			Background(theme.ErrorBg).
			Border(lipgloss.NormalBorder()).
			BorderForeground(theme.Error).
			Padding(0, 1),
	}
}

// ResultStyle returns the result style colored for the bucket
func (s *Styles) ResultStyle(b detect.Bucket) lipgloss.Style {
	return s.Result.Foreground(s.Theme.BucketColor(b))
}
