package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders a fixed-width percentage bar
type ProgressBar struct {
	Width     int
	Label     string
	ShowValue bool

	bar progress.Model
}

// NewProgressBar creates a progress bar filled with the given color
func NewProgressBar(width int, fill lipgloss.TerminalColor) *ProgressBar {
	if width <= 0 {
		width = 40
	}

	opts := []progress.Option{
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	}
	if c, ok := fill.(lipgloss.AdaptiveColor); ok {
		opts = append(opts, progress.WithSolidFill(c.Dark))
	} else {
		opts = append(opts, progress.WithDefaultGradient())
	}

	return &ProgressBar{
		Width:     width,
		ShowValue: true,
		bar:       progress.New(opts...),
	}
}

// SetWidth resizes the bar
func (p *ProgressBar) SetWidth(width int) {
	if width <= 0 {
		return
	}
	p.Width = width
	p.bar.Width = width
}

// SetLabel sets the text drawn before the bar
func (p *ProgressBar) SetLabel(label string) {
	p.Label = label
}

// Render renders the bar for a percentage in [0,100]
func (p *ProgressBar) Render(percent int) string {
	if percent < 0 {
		percent = 0
	} else if percent > 100 {
		percent = 100
	}

	result := p.bar.ViewAs(float64(percent) / 100)
	if p.ShowValue {
		result = fmt.Sprintf("%s %3d%%", result, percent)
	}
	if p.Label != "" {
		result = p.Label + " " + result
	}
	return result
}
