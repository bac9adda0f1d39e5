package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/yildizm/aidetect/internal/detect"
	"github.com/yildizm/aidetect/internal/emoji"
)

const (
	titleText       = "AI Content Detection"
	uploadText      = "Select a file to analyze"
	buttonText      = "Detect AI Content"
	busyText        = "Analyzing..."
	resultLabelText = "AI Content Probability"
)

// View renders the model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.session.Snapshot()
	width := m.cardWidth()
	inner := width - 6

	sections := []string{
		m.styles.Title.Render(titleText),
		m.renderUpload(snap, inner),
		m.renderButton(snap),
	}

	switch snap.State() {
	case detect.StateRunning:
		sections = append(sections, m.bar.Render(snap.Progress))
	case detect.StateDone:
		sections = append(sections, m.renderResult(*snap.Probability))
	}

	if snap.Error != "" {
		sections = append(sections, m.renderError(snap.Error, inner))
	}

	card := m.styles.Card.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
	return lipgloss.JoinVertical(lipgloss.Left, card, m.help.View(m.keys))
}

// renderUpload renders the upload prompt, file picker and selected file
func (m *Model) renderUpload(snap detect.Snapshot, width int) string {
	var b strings.Builder

	b.WriteString(m.styles.Header.Render(icon("upload") + uploadText))
	if m.hint != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render(m.hint))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(icon("folder") + m.picker.CurrentDirectory))
	b.WriteString("\n")
	b.WriteString(m.picker.View())

	zone := m.styles.Dropzone.Width(width).Render(b.String())
	if !snap.HasFile() {
		return zone
	}

	name := fmt.Sprintf("%s%s (%s)", icon("file"), snap.File.Name, humanize.Bytes(uint64(snap.File.Size)))
	return lipgloss.JoinVertical(lipgloss.Left, zone, m.styles.Body.Render(name))
}

// renderButton renders the detect action in its current state
func (m *Model) renderButton(snap detect.Snapshot) string {
	if snap.Busy {
		return m.styles.ButtonDisabled.Render(m.spinner.View() + " " + busyText)
	}
	if !snap.CanTrigger() {
		return m.styles.ButtonDisabled.Render(buttonText)
	}
	return m.styles.Button.Render(icon("search") + buttonText)
}

// renderResult renders the probability readout colored by bucket
func (m *Model) renderResult(p detect.Probability) string {
	bucket := p.Bucket()
	value := m.styles.ResultStyle(bucket).Render(icon(bucket.String()) + p.Percent())
	label := m.styles.ResultLabel.Render(resultLabelText)
	return lipgloss.JoinVertical(lipgloss.Left, value, label)
}

// renderError renders the error banner
func (m *Model) renderError(msg string, width int) string {
	return m.styles.ErrorBanner.Width(width).Render(icon("alert") + msg)
}

func icon(key string) string {
	return emoji.GetEmoji(key) + " "
}
