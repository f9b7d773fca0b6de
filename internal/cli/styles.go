package cli

import "github.com/charmbracelet/lipgloss"

var (
	promptColor = lipgloss.Color("#7C3AED")
	errorColor  = lipgloss.Color("#EF4444")
	mutedColor  = lipgloss.Color("#94A3B8")
)

// Styles decorates REPL output for a terminal. The zero value, and any
// Styles built with NewStyles(false), leave text untouched so piped output
// matches the plain protocol byte for byte.
type Styles struct {
	enabled bool
	prompt  lipgloss.Style
	err     lipgloss.Style
	muted   lipgloss.Style
}

func NewStyles(enabled bool) Styles {
	return Styles{
		enabled: enabled,
		prompt:  lipgloss.NewStyle().Foreground(promptColor).Bold(true),
		err:     lipgloss.NewStyle().Foreground(errorColor),
		muted:   lipgloss.NewStyle().Foreground(mutedColor),
	}
}

func (s Styles) render(style lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return style.Render(text)
}

func (s Styles) Prompt(text string) string {
	return s.render(s.prompt, text)
}

func (s Styles) Error(text string) string {
	return s.render(s.err, text)
}

func (s Styles) Muted(text string) string {
	return s.render(s.muted, text)
}
