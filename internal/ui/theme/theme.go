// Package theme holds the terminal palette and text styles for rendered
// reports.
package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Heading = lipgloss.NewStyle().
		Bold(true).
		Foreground(Secondary)

	Subheading = lipgloss.NewStyle().
			Bold(true).
			Foreground(Accent)

	Label = lipgloss.NewStyle().
		Foreground(TextDim).
		Bold(true)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Bullet = lipgloss.NewStyle().
		Foreground(Success)

	Rule = lipgloss.NewStyle().
		Foreground(Border)
)

// Plain returns s unchanged. Renderers use it in place of a style when
// color is off.
func Plain(s string) string { return s }
