// Package styles provides the shared colour palette and lipgloss styles for
// every UI component.
package styles

import (
	"charm.land/lipgloss/v2"

	"compliance_tui/pkg/response"
)

// Color palette - ANSI 256 colors used throughout the application
var (
	// Primary accent color (purple)
	ColorAccent = lipgloss.Color("141")

	// Text colors
	ColorText       = lipgloss.Color("252") // Primary text
	ColorTextMuted  = lipgloss.Color("245") // Secondary/muted text
	ColorTextBright = lipgloss.Color("15")  // Bright/highlighted text

	// Semantic colors
	ColorError   = lipgloss.Color("196")
	ColorWarning = lipgloss.Color("214")
	ColorSuccess = lipgloss.Color("42")
	ColorInfo    = lipgloss.Color("39")
	ColorCaution = lipgloss.Color("220")

	ColorPlaceholder = lipgloss.Color("240")

	// Border colors
	ColorBorder      = lipgloss.Color("141") // Default border (matches accent)
	ColorBorderMuted = lipgloss.Color("62")

	ColorUserBubble      = lipgloss.Color("61")
	ColorAssistantBubble = lipgloss.Color("237")
)

// Panel/Box styles
var (
	// BoxStyle is the default rounded box for panels
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	// CardStyle frames a single metric, alert or chart.
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorderMuted).
			Padding(0, 1)

	ErrorBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorError).
			Padding(0, 1)
)

// Text styles
var (
	// TitleStyle for panel/section titles
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	TextStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	// TextMutedStyle for secondary/helper text
	TextMutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)

	TextBoldStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Bold(true)

	// LinkStyle for document titles and targets
	LinkStyle = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Underline(true)

	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(ColorPlaceholder).
				Italic(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	// FooterStyle for footer/help text
	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)
)

// Selection and highlighting
var (
	// SelectedStyle for highlighted/selected items
	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorTextBright).
			Background(ColorAccent).
			Bold(true)

	// CursorStyle marks the list cursor in the chat panel.
	CursorStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)
)

// Chat bubbles
var (
	UserBubbleStyle = lipgloss.NewStyle().
			Foreground(ColorTextBright).
			Background(ColorUserBubble).
			Padding(0, 1)

	AssistantBubbleStyle = lipgloss.NewStyle().
				Foreground(ColorText).
				Background(ColorAssistantBubble).
				Padding(0, 1)

	FailedBubbleStyle = lipgloss.NewStyle().
				Foreground(ColorError).
				Background(ColorAssistantBubble).
				Padding(0, 1)
)

// Header and status bar
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextBright).
			Background(lipgloss.Color("#3C3C3C")).
			Padding(0, 1)

	HeaderTitleStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Background(lipgloss.Color("#3C3C3C")).
				Bold(true)

	// StatusBarStyle is the default status bar style (purple theme)
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	// StatusBarBusyStyle is used while a request is in flight.
	StatusBarBusyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(lipgloss.Color("#00B8D4")).
				Padding(0, 1).
				Bold(true)
)

func badge(fg, bg string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(fg)).
		Background(lipgloss.Color(bg)).
		Padding(0, 1)
}

// StatusBadge styles a table Status cell: Open, Resolved, anything else.
func StatusBadge(value string) lipgloss.Style {
	switch value {
	case "Open":
		return badge("15", "27")
	case "Resolved":
		return badge("16", "42")
	default:
		return badge("16", "220")
	}
}

// PriorityBadge styles a table Priority cell.
func PriorityBadge(value string) lipgloss.Style {
	switch value {
	case "Critical", "High":
		return badge("15", "160")
	case "Medium":
		return badge("16", "214")
	default:
		return badge("16", "250")
	}
}

// SeverityColor returns the alert colour for sev.
func SeverityColor(sev response.Severity) lipgloss.Style {
	switch sev {
	case response.SeverityCritical:
		return lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	case response.SeverityHigh:
		return lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(ColorCaution).Bold(true)
	}
}

// TrendStyle colours a metric change; up is green, down is red.
func TrendStyle(t response.Trend) lipgloss.Style {
	if t == response.TrendUp {
		return lipgloss.NewStyle().Foreground(ColorSuccess)
	}
	return lipgloss.NewStyle().Foreground(ColorError)
}
