package utils

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

// TruncateToWidth truncates string to width with ellipsis
func TruncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= width {
		return text
	}
	if width <= 3 {
		return TrimToWidth(text, width)
	}
	return TrimToWidth(text, width-3) + "..."
}

// TrimToWidth trims string to width without ellipsis
func TrimToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	var sb strings.Builder
	currentWidth := 0
	for _, r := range text {
		runeWidth := runewidth.RuneWidth(r)
		if currentWidth+runeWidth > width {
			break
		}
		sb.WriteRune(r)
		currentWidth += runeWidth
	}
	return sb.String()
}

// PadStyled pads text with spaces to width, accounting for style
func PadStyled(text string, width int) string {
	if width <= 0 {
		return text
	}
	textWidth := lipgloss.Width(text)
	if textWidth >= width {
		return text
	}
	return text + strings.Repeat(" ", width-textWidth)
}

// Wrap breaks plain text into lines no wider than width. Words longer
// than width are split; explicit newlines are kept.
func Wrap(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	var lines []string
	for _, para := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		var line strings.Builder
		lineWidth := 0
		for _, word := range words {
			for _, part := range splitByWidth(word, width) {
				w := runewidth.StringWidth(part)
				if lineWidth > 0 && lineWidth+1+w > width {
					lines = append(lines, line.String())
					line.Reset()
					lineWidth = 0
				}
				if lineWidth > 0 {
					line.WriteByte(' ')
					lineWidth++
				}
				line.WriteString(part)
				lineWidth += w
			}
		}
		lines = append(lines, line.String())
	}
	return lines
}

func splitByWidth(text string, width int) []string {
	if runewidth.StringWidth(text) <= width {
		return []string{text}
	}
	var parts []string
	var sb strings.Builder
	currentWidth := 0
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if currentWidth+rw > width && currentWidth > 0 {
			parts = append(parts, sb.String())
			sb.Reset()
			currentWidth = 0
		}
		sb.WriteRune(r)
		currentWidth += rw
	}
	if sb.Len() > 0 {
		parts = append(parts, sb.String())
	}
	return parts
}
