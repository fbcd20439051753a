// Package header renders the top bar of the application.
package header

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"compliance_tui/pkg/ui/styles"
)

const (
	Title    = "Compliance Intelligence"
	Subtitle = "Case & Alert Management"
	User     = "John Doe"
)

// Header is a one-line bar with the product name on the left and the
// signed-in user on the right.
type Header struct {
	width int
	user  string
}

// New creates a header for the default user.
func New() *Header {
	return &Header{width: 80, user: User}
}

// SetWidth updates the width for rendering.
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetUser overrides the displayed user name.
func (h *Header) SetUser(name string) {
	if name = strings.TrimSpace(name); name != "" {
		h.user = name
	}
}

// View renders the bar padded to the full width.
func (h *Header) View() string {
	inner := h.width - 2
	if inner < 1 {
		inner = 1
	}

	left := Title + " | " + Subtitle
	right := "[" + h.user + "]"
	if ansi.StringWidth(left)+ansi.StringWidth(right)+1 > inner {
		left = Title
	}
	if ansi.StringWidth(left)+ansi.StringWidth(right)+1 > inner {
		right = ""
	}
	left = ansi.Truncate(left, inner, "…")

	gap := inner - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 0 {
		gap = 0
	}

	content := styles.HeaderTitleStyle.Render(left) + strings.Repeat(" ", gap) + right
	return styles.HeaderStyle.Width(h.width).MaxWidth(h.width).Render(content)
}
