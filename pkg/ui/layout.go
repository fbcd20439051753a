package ui

import (
	"charm.land/lipgloss/v2"
)

const (
	// chatWidth is the chat panel width on wide terminals.
	chatWidth = 48
	// wideThreshold is the terminal width below which the chat panel
	// takes chatPercent of the screen instead.
	wideThreshold = 120
	chatPercent   = 40

	headerHeight    = 1
	statusBarHeight = 1
)

// LayoutManager splits the terminal between the header, the content pane,
// the chat panel and the status bar.
type LayoutManager struct {
	width  int
	height int
}

// NewLayoutManager creates a new layout manager
func NewLayoutManager() *LayoutManager {
	return &LayoutManager{
		width:  80,
		height: 24,
	}
}

// SetSize updates the layout dimensions
func (lm *LayoutManager) SetSize(width, height int) {
	lm.width = width
	lm.height = height
}

// ChatWidth returns the width of the chat panel.
func (lm *LayoutManager) ChatWidth() int {
	if lm.width >= wideThreshold {
		return chatWidth
	}
	return lm.width * chatPercent / 100
}

// ContentWidth returns the width left for the content pane.
func (lm *LayoutManager) ContentWidth() int {
	return max(0, lm.width-lm.ChatWidth())
}

// BodyHeight returns the height shared by the content and chat panes.
func (lm *LayoutManager) BodyHeight() int {
	return max(0, lm.height-headerHeight-statusBarHeight)
}

// RenderLayout stacks the header, the two panes and the status bar.
func (lm *LayoutManager) RenderLayout(header, content, chat, status string) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		lipgloss.JoinHorizontal(lipgloss.Top, content, chat),
		status,
	)
}

// GetDimensions returns current width and height
func (lm *LayoutManager) GetDimensions() (width, height int) {
	return lm.width, lm.height
}
