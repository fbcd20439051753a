// Package statusbar renders the bottom status line.
package statusbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"compliance_tui/pkg/ui/styles"
)

// StatusBarView shows the responder, conversation size, busy state and a
// transient notice.
type StatusBarView struct {
	responder string
	messages  int
	busy      bool
	notice    string
	width     int
}

// NewStatusBarView creates a new status bar view
func NewStatusBarView() *StatusBarView {
	return &StatusBarView{width: 80}
}

// SetResponder updates the responder name displayed.
func (s *StatusBarView) SetResponder(name string) {
	s.responder = strings.TrimSpace(name)
}

// SetMessageCount updates the number of messages in the conversation.
func (s *StatusBarView) SetMessageCount(n int) {
	s.messages = n
}

// SetBusy toggles the in-flight indicator.
func (s *StatusBarView) SetBusy(busy bool) {
	s.busy = busy
}

// SetNotice sets a temporary message; empty clears it.
func (s *StatusBarView) SetNotice(msg string) {
	s.notice = msg
}

// Notice returns the current notice.
func (s *StatusBarView) Notice() string {
	return s.notice
}

// SetWidth updates the width for rendering
func (s *StatusBarView) SetWidth(width int) {
	s.width = width
}

// Render returns the styled status bar string
func (s *StatusBarView) Render() string {
	responder := s.responder
	if responder == "" {
		responder = "unknown"
	}

	state := "ready"
	if s.busy {
		state = "working"
	}

	content := fmt.Sprintf("[source]: %s | %s | %s", responder, messageLabel(s.messages), state)
	if s.notice != "" {
		content = s.notice + " | " + content
	} else {
		content += " | /help for commands"
	}

	// Truncate if too long (ANSI-aware width).
	maxWidth := s.width - 2
	if maxWidth < 10 {
		maxWidth = 10
	}
	if ansi.StringWidth(content) > maxWidth {
		content = ansi.Truncate(content, maxWidth, "...")
	}

	style := styles.StatusBarStyle
	if s.busy {
		style = styles.StatusBarBusyStyle
	}
	return style.Width(s.width).Render(content)
}

func messageLabel(n int) string {
	if n == 1 {
		return "1 message"
	}
	return fmt.Sprintf("%d messages", n)
}
