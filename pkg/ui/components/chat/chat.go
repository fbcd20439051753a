// Package chat implements the conversation panel: the message list, the
// busy indicator and the query input.
package chat

import (
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/samber/lo"

	"compliance_tui/pkg/commands"
	"compliance_tui/pkg/conversation"
	"compliance_tui/pkg/reveal"
	"compliance_tui/pkg/ui/components/utils"
	"compliance_tui/pkg/ui/styles"
)

const (
	Title       = "AI Assistant"
	Subtitle    = "Always here to help"
	EmptyTitle  = "Start Your Investigation"
	EmptyHint   = "Ask about cases, alerts, or compliance reports"
	Placeholder = "Ask about cases, alerts, or compliance..."
	BusyLabel   = "Analyzing your request..."

	inputHeight = 3
	// title, subtitle and the two separators
	chromeHeight = 4
	timeLayout   = "15:04"
)

// ChatSubmitMsg is returned when the user submits a query.
type ChatSubmitMsg struct {
	Content string
}

// CommandMsg is returned when the input starts with a slash.
type CommandMsg struct {
	Input string
}

// SelectMsg asks the shell to show an assistant message's response.
type SelectMsg struct {
	ID string
}

// FocusTarget indicates which part of the chat panel has focus.
type FocusTarget int

const (
	FocusInput FocusTarget = iota
	FocusList
)

// Model is the chat panel.
type Model struct {
	width  int
	height int

	textarea textarea.Model
	spinner  spinner.Model
	list     viewport.Model
	reveal   reveal.Model
	speed    time.Duration

	messages   []conversation.Message
	selectedID string
	revealID   string
	busy       bool
	focus      FocusTarget
	cursor     int
}

// New creates a chat panel that types out the newest answer at speed.
func New(speed time.Duration) Model {
	ta := textarea.New()
	ta.Placeholder = Placeholder
	ta.ShowLineNumbers = false
	ta.Prompt = "› "
	ta.CharLimit = 2000
	ta.SetHeight(inputHeight)
	ta.KeyMap.InsertNewline = key.NewBinding(
		key.WithKeys("shift+enter", "ctrl+j"),
		key.WithHelp("shift+enter", "insert newline"),
	)
	ta.Focus()

	return Model{
		textarea: ta,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.ColorAccent)),
		),
		list:   viewport.New(),
		reveal: reveal.New(),
		speed:  speed,
	}
}

// SetSize sets the outer size of the panel including its border.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	inner := max(1, width-2)
	m.textarea.SetWidth(inner)
	m.list.SetWidth(inner)
	m.list.SetHeight(max(1, height-2-chromeHeight-inputHeight))
	m.refresh(true)
}

// SetSnapshot replaces the displayed conversation. The newest assistant
// message starts typing out when it first appears and no request is
// pending.
func (m *Model) SetSnapshot(snap conversation.Snapshot) tea.Cmd {
	var cmds []tea.Cmd

	grew := len(snap.Messages) != len(m.messages)
	if snap.Busy && !m.busy {
		cmds = append(cmds, m.spinner.Tick)
	}

	m.messages = snap.Messages
	m.selectedID = snap.SelectedID
	m.busy = snap.Busy

	if latest, ok := snap.LatestAssistant(); ok && !snap.Busy && latest.ID != m.revealID {
		m.revealID = latest.ID
		// A new message always types from the start, even when its text
		// repeats the previous answer.
		m.reveal.Stop()
		cmds = append(cmds, m.reveal.SetText(latest.Content, m.speed))
	}
	if len(snap.Messages) == 0 {
		m.revealID = ""
		m.reveal.Stop()
	}

	m.cursor = min(m.cursor, max(0, len(m.selectable())-1))
	m.refresh(grew)
	return tea.Batch(cmds...)
}

// Focus returns the focused part of the panel.
func (m Model) Focus() FocusTarget { return m.focus }

// ToggleFocus switches focus between the input and the message list.
func (m *Model) ToggleFocus() tea.Cmd {
	if m.focus == FocusInput {
		m.focus = FocusList
		m.textarea.Blur()
		m.cursor = m.selectedIndex()
		m.refresh(false)
		return nil
	}
	m.focus = FocusInput
	m.refresh(false)
	return m.textarea.Focus()
}

// Value returns the current input text.
func (m Model) Value() string { return m.textarea.Value() }

// SetValue replaces the input text.
func (m *Model) SetValue(s string) { m.textarea.SetValue(s) }

// Busy reports whether a request is pending.
func (m Model) Busy() bool { return m.busy }

// Update handles input, list navigation and animation ticks.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		if msg.String() == "tab" {
			cmd := m.ToggleFocus()
			return m, cmd
		}
		if m.focus == FocusList {
			cmd := m.updateList(msg)
			return m, cmd
		}
		return m.updateInput(msg)

	case tea.PasteMsg:
		if m.focus != FocusInput {
			return m, nil
		}
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refresh(false)
		return m, cmd

	case reveal.TickMsg:
		if msg.ID != m.reveal.ID() {
			return m, nil
		}
		var cmd tea.Cmd
		m.reveal, cmd = m.reveal.Update(msg)
		m.refresh(m.list.AtBottom())
		return m, cmd
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyPressMsg) (Model, tea.Cmd) {
	if msg.String() == "enter" {
		input := strings.TrimSpace(m.textarea.Value())
		if input == "" {
			return m, nil
		}
		if commands.IsCommand(input) {
			m.textarea.Reset()
			return m, func() tea.Msg { return CommandMsg{Input: input} }
		}
		if m.busy {
			return m, nil
		}
		m.textarea.Reset()
		return m, func() tea.Msg { return ChatSubmitMsg{Content: input} }
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m *Model) updateList(msg tea.KeyPressMsg) tea.Cmd {
	items := m.selectable()
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor < len(items) {
			id := items[m.cursor].ID
			return func() tea.Msg { return SelectMsg{ID: id} }
		}
		return nil
	case "esc":
		return m.ToggleFocus()
	default:
		return nil
	}
	m.refresh(false)
	return nil
}

// selectable lists the assistant messages that carry a response.
func (m Model) selectable() []conversation.Message {
	return lo.Filter(m.messages, func(msg conversation.Message, _ int) bool {
		return msg.Selectable()
	})
}

func (m Model) selectedIndex() int {
	items := m.selectable()
	if _, idx, ok := lo.FindIndexOf(items, func(msg conversation.Message) bool {
		return msg.ID == m.selectedID
	}); ok {
		return idx
	}
	return max(0, len(items)-1)
}

// View renders the panel with its border.
func (m Model) View() string {
	inner := max(1, m.width-2)
	sep := styles.TextMutedStyle.Render(strings.Repeat("─", inner))

	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render(Title),
		styles.TextMutedStyle.Render(Subtitle),
		sep,
		m.list.View(),
		sep,
		m.textarea.View(),
	)

	border := styles.BoxStyle
	if m.focus == FocusList {
		border = border.BorderForeground(styles.ColorWarning)
	}
	return border.Width(max(2, m.width)).Height(max(2, m.height)).Render(body)
}

func (m *Model) refresh(follow bool) {
	width := m.list.Width()
	if len(m.messages) == 0 && !m.busy {
		m.list.SetContent(lipgloss.Place(width, max(1, m.list.Height()), lipgloss.Center, lipgloss.Center,
			lipgloss.JoinVertical(lipgloss.Center,
				styles.TextBoldStyle.Render(EmptyTitle),
				styles.TextMutedStyle.Render(EmptyHint),
			)))
		return
	}

	content, cursorLine := m.renderMessages(width)
	m.list.SetContent(content)
	switch {
	case m.focus == FocusList && cursorLine >= 0:
		m.list.EnsureVisible(cursorLine, 0, 0)
	case follow:
		m.list.GotoBottom()
	}
}

// renderMessages returns the list content and the first line of the
// message under the list cursor, or -1.
func (m Model) renderMessages(width int) (string, int) {
	bubbleWidth := max(8, width*4/5)
	items := m.selectable()
	cursorID := ""
	if m.focus == FocusList && m.cursor < len(items) {
		cursorID = items[m.cursor].ID
	}

	var lines []string
	cursorLine := -1
	for _, msg := range m.messages {
		if msg.ID == cursorID {
			cursorLine = len(lines)
		}
		lines = append(lines, m.renderMessage(msg, width, bubbleWidth, msg.ID == cursorID)...)
		lines = append(lines, "")
	}
	if m.busy {
		lines = append(lines, m.spinner.View()+" "+styles.TextMutedStyle.Render(BusyLabel))
	}
	return strings.Join(lines, "\n"), cursorLine
}

func (m Model) renderMessage(msg conversation.Message, width, bubbleWidth int, underCursor bool) []string {
	text := msg.Content
	if msg.Role == conversation.RoleAssistant && msg.ID == m.revealID && !m.busy {
		text = m.reveal.View()
	}

	wrapped := strings.Join(utils.Wrap(text, bubbleWidth-2), "\n")
	stamp := msg.Timestamp.Format(timeLayout)

	if msg.Role == conversation.RoleUser {
		bubble := styles.UserBubbleStyle.Render(wrapped)
		meta := styles.TextMutedStyle.Render(stamp)
		return []string{
			lipgloss.PlaceHorizontal(width, lipgloss.Right, bubble),
			lipgloss.PlaceHorizontal(width, lipgloss.Right, meta),
		}
	}

	style := styles.AssistantBubbleStyle
	if msg.Failed {
		style = styles.FailedBubbleStyle
	}
	meta := stamp
	if msg.ID == m.selectedID {
		meta += " · viewing"
	}
	metaLine := styles.TextMutedStyle.Render(meta)
	if underCursor {
		metaLine = styles.CursorStyle.Render("▶ ") + metaLine
	}
	return []string{style.Render(wrapped), metaLine}
}
