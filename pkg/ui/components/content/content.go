// Package content renders the selected structured response in the left
// pane of the application.
package content

import (
	"strings"
	"time"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"compliance_tui/pkg/conversation"
	"compliance_tui/pkg/response"
	"compliance_tui/pkg/reveal"
	"compliance_tui/pkg/ui/styles"
)

const (
	PlaceholderTitle = "Compliance Intelligence Hub"
	PlaceholderHint  = "Select a message from the chat to view detailed insights"
	ErrorTitle       = "Unable to display response"

	generatedLayout = "2006-01-02 15:04:05"
	resultFooter    = "Esc to close"
)

// Speeds are the typewriter intervals for the summary heading and for
// body paragraphs.
type Speeds struct {
	Summary time.Duration
	Body    time.Duration
}

// DefaultSpeeds returns the built-in reveal speeds.
func DefaultSpeeds() Speeds {
	return Speeds{Summary: reveal.SummarySpeed, Body: reveal.BodySpeed}
}

// result is a command output shown instead of the selected response.
type result struct {
	title string
	body  string
}

// Model is the content pane.
type Model struct {
	width    int
	height   int
	viewport viewport.Model
	speeds   Speeds

	message *conversation.Message
	summary reveal.Model
	blocks  []reveal.Model
	result  *result
}

// New creates an empty content pane.
func New(speeds Speeds) Model {
	return Model{
		viewport: viewport.New(),
		speeds:   speeds,
		summary:  reveal.New(),
	}
}

// SetSize sets the outer size of the pane including its border.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.SetWidth(max(1, width-2))
	m.viewport.SetHeight(max(1, height-2))
	m.refresh()
}

// SetMessage shows msg, or the placeholder when msg is nil. Setting the
// message that is already shown keeps reveal progress and scroll position.
func (m *Model) SetMessage(msg *conversation.Message) tea.Cmd {
	if msg == nil {
		m.message = nil
		m.summary.Stop()
		m.stopBlocks()
		m.refresh()
		return nil
	}
	if m.message != nil && m.message.ID == msg.ID {
		return nil
	}

	copied := *msg
	m.message = &copied
	m.result = nil

	var cmds []tea.Cmd
	m.stopBlocks()
	m.blocks = nil
	if copied.Data != nil && response.Validate(*copied.Data) == nil {
		m.summary.Stop()
		cmds = append(cmds, m.summary.SetText(copied.Data.Summary(), m.speeds.Summary))
		for _, text := range revealedBlocks(copied.Data.Content) {
			block := reveal.New()
			cmds = append(cmds, block.SetText(text, m.speeds.Body))
			m.blocks = append(m.blocks, block)
		}
	} else {
		m.summary.Stop()
	}

	m.refresh()
	m.viewport.GotoTop()
	return tea.Batch(cmds...)
}

// MessageID returns the ID of the displayed message, or "".
func (m Model) MessageID() string {
	if m.message == nil {
		return ""
	}
	return m.message.ID
}

// ShowResult displays a command result over the current response.
func (m *Model) ShowResult(title, body string) {
	m.result = &result{title: title, body: body}
	m.refresh()
	m.viewport.GotoTop()
}

// CloseResult returns to the selected response.
func (m *Model) CloseResult() {
	m.result = nil
	m.refresh()
}

// HasResult reports whether a command result is shown.
func (m Model) HasResult() bool { return m.result != nil }

// ScrollUp scrolls by n lines.
func (m *Model) ScrollUp(n int) { m.viewport.ScrollUp(n) }

// ScrollDown scrolls by n lines.
func (m *Model) ScrollDown(n int) { m.viewport.ScrollDown(n) }

// PageUp scrolls one page up.
func (m *Model) PageUp() { m.viewport.PageUp() }

// PageDown scrolls one page down.
func (m *Model) PageDown() { m.viewport.PageDown() }

// Update advances reveal animations.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	tick, ok := msg.(reveal.TickMsg)
	if !ok {
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	if tick.ID == m.summary.ID() {
		m.summary, cmd = m.summary.Update(msg)
		cmds = append(cmds, cmd)
	}
	for i := range m.blocks {
		if tick.ID != m.blocks[i].ID() {
			continue
		}
		m.blocks[i], cmd = m.blocks[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	if len(cmds) > 0 {
		m.refresh()
	}
	return m, tea.Batch(cmds...)
}

// Revealing reports whether any text is still being typed out.
func (m Model) Revealing() bool {
	if m.message == nil {
		return false
	}
	if m.summary.Text() != "" && !m.summary.Complete() {
		return true
	}
	for _, b := range m.blocks {
		if b.Text() != "" && !b.Complete() {
			return true
		}
	}
	return false
}

// View renders the pane with its border.
func (m Model) View() string {
	return styles.BoxStyle.
		Width(max(2, m.width)).
		Height(max(2, m.height)).
		Render(m.viewport.View())
}

func (m *Model) stopBlocks() {
	for i := range m.blocks {
		m.blocks[i].Stop()
	}
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.render(m.viewport.Width()))
}

func (m Model) render(width int) string {
	if width <= 0 {
		return ""
	}
	if m.result != nil {
		return renderResult(*m.result, width)
	}
	if m.message == nil || m.message.Data == nil {
		return lipgloss.Place(width, max(1, m.viewport.Height()), lipgloss.Center, lipgloss.Center,
			lipgloss.JoinVertical(lipgloss.Center,
				styles.TitleStyle.Render(PlaceholderTitle),
				"",
				styles.TextMutedStyle.Render(PlaceholderHint),
			))
	}

	data := *m.message.Data
	if err := response.Validate(data); err != nil {
		return renderError(err, width)
	}

	r := renderer{width: width, blocks: m.blocks}
	body, err := r.payload(data.Content)
	if err != nil {
		return renderError(err, width)
	}

	head := styles.TitleStyle.Render(m.summary.View()) + "\n" +
		styles.TextMutedStyle.Render("Generated at "+m.message.Timestamp.Format(generatedLayout))
	return head + "\n\n" + body
}

func renderResult(res result, width int) string {
	var sb strings.Builder
	sb.WriteString(styles.TitleStyle.Render(res.title))
	sb.WriteString("\n\n")
	sb.WriteString(styles.TextStyle.Render(wrap(res.body, width)))
	sb.WriteString("\n\n")
	sb.WriteString(styles.FooterStyle.Render(resultFooter))
	return sb.String()
}

func renderError(err error, width int) string {
	body := styles.ErrorStyle.Bold(true).Render(ErrorTitle) + "\n" +
		styles.TextMutedStyle.Render(wrap(err.Error(), max(1, width-4)))
	return styles.ErrorBoxStyle.Width(width).Render(body)
}

// revealedBlocks lists the paragraphs typed out for a payload, in render
// order.
func revealedBlocks(p response.Payload) []string {
	switch p := p.(type) {
	case response.Text:
		return []string{p.Text}
	case response.TextWithLinks:
		return []string{p.Text}
	case response.Report:
		var out []string
		for _, s := range p.Sections {
			if s.Content != "" {
				out = append(out, s.Content)
			}
		}
		return out
	case response.Alert:
		var out []string
		for _, a := range p.Alerts {
			if a.Description != "" {
				out = append(out, a.Description)
			}
		}
		return out
	default:
		return nil
	}
}
