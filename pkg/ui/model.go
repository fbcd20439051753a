// Package ui is the Bubble Tea application: a header, the content pane on
// the left, the chat panel on the right and a status bar.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	osc52 "github.com/aymanbagabas/go-osc52/v2"

	"compliance_tui/pkg/commands"
	"compliance_tui/pkg/conversation"
	"compliance_tui/pkg/reveal"
	"compliance_tui/pkg/ui/components/chat"
	"compliance_tui/pkg/ui/components/content"
	"compliance_tui/pkg/ui/components/header"
	"compliance_tui/pkg/ui/components/statusbar"
)

// Conversation is the store the shell drives.
type Conversation interface {
	Send(ctx context.Context, query string) (conversation.Message, error)
	Select(id string) error
	Clear() error
	Snapshot() conversation.Snapshot
	Subscribe(fn func(conversation.Snapshot)) func()
}

// Options configures the shell.
type Options struct {
	Context       context.Context
	Store         Conversation
	ResponderName string
	// History backs /history; nil lists the current session.
	History commands.History
	// SummarySpeed, BodySpeed and ChatSpeed default to the reveal package
	// speeds when zero.
	SummarySpeed time.Duration
	BodySpeed    time.Duration
	ChatSpeed    time.Duration
	// Clipboard receives OSC52 sequences; defaults to os.Stdout.
	Clipboard io.Writer
	Logger    *slog.Logger
}

// snapshotMsg carries a store notification into the event loop.
type snapshotMsg conversation.Snapshot

// sendDoneMsg is returned when Store.Send finishes.
type sendDoneMsg struct {
	message conversation.Message
	err     error
}

// Model represents the Bubble Tea application state
type Model struct {
	ctx       context.Context
	store     Conversation
	commands  *commands.Dispatcher
	cmdCtx    *commands.Context
	clipboard io.Writer
	logger    *slog.Logger

	layout  *LayoutManager
	header  *header.Header
	content content.Model
	chat    chat.Model
	status  *statusbar.StatusBarView

	updates     chan conversation.Snapshot
	unsubscribe func()

	ready bool
}

// NewModel creates the application model and subscribes to the store.
func NewModel(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	clipboard := opts.Clipboard
	if clipboard == nil {
		clipboard = os.Stdout
	}

	speeds := content.Speeds{
		Summary: orDefault(opts.SummarySpeed, reveal.SummarySpeed),
		Body:    orDefault(opts.BodySpeed, reveal.BodySpeed),
	}

	status := statusbar.NewStatusBarView()
	status.SetResponder(opts.ResponderName)

	m := Model{
		ctx:       ctx,
		store:     opts.Store,
		commands:  commands.NewDispatcher(),
		cmdCtx:    commands.NewContext(opts.Store, opts.History),
		clipboard: clipboard,
		logger:    logger,
		layout:    NewLayoutManager(),
		header:    header.New(),
		content:   content.New(speeds),
		chat:      chat.New(orDefault(opts.ChatSpeed, reveal.ChatSpeed)),
		status:    status,
		updates:   make(chan conversation.Snapshot, 16),
	}

	updates := m.updates
	m.unsubscribe = opts.Store.Subscribe(func(s conversation.Snapshot) {
		select {
		case updates <- s:
		default:
			// The final state is re-read on sendDoneMsg.
		}
	})
	return m
}

func orDefault(d, def time.Duration) time.Duration {
	if d == 0 {
		return def
	}
	return reveal.ClampSpeed(d)
}

// Init initializes the model (Bubble Tea lifecycle method)
func (m Model) Init() tea.Cmd {
	return waitForSnapshot(m.updates)
}

func waitForSnapshot(ch <-chan conversation.Snapshot) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return snapshotMsg(s)
	}
}

// Update handles messages and updates model state (Bubble Tea lifecycle method)
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.ready = true
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.PasteMsg:
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		return m, cmd

	case chat.ChatSubmitMsg:
		m.status.SetNotice("")
		m.logger.Debug("query_submitted", "length", len(msg.Content))
		return m, m.send(msg.Content)

	case chat.CommandMsg:
		cmd := m.runCommand(msg.Input)
		return m, cmd

	case chat.SelectMsg:
		if err := m.store.Select(msg.ID); err != nil {
			m.logger.Warn("select_failed", "id", msg.ID, "error", err)
			m.status.SetNotice("That message has no response to show")
			return m, nil
		}
		cmd := m.apply(m.store.Snapshot())
		return m, cmd

	case snapshotMsg:
		cmd := m.apply(conversation.Snapshot(msg))
		return m, tea.Batch(cmd, waitForSnapshot(m.updates))

	case sendDoneMsg:
		cmd := m.apply(m.store.Snapshot())
		if msg.err != nil {
			m.status.SetNotice(sendNotice(msg.err))
		}
		return m, cmd

	case reveal.TickMsg:
		var contentCmd, chatCmd tea.Cmd
		m.content, contentCmd = m.content.Update(msg)
		m.chat, chatCmd = m.chat.Update(msg)
		return m, tea.Batch(contentCmd, chatCmd)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "ctrl+d":
		m.logger.Info("quit_requested", "key", msg.String())
		m.unsubscribe()
		return m, tea.Quit
	case "ctrl+l":
		cmd := m.runCommand("/clear")
		return m, cmd
	case "ctrl+y":
		cmd := m.runCommand("/copy")
		return m, cmd
	case "pgup":
		m.content.PageUp()
		return m, nil
	case "pgdown":
		m.content.PageDown()
		return m, nil
	case "esc":
		if m.content.HasResult() {
			m.content.CloseResult()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)
	return m, cmd
}

// send runs the query off the event loop.
func (m Model) send(query string) tea.Cmd {
	ctx, store := m.ctx, m.store
	return func() tea.Msg {
		message, err := store.Send(ctx, query)
		return sendDoneMsg{message: message, err: err}
	}
}

func (m *Model) runCommand(input string) tea.Cmd {
	result := m.commands.Dispatch(input, m.cmdCtx)
	m.logger.Debug("command_run", "input", input, "title", result.Title, "error", result.Error)

	var cmds []tea.Cmd
	if result.Notice != "" {
		m.status.SetNotice(result.Notice)
	}
	if result.Content != "" {
		m.content.ShowResult(result.Title, result.Content)
	}
	if result.Clipboard != "" {
		cmds = append(cmds, m.copyToClipboard(result.Clipboard))
	}
	cmds = append(cmds, m.apply(m.store.Snapshot()))
	return tea.Batch(cmds...)
}

func (m *Model) copyToClipboard(text string) tea.Cmd {
	w := m.clipboard
	return func() tea.Msg {
		_, _ = fmt.Fprint(w, osc52.New(text))
		return nil
	}
}

// apply pushes a store snapshot into every component.
func (m *Model) apply(s conversation.Snapshot) tea.Cmd {
	m.status.SetBusy(s.Busy)
	m.status.SetMessageCount(len(s.Messages))

	chatCmd := m.chat.SetSnapshot(s)

	var contentCmd tea.Cmd
	if selected, ok := s.Selected(); ok {
		contentCmd = m.content.SetMessage(&selected)
	} else {
		contentCmd = m.content.SetMessage(nil)
	}
	return tea.Batch(chatCmd, contentCmd)
}

func (m *Model) resize(width, height int) {
	m.layout.SetSize(width, height)
	m.header.SetWidth(width)
	m.status.SetWidth(width)
	m.content.SetSize(m.layout.ContentWidth(), m.layout.BodyHeight())
	m.chat.SetSize(m.layout.ChatWidth(), m.layout.BodyHeight())
}

// sendNotice turns a failed send into a status bar message.
func sendNotice(err error) string {
	switch {
	case errors.Is(err, conversation.ErrBusy):
		return "Please wait for the current request to finish"
	case errors.Is(err, conversation.ErrEmptyQuery):
		return "Type a question first"
	default:
		return "Request failed: " + err.Error()
	}
}

// View renders the program's UI (Bubble Tea lifecycle method)
func (m Model) View() tea.View {
	body := "Initializing..."
	if m.ready {
		body = m.layout.RenderLayout(
			m.header.View(),
			m.content.View(),
			m.chat.View(),
			m.status.Render(),
		)
	}
	v := tea.NewView(body)
	v.AltScreen = true
	return v
}
