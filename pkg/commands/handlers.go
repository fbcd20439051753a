package commands

import (
	"errors"
	"fmt"
	"strings"

	"compliance_tui/pkg/conversation"
	"compliance_tui/pkg/export"
)

// historyLimit caps the /history listing.
const historyLimit = 20

// ClearHandler handles the /clear command
type ClearHandler struct{}

func (h *ClearHandler) Name() string        { return "/clear" }
func (h *ClearHandler) Description() string { return "Clear the conversation" }

func (h *ClearHandler) Execute(ctx *Context) *Result {
	if ctx == nil || ctx.Conversation == nil {
		return &Result{Title: "Clear", Notice: "Nothing to clear"}
	}
	if err := ctx.Conversation.Clear(); err != nil {
		notice := "Unable to clear conversation"
		if errors.Is(err, conversation.ErrBusy) {
			notice = "Wait for the current request to finish before clearing"
		}
		return &Result{Title: "Clear", Notice: notice, Error: err}
	}
	return &Result{Title: "Clear", Notice: "Conversation cleared"}
}

// CopyHandler handles the /copy command
type CopyHandler struct{}

func (h *CopyHandler) Name() string        { return "/copy" }
func (h *CopyHandler) Description() string { return "Copy the selected response as Markdown" }

func (h *CopyHandler) Execute(ctx *Context) *Result {
	selected, ok := ctx.Snapshot().Selected()
	if !ok || selected.Data == nil {
		return &Result{Title: "Copy", Notice: "No response selected"}
	}
	md, err := export.Markdown(*selected.Data, selected.Timestamp)
	if err != nil {
		return &Result{Title: "Copy", Notice: "Selected response cannot be exported", Error: err}
	}
	return &Result{Title: "Copy", Clipboard: md, Notice: "Copied response to clipboard"}
}

// HistoryHandler handles the /history command
type HistoryHandler struct{}

func (h *HistoryHandler) Name() string        { return "/history" }
func (h *HistoryHandler) Description() string { return "Show previous queries" }

func (h *HistoryHandler) Execute(ctx *Context) *Result {
	queries, err := h.queries(ctx)
	if err != nil {
		return &Result{
			Title:   "History",
			Content: "Unable to read query history.",
			Notice:  "History unavailable",
			Error:   err,
		}
	}
	if len(queries) == 0 {
		return &Result{
			Title:   "History",
			Content: "No queries in history yet.",
		}
	}

	var sb strings.Builder
	for i, q := range queries {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, q))
	}

	return &Result{
		Title:   "History",
		Content: strings.TrimSuffix(sb.String(), "\n"),
	}
}

// queries prefers the archive, newest first; without one it lists the
// current session, newest first.
func (h *HistoryHandler) queries(ctx *Context) ([]string, error) {
	if ctx != nil && ctx.History != nil {
		entries, err := ctx.History.RecentQueries(historyLimit)
		if err != nil {
			return nil, err
		}
		out := make([]string, len(entries))
		for i, e := range entries {
			out[i] = e.Message.Content
		}
		return out, nil
	}

	session := ctx.Snapshot().Queries()
	out := make([]string, 0, len(session))
	for i := len(session) - 1; i >= 0 && len(out) < historyLimit; i-- {
		out = append(out, session[i])
	}
	return out, nil
}

// HelpHandler handles the /help command
type HelpHandler struct {
	dispatcher *Dispatcher
}

func (h *HelpHandler) Name() string        { return "/help" }
func (h *HelpHandler) Description() string { return "Show help" }

func (h *HelpHandler) Execute(ctx *Context) *Result {
	var sb strings.Builder
	sb.WriteString("Available Commands:\n")
	if h.dispatcher != nil {
		for _, handler := range h.dispatcher.Handlers() {
			sb.WriteString(fmt.Sprintf("  %-9s - %s\n", handler.Name(), handler.Description()))
		}
	}
	sb.WriteString(`
Shortcuts:
  Enter       - Send query
  Shift+Enter - New line
  Tab         - Switch between input and message list
  Up/Down     - Move through responses (message list)
  PgUp/PgDn   - Scroll the content pane
  Ctrl+Y      - Copy selected response
  Ctrl+L      - Clear conversation
  Ctrl+C      - Quit

Press Esc to close this panel.`)

	return &Result{
		Title:   "Help",
		Content: sb.String(),
	}
}
