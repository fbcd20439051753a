package commands

import (
	"sort"
	"strings"
)

// Result represents the result of a command execution
type Result struct {
	Title   string
	Content string
	// Clipboard, when set, is copied to the terminal clipboard.
	Clipboard string
	// Notice is a one-line status message.
	Notice string
	Error  error
}

// Handler is the interface for command handlers
type Handler interface {
	Execute(ctx *Context) *Result
	Name() string
	Description() string
}

// Dispatcher routes commands to their handlers
type Dispatcher struct {
	handlers map[string]Handler
}

// NewDispatcher creates a new command dispatcher
func NewDispatcher() *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[string]Handler),
	}

	d.Register(&ClearHandler{})
	d.Register(&CopyHandler{})
	d.Register(&HistoryHandler{})
	d.Register(&HelpHandler{dispatcher: d})

	return d
}

// Register adds a handler to the dispatcher
func (d *Dispatcher) Register(h Handler) {
	d.handlers[h.Name()] = h
}

// IsCommand reports whether chat input should be dispatched as a command.
func IsCommand(input string) bool {
	return strings.HasPrefix(strings.TrimSpace(input), "/")
}

// Dispatch executes a command. Only the first word of input is used and
// matching is case-insensitive.
func (d *Dispatcher) Dispatch(input string, ctx *Context) *Result {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return &Result{Title: "Error", Content: "Empty command"}
	}
	cmdName := strings.ToLower(fields[0])

	handler, ok := d.handlers[cmdName]
	if !ok {
		return &Result{
			Title:   "Error",
			Content: "Unknown command: " + cmdName + "\n\nType /help to list commands.",
			Notice:  "Unknown command: " + cmdName,
		}
	}

	return handler.Execute(ctx)
}

// GetHandler returns a handler by name
func (d *Dispatcher) GetHandler(cmdName string) (Handler, bool) {
	h, ok := d.handlers[cmdName]
	return h, ok
}

// Handlers returns all registered handlers sorted by name.
func (d *Dispatcher) Handlers() []Handler {
	out := make([]Handler, 0, len(d.handlers))
	for _, h := range d.handlers {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}
