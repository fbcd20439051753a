package conversation

import (
	"time"

	"compliance_tui/pkg/response"
)

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one chat turn. Messages are never modified after creation.
type Message struct {
	ID        string               `json:"id"`
	Role      Role                 `json:"role"`
	Content   string               `json:"content"`
	Timestamp time.Time            `json:"timestamp"`
	Data      *response.Structured `json:"data,omitempty"`
	// Failed marks an assistant turn that reports a dispatch error.
	Failed bool `json:"failed,omitempty"`
}

// Selectable reports whether the message can be shown in the content pane.
func (m Message) Selectable() bool {
	return m.Role == RoleAssistant && m.Data != nil && !m.Failed
}

// Snapshot is an immutable copy of the store state. Seq grows with every
// state change, so a larger Seq is always the newer state.
type Snapshot struct {
	Messages   []Message
	SelectedID string
	Busy       bool
	LastError  error
	Seq        uint64
}

// Selected returns the selected message, if any.
func (s Snapshot) Selected() (Message, bool) {
	if s.SelectedID == "" {
		return Message{}, false
	}
	for _, m := range s.Messages {
		if m.ID == s.SelectedID {
			return m, true
		}
	}
	return Message{}, false
}

// LatestAssistant returns the newest assistant message, if any.
func (s Snapshot) LatestAssistant() (Message, bool) {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Role == RoleAssistant {
			return s.Messages[i], true
		}
	}
	return Message{}, false
}

// Queries returns the user messages' text in order.
func (s Snapshot) Queries() []string {
	out := make([]string, 0, len(s.Messages)/2+1)
	for _, m := range s.Messages {
		if m.Role == RoleUser {
			out = append(out, m.Content)
		}
	}
	return out
}
