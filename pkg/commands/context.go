package commands

import (
	"compliance_tui/pkg/archive"
	"compliance_tui/pkg/conversation"
)

// Conversation is the part of the conversation store commands operate on.
type Conversation interface {
	Snapshot() conversation.Snapshot
	Clear() error
}

// History lists queries from earlier sessions.
type History interface {
	RecentQueries(limit int) ([]archive.Entry, error)
}

// Context contains everything a command may need.
type Context struct {
	Conversation Conversation
	// History is nil when no archive is configured.
	History History
}

// NewContext creates a new command context
func NewContext(conv Conversation, history History) *Context {
	return &Context{
		Conversation: conv,
		History:      history,
	}
}

// Snapshot returns the conversation state, or an empty one.
func (c *Context) Snapshot() conversation.Snapshot {
	if c == nil || c.Conversation == nil {
		return conversation.Snapshot{}
	}
	return c.Conversation.Snapshot()
}
