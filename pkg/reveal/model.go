package reveal

import (
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"
)

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// TickMsg advances the reveal model with the matching ID.
type TickMsg struct {
	Time time.Time
	ID   int
	tag  int
}

// DoneMsg is sent once when a reveal model finishes.
type DoneMsg struct {
	ID int
}

// Model is the Bubble Tea binding of Typewriter. Each model owns an ID and
// a tag; ticks for another model or for a superseded run are ignored, so
// restarting or dropping a model needs no explicit cleanup.
type Model struct {
	id int
	tw Typewriter
	// tag identifies the tick chain that is allowed to advance the model.
	tag int
}

// New creates an idle reveal model.
func New() Model {
	return Model{id: nextID()}
}

// ID returns the model's unique identifier.
func (m Model) ID() int { return m.id }

// SetText starts revealing text at speed and returns the first tick.
// Setting the same text and speed again keeps the current progress.
func (m *Model) SetText(text string, speed time.Duration) tea.Cmd {
	if m.tw.Matches(text, speed) {
		return nil
	}
	m.tag++
	if m.tw.Start(text, speed) {
		return m.done()
	}
	return m.tick(m.tag)
}

// Stop cancels the reveal; pending ticks are discarded.
func (m *Model) Stop() {
	m.tag++
	m.tw.Cancel()
}

// Update consumes TickMsg for this model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	tick, ok := msg.(TickMsg)
	if !ok || tick.ID != m.id || tick.tag != m.tag {
		return m, nil
	}
	if !m.tw.Active() {
		return m, nil
	}

	if m.tw.Tick() {
		return m, m.done()
	}
	m.tag++
	return m, m.tick(m.tag)
}

// View returns the revealed prefix.
func (m Model) View() string { return m.tw.Displayed() }

// Complete reports whether all text has been revealed.
func (m Model) Complete() bool { return m.tw.Complete() }

// Text returns the full target text.
func (m Model) Text() string { return m.tw.Text() }

func (m Model) tick(tag int) tea.Cmd {
	id := m.id
	return tea.Tick(m.tw.Speed(), func(t time.Time) tea.Msg {
		return TickMsg{Time: t, ID: id, tag: tag}
	})
}

func (m Model) done() tea.Cmd {
	id := m.id
	return func() tea.Msg { return DoneMsg{ID: id} }
}
