// Package conversation holds the chat history, the selected response and
// the in-flight flag, and runs queries through a responder.
package conversation

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"compliance_tui/pkg/dispatch"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

var (
	ErrEmptyQuery    = errors.New("query is empty")
	ErrBusy          = errors.New("a request is already in flight")
	ErrNotSelectable = errors.New("message cannot be selected")
)

// fallbackContent is shown for assistant turns whose payload has no summary.
const fallbackContent = "Response received"

// Archive records every appended message.
type Archive interface {
	Record(ctx context.Context, session string, m Message) error
}

// Option configures a Store.
type Option func(*Store)

// WithArchive records every message to a.
func WithArchive(a Archive) Option {
	return func(s *Store) { s.archive = a }
}

// WithLogger sets the logger used for send events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithClock overrides time.Now for message timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides UUID message IDs.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

type observer struct {
	id int
	fn func(Snapshot)
}

// Store is the single source of truth for the conversation. It is safe for
// concurrent use; the responder is called without holding the lock.
type Store struct {
	responder dispatch.Responder
	archive   Archive
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string
	session   string

	mu        sync.Mutex
	messages  []Message
	selected  string
	busy      bool
	lastErr   error
	observers []observer
	nextObsID int
	seq       uint64

	// notifyMu orders deliveries; delivered is the last Seq sent out.
	notifyMu  sync.Mutex
	delivered uint64
}

// New creates an empty store that answers queries with responder.
func New(responder dispatch.Responder, opts ...Option) *Store {
	s := &Store{
		responder: responder,
		logger:    slog.Default(),
		now:       time.Now,
		newID:     func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	s.session = s.newID()
	return s
}

// Session identifies this store's conversation in the archive.
func (s *Store) Session() string { return s.session }

// Send appends the user's query, asks the responder and appends its answer.
// The returned message is the assistant turn. On responder failure a failed
// assistant turn is appended and the error is returned alongside it.
func (s *Store) Send(ctx context.Context, query string) (Message, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Message{}, ErrEmptyQuery
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return Message{}, ErrBusy
	}
	userMsg := Message{
		ID:        s.newID(),
		Role:      RoleUser,
		Content:   query,
		Timestamp: s.now(),
	}
	s.messages = append(s.messages, userMsg)
	s.busy = true
	s.lastErr = nil
	snap := s.changedLocked()
	s.mu.Unlock()

	defer s.clearBusy()
	s.notify(snap)
	s.record(ctx, userMsg)

	s.logger.Info("send_start", "message_id", userMsg.ID, "query_len", len(query))
	start := time.Now()

	res, err := s.responder.Respond(ctx, query)
	if err != nil {
		s.logger.Error("send_failed",
			"message_id", userMsg.ID,
			"kind", dispatch.KindOf(err),
			"error", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		failed := Message{
			ID:        s.newID(),
			Role:      RoleAssistant,
			Content:   "Request failed: " + err.Error(),
			Timestamp: s.now(),
			Failed:    true,
		}
		s.finish(ctx, failed, err)
		return failed, err
	}

	content := res.Summary()
	if content == "" {
		content = fallbackContent
	}
	reply := Message{
		ID:        s.newID(),
		Role:      RoleAssistant,
		Content:   content,
		Timestamp: s.now(),
		Data:      lo.ToPtr(res),
	}
	s.finish(ctx, reply, nil)
	s.logger.Info("send_done",
		"message_id", reply.ID,
		"type", res.Kind,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return reply, nil
}

// finish appends the assistant turn, selects it when it carries data and
// clears the busy flag in one transition.
func (s *Store) finish(ctx context.Context, m Message, err error) {
	s.mu.Lock()
	s.messages = append(s.messages, m)
	if m.Selectable() {
		s.selected = m.ID
	}
	s.lastErr = err
	s.busy = false
	snap := s.changedLocked()
	s.mu.Unlock()

	s.notify(snap)
	s.record(ctx, m)
}

// clearBusy guarantees the flag is released even if the responder panics.
func (s *Store) clearBusy() {
	s.mu.Lock()
	if !s.busy {
		s.mu.Unlock()
		return
	}
	s.busy = false
	snap := s.changedLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// Select points the content pane at an earlier assistant message.
func (s *Store) Select(id string) error {
	s.mu.Lock()
	msg, ok := lo.Find(s.messages, func(m Message) bool { return m.ID == id })
	if !ok || !msg.Selectable() {
		s.mu.Unlock()
		return ErrNotSelectable
	}
	if s.selected == id {
		s.mu.Unlock()
		return nil
	}
	s.selected = id
	snap := s.changedLocked()
	s.mu.Unlock()

	s.notify(snap)
	return nil
}

// Clear empties the conversation. It is rejected while a request is in flight.
func (s *Store) Clear() error {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return ErrBusy
	}
	s.messages = nil
	s.selected = ""
	s.lastErr = nil
	snap := s.changedLocked()
	s.mu.Unlock()

	s.logger.Info("conversation_cleared")
	s.notify(snap)
	return nil
}

// Subscribe registers fn to receive a snapshot after every state change.
// fn must not change the store itself. The returned function removes the
// subscription.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	s.nextObsID++
	id := s.nextObsID
	s.observers = append(s.observers, observer{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.observers = lo.Reject(s.observers, func(o observer, _ int) bool { return o.id == id })
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Busy reports whether a request is in flight.
func (s *Store) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// LastError returns the error of the most recent failed send, if any.
func (s *Store) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// changedLocked records a state change and returns the new snapshot.
func (s *Store) changedLocked() Snapshot {
	s.seq++
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	msgs := make([]Message, len(s.messages))
	copy(msgs, s.messages)
	return Snapshot{
		Messages:   msgs,
		SelectedID: s.selected,
		Busy:       s.busy,
		LastError:  s.lastErr,
		Seq:        s.seq,
	}
}

// notify delivers snap to every observer. Deliveries are serialised and a
// snapshot older than one already delivered is dropped, so observers see
// states in order even when two changes race to notify.
func (s *Store) notify(snap Snapshot) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	if snap.Seq <= s.delivered {
		return
	}
	s.delivered = snap.Seq

	s.mu.Lock()
	observers := make([]observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, o := range observers {
		o.fn(snap)
	}
}

func (s *Store) record(ctx context.Context, m Message) {
	if s.archive == nil {
		return
	}
	if err := s.archive.Record(context.WithoutCancel(ctx), s.session, m); err != nil {
		s.logger.Warn("archive_record_failed", "message_id", m.ID, "error", err)
	}
}
