// Package archive keeps an on-disk audit trail of every chat turn.
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"compliance_tui/pkg/conversation"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
)

const keyPrefix = "msg:"

// Entry is one archived message together with the session it belongs to.
type Entry struct {
	Session string               `json:"session"`
	Message conversation.Message `json:"message"`
}

// Archive stores messages in BadgerDB.
type Archive struct {
	db  *badger.DB
	log *slog.Logger
}

// Open opens (or creates) the archive in dir.
func Open(dir string, log *slog.Logger) (*Archive, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create archive directory: %w", err)
	}
	db, err := badger.Open(badger.DefaultOptions(dir).WithLoggingLevel(badger.ERROR))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	return New(db, log), nil
}

// New wraps an already opened database.
func New(db *badger.DB, log *slog.Logger) *Archive {
	if log == nil {
		log = slog.Default()
	}
	return &Archive{db: db, log: log}
}

// Close closes the underlying database.
func (a *Archive) Close() error {
	return a.db.Close()
}

// Record persists a message.
// The key is "msg:{timestamp_padded}:{session}:{id}" so a plain key scan
// returns messages in chronological order across sessions; the message ID
// disambiguates messages sharing a timestamp.
func (a *Archive) Record(_ context.Context, session string, m conversation.Message) error {
	key := fmt.Sprintf("%s%019d:%s:%s", keyPrefix, m.Timestamp.UnixNano(), session, m.ID)
	value, err := json.Marshal(Entry{Session: session, Message: m})
	if err != nil {
		return fmt.Errorf("encode archived message: %w", err)
	}
	return a.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

// Session returns the messages of one session in chronological order.
func (a *Archive) Session(session string) ([]conversation.Message, error) {
	entries, err := a.scan(false, 0, func(e Entry) bool { return e.Session == session })
	if err != nil {
		return nil, err
	}
	return lo.Map(entries, func(e Entry, _ int) conversation.Message { return e.Message }), nil
}

// RecentQueries returns up to limit user queries, newest first.
func (a *Archive) RecentQueries(limit int) ([]Entry, error) {
	return a.scan(true, limit, func(e Entry) bool { return e.Message.Role == conversation.RoleUser })
}

func (a *Archive) scan(reverse bool, limit int, keep func(Entry) bool) ([]Entry, error) {
	var entries []Entry
	err := a.db.View(func(txn *badger.Txn) error {
		prefix := []byte(keyPrefix)
		options := badger.DefaultIteratorOptions
		options.Reverse = reverse
		options.Prefix = prefix
		it := txn.NewIterator(options)
		defer it.Close()

		seek := prefix
		if reverse {
			seek = append([]byte(keyPrefix), 0xff)
		}
		for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(entries) == limit {
				a.log.Debug("archive_scan_limit_reached", "limit", limit)
				break
			}
			var e Entry
			err := it.Item().Value(func(value []byte) error {
				return json.Unmarshal(value, &e)
			})
			if err != nil {
				return fmt.Errorf("decode archived message %q: %w", it.Item().Key(), err)
			}
			if keep(e) {
				entries = append(entries, e)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}
