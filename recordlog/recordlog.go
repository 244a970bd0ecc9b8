// Package recordlog keeps a local history of finished dictations, indexed by
// calendar date.
package recordlog

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/tshuldberg/WyVoice/internal/types"
)

const keyPrefix = "log/"

// Store is a Badger-backed dictation history. Keys are
// log/<yyyy-mm-dd>/<unix-nanos>-<uuid>, values JSON-encoded LogEntry.
type Store struct {
	db  *badger.DB
	now func() time.Time
}

// Open opens (or creates) the history database at dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open record log: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close flushes and closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Append records a finished dictation. Blank transcripts are ignored.
func (s *Store) Append(transcript, language string) error {
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return nil
	}

	now := s.now()
	entry := types.LogEntry{
		ID:         uuid.NewString(),
		Timestamp:  now.Format(time.RFC3339),
		Date:       now.Format("2006-01-02"),
		Transcript: transcript,
		Language:   language,
	}
	value, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode log entry: %w", err)
	}
	key := fmt.Sprintf("%s%s/%d-%s", keyPrefix, entry.Date, now.UnixNano(), entry.ID)

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("append log entry: %w", err)
	}
	return nil
}

// ByDate returns the entries recorded on dateKey (yyyy-mm-dd), oldest first.
func (s *Store) ByDate(dateKey string) ([]types.LogEntry, error) {
	prefix := []byte(keyPrefix + dateKey + "/")
	var entries []types.LogEntry

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var entry types.LogEntry
				if err := json.Unmarshal(val, &entry); err != nil {
					return fmt.Errorf("decode log entry: %w", err)
				}
				entries = append(entries, entry)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read log entries: %w", err)
	}
	return entries, nil
}

// Today returns the entries recorded today, oldest first.
func (s *Store) Today() ([]types.LogEntry, error) {
	return s.ByDate(s.now().Format("2006-01-02"))
}

// Dates lists the days with at least one entry, newest first.
func (s *Store) Dates() ([]string, error) {
	seen := map[string]bool{}
	prefix := []byte(keyPrefix)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := string(it.Item().Key())
			rest := strings.TrimPrefix(key, keyPrefix)
			if i := strings.IndexByte(rest, '/'); i > 0 {
				seen[rest[:i]] = true
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list log dates: %w", err)
	}

	dates := make([]string, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates, nil
}
